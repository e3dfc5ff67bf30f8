// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package wave

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// Opts represents the options available for rendering.
type Opts struct {
	// Width is the width of the image in pixels, labels included.
	Width int
	// RowHeight is the height of each signal row in pixels.
	RowHeight int
	// LabelWidth is the space reserved on the left for signal names.
	LabelWidth int
	// FontSize is in points.
	FontSize float64
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Width:      1200,
	RowHeight:  32,
	LabelWidth: 100,
	FontSize:   12,
}

// Render draws steps [from, to) of r. The Opts can be nil.
func Render(r *Recorder, from, to int64, opts *Opts) (image.Image, error) {
	dc, err := draw(r, from, to, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG renders steps [from, to) of r and encodes the image as PNG to w.
func WritePNG(w io.Writer, r *Recorder, from, to int64, opts *Opts) error {
	dc, err := draw(r, from, to, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SavePNG is WritePNG to a file.
func SavePNG(path string, r *Recorder, from, to int64, opts *Opts) error {
	img, err := Render(r, from, to, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}

func draw(r *Recorder, from, to int64, opts *Opts) (*gg.Context, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if len(r.names) == 0 {
		return nil, errors.New("wave: nothing recorded")
	}
	if from < 0 || to > r.steps || from >= to {
		return nil, fmt.Errorf("wave: invalid window [%d, %d) of %d steps", from, to, r.steps)
	}
	if opts.Width <= opts.LabelWidth || opts.RowHeight < 4 {
		return nil, errors.New("wave: image too small")
	}
	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(opts.Width, opts.RowHeight*len(r.names))
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: opts.FontSize}))
	dc.SetLineWidth(2)

	left := float64(opts.LabelWidth)
	scale := float64(opts.Width-opts.LabelWidth) / float64(to-from)
	x := func(step int64) float64 {
		return left + float64(step-from)*scale
	}
	pad := float64(opts.RowHeight / 4)
	for i, name := range r.names {
		top := float64(i * opts.RowHeight)
		high, low := top+pad, top+float64(opts.RowHeight)-pad
		dc.DrawStringAnchored(name, 4, top+float64(opts.RowHeight)/2, 0, 0.5)

		y := func(l bool) float64 {
			if l {
				return high
			}
			return low
		}
		segs := r.segments(i, from, to)
		for j, s := range segs {
			end := to
			if j+1 < len(segs) {
				end = segs[j+1].start
			}
			if j > 0 {
				dc.DrawLine(x(s.start), high, x(s.start), low)
			}
			dc.DrawLine(x(s.start), y(s.level), x(end), y(s.level))
		}
		dc.Stroke()
	}
	return dc, nil
}
