// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package statusbar shows the controller registers on a terminal line using
// ANSI color codes.
//
// Each STATUS bit is a colored block: the error bits are red when set, the
// busy bit is yellow while a measurement is in progress. A lit block is
// dimmed back to gray when the bit clears.
package statusbar

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/dhtregs/dhtaxi"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/physic"
)

// Opts represents the options available for the status bar.
type Opts struct {
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// Writer defaults to a colorable stdout.
	Writer io.Writer
	// Scroll starts a new line on every Show instead of redrawing in place.
	Scroll bool

	_ struct{}
}

// Colors of the STATUS blocks.
var (
	Off   = color.NRGBA{0x30, 0x30, 0x30, 255}
	Fault = color.NRGBA{0xff, 0x00, 0x00, 255}
	Busy  = color.NRGBA{0xff, 0xd0, 0x00, 255}
)

// bits lists the STATUS bits from the most significant one, as they are
// drawn.
var bits = []struct {
	mask uint32
	on   color.NRGBA
}{
	{dhtaxi.StatusProtocolError, Fault},
	{dhtaxi.StatusBusy, Busy},
	{dhtaxi.StatusChecksumError, Fault},
}

// Dev is a register view that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	scroll  bool

	buf bytes.Buffer
}

// New returns a Dev that displays at the console. The Opts can be nil.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Writer
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{w: w, palette: *p, scroll: opts.Scroll}
}

func (d *Dev) String() string {
	return "StatusBar"
}

// Halt implements conn.Resource.
//
// It moves to a new line and resets the colors so the terminal is not left
// corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// Show draws one register snapshot. env is the decoded sample; it is nil
// when the registers did not hold one.
func (d *Dev) Show(data, status uint32, env *physic.Env) error {
	d.buf.Reset()
	if !d.scroll {
		_, _ = d.buf.WriteString("\r")
	}
	_, _ = d.buf.WriteString("\033[0m")
	for _, b := range bits {
		c := Off
		if status&b.mask != 0 {
			c = b.on
		}
		_, _ = io.WriteString(&d.buf, d.palette.Block(c))
	}
	_, _ = fmt.Fprintf(&d.buf, "\033[0m DATA=%08x STATUS=%03b", data, status)
	if env != nil {
		_, _ = fmt.Fprintf(&d.buf, " %8s %9s", env.Temperature, env.Humidity)
	}
	if d.scroll {
		_, _ = d.buf.WriteString("\n")
	} else {
		// Erase what a longer previous line left behind.
		_, _ = d.buf.WriteString("\033[K")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ fmt.Stringer = &Dev{}
