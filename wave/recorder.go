// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package wave

import (
	"errors"
	"fmt"
	"sort"
)

// run is a stretch of steps at one level, starting at start.
type run struct {
	start int64
	level bool
}

// Recorder is a run-length encoded trace of named signals.
type Recorder struct {
	names []string
	runs  [][]run
	steps int64
}

// NewRecorder returns an empty trace of the given signals.
func NewRecorder(names ...string) *Recorder {
	return &Recorder{names: names, runs: make([][]run, len(names))}
}

// Record appends one step. levels must hold one level per signal, in the
// order given to NewRecorder.
func (r *Recorder) Record(levels ...bool) error {
	if len(levels) != len(r.names) {
		return fmt.Errorf("wave: got %d levels for %d signals", len(levels), len(r.names))
	}
	for i, l := range levels {
		runs := r.runs[i]
		if len(runs) == 0 || runs[len(runs)-1].level != l {
			r.runs[i] = append(runs, run{start: r.steps, level: l})
		}
	}
	r.steps++
	return nil
}

// Names returns the signal names.
func (r *Recorder) Names() []string {
	return r.names
}

// Steps returns the number of steps recorded.
func (r *Recorder) Steps() int64 {
	return r.steps
}

// Level returns the level of signal sig at step. Steps are counted from 0.
func (r *Recorder) Level(sig int, step int64) (bool, error) {
	if sig < 0 || sig >= len(r.names) {
		return false, fmt.Errorf("wave: no signal %d", sig)
	}
	if step < 0 || step >= r.steps {
		return false, errors.New("wave: step not recorded")
	}
	runs := r.runs[sig]
	i := sort.Search(len(runs), func(i int) bool { return runs[i].start > step })
	return runs[i-1].level, nil
}

// Edges returns the steps on which signal sig changes level.
func (r *Recorder) Edges(sig int) []int64 {
	if sig < 0 || sig >= len(r.names) || len(r.runs[sig]) < 2 {
		return nil
	}
	out := make([]int64, 0, len(r.runs[sig])-1)
	for _, x := range r.runs[sig][1:] {
		out = append(out, x.start)
	}
	return out
}

// segments returns the runs of sig clipped to [from, to).
func (r *Recorder) segments(sig int, from, to int64) []run {
	runs := r.runs[sig]
	i := sort.Search(len(runs), func(i int) bool { return runs[i].start > from })
	var out []run
	for i--; i < len(runs) && runs[i].start < to; i++ {
		s := runs[i]
		if s.start < from {
			s.start = from
		}
		out = append(out, s)
	}
	return out
}
