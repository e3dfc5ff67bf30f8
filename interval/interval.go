// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package interval derives a fixed sampling tick from a reference clock.
//
// Everything in this repository advances in discrete clock steps. A Generator
// counts steps of the reference clock and marks one step per Period as a
// tick.
package interval

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"time"

	"periph.io/x/conn/v3/physic"
)

// Period is the time between two ticks of a Generator.
const Period = time.Second

// Source produces sampling ticks.
type Source interface {
	// Step advances the source by one clock step and reports whether this
	// step carries a tick. While reset is true the source holds its initial
	// state and never ticks.
	Step(reset bool) bool
}

// Steps returns the number of whole clock steps in d at the given clock.
// It returns 0 for a negative clock or duration.
func Steps(clock physic.Frequency, d time.Duration) int64 {
	if clock <= 0 || d <= 0 {
		return 0
	}
	// clock is in µHz and d in ns, so the product is in units of 1e-15 steps.
	const unit = uint64(physic.Hertz) * uint64(time.Second)
	hi, lo := bits.Mul64(uint64(clock), uint64(d))
	if hi >= unit {
		return math.MaxInt64
	}
	q, _ := bits.Div64(hi, lo, unit)
	if q > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(q)
}

// Generator is a free-running divider of the reference clock.
type Generator struct {
	clock  physic.Frequency
	period int64
	count  int64
}

// New returns a Generator that ticks once per Period of clock. The clock must
// be a whole number of hertz so that Period is a whole number of steps.
func New(clock physic.Frequency) (*Generator, error) {
	if clock < physic.Hertz {
		return nil, errors.New("interval: clock must be at least 1Hz")
	}
	if clock%physic.Hertz != 0 {
		return nil, fmt.Errorf("interval: clock %s is not a whole number of hertz", clock)
	}
	return &Generator{clock: clock, period: Steps(clock, Period)}, nil
}

// Step implements Source.
//
// The first tick after reset release lands on the Period'th step.
func (g *Generator) Step(reset bool) bool {
	if reset {
		g.count = 0
		return false
	}
	g.count++
	if g.count < g.period {
		return false
	}
	g.count = 0
	return true
}

// StepsPerTick returns the number of clock steps between two ticks.
func (g *Generator) StepsPerTick() int64 {
	return g.period
}

func (g *Generator) String() string {
	return fmt.Sprintf("interval{%s, %d steps}", g.clock, g.period)
}

// Manual is a Source that only ticks when told to.
//
// A tick requested with Fire is delivered on the next Step. Reset discards a
// pending tick.
type Manual struct {
	pending bool
}

// Fire requests a tick on the next step.
func (m *Manual) Fire() {
	m.pending = true
}

// Step implements Source.
func (m *Manual) Step(reset bool) bool {
	t := m.pending && !reset
	m.pending = false
	return t
}

var _ Source = &Generator{}
var _ Source = &Manual{}
var _ fmt.Stringer = &Generator{}
