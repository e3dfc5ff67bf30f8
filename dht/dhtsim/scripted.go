// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtsim

import (
	"github.com/GermanBionicSystems/dhtregs/dht"
)

// Result is the outcome of one scripted measurement.
type Result struct {
	Frame         dht.Frame
	ProtocolError bool
}

// Scripted is a deterministic sensor engine. A start request while idle keeps
// it busy for Latency steps, after which the next entry of Results is
// published. Once Results is exhausted its last entry repeats.
type Scripted struct {
	Latency int
	Results []Result
	// Starts records the step numbers, counted from 1, on which a start
	// request was presented, including ignored ones.
	Starts []int64

	steps     int64
	remaining int
	next      int
	cur       Result
}

// Step implements the engine contract of a register controller.
func (s *Scripted) Step(start bool) {
	s.steps++
	if start {
		s.Starts = append(s.Starts, s.steps)
		if s.remaining == 0 {
			s.remaining = s.Latency + 1
		}
	}
	if s.remaining > 0 {
		s.remaining--
		if s.remaining == 0 {
			s.publish()
		}
	}
}

func (s *Scripted) publish() {
	if len(s.Results) == 0 {
		return
	}
	i := s.next
	if i >= len(s.Results) {
		i = len(s.Results) - 1
	}
	s.cur = s.Results[i]
	s.next++
}

// Busy reports whether a scripted measurement is pending.
func (s *Scripted) Busy() bool {
	return s.remaining > 0
}

// Result returns the last published result.
func (s *Scripted) Result() (dht.Frame, bool) {
	return s.cur.Frame, s.cur.ProtocolError
}

// Steps returns the number of steps taken.
func (s *Scripted) Steps() int64 {
	return s.steps
}
