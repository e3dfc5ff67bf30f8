// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtaxi

import (
	"github.com/GermanBionicSystems/dhtregs/dht"
)

// Phase is the state of the sampling controller.
type Phase uint8

const (
	// Armed waits for the first tick after reset release.
	Armed Phase = iota
	// Measuring captures and restarts the engine on every tick.
	Measuring
)

func (p Phase) String() string {
	switch p {
	case Armed:
		return "Armed"
	case Measuring:
		return "Measuring"
	default:
		return "unknown"
	}
}

// sampler sequences engine start requests and captures.
type sampler struct {
	phase Phase
}

func (s *sampler) reset() {
	s.phase = Armed
}

// step handles one clock step. On a tick in Measuring it captures the engine
// result into r before requesting the next measurement. It returns whether a
// start request is issued.
func (s *sampler) step(tick bool, r *registers, f dht.Frame, protocolErr bool, check Validator) bool {
	if !tick {
		return false
	}
	switch s.phase {
	case Armed:
		s.phase = Measuring
	case Measuring:
		r.capture(f, protocolErr, check(f.Payload(), f.Checksum()))
	}
	return true
}
