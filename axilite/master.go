// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package axilite

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned when a slave does not complete a handshake within
// Master.MaxWait steps.
var ErrTimeout = errors.New("axilite: handshake timeout")

// DefaultMaxWait is the MaxWait of a new Master.
const DefaultMaxWait = 64

// Master is a requester issuing one transaction at a time.
//
// Each call clocks the Port as many steps as the transaction takes, so time
// on the slave only advances through the Master. It must be the only code
// stepping the Port. Master is not safe for concurrent use.
type Master struct {
	// MaxWait bounds the number of steps spent waiting for any single
	// handshake.
	MaxWait int

	p     Port
	out   Outputs
	steps int64
}

// NewMaster returns a Master driving p. It clocks p once with idle inputs to
// observe the outputs p presents.
func NewMaster(p Port) *Master {
	m := &Master{MaxWait: DefaultMaxWait, p: p}
	m.step(Inputs{})
	return m
}

// Read reads the 32-bit word at addr. The error is only set when the
// transaction did not complete; a completed transaction always carries a
// response code.
func (m *Master) Read(addr uint32) (uint32, Resp, error) {
	if _, err := m.handshake(Inputs{ARValid: true, ARAddr: addr}, func(o *Outputs) bool { return o.ARReady }); err != nil {
		return 0, 0, fmt.Errorf("axilite: read address %#x: %w", addr, err)
	}
	o, err := m.handshake(Inputs{RReady: true}, func(o *Outputs) bool { return o.RValid })
	if err != nil {
		return 0, 0, fmt.Errorf("axilite: read data %#x: %w", addr, err)
	}
	return o.RData, o.RResp, nil
}

// Write writes data at addr with all byte lanes enabled.
func (m *Master) Write(addr, data uint32) (Resp, error) {
	in := Inputs{AWValid: true, AWAddr: addr, WValid: true, WData: data, WStrb: 0xf}
	if _, err := m.handshake(in, func(o *Outputs) bool { return o.AWReady && o.WReady }); err != nil {
		return 0, fmt.Errorf("axilite: write address %#x: %w", addr, err)
	}
	o, err := m.handshake(Inputs{BReady: true}, func(o *Outputs) bool { return o.BValid })
	if err != nil {
		return 0, fmt.Errorf("axilite: write response %#x: %w", addr, err)
	}
	return o.BResp, nil
}

// Idle clocks the Port n steps without requesting anything.
func (m *Master) Idle(n int64) {
	for ; n > 0; n-- {
		m.step(Inputs{})
	}
}

// Reset holds the Port in reset for n steps, then releases it.
func (m *Master) Reset(n int64) {
	for ; n > 0; n-- {
		m.step(Inputs{Reset: true})
	}
}

// Steps returns the number of steps the Master clocked the Port.
func (m *Master) Steps() int64 {
	return m.steps
}

// Outputs returns what the Port presented after the last step.
func (m *Master) Outputs() Outputs {
	return m.out
}

// handshake presents in until ready holds for the outputs seen before a step,
// and returns those outputs.
func (m *Master) handshake(in Inputs, ready func(*Outputs) bool) (Outputs, error) {
	for n := 0; n <= m.MaxWait; n++ {
		seen := m.out
		m.step(in)
		if ready(&seen) {
			return seen, nil
		}
	}
	return Outputs{}, ErrTimeout
}

func (m *Master) step(in Inputs) {
	m.out = m.p.Step(in)
	m.steps++
}
