// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht

import (
	"errors"
	"fmt"
	"time"

	"github.com/GermanBionicSystems/dhtregs/interval"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Opts holds the timing of the exchange.
type Opts struct {
	// Model selects the sensor family. It determines the default StartLow.
	Model Model
	// StartLow is how long the host holds the line low to wake the sensor.
	// Leave 0 to use the model's minimum wake pulse plus 10%.
	StartLow time.Duration
	// Timeout bounds every wait for a line transition. The longest legitimate
	// level lasts 80µs. Default is 200µs.
	Timeout time.Duration
	// BitThreshold separates the high pulse of a 0 bit (26-28µs) from the one
	// of a 1 bit (70µs). Default is 48µs.
	BitThreshold time.Duration
}

// DefaultOpts holds the default configuration for a DHT22.
var DefaultOpts = Opts{
	Model:        DHT22,
	StartLow:     1100 * time.Microsecond,
	Timeout:      200 * time.Microsecond,
	BitThreshold: 48 * time.Microsecond,
}

// state is a phase of a single exchange on the line.
type state uint8

const (
	idle     state = iota
	hostLow        // host drives the wake pulse
	awaitAck       // line released, waiting for the sensor to pull low
	ackLow         // sensor acknowledge, low half
	ackHigh        // sensor acknowledge, high half
	bitLow         // preamble of a data bit
	bitHigh        // data bit, width carries the value
)

func (s state) String() string {
	switch s {
	case idle:
		return "idle"
	case hostLow:
		return "hostLow"
	case awaitAck:
		return "awaitAck"
	case ackLow:
		return "ackLow"
	case ackHigh:
		return "ackHigh"
	case bitLow:
		return "bitLow"
	case bitHigh:
		return "bitHigh"
	default:
		return "unknown"
	}
}

// Engine runs measurements on a single data line, one clock step at a time.
//
// A start request while idle begins a measurement; Busy stays true until the
// 40th bit has been received or the exchange failed. Result then holds the
// frame and whether the exchange broke the protocol. A failed exchange keeps
// the previous frame.
type Engine struct {
	p     gpio.PinIO
	model Model

	// In clock steps.
	startLow  int64
	timeout   int64
	threshold int64

	state state
	count int64
	bits  int
	shift uint64

	frame Frame
	perr  bool
	err   error
}

// New returns an Engine sampling p once per step of clock. The clock must be
// fast enough to resolve the bit encoding; at least 100kHz is required. The
// Opts can be nil.
func New(p gpio.PinIO, clock physic.Frequency, opts *Opts) (*Engine, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.StartLow <= 0 {
		o.StartLow = o.Model.wakeLow() + o.Model.wakeLow()/10
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultOpts.Timeout
	}
	if o.BitThreshold <= 0 {
		o.BitThreshold = DefaultOpts.BitThreshold
	}
	if clock < 100*physic.KiloHertz {
		return nil, fmt.Errorf("dht: clock %s too slow to resolve bits", clock)
	}
	if o.StartLow < o.Model.wakeLow() {
		return nil, fmt.Errorf("dht: %s needs a start pulse of at least %s", o.Model, o.Model.wakeLow())
	}
	if o.BitThreshold >= o.Timeout {
		return nil, errors.New("dht: bit threshold must be shorter than the timeout")
	}
	e := &Engine{
		p:         p,
		model:     o.Model,
		startLow:  interval.Steps(clock, o.StartLow),
		timeout:   interval.Steps(clock, o.Timeout),
		threshold: interval.Steps(clock, o.BitThreshold),
	}
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("dht: failed to release %s: %w", p, err)
	}
	return e, nil
}

// Step advances the engine by one clock step. start requests a measurement;
// it is ignored while one is in progress.
func (e *Engine) Step(start bool) {
	switch e.state {
	case idle:
		if !start {
			return
		}
		if err := e.p.Out(gpio.Low); err != nil {
			e.fail(err)
			return
		}
		e.enter(hostLow)
	case hostLow:
		e.count++
		if e.count < e.startLow {
			return
		}
		if err := e.p.In(gpio.PullUp, gpio.NoEdge); err != nil {
			e.fail(err)
			return
		}
		e.enter(awaitAck)
	case awaitAck:
		e.await(gpio.Low, ackLow)
	case ackLow:
		e.await(gpio.High, ackHigh)
	case ackHigh:
		if e.await(gpio.Low, bitLow) {
			e.bits = 0
			e.shift = 0
		}
	case bitLow:
		if e.await(gpio.High, bitHigh) {
			// The step that saw the rising edge counts toward the width.
			e.count = 1
		}
	case bitHigh:
		width := e.count
		if !e.await(gpio.Low, bitLow) {
			return
		}
		e.shift <<= 1
		if width > e.threshold {
			e.shift |= 1
		}
		e.bits++
		if e.bits == FrameBits {
			e.frame = Frame(e.shift)
			e.perr = false
			e.err = nil
			e.state = idle
		}
	}
}

// await samples the line; on level it moves to next and returns true. It
// fails the exchange when the wait exceeds the timeout.
func (e *Engine) await(level gpio.Level, next state) bool {
	if e.p.Read() == level {
		e.enter(next)
		return true
	}
	e.count++
	if e.count > e.timeout {
		e.fail(fmt.Errorf("dht: timeout in %s after %d bits", e.state, e.bits))
	}
	return false
}

func (e *Engine) enter(s state) {
	e.state = s
	e.count = 0
}

func (e *Engine) fail(err error) {
	e.perr = true
	e.err = err
	e.state = idle
	e.count = 0
	// Hand the line back to the pull-up; nothing more can be done on failure.
	_ = e.p.In(gpio.PullUp, gpio.NoEdge)
}

// Busy reports whether a measurement is in progress.
func (e *Engine) Busy() bool {
	return e.state != idle
}

// Result returns the last received frame and whether the last exchange
// failed.
func (e *Engine) Result() (Frame, bool) {
	return e.frame, e.perr
}

// Err returns the cause of the last protocol error, or nil.
func (e *Engine) Err() error {
	return e.err
}

// Model returns the sensor family the engine was configured for.
func (e *Engine) Model() Model {
	return e.model
}

// Halt implements conn.Resource. It abandons any exchange in progress and
// releases the line.
func (e *Engine) Halt() error {
	e.state = idle
	e.count = 0
	return e.p.In(gpio.PullUp, gpio.NoEdge)
}

func (e *Engine) String() string {
	return fmt.Sprintf("%s{%s}", e.model, e.p)
}

var _ conn.Resource = &Engine{}
