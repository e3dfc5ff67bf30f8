// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtaxi

import (
	"fmt"

	"github.com/GermanBionicSystems/dhtregs/axilite"
	"github.com/GermanBionicSystems/dhtregs/dht"
	"github.com/GermanBionicSystems/dhtregs/interval"
	"periph.io/x/conn/v3/physic"
)

// Engine is the sensor protocol engine the controller drives. dht.Engine and
// the dhtsim types implement it.
type Engine interface {
	// Step advances the engine by one clock step. start is a one-step start
	// request.
	Step(start bool)
	// Busy reports whether a measurement is in progress.
	Busy() bool
	// Result returns the last frame and whether the last measurement broke
	// the protocol.
	Result() (dht.Frame, bool)
}

// Validator reports whether checksum does not match payload.
type Validator func(payload uint32, checksum byte) bool

// Opts holds the configuration of the controller.
type Opts struct {
	// Clock is the reference clock; each Step is one period of it. The
	// sampling tick is derived from it. Default is 1MHz.
	Clock physic.Frequency
	// Checksum validates captured frames. Default is dht.ChecksumError.
	Checksum Validator
	// Ticks replaces the tick generator derived from Clock. Tests use it to
	// tick at will.
	Ticks interval.Source
}

// DefaultOpts holds the default configuration.
var DefaultOpts = Opts{
	Clock:    physic.MegaHertz,
	Checksum: dht.ChecksumError,
}

// Dev is the controller. It implements axilite.Port.
//
// Every Step computes the next state of each part from the state left by the
// previous step, so the bus channels never observe a capture made in the same
// step.
type Dev struct {
	engine Engine
	ticks  interval.Source
	check  Validator

	regs registers
	ctl  sampler
	rd   axilite.ReadFSM
	wr   axilite.WriteFSM

	steps   int64
	ticked  bool
	started bool
}

// New returns a controller driving e, as it is right after reset release.
// The Opts can be nil.
func New(e Engine, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{engine: e, ticks: opts.Ticks, check: opts.Checksum}
	if d.check == nil {
		d.check = dht.ChecksumError
	}
	if d.ticks == nil {
		clock := opts.Clock
		if clock == 0 {
			clock = DefaultOpts.Clock
		}
		g, err := interval.New(clock)
		if err != nil {
			return nil, fmt.Errorf("dhtaxi: %w", err)
		}
		d.ticks = g
	}
	d.regs.reset()
	d.ctl.reset()
	return d, nil
}

// Step implements axilite.Port.
func (d *Dev) Step(in axilite.Inputs) axilite.Outputs {
	d.steps++
	tick := d.ticks.Step(in.Reset)
	if in.Reset {
		d.regs.reset()
		d.ctl.reset()
		d.rd.Reset()
		d.wr.Reset()
		d.ticked = false
		d.started = false
		d.engine.Step(false)
		return d.outputs()
	}

	// Engine outputs as left by the previous step.
	busy := d.engine.Busy()
	frame, protocolErr := d.engine.Result()

	// The bus sees the registers before this step's capture.
	d.rd.Step(&d.regs, in)
	d.wr.Step(decoder{}, in)

	d.started = d.ctl.step(tick, &d.regs, frame, protocolErr, d.check)
	d.ticked = tick
	d.regs.busy = busy
	d.engine.Step(d.started)
	return d.outputs()
}

func (d *Dev) outputs() axilite.Outputs {
	var out axilite.Outputs
	d.rd.Drive(&out)
	d.wr.Drive(&out)
	return out
}

// Data returns the DATA register.
func (d *Dev) Data() uint32 {
	return d.regs.data
}

// Status returns the STATUS register.
func (d *Dev) Status() uint32 {
	return d.regs.status()
}

// Phase returns the state of the sampling controller.
func (d *Dev) Phase() Phase {
	return d.ctl.phase
}

// Started reports whether the last step issued a start request.
func (d *Dev) Started() bool {
	return d.started
}

// Ticked reports whether the last step carried a sampling tick.
func (d *Dev) Ticked() bool {
	return d.ticked
}

// Steps returns the number of steps taken.
func (d *Dev) Steps() int64 {
	return d.steps
}

func (d *Dev) String() string {
	return fmt.Sprintf("dhtaxi{%s, DATA=%#08x STATUS=%#x}", d.ctl.phase, d.regs.data, d.regs.status())
}

var _ axilite.Port = &Dev{}
