// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtsim

import (
	"github.com/GermanBionicSystems/dhtregs/dht"
	"periph.io/x/conn/v3/physic"
)

// Wired is a dht.Engine connected to a simulated sensor. Both advance on
// every Step.
type Wired struct {
	*dht.Engine
	Line *Line
}

// NewWired returns an engine talking to a simulated sensor that answers with
// f. The Opts can be nil.
func NewWired(clock physic.Frequency, f dht.Frame, opts *dht.Opts) (*Wired, error) {
	model := dht.DefaultOpts.Model
	if opts != nil {
		model = opts.Model
	}
	l := NewLine(clock, model, f)
	e, err := dht.New(l, clock, opts)
	if err != nil {
		return nil, err
	}
	return &Wired{Engine: e, Line: l}, nil
}

// Step advances the sensor, then the engine.
func (w *Wired) Step(start bool) {
	w.Line.Step()
	w.Engine.Step(start)
}
