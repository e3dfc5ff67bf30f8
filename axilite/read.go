// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package axilite

// ReadFSM is the read channel of a register slave.
//
// In Idle it accepts a read address, latches it and samples the selected
// register. The sampled value and response are held in Responding until the
// requester accepts them, whatever happens to the register meanwhile. The zero
// value is Idle.
type ReadFSM struct {
	state State
	addr  uint32
	data  uint32
	resp  Resp
}

// Reset returns the channel to Idle and clears the held response.
func (r *ReadFSM) Reset() {
	*r = ReadFSM{}
}

// Step advances the channel by one clock step. t must reflect register
// values as of the previous step.
func (r *ReadFSM) Step(t Target, in Inputs) {
	switch r.state {
	case Idle:
		if !in.ARValid {
			return
		}
		r.addr = in.ARAddr
		if reg, ok := t.Decode(r.addr); ok {
			r.data = t.Load(reg)
			r.resp = OKAY
		} else {
			r.data = 0
			r.resp = DECERR
		}
		r.state = Responding
	case Responding:
		if in.RReady {
			r.state = Idle
		}
	}
}

// Drive sets the read channel signals of out.
func (r *ReadFSM) Drive(out *Outputs) {
	out.ARReady = r.state == Idle
	out.RValid = r.state == Responding
	out.RData = r.data
	out.RResp = r.resp
}

// State returns the phase of the channel.
func (r *ReadFSM) State() State {
	return r.state
}

// Addr returns the address latched by the last accepted read.
func (r *ReadFSM) Addr() uint32 {
	return r.addr
}
