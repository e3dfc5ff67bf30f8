// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package axilite

// WriteFSM is the write channel of a read-only register slave.
//
// In Idle the address and data channels are accepted independently, in the
// same step or either one first. The address is latched on its handshake and
// the channel stops accepting it until the response; likewise for the data.
// Once both have arrived it answers SLVERR if a register decodes at the
// address or DECERR otherwise. The data is discarded. The zero value is Idle.
type WriteFSM struct {
	state State
	addr  uint32
	resp  Resp

	// Handshakes completed in Idle.
	awDone bool
	wDone  bool
}

// Reset returns the channel to Idle and clears the held response.
func (w *WriteFSM) Reset() {
	*w = WriteFSM{}
}

// Step advances the channel by one clock step.
func (w *WriteFSM) Step(d Decoder, in Inputs) {
	switch w.state {
	case Idle:
		if in.AWValid && !w.awDone {
			w.addr = in.AWAddr
			w.awDone = true
		}
		if in.WValid && !w.wDone {
			w.wDone = true
		}
		if !w.awDone || !w.wDone {
			return
		}
		w.awDone, w.wDone = false, false
		if _, ok := d.Decode(w.addr); ok {
			w.resp = SLVERR
		} else {
			w.resp = DECERR
		}
		w.state = Responding
	case Responding:
		if in.BReady {
			w.state = Idle
		}
	}
}

// Drive sets the write channel signals of out.
func (w *WriteFSM) Drive(out *Outputs) {
	out.AWReady = w.state == Idle && !w.awDone
	out.WReady = w.state == Idle && !w.wDone
	out.BValid = w.state == Responding
	out.BResp = w.resp
}

// State returns the phase of the channel.
func (w *WriteFSM) State() State {
	return w.state
}

// Addr returns the address latched by the last write address handshake.
func (w *WriteFSM) Addr() uint32 {
	return w.addr
}
