// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package axilite

import "strconv"

// Resp is the response code that completes every transaction.
type Resp uint8

const (
	// OKAY is a successful access.
	OKAY Resp = 0
	// EXOKAY is an exclusive access success. Register slaves never return it.
	EXOKAY Resp = 1
	// SLVERR is an access to a valid target that the target refused.
	SLVERR Resp = 2
	// DECERR is an access to an address no target decodes.
	DECERR Resp = 3
)

func (r Resp) String() string {
	switch r {
	case OKAY:
		return "OKAY"
	case EXOKAY:
		return "EXOKAY"
	case SLVERR:
		return "SLVERR"
	case DECERR:
		return "DECERR"
	default:
		return "Resp(" + strconv.Itoa(int(r)) + ")"
	}
}

// Inputs are the signals a requester drives for one clock step.
type Inputs struct {
	// Reset holds the slave in its reset state. It is the inverse of the
	// active-low bus reset.
	Reset bool

	AWValid bool
	AWAddr  uint32
	WValid  bool
	WData   uint32
	WStrb   uint8
	BReady  bool

	ARValid bool
	ARAddr  uint32
	RReady  bool
}

// Outputs are the signals a slave drives between two clock steps.
type Outputs struct {
	AWReady bool
	WReady  bool
	BValid  bool
	BResp   Resp

	ARReady bool
	RValid  bool
	RData   uint32
	RResp   Resp
}

// Port is a clocked bus slave.
type Port interface {
	// Step advances the slave by one clock step with in presented, and
	// returns the outputs it drives afterwards.
	Step(in Inputs) Outputs
}

// Decoder maps bus addresses onto the registers of a slave.
type Decoder interface {
	// Decode returns the register addr selects, or false if addr is
	// unmapped.
	Decode(addr uint32) (reg int, ok bool)
}

// Target is a register file readable over the bus.
type Target interface {
	Decoder
	// Load returns the current value of a register returned by Decode.
	Load(reg int) uint32
}

// State is the phase of a read or write channel.
type State uint8

const (
	// Idle waits for an address handshake.
	Idle State = iota
	// Responding holds a response until the requester accepts it.
	Responding
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Responding:
		return "Responding"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}
