// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtaxi

import (
	"errors"
	"fmt"

	"github.com/GermanBionicSystems/dhtregs/axilite"
)

var (
	// ErrReadOnly is a write to a mapped register (SLVERR).
	ErrReadOnly = errors.New("dhtaxi: register is read-only")
	// ErrDecode is an access to an address no register decodes (DECERR).
	ErrDecode = errors.New("dhtaxi: no register at address")
	// ErrNoSample is returned while DATA still holds its reset value.
	ErrNoSample = errors.New("dhtaxi: no sample captured yet")
)

// BusError is a transaction that completed with a response other than OKAY.
type BusError struct {
	Op   string
	Addr uint32
	Resp axilite.Resp
}

func (e *BusError) Error() string {
	return fmt.Sprintf("dhtaxi: %s %#x: %s", e.Op, e.Addr, e.Resp)
}

// Unwrap maps the response onto ErrReadOnly or ErrDecode.
func (e *BusError) Unwrap() error {
	switch e.Resp {
	case axilite.SLVERR:
		return ErrReadOnly
	case axilite.DECERR:
		return ErrDecode
	default:
		return nil
	}
}

// ProtocolError is reported when STATUS flags a failed exchange with the
// sensor. DATA is not trustworthy.
type ProtocolError struct{}

func (e *ProtocolError) Error() string {
	return "dhtaxi: sensor protocol error"
}

// ChecksumError is reported when STATUS flags a frame whose checksum did not
// match. DATA is not trustworthy.
type ChecksumError struct {
	Data uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("dhtaxi: checksum mismatch on %#08x", e.Data)
}
