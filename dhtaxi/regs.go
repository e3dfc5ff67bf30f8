// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtaxi

import (
	"github.com/GermanBionicSystems/dhtregs/dht"
)

// Register addresses.
const (
	DataAddr   uint32 = 0x0
	StatusAddr uint32 = 0x4
)

// Reset values.
const (
	DataReset   uint32 = 0xFFFFFFFF
	StatusReset uint32 = 0x00000000
)

// STATUS bits.
const (
	StatusChecksumError uint32 = 1 << 0
	StatusBusy          uint32 = 1 << 1
	StatusProtocolError uint32 = 1 << 2
)

// Region is what an address decodes to.
type Region int

const (
	Data Region = iota
	Status
	Unmapped
)

func (r Region) String() string {
	switch r {
	case Data:
		return "DATA"
	case Status:
		return "STATUS"
	default:
		return "UNMAPPED"
	}
}

// Decode classifies a bus address.
func Decode(addr uint32) Region {
	switch {
	case addr >= 8:
		return Unmapped
	case addr >= 4:
		return Status
	default:
		return Data
	}
}

// decoder is what the write channel sees of the register file: addresses,
// no values.
type decoder struct{}

func (decoder) Decode(addr uint32) (int, bool) {
	r := Decode(addr)
	return int(r), r != Unmapped
}

// registers is the register file. STATUS is not stored as a word: the busy
// bit is a live copy of the engine refreshed every step, the error bits are
// latched at capture, and the word is assembled when read.
type registers struct {
	data        uint32
	protocolErr bool
	checksumErr bool
	busy        bool
}

func (r *registers) reset() {
	*r = registers{data: DataReset}
}

// capture latches a sensor result.
func (r *registers) capture(f dht.Frame, protocolErr, checksumErr bool) {
	r.data = f.Payload()
	r.protocolErr = protocolErr
	r.checksumErr = checksumErr
}

func (r *registers) status() uint32 {
	var s uint32
	if r.protocolErr {
		s |= StatusProtocolError
	}
	if r.busy {
		s |= StatusBusy
	}
	if r.checksumErr {
		s |= StatusChecksumError
	}
	return s
}

// Decode implements axilite.Decoder.
func (r *registers) Decode(addr uint32) (int, bool) {
	return decoder{}.Decode(addr)
}

// Load implements axilite.Target.
func (r *registers) Load(reg int) uint32 {
	switch Region(reg) {
	case Data:
		return r.data
	case Status:
		return r.status()
	default:
		return 0
	}
}
