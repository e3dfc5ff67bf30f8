// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht

import (
	"fmt"

	"github.com/GermanBionicSystems/dhtregs/common"
)

// FrameBits is the number of bits a sensor sends per measurement.
const FrameBits = 40

// Frame is a raw 40-bit measurement: humidity in bits [39:24], temperature in
// bits [23:8] and the checksum in bits [7:0].
type Frame uint64

// NewFrame returns a Frame carrying humidity and temperature with a correct
// checksum.
func NewFrame(humidity, temperature uint16) Frame {
	payload := uint32(humidity)<<16 | uint32(temperature)
	return Frame(uint64(payload)<<8 | uint64(checksum(payload)))
}

// Humidity returns the raw humidity word.
func (f Frame) Humidity() uint16 {
	return uint16(f >> 24)
}

// Temperature returns the raw temperature word.
func (f Frame) Temperature() uint16 {
	return uint16(f >> 8)
}

// Payload returns humidity and temperature as they are laid out in a 32-bit
// register.
func (f Frame) Payload() uint32 {
	return uint32(f >> 8)
}

// Checksum returns the checksum byte sent by the sensor.
func (f Frame) Checksum() byte {
	return byte(f)
}

// ChecksumError reports whether the frame's checksum byte does not match its
// payload.
func (f Frame) ChecksumError() bool {
	return ChecksumError(f.Payload(), f.Checksum())
}

func (f Frame) String() string {
	return fmt.Sprintf("%04x:%04x:%02x", f.Humidity(), f.Temperature(), f.Checksum())
}

// ChecksumError is the checksum validator: it reports whether sum is not the
// low byte of the sum of the four payload bytes.
func ChecksumError(payload uint32, sum byte) bool {
	return checksum(payload) != sum
}

func checksum(payload uint32) byte {
	return common.Sum8([]byte{byte(payload >> 24), byte(payload >> 16), byte(payload >> 8), byte(payload)})
}
