// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dhtaxi implements a bus-mapped controller for a DHT humidity and
// temperature sensor, and a driver that reads it.
//
// The controller (Dev) samples the sensor engine once per second on its own
// and latches the result into two read-only 32-bit registers:
//
//	0x0-0x3  DATA    [31:16] humidity, [15:0] temperature  (reset 0xFFFFFFFF)
//	0x4-0x7  STATUS  bit 2 protocol error, bit 1 busy,
//	                 bit 0 checksum error                  (reset 0x00000000)
//
// Reads of either register answer OKAY. Writes answer SLVERR and change
// nothing. Any access at 0x8 or above answers DECERR.
//
// After reset release the controller waits one tick, starts a measurement,
// and from the second tick on captures the previous measurement and starts
// the next one on every tick. Busy follows the engine on every clock step;
// the error bits only change on capture. A capture happens on every tick
// whether or not the engine produced new data, so a change of DATA only
// means a capture took place.
//
// Sensor is the software side: it implements physic.SenseEnv by reading
// DATA and STATUS through an axilite.Master.
package dhtaxi
