// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dht implements the single-wire protocol spoken by AOSONG DHT11 and
// DHT22 (AM2302) humidity/temperature sensors.
//
// The Engine is clocked: it does not sleep or wait for edges but advances one
// step of a reference clock per call to Step, sampling the data line each
// time. This makes it usable as the sensor-facing half of a register
// controller that is itself stepped.
//
// Every measurement yields a 40-bit Frame: 16 bits of humidity, 16 bits of
// temperature and an 8-bit additive checksum, most significant bit first.
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/Digital+humidity+and+temperature+sensor+AM2302.pdf
package dht
