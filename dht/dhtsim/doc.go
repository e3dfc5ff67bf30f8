// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dhtsim provides simulated DHT sensors.
//
// Line is a sensor on a single open-drain data line; it answers the wake
// pulse of a dht.Engine with the waveform from the datasheet. Scripted skips
// the wire entirely and publishes canned results after a fixed latency, which
// is what register-level tests want.
package dhtsim
