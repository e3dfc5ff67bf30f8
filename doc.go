// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package dhtregs is a container for a register controller exposing a DHT
// humidity and temperature sensor on an AXI-lite bus, and the simulation
// pieces around it.
//
// See dhtaxi for the controller and cmd/dhtsim for a runnable simulation.
package dhtregs
