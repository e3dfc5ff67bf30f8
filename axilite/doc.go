// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package axilite models the slave side of a lightweight, single-beat
// register bus with independent read and write channels, plus a requester
// that drives it.
//
// Time is discrete. A Port is advanced one clock step at a time with the
// Inputs the requester presents during that step, and returns the Outputs it
// presents until the next step. A handshake completes on a step where the
// requester's valid is high and the ready the slave presented beforehand was
// high.
//
// ReadFSM and WriteFSM hold no registers of their own: they consult a Target
// (or, for writes, only a Decoder) that the embedding device supplies. The
// write channel never gets a handle on the register values, so a read-only
// device built on it cannot be modified over the bus.
package axilite
