// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package wave records one-bit signals step by step and renders them as a
// timing diagram.
//
// A Recorder keeps only the steps where a level changes, so recording a
// simulation of several seconds at 1MHz stays cheap. Render draws any window
// of it with one row per signal.
package wave
