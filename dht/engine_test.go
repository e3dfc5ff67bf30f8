// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht_test

import (
	"errors"
	"testing"
	"time"

	"github.com/GermanBionicSystems/dhtregs/dht"
	"github.com/GermanBionicSystems/dhtregs/dht/dhtsim"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
)

const clock = physic.MegaHertz

// run steps w until the engine goes idle, starting a measurement on the first
// step. It returns the number of steps taken.
func run(t *testing.T, w *dhtsim.Wired) int {
	t.Helper()
	w.Step(true)
	n := 1
	for w.Busy() {
		w.Step(false)
		n++
		if n > 100_000 {
			t.Fatal("engine never finished")
		}
	}
	return n
}

func TestEngine(t *testing.T) {
	for _, test := range []struct {
		name  string
		frame dht.Frame
		opts  *dht.Opts
	}{
		{"dht22", dht.NewFrame(0x028c, 0x015f), nil},
		{"dht22 negative", dht.NewFrame(0x0292, 0x8065), nil},
		{"all ones", dht.Frame(1<<dht.FrameBits - 1), nil},
		{"all zeros", 0, nil},
		{"dht11", dht.NewFrame(0x2d00, 0x1703), &dht.Opts{Model: dht.DHT11}},
	} {
		t.Run(test.name, func(t *testing.T) {
			w, err := dhtsim.NewWired(clock, test.frame, test.opts)
			if err != nil {
				t.Fatal(err)
			}
			if w.Busy() {
				t.Fatal("busy before start")
			}
			run(t, w)
			f, perr := w.Result()
			if perr {
				t.Fatalf("protocol error: %v", w.Err())
			}
			if f != test.frame {
				t.Fatalf("frame %s, want %s", f, test.frame)
			}
			if w.Line.Replies != 1 {
				t.Fatalf("%d replies", w.Line.Replies)
			}
		})
	}
}

func TestEngineTiming(t *testing.T) {
	w, err := dhtsim.NewWired(clock, dht.NewFrame(0, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	n := run(t, w)
	// Wake pulse, acknowledge and 40 zero bits of (50+26)µs at 1 step/µs.
	if n < 1100+160+40*76 || n > 1100+160+40*76+100 {
		t.Fatalf("measurement took %d steps", n)
	}
}

func TestEngineIgnoresStartWhileBusy(t *testing.T) {
	w, err := dhtsim.NewWired(clock, dht.NewFrame(1, 2), nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Step(true)
	for range 500 {
		w.Step(true)
	}
	for w.Busy() {
		w.Step(false)
	}
	if f, perr := w.Result(); perr || f != dht.NewFrame(1, 2) {
		t.Fatalf("got %s, %t", f, perr)
	}
	if w.Line.Replies != 1 {
		t.Fatalf("%d replies", w.Line.Replies)
	}
}

func TestEngineMute(t *testing.T) {
	good := dht.NewFrame(0x028c, 0x015f)
	w, err := dhtsim.NewWired(clock, good, nil)
	if err != nil {
		t.Fatal(err)
	}
	run(t, w)
	w.Line.Mute = true
	w.Line.Frame = dht.NewFrame(1, 1)
	run(t, w)
	f, perr := w.Result()
	if !perr {
		t.Fatal("expected a protocol error")
	}
	if f != good {
		t.Fatalf("failed exchange replaced the frame: %s", f)
	}
	if w.Err() == nil {
		t.Fatal("expected a cause")
	}
	// The next good exchange clears the error.
	w.Line.Mute = false
	run(t, w)
	if f, perr := w.Result(); perr || f != dht.NewFrame(1, 1) {
		t.Fatalf("got %s, %t", f, perr)
	}
	if w.Err() != nil {
		t.Fatal(w.Err())
	}
}

func TestEngineCorrupt(t *testing.T) {
	w, err := dhtsim.NewWired(clock, dht.NewFrame(0x028c, 0x015f), nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Line.Corrupt = true
	run(t, w)
	f, perr := w.Result()
	if perr {
		t.Fatal("a bad checksum is not a protocol error")
	}
	if !f.ChecksumError() {
		t.Fatalf("corrupted frame %s passed the checksum", f)
	}
}

type failPin struct {
	gpiotest.Pin
}

func (p *failPin) Out(gpio.Level) error {
	return errors.New("pin is broken")
}

func TestEngineOutFailure(t *testing.T) {
	p := &failPin{Pin: gpiotest.Pin{N: "broken"}}
	e, err := dht.New(p, clock, nil)
	if err != nil {
		t.Fatal(err)
	}
	e.Step(true)
	if e.Busy() {
		t.Fatal("engine busy after failing to drive the line")
	}
	if _, perr := e.Result(); !perr {
		t.Fatal("expected a protocol error")
	}
}

func TestNew(t *testing.T) {
	p := &gpiotest.Pin{N: "GPIO4"}
	if _, err := dht.New(p, 10*physic.KiloHertz, nil); err == nil {
		t.Error("accepted a clock too slow to resolve bits")
	}
	if _, err := dht.New(p, clock, &dht.Opts{Model: dht.DHT11, StartLow: time.Millisecond}); err == nil {
		t.Error("accepted a start pulse too short for a DHT11")
	}
	if _, err := dht.New(p, clock, &dht.Opts{BitThreshold: time.Millisecond}); err == nil {
		t.Error("accepted a bit threshold above the timeout")
	}
	e, err := dht.New(p, clock, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.P != gpio.PullUp {
		t.Error("line not released with pull-up")
	}
	if s := e.String(); s != "DHT22{GPIO4(0)}" {
		t.Errorf("String() = %q", s)
	}
	if err := e.Halt(); err != nil {
		t.Fatal(err)
	}
}
