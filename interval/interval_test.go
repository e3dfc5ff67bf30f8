// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package interval

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/physic"
)

func TestSteps(t *testing.T) {
	for _, test := range []struct {
		clock physic.Frequency
		d     time.Duration
		want  int64
	}{
		{physic.MegaHertz, time.Second, 1_000_000},
		{physic.MegaHertz, time.Microsecond, 1},
		{physic.MegaHertz, 80 * time.Microsecond, 80},
		{100 * physic.MegaHertz, time.Second, 100_000_000},
		{100 * physic.MegaHertz, 1500 * time.Millisecond, 150_000_000},
		{4 * physic.Hertz, time.Second, 4},
		{physic.Hertz, time.Millisecond, 0},
		{3 * physic.Hertz / 2, time.Second, 1},
		{3 * physic.Hertz / 2, 2 * time.Second, 3},
		{3 * physic.Hertz / 2, 4 * time.Second, 6},
		{5 * physic.Hertz / 2, 1400 * time.Millisecond, 3},
		{physic.MegaHertz, time.Hour, 3_600_000_000},
		{physic.GigaHertz, 10 * time.Second, 10_000_000_000},
		{physic.MegaHertz, -time.Second, 0},
		{0, time.Second, 0},
	} {
		if got := Steps(test.clock, test.d); got != test.want {
			t.Errorf("Steps(%s, %s) = %d, want %d", test.clock, test.d, got, test.want)
		}
	}
}

func TestNew(t *testing.T) {
	if _, err := New(physic.Hertz / 2); err == nil {
		t.Fatal("expected error for a sub-hertz clock")
	}
	if _, err := New(3 * physic.Hertz / 2); err == nil {
		t.Fatal("expected error for a fractional clock")
	}
	g, err := New(physic.KiloHertz)
	if err != nil {
		t.Fatal(err)
	}
	if g.StepsPerTick() != 1000 {
		t.Fatalf("StepsPerTick() = %d", g.StepsPerTick())
	}
	if len(g.String()) == 0 {
		t.Error("invalid value for String()")
	}
}

func TestGenerator(t *testing.T) {
	g, err := New(4 * physic.Hertz)
	if err != nil {
		t.Fatal(err)
	}
	var ticks []int
	for i := 1; i <= 12; i++ {
		if g.Step(false) {
			ticks = append(ticks, i)
		}
	}
	want := []int{4, 8, 12}
	if len(ticks) != len(want) {
		t.Fatalf("ticks at %v, want %v", ticks, want)
	}
	for i := range want {
		if ticks[i] != want[i] {
			t.Fatalf("ticks at %v, want %v", ticks, want)
		}
	}
}

func TestGeneratorReset(t *testing.T) {
	g, err := New(4 * physic.Hertz)
	if err != nil {
		t.Fatal(err)
	}
	g.Step(false)
	g.Step(false)
	g.Step(false)
	// Held in reset the divider never ticks.
	for range 10 {
		if g.Step(true) {
			t.Fatal("tick while reset")
		}
	}
	for i := 1; i <= 4; i++ {
		if tick := g.Step(false); tick != (i == 4) {
			t.Fatalf("step %d after release: tick=%t", i, tick)
		}
	}
}

func TestManual(t *testing.T) {
	var m Manual
	if m.Step(false) {
		t.Fatal("unexpected tick")
	}
	m.Fire()
	if !m.Step(false) {
		t.Fatal("expected tick")
	}
	if m.Step(false) {
		t.Fatal("tick delivered twice")
	}
	m.Fire()
	if m.Step(true) {
		t.Fatal("tick during reset")
	}
	if m.Step(false) {
		t.Fatal("reset should discard a pending tick")
	}
}
