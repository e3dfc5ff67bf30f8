// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtaxi

import (
	"errors"
	"testing"
	"time"

	"github.com/GermanBionicSystems/dhtregs/axilite"
	"github.com/GermanBionicSystems/dhtregs/dht"
	"github.com/GermanBionicSystems/dhtregs/dht/dhtsim"
	"periph.io/x/conn/v3/physic"
)

func newWiredSensor(t *testing.T, f dht.Frame) (*Sensor, *dhtsim.Wired) {
	t.Helper()
	w, err := dhtsim.NewWired(physic.MegaHertz, f, nil)
	if err != nil {
		t.Fatal(err)
	}
	d, err := New(w, nil)
	if err != nil {
		t.Fatal(err)
	}
	return NewSensor(axilite.NewMaster(d), dht.DHT22, physic.MegaHertz), w
}

func TestSensorSense(t *testing.T) {
	s, _ := newWiredSensor(t, dht.NewFrame(0x028c, 0x015f))
	e := physic.Env{}
	if err := s.Sense(&e); !errors.Is(err, ErrNoSample) {
		t.Fatalf("Sense() = %v", err)
	}
	// First tick starts, second tick captures.
	s.m.Idle(2_000_000)
	if err := s.Sense(&e); err != nil {
		t.Fatal(err)
	}
	if e.Humidity != 652*physic.MilliRH {
		t.Errorf("humidity %s", e.Humidity)
	}
	if want := physic.ZeroCelsius + 35100*physic.MilliCelsius; e.Temperature != want {
		t.Errorf("temperature %s, want %s", e.Temperature, want)
	}
	data, status, err := s.ReadRegisters()
	if err != nil {
		t.Fatal(err)
	}
	if data != 0x028c015f || status&^StatusBusy != 0 {
		t.Fatalf("DATA=%#x STATUS=%#x", data, status)
	}
}

func TestSensorFaults(t *testing.T) {
	s, w := newWiredSensor(t, dht.NewFrame(0x028c, 0x015f))
	w.Line.Corrupt = true
	s.m.Idle(2_000_000)
	e := physic.Env{}
	var cerr *ChecksumError
	if err := s.Sense(&e); !errors.As(err, &cerr) {
		t.Fatalf("Sense() = %v", err)
	}
	if cerr.Data != 0x028c015f {
		t.Fatalf("data %#x", cerr.Data)
	}

	w.Line.Corrupt = false
	w.Line.Mute = true
	s.m.Idle(1_000_000)
	var perr *ProtocolError
	if err := s.Sense(&e); !errors.As(err, &perr) {
		t.Fatalf("Sense() = %v", err)
	}
	// The previous frame is still in DATA.
	data, status, err := s.ReadRegisters()
	if err != nil {
		t.Fatal(err)
	}
	if data != 0x028c015f || status&StatusProtocolError == 0 {
		t.Fatalf("DATA=%#x STATUS=%#x", data, status)
	}

	w.Line.Mute = false
	s.m.Idle(1_000_000)
	if err := s.Sense(&e); err != nil {
		t.Fatalf("did not recover: %v", err)
	}
}

func TestSensorWrite(t *testing.T) {
	s, _ := newWiredSensor(t, 0)
	err := s.Write(StatusAddr, 0)
	var berr *BusError
	if !errors.As(err, &berr) || berr.Resp != axilite.SLVERR || !errors.Is(err, ErrReadOnly) {
		t.Fatalf("Write() = %v", err)
	}
	if err.Error() != "dhtaxi: write 0x4: SLVERR" {
		t.Fatalf("Error() = %q", err)
	}
	if err := s.Write(0x20, 0); !errors.Is(err, ErrDecode) {
		t.Fatalf("Write() = %v", err)
	}
	if err := (&BusError{Resp: axilite.EXOKAY}).Unwrap(); err != nil {
		t.Fatal(err)
	}
}

// stuck never completes a handshake.
type stuck struct{}

func (stuck) Step(axilite.Inputs) axilite.Outputs {
	return axilite.Outputs{}
}

func TestSensorTimeout(t *testing.T) {
	s := NewSensor(axilite.NewMaster(stuck{}), dht.DHT22, physic.MegaHertz)
	if _, _, err := s.ReadRegisters(); !errors.Is(err, axilite.ErrTimeout) {
		t.Fatalf("ReadRegisters() = %v", err)
	}
	if err := s.Write(0, 0); !errors.Is(err, axilite.ErrTimeout) {
		t.Fatalf("Write() = %v", err)
	}
}

func TestSensorSenseContinuous(t *testing.T) {
	s, _ := newWiredSensor(t, dht.NewFrame(0x0150, 0x00f5))
	if _, err := s.SenseContinuous(0); err == nil {
		t.Fatal("accepted a zero interval")
	}
	ch, err := s.SenseContinuous(time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.SenseContinuous(time.Second); err == nil {
		t.Fatal("started twice")
	}
	for range 3 {
		e := <-ch
		if e.Humidity != 336*physic.MilliRH {
			t.Fatalf("humidity %s", e.Humidity)
		}
	}
	if err := s.Halt(); err != nil {
		t.Fatal(err)
	}
	for range ch {
	}
	if err := s.Halt(); err != nil {
		t.Fatal(err)
	}
	if s.String() != "dhtaxi: DHT22" {
		t.Fatalf("String() = %q", s)
	}
	e := physic.Env{}
	s.Precision(&e)
	if e.Humidity == 0 || e.Temperature == 0 {
		t.Fatalf("precision %+v", e)
	}
}
