// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtsim

import (
	"errors"
	"time"

	"github.com/GermanBionicSystems/dhtregs/dht"
	"github.com/GermanBionicSystems/dhtregs/interval"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
)

// Line is a simulated sensor sharing an open-drain data line with the host.
// It implements gpio.PinIO for the host side; Step advances the sensor by one
// clock step.
//
// The line reads high unless the host drives it low or the sensor pulls it
// low. Once the host has held it low for the wake time and released it, the
// sensor replies with Frame.
//
// Modify the exported members between steps to simulate other readings and
// faults; grab the embedded Mutex first if another goroutine is stepping.
type Line struct {
	gpiotest.Pin

	// Frame is sent in reply to the next wake pulse.
	Frame dht.Frame
	// Mute makes the sensor ignore wake pulses.
	Mute bool
	// Corrupt flips the checksum byte of every frame sent.
	Corrupt bool
	// Replies counts the frames sent.
	Replies int

	clock     physic.Frequency
	wake      int64
	hostOut   bool
	hostLevel gpio.Level
	lowFor    int64

	wave []segment
	pos  int
	left int64
}

// segment is a stretch of the reply during which the sensor either pulls the
// line low or leaves it to the pull-up.
type segment struct {
	low   bool
	steps int64
}

// NewLine returns a simulated sensor of the given model stepped at clock.
func NewLine(clock physic.Frequency, model dht.Model, f dht.Frame) *Line {
	wake := 800 * time.Microsecond
	if model == dht.DHT11 {
		wake = 18 * time.Millisecond
	}
	l := &Line{
		Frame:     f,
		clock:     clock,
		wake:      interval.Steps(clock, wake),
		hostLevel: gpio.High,
	}
	l.N = model.String()
	l.P = gpio.PullUp
	l.L = gpio.High
	return l
}

// Step advances the sensor by one clock step.
func (l *Line) Step() {
	l.Lock()
	defer l.Unlock()
	if l.pos < len(l.wave) {
		l.left--
		if l.left <= 0 {
			l.pos++
			if l.pos < len(l.wave) {
				l.left = l.wave[l.pos].steps
			}
		}
	} else if l.hostOut && l.hostLevel == gpio.Low {
		l.lowFor++
	} else {
		if l.lowFor >= l.wake && !l.Mute {
			l.reply()
		}
		l.lowFor = 0
	}
	l.L = l.level()
}

// Busy reports whether the sensor is sending a reply.
func (l *Line) Busy() bool {
	l.Lock()
	defer l.Unlock()
	return l.pos < len(l.wave)
}

func (l *Line) reply() {
	f := l.Frame
	if l.Corrupt {
		f ^= 0xff
	}
	us := func(n time.Duration) int64 {
		return interval.Steps(l.clock, n*time.Microsecond)
	}
	w := make([]segment, 0, 4+2*dht.FrameBits)
	w = append(w, segment{false, us(30)}, segment{true, us(80)}, segment{false, us(80)})
	for i := dht.FrameBits - 1; i >= 0; i-- {
		high := us(26)
		if (f>>uint(i))&1 == 1 {
			high = us(70)
		}
		w = append(w, segment{true, us(50)}, segment{false, high})
	}
	w = append(w, segment{true, us(50)})
	l.wave = w
	l.pos = 0
	l.left = w[0].steps
	l.Replies++
}

func (l *Line) level() gpio.Level {
	sensorLow := l.pos < len(l.wave) && l.wave[l.pos].low
	hostLow := l.hostOut && l.hostLevel == gpio.Low
	return gpio.Level(!sensorLow && !hostLow)
}

// In implements gpio.PinIn. The host stops driving the line.
func (l *Line) In(pull gpio.Pull, edge gpio.Edge) error {
	l.Lock()
	defer l.Unlock()
	if edge != gpio.NoEdge {
		return errors.New("dhtsim: edge detection not supported")
	}
	l.hostOut = false
	l.P = pull
	l.L = l.level()
	return nil
}

// Read implements gpio.PinIn.
func (l *Line) Read() gpio.Level {
	l.Lock()
	defer l.Unlock()
	return l.level()
}

// Out implements gpio.PinOut. The host drives the line.
func (l *Line) Out(level gpio.Level) error {
	l.Lock()
	defer l.Unlock()
	l.hostOut = true
	l.hostLevel = level
	l.L = l.level()
	return nil
}

var _ gpio.PinIO = &Line{}
