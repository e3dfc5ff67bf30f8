// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// dhtsim runs the register controller against a simulated DHT sensor and
// prints what a bus master reads from it once per second.
//
// The simulation advances one reference clock period per step, as fast as
// the host allows; -seconds is simulated time.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/GermanBionicSystems/dhtregs/axilite"
	"github.com/GermanBionicSystems/dhtregs/dht"
	"github.com/GermanBionicSystems/dhtregs/dht/dhtsim"
	"github.com/GermanBionicSystems/dhtregs/dhtaxi"
	"github.com/GermanBionicSystems/dhtregs/interval"
	"github.com/GermanBionicSystems/dhtregs/statusbar"
	"github.com/GermanBionicSystems/dhtregs/wave"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// tracer sits between the bus master and the controller. It records a window
// of steps for the timing diagram and mirrors the busy bit onto a pin.
type tracer struct {
	d    *dhtaxi.Dev
	w    *dhtsim.Wired
	rec  *wave.Recorder
	from int64
	to   int64
	led  gpio.PinOut
	busy bool
	err  error
}

var traced = []string{"line", "start", "tick", "busy", "ARVALID", "RVALID"}

func (t *tracer) Step(in axilite.Inputs) axilite.Outputs {
	out := t.d.Step(in)
	if step := t.d.Steps() - 1; t.rec != nil && step >= t.from && step < t.to {
		err := t.rec.Record(
			bool(t.w.Line.Read()),
			t.d.Started(),
			t.d.Ticked(),
			t.d.Status()&dhtaxi.StatusBusy != 0,
			in.ARValid,
			out.RValid,
		)
		if err != nil && t.err == nil {
			t.err = err
		}
	}
	if busy := t.d.Status()&dhtaxi.StatusBusy != 0; busy != t.busy {
		t.busy = busy
		if t.led != nil {
			if err := t.led.Out(gpio.Level(busy)); err != nil {
				log.Printf("led: %v", err)
			}
		}
	}
	return out
}

func parseModel(s string) (dht.Model, error) {
	switch strings.ToUpper(s) {
	case "DHT22", "AM2302":
		return dht.DHT22, nil
	case "DHT11":
		return dht.DHT11, nil
	default:
		return 0, fmt.Errorf("unknown model %q", s)
	}
}

func mainImpl() error {
	clock := physic.MegaHertz
	flag.Var(&clock, "clock", "reference clock")
	seconds := flag.Int("seconds", 5, "simulated seconds to run")
	rh := flag.Float64("rh", 65.2, "relative humidity reported by the sensor, in %")
	temp := flag.Float64("temp", 35.1, "temperature reported by the sensor, in °C")
	modelName := flag.String("model", "DHT22", "sensor model: DHT22 or DHT11")
	mute := flag.Bool("mute", false, "the sensor never answers")
	corrupt := flag.Bool("corrupt", false, "the sensor sends bad checksums")
	pngPath := flag.String("png", "", "write a timing diagram to this PNG file")
	pngFrom := flag.Duration("png-from", time.Second, "start of the timing diagram")
	pngSpan := flag.Duration("png-span", 6*time.Millisecond, "length of the timing diagram")
	ledName := flag.String("led", "", "GPIO that mirrors the busy bit, e.g. GPIO17")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	if *seconds < 2 {
		return errors.New("-seconds must be at least 2, the first sample is captured on the second tick")
	}

	model, err := parseModel(*modelName)
	if err != nil {
		return err
	}
	h, t := model.Encode(physic.Env{
		Temperature: physic.ZeroCelsius + physic.Temperature(*temp*float64(physic.Celsius)),
		Humidity:    physic.RelativeHumidity(*rh * float64(physic.PercentRH)),
	})
	w, err := dhtsim.NewWired(clock, dht.NewFrame(h, t), &dht.Opts{Model: model})
	if err != nil {
		return err
	}
	w.Line.Mute = *mute
	w.Line.Corrupt = *corrupt
	log.Printf("%s answering %s", w, w.Line.Frame)

	d, err := dhtaxi.New(w, &dhtaxi.Opts{Clock: clock})
	if err != nil {
		return err
	}
	tr := &tracer{d: d, w: w}
	if *pngPath != "" {
		tr.rec = wave.NewRecorder(traced...)
		tr.from = interval.Steps(clock, *pngFrom)
		tr.to = tr.from + interval.Steps(clock, *pngSpan)
	}
	if *ledName != "" {
		if _, err := host.Init(); err != nil {
			return err
		}
		p := gpioreg.ByName(*ledName)
		if p == nil {
			return fmt.Errorf("no GPIO named %q", *ledName)
		}
		if err := p.Out(gpio.Low); err != nil {
			return err
		}
		defer func() {
			if err := p.Out(gpio.Low); err != nil {
				log.Printf("led: %v", err)
			}
		}()
		tr.led = p
	}

	m := axilite.NewMaster(tr)
	s := dhtaxi.NewSensor(m, model, clock)
	bar := statusbar.New(&statusbar.Opts{Scroll: *verbose})
	defer func() {
		if err := bar.Halt(); err != nil {
			log.Printf("statusbar: %v", err)
		}
	}()

	perSecond := interval.Steps(clock, time.Second)
	for i := 0; i < *seconds; i++ {
		m.Idle(perSecond)
		data, status, err := s.ReadRegisters()
		if err != nil {
			return err
		}
		e := physic.Env{}
		env := &e
		if err := s.Sense(env); err != nil {
			log.Printf("t=%ds: %v", i+1, err)
			env = nil
		}
		if err := bar.Show(data, status, env); err != nil {
			return err
		}
	}
	log.Printf("%s after %d steps", d, m.Steps())

	if tr.rec != nil {
		if tr.err != nil {
			return tr.err
		}
		if tr.rec.Steps() == 0 {
			return errors.New("-png-from is past the end of the run")
		}
		if err := wave.SavePNG(*pngPath, tr.rec, 0, tr.rec.Steps(), nil); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "dhtsim: %s.\n", err)
		os.Exit(1)
	}
}
