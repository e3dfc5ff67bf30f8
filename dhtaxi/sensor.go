// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dhtaxi

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GermanBionicSystems/dhtregs/axilite"
	"github.com/GermanBionicSystems/dhtregs/dht"
	"github.com/GermanBionicSystems/dhtregs/interval"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
)

// Sensor reads a controller over the bus. It implements physic.SenseEnv.
type Sensor struct {
	mu    sync.Mutex
	m     *axilite.Master
	model dht.Model
	clock physic.Frequency

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewSensor returns a driver for the controller behind m, which is clocked
// at clock and wired to a sensor of the given model.
func NewSensor(m *axilite.Master, model dht.Model, clock physic.Frequency) *Sensor {
	return &Sensor{m: m, model: model, clock: clock}
}

// ReadRegisters reads DATA, then STATUS.
func (s *Sensor) ReadRegisters() (data, status uint32, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readRegisters()
}

func (s *Sensor) readRegisters() (data, status uint32, err error) {
	if data, err = s.read(DataAddr); err != nil {
		return 0, 0, err
	}
	if status, err = s.read(StatusAddr); err != nil {
		return 0, 0, err
	}
	return data, status, nil
}

func (s *Sensor) read(addr uint32) (uint32, error) {
	v, resp, err := s.m.Read(addr)
	if err != nil {
		return 0, err
	}
	if resp != axilite.OKAY {
		return 0, &BusError{Op: "read", Addr: addr, Resp: resp}
	}
	return v, nil
}

// Write issues a write. The registers are read-only so it always fails; the
// error wraps ErrReadOnly or ErrDecode.
func (s *Sensor) Write(addr, v uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	resp, err := s.m.Write(addr, v)
	if err != nil {
		return err
	}
	if resp != axilite.OKAY {
		return &BusError{Op: "write", Addr: addr, Resp: resp}
	}
	return nil
}

// Sense implements physic.SenseEnv. It reports the last captured sample;
// pressure is not touched. STATUS error bits are reported as ProtocolError
// or ChecksumError.
func (s *Sensor) Sense(e *physic.Env) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sense(e)
}

func (s *Sensor) sense(e *physic.Env) error {
	data, status, err := s.readRegisters()
	if err != nil {
		return err
	}
	if status&StatusProtocolError != 0 {
		return &ProtocolError{}
	}
	if status&StatusChecksumError != 0 {
		return &ChecksumError{Data: data}
	}
	if data == DataReset {
		return ErrNoSample
	}
	s.model.Decode(uint16(data>>16), uint16(data), e)
	return nil
}

// SenseContinuous implements physic.SenseEnv. The controller is advanced by
// interval on its own clock between two readings, so readings are produced
// as fast as the channel is drained. Readings that fail are skipped. It is
// the caller's responsibility to call Halt() when done.
func (s *Sensor) SenseContinuous(every time.Duration) (<-chan physic.Env, error) {
	n := interval.Steps(s.clock, every)
	if n <= 0 {
		return nil, fmt.Errorf("dhtaxi: invalid interval %s", every)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return nil, errors.New("dhtaxi: sense continuous already running")
	}
	s.stop = make(chan struct{})
	stop := s.stop
	ch := make(chan physic.Env)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(ch)
		for {
			var e physic.Env
			s.mu.Lock()
			s.m.Idle(n)
			err := s.sense(&e)
			s.mu.Unlock()
			if err != nil {
				select {
				case <-stop:
					return
				default:
					continue
				}
			}
			select {
			case <-stop:
				return
			case ch <- e:
			}
		}
	}()
	return ch, nil
}

// Precision implements physic.SenseEnv.
func (s *Sensor) Precision(e *physic.Env) {
	s.model.Precision(e)
}

// Halt implements conn.Resource. It stops a SenseContinuous() loop.
func (s *Sensor) Halt() error {
	s.mu.Lock()
	if s.stop == nil {
		s.mu.Unlock()
		return nil
	}
	close(s.stop)
	s.stop = nil
	s.mu.Unlock()
	s.wg.Wait()
	return nil
}

func (s *Sensor) String() string {
	return fmt.Sprintf("dhtaxi: %s", s.model)
}

var _ conn.Resource = &Sensor{}
var _ physic.SenseEnv = &Sensor{}
