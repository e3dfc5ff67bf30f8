// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package dht

import (
	"time"

	"periph.io/x/conn/v3/physic"
)

// Model selects how the humidity and temperature words are encoded and how
// long the host must hold the line low to wake the sensor.
type Model int

const (
	// DHT22 (also sold as AM2302) reports tenths of %RH and tenths of °C with
	// the temperature sign in bit 15.
	DHT22 Model = iota
	// DHT11 reports an integral byte followed by a tenths byte for both
	// values; bit 7 of the temperature tenths byte is the sign.
	DHT11
)

func (m Model) String() string {
	switch m {
	case DHT22:
		return "DHT22"
	case DHT11:
		return "DHT11"
	default:
		return "unknown"
	}
}

// wakeLow is the minimum low pulse the sensor recognises as a start signal.
func (m Model) wakeLow() time.Duration {
	if m == DHT11 {
		return 18 * time.Millisecond
	}
	return time.Millisecond
}

// Decode converts raw words into env. Pressure is left untouched.
func (m Model) Decode(humidity, temperature uint16, env *physic.Env) {
	switch m {
	case DHT11:
		env.Humidity = physic.RelativeHumidity(humidity>>8)*physic.PercentRH +
			physic.RelativeHumidity(humidity&0xff)*physic.MilliRH
		t := physic.Temperature(temperature>>8)*physic.Celsius +
			physic.Temperature(temperature&0x7f)*(physic.Celsius/10)
		if temperature&0x80 != 0 {
			t = -t
		}
		env.Temperature = physic.ZeroCelsius + t
	default:
		env.Humidity = physic.RelativeHumidity(humidity) * physic.MilliRH
		t := physic.Temperature(temperature&0x7fff) * (physic.Celsius / 10)
		if temperature&0x8000 != 0 {
			t = -t
		}
		env.Temperature = physic.ZeroCelsius + t
	}
}

// Encode is the inverse of Decode, rounding to the model's resolution. It is
// used to synthesise frames for simulated sensors.
func (m Model) Encode(env physic.Env) (humidity, temperature uint16) {
	rh := int64((env.Humidity + physic.MilliRH/2) / physic.MilliRH)
	if rh < 0 {
		rh = 0
	}
	c := int64(env.Temperature - physic.ZeroCelsius)
	neg := c < 0
	if neg {
		c = -c
	}
	tenths := (c + int64(physic.Celsius/20)) / int64(physic.Celsius/10)
	switch m {
	case DHT11:
		humidity = uint16(rh/10)<<8 | uint16(rh%10)
		temperature = uint16(tenths/10)<<8 | uint16(tenths%10)
		if neg {
			temperature |= 0x80
		}
	default:
		humidity = uint16(rh)
		temperature = uint16(tenths) & 0x7fff
		if neg {
			temperature |= 0x8000
		}
	}
	return humidity, temperature
}

// Precision sets the resolution of the model's measurements.
func (m Model) Precision(env *physic.Env) {
	env.Temperature = physic.Celsius / 10
	env.Pressure = 0
	env.Humidity = physic.MilliRH
}
