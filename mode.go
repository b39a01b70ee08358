// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

// Package spim models an SPI master controller as a clock synchronous
// state machine.
//
// The master is advanced in units of logical time by calls to Tick, each
// call corresponding to one edge of the driving clock. The serial clock is
// derived from the driving tick through a configurable divider, and all
// four standard clock polarity/phase combinations are supported by a
// single state machine.
//
// Example of use:
//
//	m, _ := spim.New(spim.Config{Width: 8, Mode: spim.Mode0, Divider: 1})
//
//	var miso spim.Level
//	in := spim.Inputs{Data: 0xa5, DataValid: true}
//	for {
//		in.Miso = miso
//		out := m.Tick(in)
//		in.DataValid = false
//		miso = out.Mosi // external loopback
//		if out.DataValid {
//			fmt.Printf("received 0x%02x\n", out.Data)
//			break
//		}
//	}
//
// The model drives exactly one slave and processes one word per
// transaction request. It does not queue - a request made while a
// transaction is in flight is dropped.
package spim

// Level represents the high (true) or low (false) level of a signal line.
type Level bool

// Level of line, High / Low
const (
	Low  Level = false
	High Level = true
)

// Mode selects one of the four standard SPI clock polarity/phase
// combinations.
type Mode int

// The four SPI modes.
//
// The low bit of the mode is CPHA and the high bit is CPOL, per convention.
const (
	Mode0 Mode = iota // CPOL=0 CPHA=0
	Mode1             // CPOL=0 CPHA=1
	Mode2             // CPOL=1 CPHA=0
	Mode3             // CPOL=1 CPHA=1
)

// CPOL returns the idle level of the serial clock.
func (m Mode) CPOL() Level {
	return m&0x02 != 0
}

// CPHA returns the clock phase - false if the first active edge of each
// bit period samples, true if it shifts.
func (m Mode) CPHA() bool {
	return m&0x01 != 0
}

// SampleOnRising returns true if incoming bits are sampled on the rising
// edge of the serial clock, and so shifted out on the falling edge.
// The sampling and shifting edges always lie on opposite transitions.
func (m Mode) SampleOnRising() bool {
	return m.CPHA() == bool(m.CPOL())
}
