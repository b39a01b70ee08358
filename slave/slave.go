// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

// Package slave models the device on the far end of the SPI bus as a word
// width shift register.
//
// The slave is passive - it is stepped with the signal levels the master
// drives each tick and detects serial clock edges by comparing successive
// levels. It shifts out a queued response word on Miso while accumulating
// the master's word from Mosi, using the same mode as the master.
package slave

import (
	"github.com/warthog618/spim"
)

// Slave models a word width shift register slave device.
type Slave struct {
	// Immutable fields
	width        uint
	mask         uint64
	cpha         bool
	sampleRising bool
	// Mutable fields
	selected bool
	sclk     spim.Level
	miso     spim.Level
	tx       uint64 // response shift register
	rx       uint64
	bits     uint
	words    []uint64
}

// New creates a Slave with the given word width and mode.
//
// The width and mode must match the master driving it - a slave cannot
// discover either from the wire.
func New(width uint, mode spim.Mode) *Slave {
	return &Slave{
		width:        width,
		mask:         ^uint64(0) >> (64 - width),
		cpha:         mode.CPHA(),
		sampleRising: mode.SampleOnRising(),
		sclk:         mode.CPOL(),
	}
}

// Queue sets the word the slave shifts out during its next selection.
func (s *Slave) Queue(word uint64) {
	s.tx = word & s.mask
}

// Words returns the completed words received from the master, oldest
// first.
func (s *Slave) Words() []uint64 {
	return s.words
}

// Step presents one tick of master outputs to the slave and returns the
// level the slave drives on Miso.
func (s *Slave) Step(sclk, ssz, mosi spim.Level) spim.Level {
	if ssz == spim.High {
		// deselection mid-word drops the partial frame
		s.selected = false
		s.sclk = sclk
		return s.miso
	}
	if !s.selected {
		s.selected = true
		s.rx = 0
		s.bits = s.width
		if !s.cpha {
			// first response bit must be on the line before the first
			// active edge
			s.shiftOut()
		}
	}
	if sclk != s.sclk {
		s.sclk = sclk
		rising := sclk == spim.High
		if rising == s.sampleRising {
			s.sample(mosi)
		} else if s.bits > 0 {
			s.shiftOut()
		}
	}
	return s.miso
}

// sample captures one bit from Mosi, MSB first.
func (s *Slave) sample(mosi spim.Level) {
	if s.bits == 0 {
		return
	}
	s.rx = s.rx << 1 & s.mask
	if mosi {
		s.rx |= 0x01
	}
	s.bits--
	if s.bits == 0 {
		s.words = append(s.words, s.rx)
	}
}

// shiftOut presents the top bit of the response register on Miso and
// advances the register.
func (s *Slave) shiftOut() {
	s.miso = s.tx>>(s.width-1)&0x01 == 0x01
	s.tx = s.tx << 1 & s.mask
}
