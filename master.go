// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package spim

// Inputs are the signal levels presented to the master for one driving
// tick.
type Inputs struct {
	// Data is the word to transmit when DataValid is set.
	Data uint64
	// DataValid requests a new transaction.
	// Ignored unless the master is idle - requests made while busy are
	// dropped, not queued.
	DataValid bool
	// Miso is the level of the incoming data line, as driven by the slave.
	Miso Level
}

// Outputs are the signal levels driven by the master at the end of one
// driving tick.
type Outputs struct {
	// Sclk is the serial clock line.
	Sclk Level
	// Mosi is the outgoing data line.
	Mosi Level
	// Ssz is the slave select line. Active low - Low means selected.
	Ssz Level
	// Data is the word assembled by the most recently completed
	// transaction.
	Data uint64
	// DataValid pulses high for exactly one tick, on the tick that samples
	// the final bit of a transaction. Data is updated on the same tick.
	DataValid bool
	// Busy is high from the tick that accepts a transaction request until
	// the tick that returns the master to idle.
	Busy bool
}

// fsm states
type state int

const (
	idle state = iota
	transferring
	done
)

// Master models an SPI master controller.
//
// All state advances through Tick, which processes exactly one driving
// tick, and Reset, which may be called between any two ticks. The model
// assumes a single driving goroutine, as the hardware it models assumes a
// single clock domain - Tick and Reset must not be called concurrently.
type Master struct {
	// Immutable fields
	width        uint
	div          uint
	mask         uint64
	cpol         Level
	cpha         bool
	sampleRising bool
	// Mutable fields
	state state
	tx    uint64 // transmit shift register
	rx    uint64 // receive shift register
	bits  uint   // bits remaining in the current transaction
	count uint   // divider tick counter
	sclk  Level
	ssz   Level
	mosi  Level
	data  uint64 // last completed word
	valid bool   // one tick completion pulse
	busy  bool
}

// New creates a Master.
func New(cfg Config) (*Master, error) {
	if cfg.Mode < Mode0 || cfg.Mode > Mode3 {
		return nil, ErrBadMode
	}
	if cfg.Width < 1 || cfg.Width > MaxWidth {
		return nil, ErrBadWidth
	}
	if cfg.Divider < 1 {
		return nil, ErrBadDivider
	}
	m := &Master{
		width:        cfg.Width,
		div:          cfg.Divider,
		mask:         ^uint64(0) >> (64 - cfg.Width),
		cpol:         cfg.Mode.CPOL(),
		cpha:         cfg.Mode.CPHA(),
		sampleRising: cfg.Mode.SampleOnRising(),
	}
	m.Reset()
	return m, nil
}

// Reset forces the master back to idle, discarding any transaction in
// flight without a completion pulse.
//
// It models the asynchronous reset line - it takes effect immediately, is
// not itself a tick, and is idempotent.
func (m *Master) Reset() {
	m.state = idle
	m.tx = 0
	m.rx = 0
	m.bits = 0
	m.count = 0
	m.sclk = m.cpol
	m.ssz = High
	m.mosi = Low
	m.data = 0
	m.valid = false
	m.busy = false
}

// Tick advances the master by one driving tick and returns the signal
// levels it drives as a result.
//
// All side effects of the tick are applied before Tick returns, so the
// returned Outputs are always mutually consistent - a caller can never
// observe a partially applied tick.
func (m *Master) Tick(in Inputs) Outputs {
	// completion pulse lasts exactly one tick
	m.valid = false

	switch m.state {
	case idle:
		if in.DataValid {
			m.start(in.Data)
		}
	case transferring:
		if m.count == m.div-1 {
			m.count = 0
			m.edge(in.Miso)
		} else {
			m.count++
		}
	case done:
		m.state = idle
		m.sclk = m.cpol
		m.ssz = High
		m.busy = false
	}
	return Outputs{
		Sclk:      m.sclk,
		Mosi:      m.mosi,
		Ssz:       m.ssz,
		Data:      m.data,
		DataValid: m.valid,
		Busy:      m.busy,
	}
}

// start accepts a transaction request, loading the shift registers and
// asserting select. The serial clock stays at idle until the divider
// period elapses.
func (m *Master) start(word uint64) {
	m.tx = word & m.mask
	m.rx = 0
	m.bits = m.width
	m.count = 0
	m.busy = true
	m.ssz = Low
	if !m.cpha {
		// first bit must be settled on the line before the first active edge
		m.mosi = m.txbit(m.width - 1)
	}
	m.state = transferring
}

// edge processes one serial clock edge: sample, then shift, then toggle.
// The edge direction is classified against the pre-toggle clock level.
func (m *Master) edge(miso Level) {
	rising := m.sclk == Low
	sample := rising == m.sampleRising
	if sample && m.bits > 0 {
		m.rx = m.rx << 1 & m.mask
		if miso {
			m.rx |= 0x01
		}
		m.bits--
		if m.bits == 0 {
			m.data = m.rx
			m.valid = true
		}
	}
	if !sample && m.bits > 0 {
		if m.cpha {
			m.mosi = m.txbit(m.width - 1)
		} else {
			// the top bit is already on the line, so present the next
			m.mosi = m.txbit(m.width - 2)
		}
		m.tx = m.tx << 1 & m.mask
	}
	m.sclk = !m.sclk
	if m.bits == 0 {
		m.state = done
	}
}

// txbit returns the level of bit n of the transmit shift register.
func (m *Master) txbit(n uint) Level {
	return m.tx>>n&0x01 == 0x01
}
