// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package spim

import "errors"

// MaxWidth is the widest supported word, limited by the width of the
// shift registers.
const MaxWidth = 64

var (
	// ErrBadMode indicates the mode is outside the range Mode0 to Mode3.
	ErrBadMode = errors.New("invalid mode")
	// ErrBadWidth indicates the word width is zero or exceeds MaxWidth.
	ErrBadWidth = errors.New("invalid word width")
	// ErrBadDivider indicates a zero divider ratio.
	ErrBadDivider = errors.New("invalid divider ratio")
)

// Config defines the fixed parameters of a Master.
type Config struct {
	// Width is the word width in bits, from 1 to MaxWidth.
	Width uint
	// Mode selects the clock polarity and phase.
	Mode Mode
	// Divider is the number of driving ticks per serial clock half period.
	// Must be at least 1. A divider of 1 toggles the serial clock on every
	// tick, so the serial clock runs at half the driving tick rate.
	Divider uint
}

// DividerRatio returns the divider ratio that runs the serial clock as
// close as possible to sclkHz, without exceeding it, when driven at
// tickHz. Ratios that would come out below one are clamped to one - the
// serial clock can never run faster than half the driving tick rate, and
// never stalls.
func DividerRatio(tickHz, sclkHz uint) uint {
	if sclkHz == 0 || tickHz < 2*sclkHz {
		return 1
	}
	return tickHz / (2 * sclkHz)
}
