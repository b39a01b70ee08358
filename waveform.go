// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package spim

import (
	"fmt"
	"strings"
)

// Recorder captures the outputs of successive ticks so they can be
// rendered as a timing diagram.
//
// The zero value is an empty recorder ready for use.
type Recorder struct {
	ticks []Outputs
}

// Record appends the outputs of one tick to the trace.
func (r *Recorder) Record(o Outputs) {
	r.ticks = append(r.ticks, o)
}

// Len returns the number of ticks recorded.
func (r *Recorder) Len() int {
	return len(r.ticks)
}

// Ticks returns the recorded trace.
func (r *Recorder) Ticks() []Outputs {
	return r.ticks
}

// Render returns the trace as an ASCII timing diagram, one row per signal
// and one column per tick. High levels render as '-' and low as '_'.
// Ssz renders asserted (low) as '_' so selection reads as a low pulse,
// matching the wire.
func (r *Recorder) Render() string {
	signals := []struct {
		name  string
		level func(Outputs) bool
	}{
		{"sclk", func(o Outputs) bool { return bool(o.Sclk) }},
		{"mosi", func(o Outputs) bool { return bool(o.Mosi) }},
		{"ssz", func(o Outputs) bool { return bool(o.Ssz) }},
		{"busy", func(o Outputs) bool { return o.Busy }},
		{"valid", func(o Outputs) bool { return o.DataValid }},
	}
	var b strings.Builder
	for _, s := range signals {
		fmt.Fprintf(&b, "%5s ", s.name)
		for _, o := range r.ticks {
			if s.level(o) {
				b.WriteByte('-')
			} else {
				b.WriteByte('_')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
