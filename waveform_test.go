// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package spim_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/spim"
)

func TestRecorder(t *testing.T) {
	cfg := spim.Config{Width: 4, Mode: spim.Mode0, Divider: 1}
	m, err := spim.New(cfg)
	require.Nil(t, err)
	rec := spim.Recorder{}
	in := spim.Inputs{Data: 0x9, DataValid: true}
	for {
		out := m.Tick(in)
		in = spim.Inputs{Miso: out.Mosi}
		rec.Record(out)
		if out.DataValid {
			rec.Record(m.Tick(in))
			break
		}
	}
	assert.Equal(t, len(rec.Ticks()), rec.Len())
	render := rec.Render()
	lines := strings.Split(strings.TrimRight(render, "\n"), "\n")
	require.Len(t, lines, 5)
	for n, l := range lines {
		// 6 character name column plus one column per tick
		assert.Len(t, l, 6+rec.Len(), "line %d", n)
	}
	// the completion pulse is a single column
	assert.Equal(t, 1, strings.Count(lines[4], "-"))
	// ssz reads as a low pulse while selected
	assert.True(t, strings.HasSuffix(lines[2], "-"))
	assert.Contains(t, lines[2], "_")
}
