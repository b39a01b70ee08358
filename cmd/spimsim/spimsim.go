// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/warthog618/spim"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "spimsim",
	Short: "spimsim is a utility to simulate SPI master transactions",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	Version: version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// simOpts are the flags common to commands that construct a master.
type simOpts struct {
	Width   uint
	Mode    uint
	Divider uint
	TickHz  uint
	SclkHz  uint
}

// addSimFlags registers the common master configuration flags on cmd.
func addSimFlags(cmd *cobra.Command, opts *simOpts) {
	cmd.Flags().UintVarP(&opts.Width, "width", "w", 8, "word width in bits")
	cmd.Flags().UintVarP(&opts.Mode, "mode", "m", 0, "SPI mode (0-3)")
	cmd.Flags().UintVarP(&opts.Divider, "divider", "d", 1, "driving ticks per serial clock half period")
	cmd.Flags().UintVar(&opts.TickHz, "tickfreq", 0, "driving tick frequency in Hz")
	cmd.Flags().UintVar(&opts.SclkHz, "sclkfreq", 0, "target serial clock frequency in Hz")
}

// config resolves the flags into a master configuration.
// A target serial clock frequency, if specified, overrides the divider.
func (o simOpts) config() (spim.Config, error) {
	div := o.Divider
	if o.SclkHz != 0 {
		if o.TickHz == 0 {
			return spim.Config{}, errors.New("--sclkfreq requires --tickfreq")
		}
		div = spim.DividerRatio(o.TickHz, o.SclkHz)
	}
	return spim.Config{
		Width:   o.Width,
		Mode:    spim.Mode(o.Mode),
		Divider: div,
	}, nil
}

func parseWords(args []string, width uint) ([]uint64, error) {
	mask := ^uint64(0) >> (64 - width)
	ww := []uint64(nil)
	for _, arg := range args {
		w, err := strconv.ParseUint(arg, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("can't parse word '%s'", arg)
		}
		if w&^mask != 0 {
			return nil, fmt.Errorf("word '%s' exceeds %d bits", arg, width)
		}
		ww = append(ww, w)
	}
	return ww, nil
}

// transfer runs a single word through the master, with the peer function
// providing the Miso level in response to each tick's outputs.
// It returns the received word and the number of ticks consumed, including
// the tick that returns the master to idle.
func transfer(m *spim.Master, cfg spim.Config, peer func(spim.Outputs) spim.Level, word uint64, rec *spim.Recorder) (uint64, int, error) {
	in := spim.Inputs{Data: word, DataValid: true}
	// worst case is width bits at two half periods each, plus the start
	// tick - anything beyond that means the model has stalled
	limit := 2*int(cfg.Width)*int(cfg.Divider) + 1
	for n := 1; n <= limit; n++ {
		out := m.Tick(in)
		in = spim.Inputs{Miso: peer(out)}
		if rec != nil {
			rec.Record(out)
		}
		if out.DataValid {
			data := out.Data
			// the final tick returns the master to idle
			out = m.Tick(in)
			peer(out)
			if rec != nil {
				rec.Record(out)
			}
			return data, n + 1, nil
		}
	}
	return 0, 0, errors.New("transfer did not complete")
}

// loopback mirrors the outgoing data line straight back to Miso.
func loopback(o spim.Outputs) spim.Level {
	return o.Mosi
}
