// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warthog618/spim"
	"github.com/warthog618/spim/slave"
)

func init() {
	addSimFlags(xferCmd, &xferOpts.simOpts)
	xferCmd.Flags().BoolVarP(&xferOpts.Slave, "slave", "s", false, "transfer against the shift register slave model")
	xferCmd.Flags().StringSliceVarP(&xferOpts.Respond, "respond", "r", nil, "words the slave responds with, one per transfer")
	xferCmd.Flags().BoolVar(&xferOpts.Short, "short", false, "single line output format")
	xferCmd.SetHelpTemplate(xferCmd.HelpTemplate() + extendedXferHelp)
	rootCmd.AddCommand(xferCmd)
}

var (
	xferCmd = &cobra.Command{
		Use:     "xfer <word1>...",
		Short:   "Transfer words through the simulated master",
		Example: "  spimsim xfer -m 3 -w 16 0xbeef",
		Args:    cobra.MinimumNArgs(1),
		RunE:    xfer,
	}
	xferOpts = struct {
		simOpts
		Slave   bool
		Respond []string
		Short   bool
	}{}
)

var extendedXferHelp = `
Words:
  Words may be given in decimal, hex (0x..) or octal (0..) and must fit
  the configured width.

By default the outgoing data line is looped back to the incoming one, so
each received word matches the word sent. With --slave the master drives
the shift register slave model instead, which responds with the --respond
words in order (zero when exhausted) and collects the transmitted words.
`

func xfer(cmd *cobra.Command, args []string) error {
	cfg, err := xferOpts.config()
	if err != nil {
		return err
	}
	words, err := parseWords(args, cfg.Width)
	if err != nil {
		return err
	}
	responses, err := parseWords(xferOpts.Respond, cfg.Width)
	if err != nil {
		return err
	}
	m, err := spim.New(cfg)
	if err != nil {
		return err
	}
	peer := loopback
	var sl *slave.Slave
	if xferOpts.Slave {
		sl = slave.New(cfg.Width, cfg.Mode)
		peer = func(o spim.Outputs) spim.Level {
			return sl.Step(o.Sclk, o.Ssz, o.Mosi)
		}
	}
	digits := int(cfg.Width+3) / 4
	for i, w := range words {
		if sl != nil {
			if i < len(responses) {
				sl.Queue(responses[i])
			} else {
				sl.Queue(0)
			}
		}
		got, ticks, err := transfer(m, cfg, peer, w, nil)
		if err != nil {
			return err
		}
		if xferOpts.Short {
			fmt.Printf("0x%0*x\n", digits, got)
		} else {
			fmt.Printf("sent 0x%0*x received 0x%0*x in %d ticks\n", digits, w, digits, got, ticks)
		}
	}
	if sl != nil && !xferOpts.Short {
		for i, w := range sl.Words() {
			fmt.Printf("slave received[%d] 0x%0*x\n", i, digits, w)
		}
	}
	return nil
}
