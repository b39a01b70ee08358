// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/warthog618/spim"
)

func init() {
	addSimFlags(waveCmd, &waveOpts.simOpts)
	rootCmd.AddCommand(waveCmd)
}

var (
	waveCmd = &cobra.Command{
		Use:     "wave <word>",
		Short:   "Display the timing diagram for a transfer",
		Long:    `Run one word through the master with loopback and print the resulting waveform, one column per driving tick.`,
		Example: "  spimsim wave -m 2 -d 3 0xa5",
		Args:    cobra.ExactArgs(1),
		RunE:    wave,
	}
	waveOpts = struct {
		simOpts
	}{}
)

func wave(cmd *cobra.Command, args []string) error {
	cfg, err := waveOpts.config()
	if err != nil {
		return err
	}
	words, err := parseWords(args, cfg.Width)
	if err != nil {
		return err
	}
	m, err := spim.New(cfg)
	if err != nil {
		return err
	}
	rec := spim.Recorder{}
	got, ticks, err := transfer(m, cfg, loopback, words[0], &rec)
	if err != nil {
		return err
	}
	fmt.Print(rec.Render())
	digits := int(cfg.Width+3) / 4
	fmt.Printf("received 0x%0*x in %d ticks\n", digits, got, ticks)
	return nil
}
