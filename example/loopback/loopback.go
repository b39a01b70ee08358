// SPDX-License-Identifier: MIT
//
// Copyright © 2019 Kent Gibson <warthog618@gmail.com>.

package main

import (
	"fmt"
	"os"

	"github.com/warthog618/config"
	"github.com/warthog618/config/dict"
	"github.com/warthog618/config/env"
	"github.com/warthog618/config/json"
	"github.com/warthog618/config/pflag"
	"github.com/warthog618/spim"
)

// This example runs a single word through the SPI master model with the
// outgoing data line looped back to the incoming one, so the received word
// always equals the transmitted word. The defaults are defined in
// loadConfig, but can be altered via configuration (env, flag or config
// file), e.g.
//
//	loopback --mode=3 --word=0x5a --sclkfreq=2000000
func main() {
	cfg := loadConfig()
	width := uint(cfg.GetUint("width"))
	mode := spim.Mode(cfg.GetUint("mode"))
	div := spim.DividerRatio(uint(cfg.GetUint("tickfreq")), uint(cfg.GetUint("sclkfreq")))
	word := cfg.GetUint("word")
	m, err := spim.New(spim.Config{Width: width, Mode: mode, Divider: div})
	if err != nil {
		panic(err)
	}
	in := spim.Inputs{Data: word, DataValid: true}
	for n := 1; ; n++ {
		out := m.Tick(in)
		in = spim.Inputs{Miso: out.Mosi}
		if out.DataValid {
			digits := int(width+3) / 4
			fmt.Printf("sent=0x%0*x received=0x%0*x mode=%d divider=%d ticks=%d\n",
				digits, word, digits, out.Data, mode, div, n)
			return
		}
	}
}

// Config defines the minimal configuration interface
type Config interface {
	GetUint(k string) uint64
}

func loadConfig() Config {
	defaultConfig := map[string]interface{}{
		"width":    8,
		"mode":     0,
		"tickfreq": 25000000,
		"sclkfreq": 1000000,
		"word":     0xa5,
	}
	def := dict.New(dict.WithMap(defaultConfig))
	shortFlags := map[byte]string{
		'c': "config-file",
	}
	fget, err := pflag.New(pflag.WithShortFlags(shortFlags))
	if err != nil {
		panic(err)
	}
	// environment next
	eget, err := env.New(env.WithEnvPrefix("LOOPBACK_"))
	if err != nil {
		panic(err)
	}
	// highest priority sources first - flags override environment
	sources := config.NewStack(fget, eget)
	cfg := config.NewConfig(config.Decorate(sources, config.WithDefault(def)))

	// config file may be specified via flag or env, so check for it
	// and if present add it with lower priority than flag and env.
	configFile, err := cfg.GetString("config.file")
	if err == nil {
		// explicitly specified config file - must be there
		jget, err := json.New(json.FromFile(configFile))
		if err != nil {
			panic(err)
		}
		sources.Append(jget)
	} else {
		// implicit and optional default config file
		jget, err := json.New(json.FromFile("loopback.json"))
		if err == nil {
			sources.Append(jget)
		} else {
			if _, ok := err.(*os.PathError); !ok {
				panic(err)
			}
		}
	}
	m := cfg.GetMust("", config.WithPanic())
	return m
}
