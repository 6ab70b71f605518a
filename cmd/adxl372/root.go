// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"

	"github.com/peterbourgon/ff/v3/ffcli"
)

type rootConfig struct {
	spiPort string
	i2cBus  string
	addr    string
	odr     int
	bw      int
	verbose bool
}

func (c *rootConfig) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.spiPort, "spi", "", "SPI port name; when set, SPI is used instead of I²C")
	fs.StringVar(&c.i2cBus, "i2c", "", "I²C bus name, empty for the first available bus")
	fs.StringVar(&c.addr, "addr", "0x1D", "I²C address in hex, 0x1D or 0x53 depending on ASEL")
	fs.IntVar(&c.odr, "odr", 3200, "output data rate in Hz (400, 800, 1600, 3200, 4000)")
	fs.IntVar(&c.bw, "bw", 800, "filter bandwidth in Hz (200, 400, 800, 1600)")
	fs.BoolVar(&c.verbose, "v", false, "increase log verbosity")
}

func (c *rootConfig) Exec(context.Context, []string) error {
	return flag.ErrHelp
}

func newRootCmd() (*ffcli.Command, *rootConfig) {
	var cfg rootConfig

	fs := flag.NewFlagSet("adxl372", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "adxl372",
		ShortUsage: "adxl372 [flags] <subcommand>",
		ShortHelp:  "Probe, test and sample an ADXL372 high-g accelerometer.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}, &cfg
}
