// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/GermanBionicSystems/adxl372"
	"github.com/peterbourgon/ff/v3/ffcli"
)

type readConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	raw        bool
}

func (c *readConfig) Exec(ctx context.Context, _ []string) error {
	dev, closer, err := openDevice(c.rootConfig, adxl372.Measurement)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := dev.Init(nil); err != nil {
		return err
	}
	defer dev.Halt()

	if c.raw {
		sample, err := dev.ReadRaw()
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "X:%6d Y:%6d Z:%6d\n", sample[0], sample[1], sample[2])
		return nil
	}
	mg, err := dev.ReadMilliG()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "X:%8dmg Y:%8dmg Z:%8dmg\n", mg[0], mg[1], mg[2])
	return nil
}

func newReadCmd(root *rootConfig, out io.Writer) *ffcli.Command {
	cfg := readConfig{rootConfig: root, out: out}
	fs := flag.NewFlagSet("adxl372 read", flag.ExitOnError)
	fs.BoolVar(&cfg.raw, "raw", false, "print raw LSB values instead of milli-g")
	return &ffcli.Command{
		Name:       "read",
		ShortUsage: "adxl372 read [-raw]",
		ShortHelp:  "Read a single acceleration sample.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}
}
