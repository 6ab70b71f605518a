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

type infoConfig struct {
	rootConfig *rootConfig
	out        io.Writer
}

func (c *infoConfig) Exec(ctx context.Context, _ []string) error {
	dev, closer, err := openDevice(c.rootConfig, adxl372.Standby)
	if err != nil {
		return err
	}
	defer closer.Close()

	id, err := dev.ID()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "identity: %s\n", id)

	st, err := dev.ReadStatus()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "status:   %+v\n", st)

	cfg, err := dev.ReadConfig()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "config:   %s\n", cfg)
	return nil
}

func newInfoCmd(root *rootConfig, out io.Writer) *ffcli.Command {
	cfg := infoConfig{rootConfig: root, out: out}
	fs := flag.NewFlagSet("adxl372 info", flag.ExitOnError)
	return &ffcli.Command{
		Name:       "info",
		ShortUsage: "adxl372 info",
		ShortHelp:  "Print chip identity, status and current register configuration.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}
}
