// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// adxl372 is a diagnostic tool for the ADXL372 accelerometer: it probes
// the chip identity, runs the self-test, and samples acceleration as
// text, as a live terminal meter, or as a recorded PNG waveform.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/peterbourgon/ff/v3/ffcli"
)

func main() {
	out := os.Stdout
	errw := os.Stderr

	rootCmd, cfg := newRootCmd()
	rootCmd.Subcommands = []*ffcli.Command{
		newInfoCmd(cfg, out),
		newReadCmd(cfg, out),
		newWatchCmd(cfg, out),
		newRecCmd(cfg, out),
		newSelfTestCmd(cfg, out),
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		cancel()
	}()

	if err := rootCmd.ParseAndRun(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(errw, "adxl372: %v\n", err)
		}
		os.Exit(1)
	}
}
