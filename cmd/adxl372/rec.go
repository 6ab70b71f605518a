// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/GermanBionicSystems/adxl372"
	"github.com/peterbourgon/ff/v3/ffcli"
)

type recConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	duration   time.Duration
	interval   time.Duration
	output     string
	width      int
	height     int
	rangeMG    int
}

func (c *recConfig) Exec(ctx context.Context, _ []string) error {
	dev, closer, err := openDevice(c.rootConfig, adxl372.Measurement)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := dev.Init(nil); err != nil {
		return err
	}
	defer dev.Halt()

	ctx, cancel := context.WithTimeout(ctx, c.duration)
	defer cancel()

	var samples [][3]int32
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
sampling:
	for {
		select {
		case <-ctx.Done():
			break sampling
		case <-ticker.C:
			mg, err := dev.ReadMilliG()
			if err != nil {
				return err
			}
			samples = append(samples, mg)
		}
	}
	if len(samples) < 2 {
		return fmt.Errorf("recorded only %d samples, nothing to plot", len(samples))
	}

	if err := plotWaveform(c.output, samples, c.width, c.height, int32(c.rangeMG), c.interval); err != nil {
		return err
	}
	if c.rootConfig.verbose {
		fmt.Fprintf(c.out, "recorded %d samples over %s\n", len(samples), c.duration)
	}
	fmt.Fprintf(c.out, "wrote %s\n", c.output)
	return nil
}

func newRecCmd(root *rootConfig, out io.Writer) *ffcli.Command {
	cfg := recConfig{rootConfig: root, out: out}
	fs := flag.NewFlagSet("adxl372 rec", flag.ExitOnError)
	fs.DurationVar(&cfg.duration, "duration", 5*time.Second, "how long to record")
	fs.DurationVar(&cfg.interval, "interval", 10*time.Millisecond, "time between samples")
	fs.StringVar(&cfg.output, "o", "adxl372.png", "output PNG file")
	fs.IntVar(&cfg.width, "width", 1024, "plot width in pixels")
	fs.IntVar(&cfg.height, "height", 512, "plot height in pixels")
	fs.IntVar(&cfg.rangeMG, "range", 4000, "vertical half-range in milli-g")
	return &ffcli.Command{
		Name:       "rec",
		ShortUsage: "adxl372 rec [-duration 5s] [-o adxl372.png]",
		ShortHelp:  "Record samples and render them as a PNG waveform.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}
}
