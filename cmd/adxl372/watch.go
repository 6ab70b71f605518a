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

type watchConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	interval   time.Duration
	duration   time.Duration
	rangeMG    int
}

func readout(mg [3]int32) string {
	return fmt.Sprintf("X:%8dmg Y:%8dmg Z:%8dmg", mg[0], mg[1], mg[2])
}

func (c *watchConfig) Exec(ctx context.Context, _ []string) error {
	dev, closer, err := openDevice(c.rootConfig, adxl372.Measurement)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := dev.Init(nil); err != nil {
		return err
	}
	defer dev.Halt()

	if c.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.duration)
		defer cancel()
	}

	m := newMeter(20, int32(c.rangeMG))
	defer m.close()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			mg, err := dev.ReadMilliG()
			if err != nil {
				return err
			}
			if err := m.render(mg); err != nil {
				return err
			}
		}
	}
}

func newWatchCmd(root *rootConfig, out io.Writer) *ffcli.Command {
	cfg := watchConfig{rootConfig: root, out: out}
	fs := flag.NewFlagSet("adxl372 watch", flag.ExitOnError)
	fs.DurationVar(&cfg.interval, "interval", 100*time.Millisecond, "time between samples")
	fs.DurationVar(&cfg.duration, "duration", 0, "how long to watch, 0 for until interrupted")
	fs.IntVar(&cfg.rangeMG, "range", 4000, "full bar deflection in milli-g")
	return &ffcli.Command{
		Name:       "watch",
		ShortUsage: "adxl372 watch [-interval 100ms] [-range 4000]",
		ShortHelp:  "Continuously sample and draw a live terminal meter.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}
}
