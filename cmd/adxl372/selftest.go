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

type selfTestConfig struct {
	rootConfig *rootConfig
	out        io.Writer
}

func (c *selfTestConfig) Exec(ctx context.Context, _ []string) error {
	dev, closer, err := openDevice(c.rootConfig, adxl372.Standby)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := dev.Init(nil); err != nil {
		return err
	}

	fmt.Fprintln(c.out, "running self test, this takes about a second...")
	report, err := dev.SelfTest(nil)
	if err != nil {
		return err
	}
	verdict := "PASS"
	if !report.Passed {
		verdict = "FAIL"
	}
	fmt.Fprintf(c.out, "self test:       %s\n", verdict)
	fmt.Fprintf(c.out, "baseline Z:      %d LSB\n", report.BaselineAvgZ)
	fmt.Fprintf(c.out, "stimulated Z:    %d LSB\n", report.StimulatedAvgZ)
	fmt.Fprintf(c.out, "delta Z:         %d LSB\n", report.DeltaZ)
	fmt.Fprintf(c.out, "chip ST_DONE:    %t\n", !report.TimedOut)
	fmt.Fprintf(c.out, "chip USER_ST:    %t\n", report.UserFlag)
	if !report.Passed {
		return fmt.Errorf("self test failed")
	}
	return nil
}

func newSelfTestCmd(root *rootConfig, out io.Writer) *ffcli.Command {
	cfg := selfTestConfig{rootConfig: root, out: out}
	return &ffcli.Command{
		Name:       "selftest",
		ShortUsage: "adxl372 selftest",
		ShortHelp:  "Run the on-chip self test and report the result.",
		FlagSet:    flag.NewFlagSet("adxl372 selftest", flag.ExitOnError),
		Exec:       cfg.Exec,
	}
}
