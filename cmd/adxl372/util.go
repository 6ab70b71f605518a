// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/GermanBionicSystems/adxl372"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func parseODR(hz int) (adxl372.OutputDataRate, error) {
	switch hz {
	case 400:
		return adxl372.ODR400Hz, nil
	case 800:
		return adxl372.ODR800Hz, nil
	case 1600:
		return adxl372.ODR1600Hz, nil
	case 3200:
		return adxl372.ODR3200Hz, nil
	case 4000:
		return adxl372.ODR4000Hz, nil
	}
	return 0, fmt.Errorf("unsupported output data rate %dHz", hz)
}

func parseBandwidth(hz int) (adxl372.Bandwidth, error) {
	switch hz {
	case 200:
		return adxl372.BW200Hz, nil
	case 400:
		return adxl372.BW400Hz, nil
	case 800:
		return adxl372.BW800Hz, nil
	case 1600:
		return adxl372.BW1600Hz, nil
	}
	return 0, fmt.Errorf("unsupported bandwidth %dHz", hz)
}

func parseI2CAddress(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid I²C address %q: %w", s, err)
	}
	return uint16(v), nil
}

func buildConfig(c *rootConfig, mode adxl372.PowerMode) (adxl372.Config, error) {
	odr, err := parseODR(c.odr)
	if err != nil {
		return adxl372.Config{}, err
	}
	bw, err := parseBandwidth(c.bw)
	if err != nil {
		return adxl372.Config{}, err
	}
	return adxl372.NewConfig().ODR(odr).Bandwidth(bw).PowerMode(mode).Build()
}

// openDevice connects to the chip on the bus the root flags select. No
// bus traffic happens yet; callers run Init when they need samples.
func openDevice(c *rootConfig, mode adxl372.PowerMode) (*adxl372.Dev, io.Closer, error) {
	cfg, err := buildConfig(c, mode)
	if err != nil {
		return nil, nil, err
	}
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	if c.spiPort != "" {
		p, err := spireg.Open(c.spiPort)
		if err != nil {
			return nil, nil, fmt.Errorf("opening SPI port: %w", err)
		}
		d, err := adxl372.NewSPI(p, cfg)
		if err != nil {
			p.Close()
			return nil, nil, err
		}
		return d, p, nil
	}
	addr, err := parseI2CAddress(c.addr)
	if err != nil {
		return nil, nil, err
	}
	b, err := i2creg.Open(c.i2cBus)
	if err != nil {
		return nil, nil, fmt.Errorf("opening I²C bus: %w", err)
	}
	return adxl372.NewI2C(b, addr, cfg), b, nil
}
