// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl372_test

import (
	"fmt"
	"log"
	"time"

	"github.com/GermanBionicSystems/adxl372"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Example reads acceleration over I²C.
func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Use i2creg I²C bus registry to find the first available I²C bus.
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer b.Close()

	cfg, err := adxl372.NewConfig().
		ODR(adxl372.ODR1600Hz).
		Bandwidth(adxl372.BW400Hz).
		PowerMode(adxl372.Measurement).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	d := adxl372.NewI2C(b, adxl372.DefaultI2CAddr, cfg)
	if err := d.Init(nil); err != nil {
		log.Fatalf("failed to initialize ADXL372: %v", err)
	}
	defer d.Halt()

	for i := 0; i < 10; i++ {
		mg, err := d.ReadMilliG()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("X:%6dmg Y:%6dmg Z:%6dmg\n", mg[0], mg[1], mg[2])
		time.Sleep(100 * time.Millisecond)
	}
}

// ExampleNewSPI reads acceleration over SPI.
func ExampleNewSPI() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	p, err := spireg.Open("")
	if err != nil {
		log.Fatalf("failed to open SPI: %v", err)
	}
	defer p.Close()

	cfg, err := adxl372.NewConfig().
		ODR(adxl372.ODR4000Hz).
		Bandwidth(adxl372.BW1600Hz).
		PowerMode(adxl372.Measurement).
		FilterSettle(adxl372.FilterSettle370ms).
		Build()
	if err != nil {
		log.Fatal(err)
	}

	d, err := adxl372.NewSPI(p, cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := d.Init(nil); err != nil {
		log.Fatalf("failed to initialize ADXL372: %v", err)
	}
	defer d.Halt()

	raw, err := d.ReadRaw()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("X:%d Y:%d Z:%d\n", raw[0], raw[1], raw[2])
}

// ExampleDev_SelfTest verifies the sensor responds to electrostatic
// excitation. Run it before Init.
func ExampleDev_SelfTest() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	b, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	d := adxl372.NewI2C(b, adxl372.DefaultI2CAddr, adxl372.Config{})
	report, err := d.SelfTest(nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("passed=%t deltaZ=%d LSB\n", report.Passed, report.DeltaZ)
}
