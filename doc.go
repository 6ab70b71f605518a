// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package adxl372 provides a driver for the Analog Devices ADXL372
// three-axis ±200g MEMS accelerometer connected over SPI or I²C.
//
// The chip exposes a single byte-oriented register space on both buses.
// The driver validates a typed configuration, programs the timing,
// measurement and power-control registers in the order the datasheet
// requires, and reads 12-bit left-justified acceleration samples.
//
// Datasheet
//
//	https://www.analog.com/media/en/technical-documentation/data-sheets/adxl372.pdf
package adxl372
