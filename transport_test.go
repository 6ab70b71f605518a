// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl372

import (
	"testing"

	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/spi/spitest"
)

// The SPI command byte carries the 7-bit register address shifted left,
// with the read bit in position 0.
func TestSPIWriteFraming(t *testing.T) {
	record := &spitest.Record{}
	tr, err := NewSPITransport(record)
	if err != nil {
		t.Fatal(err)
	}
	if err := tr.WriteRegister(RegPowerCtl, 0x03); err != nil {
		t.Fatal(err)
	}
	if err := tr.WriteBurst(RegTiming, []byte{0x60, 0x02}); err != nil {
		t.Fatal(err)
	}
	expected := []conntest.IO{
		{W: []byte{0x7E, 0x03}},
		{W: []byte{0x7A, 0x60, 0x02}},
	}
	if len(record.Ops) != len(expected) {
		t.Fatalf("recorded %d operations, want %d", len(record.Ops), len(expected))
	}
	for i := range expected {
		if len(record.Ops[i].W) != len(expected[i].W) {
			t.Fatalf("op %d: wrote % X, want % X", i, record.Ops[i].W, expected[i].W)
		}
		for j := range expected[i].W {
			if record.Ops[i].W[j] != expected[i].W[j] {
				t.Errorf("op %d byte %d: 0x%02X, want 0x%02X", i, j, record.Ops[i].W[j], expected[i].W[j])
			}
		}
	}
}

func TestSPIReadFraming(t *testing.T) {
	pb := &spitest.Playback{
		Playback: conntest.Playback{
			Ops: []conntest.IO{
				// Part ID: command 0x05, one filler byte clocks the reply out.
				{W: []byte{0x05, 0x00}, R: []byte{0x00, 0xFA}},
				// Six-register sample burst from XDATA_H (command 0x11).
				{
					W: []byte{0x11, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
					R: []byte{0x00, 0x00, 0x10, 0xFF, 0xF0, 0x12, 0x34},
				},
			},
			DontPanic: true,
		},
	}
	tr, err := NewSPITransport(pb)
	if err != nil {
		t.Fatal(err)
	}
	v, err := tr.ReadRegister(RegPartID)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0xFA {
		t.Fatalf("ReadRegister(RegPartID) = 0x%02X, want 0xFA", v)
	}
	var buf [6]byte
	if err := tr.ReadBurst(RegXDataH, buf[:]); err != nil {
		t.Fatal(err)
	}
	if buf != [6]byte{0x00, 0x10, 0xFF, 0xF0, 0x12, 0x34} {
		t.Fatalf("ReadBurst = % X", buf)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

// I²C framing: register address byte, then payload, in one transaction.
func TestI2CFraming(t *testing.T) {
	bus := i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: DefaultI2CAddr, W: []byte{RegPowerCtl, 0x03}},
			{Addr: DefaultI2CAddr, W: []byte{RegPartID}, R: []byte{0xFA}},
			{Addr: DefaultI2CAddr, W: []byte{RegXDataH}, R: []byte{0x00, 0x10, 0xFF, 0xF0, 0x12, 0x34}},
		},
	}
	tr := NewI2CTransport(&bus, DefaultI2CAddr)
	if err := tr.WriteRegister(RegPowerCtl, 0x03); err != nil {
		t.Fatal(err)
	}
	v, err := tr.ReadRegister(RegPartID)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0xFA {
		t.Fatalf("ReadRegister(RegPartID) = 0x%02X, want 0xFA", v)
	}
	var buf [6]byte
	if err := tr.ReadBurst(RegXDataH, buf[:]); err != nil {
		t.Fatal(err)
	}
	if buf != [6]byte{0x00, 0x10, 0xFF, 0xF0, 0x12, 0x34} {
		t.Fatalf("ReadBurst = % X", buf)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

// Zero-length bursts must not touch the bus.
func TestEmptyBursts(t *testing.T) {
	bus := i2ctest.Playback{}
	tr := NewI2CTransport(&bus, DefaultI2CAddr)
	if err := tr.ReadBurst(RegXDataH, nil); err != nil {
		t.Fatal(err)
	}
	if err := tr.WriteBurst(RegTiming, nil); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}
