// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl372

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Transport abstracts byte-level access to the chip's register space so
// the driver is identical over SPI and I²C. Every call issues a real
// bus transaction; nothing is cached. Bus faults are returned to the
// caller unchanged, a failed read never yields a substitute value.
type Transport interface {
	// ReadRegister reads a single register.
	ReadRegister(reg uint8) (uint8, error)
	// WriteRegister writes a single register.
	WriteRegister(reg uint8, val uint8) error
	// ReadBurst reads len(buf) consecutive registers starting at reg in
	// one framed transaction. The chip auto-increments the register
	// address during multi-byte transfers.
	ReadBurst(reg uint8, buf []byte) error
	// WriteBurst writes len(data) consecutive registers starting at reg.
	WriteBurst(reg uint8, data []byte) error
	fmt.Stringer
}

// SPI connection parameters. The ADXL372 supports SPI clocks up to
// 10MHz in mode 0.
var (
	SPIFrequency = 10 * physic.MegaHertz
	SPIMode      = spi.Mode0
	SPIBits      = 8
)

// DefaultI2CAddr is the I²C address with the ASEL pin low. With ASEL
// high the chip answers at 0x53.
const DefaultI2CAddr uint16 = 0x1D

// spiRead is OR'd into the SPI command byte to request a read. The
// 7-bit register address occupies the upper bits of the command byte.
const spiRead = 0x01

type spiTransport struct {
	c spi.Conn
}

// NewSPITransport connects to the chip on the given SPI port.
func NewSPITransport(p spi.Port) (Transport, error) {
	c, err := p.Connect(SPIFrequency, SPIMode, SPIBits)
	if err != nil {
		return nil, fmt.Errorf("adxl372: connecting SPI: %w", err)
	}
	return &spiTransport{c: c}, nil
}

func (t *spiTransport) ReadRegister(reg uint8) (uint8, error) {
	var buf [1]byte
	if err := t.ReadBurst(reg, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (t *spiTransport) WriteRegister(reg, val uint8) error {
	return t.WriteBurst(reg, []byte{val})
}

func (t *spiTransport) ReadBurst(reg uint8, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	// Full-duplex frame: the command byte clocks out first, the chip
	// streams register contents while the filler bytes clock out.
	w := make([]byte, 1+len(buf))
	w[0] = reg<<1 | spiRead
	r := make([]byte, len(w))
	if err := t.c.Tx(w, r); err != nil {
		return err
	}
	copy(buf, r[1:])
	return nil
}

func (t *spiTransport) WriteBurst(reg uint8, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	w := make([]byte, 1+len(data))
	w[0] = reg << 1
	copy(w[1:], data)
	return t.c.Tx(w, nil)
}

func (t *spiTransport) String() string {
	return fmt.Sprintf("SPI{%s}", t.c)
}

type i2cTransport struct {
	d *i2c.Dev
}

// NewI2CTransport connects to the chip at addr on the given I²C bus.
// Use DefaultI2CAddr unless the ASEL pin is pulled high.
func NewI2CTransport(b i2c.Bus, addr uint16) Transport {
	return &i2cTransport{d: &i2c.Dev{Bus: b, Addr: addr}}
}

func (t *i2cTransport) ReadRegister(reg uint8) (uint8, error) {
	var buf [1]byte
	if err := t.ReadBurst(reg, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (t *i2cTransport) WriteRegister(reg, val uint8) error {
	return t.WriteBurst(reg, []byte{val})
}

func (t *i2cTransport) ReadBurst(reg uint8, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return t.d.Tx([]byte{reg}, buf)
}

func (t *i2cTransport) WriteBurst(reg uint8, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	w := make([]byte, 1+len(data))
	w[0] = reg
	copy(w[1:], data)
	return t.d.Tx(w, nil)
}

func (t *i2cTransport) String() string {
	return fmt.Sprintf("I2C{%s}", t.d)
}
