// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl372

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/spi"
)

var _ conn.Resource = &Dev{}

// Delay is the sleep capability Init and SelfTest use for datasheet
// settling times. Pass nil to use time.Sleep; tests substitute a
// recording implementation.
type Delay func(d time.Duration)

// powerUpDelay is the datasheet power-up (and post-reset) to standby
// time.
const powerUpDelay = 5 * time.Millisecond

// MilliGPerLSB is the fixed sensitivity of the ±200g range.
const MilliGPerLSB = 100

// rawSampleBytes spans the six X, Y, Z data registers.
const rawSampleBytes = 6

type devState uint8

const (
	// stateUninitialized is the state at construction and after any
	// failed Init, Reset or Halt. Sample reads are refused.
	stateUninitialized devState = iota
	// stateReady is entered only by a fully successful Init.
	stateReady
)

// Dev is a driver for the ADXL372. It owns its Transport exclusively
// for its lifetime; the chip bus must not be shared with another
// execution context. All operations block until the bus transaction
// completes or fails, and no operation retries internally.
type Dev struct {
	t     Transport
	cfg   Config
	state devState
}

// ID collects the four identification registers.
type ID struct {
	DeviceID byte
	MEMSID   byte
	PartID   byte
	Revision byte
}

func (id ID) String() string {
	return fmt.Sprintf("0x%02X/0x%02X/0x%02X rev %d", id.DeviceID, id.MEMSID, id.PartID, id.Revision)
}

// Status is a decoded snapshot of the STATUS and STATUS2 registers.
type Status struct {
	DataReady   bool
	FIFOReady   bool
	FIFOFull    bool
	FIFOOverrun bool
	UserNVMBusy bool
	Awake       bool
	ErrUserRegs bool
	Activity    bool
	Activity2   bool
	Inactivity  bool
}

// New returns a Dev using the given transport and configuration. No
// bus traffic happens until Init.
func New(t Transport, cfg Config) *Dev {
	return &Dev{t: t, cfg: cfg}
}

// NewSPI returns a Dev connected over SPI. No bus traffic happens
// until Init.
func NewSPI(p spi.Port, cfg Config) (*Dev, error) {
	t, err := NewSPITransport(p)
	if err != nil {
		return nil, err
	}
	return New(t, cfg), nil
}

// NewI2C returns a Dev connected over I²C at addr. No bus traffic
// happens until Init.
func NewI2C(b i2c.Bus, addr uint16, cfg Config) *Dev {
	return New(NewI2CTransport(b, addr), cfg)
}

func (d *Dev) String() string {
	return fmt.Sprintf("ADXL372{%s}", d.t)
}

// Config returns the configuration the device was built with.
func (d *Dev) Config() Config {
	return d.cfg
}

// Ready reports whether Init has completed successfully.
func (d *Dev) Ready() bool {
	return d.state == stateReady
}

// Init brings the chip from power-on to the configured operating mode:
// verify the identification registers, soft-reset, program the
// configuration registers in datasheet order with the mode change last,
// then wait the filter settling time when entering measurement mode.
//
// On any failure the sequence aborts immediately, the underlying error
// is returned and the device stays uninitialized; Init can be called
// again after the fault is resolved.
func (d *Dev) Init(delay Delay) error {
	if delay == nil {
		delay = time.Sleep
	}
	d.state = stateUninitialized

	delay(powerUpDelay)
	if err := d.cfg.validate(); err != nil {
		return err
	}
	if _, err := d.checkID(); err != nil {
		return err
	}
	if err := d.reset(delay); err != nil {
		return err
	}
	for _, w := range d.cfg.registerWrites() {
		if err := d.t.WriteRegister(w.reg, w.val); err != nil {
			return fmt.Errorf("adxl372: writing register 0x%02X: %w", w.reg, err)
		}
	}
	if d.cfg.powerMode == Measurement {
		delay(d.cfg.filterSettle.Duration())
	}
	d.state = stateReady
	return nil
}

// checkID reads the identification registers in one burst and verifies
// them.
func (d *Dev) checkID() (ID, error) {
	var raw [4]byte
	if err := d.t.ReadBurst(RegDevIDAD, raw[:]); err != nil {
		return ID{}, fmt.Errorf("adxl372: reading identity: %w", err)
	}
	id := ID{DeviceID: raw[0], MEMSID: raw[1], PartID: raw[2], Revision: raw[3]}
	if id.DeviceID != devIDAnalog || id.MEMSID != devIDMEMS || id.PartID != partID {
		return id, &IdentityError{DeviceID: id.DeviceID, MEMSID: id.MEMSID, PartID: id.PartID}
	}
	return id, nil
}

// ID reads and verifies the identification registers. It does not
// require a prior Init, so it can probe the wiring.
func (d *Dev) ID() (ID, error) {
	return d.checkID()
}

// ReadRaw reads one acceleration sample for all three axes. It fails
// with ErrNotReady, without touching the bus, unless Init succeeded.
func (d *Dev) ReadRaw() ([3]int16, error) {
	if d.state != stateReady {
		return [3]int16{}, ErrNotReady
	}
	return d.readRaw()
}

// readRaw is ReadRaw without the readiness guard, for use during the
// self-test sequence which runs on an uninitialized device.
func (d *Dev) readRaw() ([3]int16, error) {
	var raw [rawSampleBytes]byte
	if err := d.t.ReadBurst(RegXDataH, raw[:]); err != nil {
		return [3]int16{}, fmt.Errorf("adxl372: reading sample: %w", err)
	}
	return [3]int16{
		unpackAxis(raw[0], raw[1]),
		unpackAxis(raw[2], raw[3]),
		unpackAxis(raw[4], raw[5]),
	}, nil
}

// ReadXRaw reads a single X-axis sample.
func (d *Dev) ReadXRaw() (int16, error) { return d.readAxis(RegXDataH) }

// ReadYRaw reads a single Y-axis sample.
func (d *Dev) ReadYRaw() (int16, error) { return d.readAxis(RegYDataH) }

// ReadZRaw reads a single Z-axis sample.
func (d *Dev) ReadZRaw() (int16, error) { return d.readAxis(RegZDataH) }

func (d *Dev) readAxis(reg uint8) (int16, error) {
	if d.state != stateReady {
		return 0, ErrNotReady
	}
	var raw [2]byte
	if err := d.t.ReadBurst(reg, raw[:]); err != nil {
		return 0, fmt.Errorf("adxl372: reading sample: %w", err)
	}
	return unpackAxis(raw[0], raw[1]), nil
}

// ReadMilliG reads one sample and scales it to milli-g.
func (d *Dev) ReadMilliG() ([3]int32, error) {
	raw, err := d.ReadRaw()
	if err != nil {
		return [3]int32{}, err
	}
	return [3]int32{toMilliG(raw[0]), toMilliG(raw[1]), toMilliG(raw[2])}, nil
}

// ReadStatus reads the STATUS and STATUS2 registers in one burst.
// Reading status clears latched flags on the chip. It is a diagnostic
// and does not require a prior Init.
func (d *Dev) ReadStatus() (Status, error) {
	var raw [2]byte
	if err := d.t.ReadBurst(RegStatus, raw[:]); err != nil {
		return Status{}, fmt.Errorf("adxl372: reading status: %w", err)
	}
	return Status{
		DataReady:   raw[0]&statusDataReadyBit != 0,
		FIFOReady:   raw[0]&statusFIFOReadyBit != 0,
		FIFOFull:    raw[0]&statusFIFOFullBit != 0,
		FIFOOverrun: raw[0]&statusFIFOOverrunBit != 0,
		UserNVMBusy: raw[0]&statusUserNVMBusyBit != 0,
		Awake:       raw[0]&statusAwakeBit != 0,
		ErrUserRegs: raw[0]&statusErrUserRegsBit != 0,
		Activity:    raw[1]&status2ActivityBit != 0,
		Activity2:   raw[1]&status2Activity2Bit != 0,
		Inactivity:  raw[1]&status2InactivityBit != 0,
	}, nil
}

// ReadConfig reads the three configuration registers back from the
// chip and decodes them. The result round-trips with the packed bytes
// a Config produces.
func (d *Dev) ReadConfig() (Config, error) {
	var raw [3]byte
	if err := d.t.ReadBurst(RegTiming, raw[:]); err != nil {
		return Config{}, fmt.Errorf("adxl372: reading configuration: %w", err)
	}
	return configFromRegisters(raw[0], raw[1], raw[2]), nil
}

// Reset issues a soft reset, returning every register to its power-on
// default. The device drops back to uninitialized; call Init to use it
// again.
func (d *Dev) Reset() error {
	d.state = stateUninitialized
	return d.reset(time.Sleep)
}

func (d *Dev) reset(delay Delay) error {
	if err := d.t.WriteRegister(RegReset, resetCode); err != nil {
		return fmt.Errorf("adxl372: resetting: %w", err)
	}
	delay(powerUpDelay)
	return nil
}

// Halt places the chip in standby. The device drops back to
// uninitialized. Implements conn.Resource.
func (d *Dev) Halt() error {
	d.state = stateUninitialized
	return d.updateRegister(RegPowerCtl, func(v uint8) uint8 {
		return uint8(powerCtlReg(v).withMode(Standby))
	})
}

// updateRegister read-modify-writes a register, skipping the write when
// nothing changed.
func (d *Dev) updateRegister(reg uint8, mutate func(uint8) uint8) error {
	cur, err := d.t.ReadRegister(reg)
	if err != nil {
		return fmt.Errorf("adxl372: reading register 0x%02X: %w", reg, err)
	}
	next := mutate(cur)
	if next == cur {
		return nil
	}
	if err := d.t.WriteRegister(reg, next); err != nil {
		return fmt.Errorf("adxl372: writing register 0x%02X: %w", reg, err)
	}
	return nil
}

// unpackAxis reconstructs one axis from its two data registers. The
// sensor outputs 12-bit left-justified two's complement data, high
// byte first; the arithmetic shift performs the sign extension.
func unpackAxis(high, low byte) int16 {
	return int16(uint16(high)<<8|uint16(low)) >> 4
}

func toMilliG(v int16) int32 {
	return int32(v) * MilliGPerLSB
}
