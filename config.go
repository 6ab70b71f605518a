// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl372

import (
	"fmt"
)

// Config is a validated, immutable device configuration. The zero value
// matches the chip's power-on defaults. Values that can violate
// datasheet constraints only exist behind ConfigBuilder, so a Config
// obtained from Build is always legal.
type Config struct {
	odr          OutputDataRate
	bandwidth    Bandwidth
	powerMode    PowerMode
	wakeUpRate   WakeUpRate
	linkLoop     LinkLoopMode
	noise        NoiseMode
	threshold    InstantOnThreshold
	filterSettle FilterSettle
	autosleep    bool
	extClock     bool
	extSync      bool
	noOverrange  bool
	noLPF        bool
	noHPF        bool
	i2cHighSpeed bool
}

// ODR returns the configured output data rate.
func (c Config) ODR() OutputDataRate { return c.odr }

// Bandwidth returns the configured filter bandwidth.
func (c Config) Bandwidth() Bandwidth { return c.bandwidth }

// PowerMode returns the configured operating mode.
func (c Config) PowerMode() PowerMode { return c.powerMode }

// FilterSettle returns the configured filter settling period.
func (c Config) FilterSettle() FilterSettle { return c.filterSettle }

func (c Config) String() string {
	return fmt.Sprintf("Config{ODR:%s BW:%s Mode:%s Noise:%s Settle:%s}",
		c.odr, c.bandwidth, c.powerMode, c.noise, c.filterSettle)
}

// validate applies the datasheet legality rules. The bandwidth rule is
// the Nyquist criterion: the filter corner may not exceed half the
// output data rate.
func (c Config) validate() error {
	if c.odr.Hz() == 0 {
		return fmt.Errorf("%w: unknown output data rate %d", ErrInvalidConfig, uint8(c.odr))
	}
	if c.bandwidth.MaxHz() == 0 {
		return fmt.Errorf("%w: unknown bandwidth %d", ErrInvalidConfig, uint8(c.bandwidth))
	}
	if c.powerMode > Measurement {
		return fmt.Errorf("%w: unknown power mode %d", ErrInvalidConfig, uint8(c.powerMode))
	}
	if c.bandwidth.MaxHz()*2 > c.odr.Hz() {
		return fmt.Errorf("%w: bandwidth %s exceeds half the output data rate %s",
			ErrInvalidConfig, c.bandwidth, c.odr)
	}
	return nil
}

// regWrite is one entry of the flat register programming list.
type regWrite struct {
	reg uint8
	val uint8
}

// registerWrites packs the configuration into the ordered (register,
// byte) list Init writes to the chip. POWER_CTL comes last so timing
// and filter settings are in place before a mode change takes effect.
func (c Config) registerWrites() [3]regWrite {
	return [3]regWrite{
		{RegTiming, c.timingByte()},
		{RegMeasure, c.measureByte()},
		{RegPowerCtl, c.powerCtlByte()},
	}
}

func (c Config) timingByte() uint8 {
	v := uint8(c.odr)&timingODRMask<<timingODRShift |
		uint8(c.wakeUpRate)&timingWakeMask<<timingWakeShift
	if c.extClock {
		v |= timingExtClkBit
	}
	if c.extSync {
		v |= timingExtSyncBit
	}
	return v
}

func (c Config) measureByte() uint8 {
	v := uint8(c.linkLoop)&measureLinkMask<<measureLinkShift |
		uint8(c.bandwidth)&measureBWMask
	if c.noise == NoiseLow {
		v |= measureLowNoiseBit
	}
	if c.autosleep {
		v |= measureAutosleepBit
	}
	if c.noOverrange {
		v |= measureOverrangeBit
	}
	return v
}

func (c Config) powerCtlByte() uint8 {
	v := uint8(c.powerMode) & powerModeMask
	if c.filterSettle == FilterSettle16ms {
		v |= powerFilterSettleBit
	}
	if c.threshold == ThresholdHigh {
		v |= powerInstantOnBit
	}
	if c.noLPF {
		v |= powerLPFDisableBit
	}
	if c.noHPF {
		v |= powerHPFDisableBit
	}
	if c.i2cHighSpeed {
		v |= powerI2CHighSpeedBit
	}
	return v
}

// configFromRegisters decodes the three configuration registers back
// into a Config. It is the inverse of registerWrites for every field
// the registers carry.
func configFromRegisters(timing, measure, powerCtl uint8) Config {
	t := timingReg(timing)
	m := measureReg(measure)
	p := powerCtlReg(powerCtl)
	return Config{
		odr:          t.odr(),
		bandwidth:    m.bandwidth(),
		powerMode:    p.mode(),
		wakeUpRate:   t.wakeUpRate(),
		linkLoop:     m.linkLoop(),
		noise:        m.noise(),
		threshold:    p.instantOnThreshold(),
		filterSettle: p.filterSettle(),
		autosleep:    m.autosleep(),
		extClock:     t.externalClock(),
		extSync:      t.externalSync(),
		noOverrange:  m.overrangeDisabled(),
		noLPF:        p.lpfDisabled(),
		noHPF:        p.hpfDisabled(),
		i2cHighSpeed: p.i2cHighSpeed(),
	}
}

// ConfigBuilder assembles a Config. Obtain one from NewConfig, chain
// the setters and finish with Build.
type ConfigBuilder struct {
	c Config
}

// NewConfig returns a builder seeded with the chip's power-on defaults:
// 400Hz ODR, 200Hz bandwidth, standby mode, 370ms filter settling, all
// filters enabled.
func NewConfig() *ConfigBuilder {
	return &ConfigBuilder{}
}

// ODR sets the output data rate.
func (b *ConfigBuilder) ODR(o OutputDataRate) *ConfigBuilder {
	b.c.odr = o
	return b
}

// Bandwidth sets the low-pass filter corner frequency.
func (b *ConfigBuilder) Bandwidth(bw Bandwidth) *ConfigBuilder {
	b.c.bandwidth = bw
	return b
}

// PowerMode sets the operating mode entered at the end of Init.
func (b *ConfigBuilder) PowerMode(m PowerMode) *ConfigBuilder {
	b.c.powerMode = m
	return b
}

// WakeUpRate sets the wake-up mode timer period.
func (b *ConfigBuilder) WakeUpRate(w WakeUpRate) *ConfigBuilder {
	b.c.wakeUpRate = w
	return b
}

// LinkLoop sets the activity/inactivity processing mode.
func (b *ConfigBuilder) LinkLoop(l LinkLoopMode) *ConfigBuilder {
	b.c.linkLoop = l
	return b
}

// Noise sets the noise performance mode.
func (b *ConfigBuilder) Noise(n NoiseMode) *ConfigBuilder {
	b.c.noise = n
	return b
}

// InstantOnThreshold sets the instant-on arming threshold.
func (b *ConfigBuilder) InstantOnThreshold(t InstantOnThreshold) *ConfigBuilder {
	b.c.threshold = t
	return b
}

// FilterSettle sets the settling period applied after entering
// measurement mode.
func (b *ConfigBuilder) FilterSettle(f FilterSettle) *ConfigBuilder {
	b.c.filterSettle = f
	return b
}

// Autosleep enables automatic transitions between wake-up and
// measurement mode driven by the activity detectors.
func (b *ConfigBuilder) Autosleep(on bool) *ConfigBuilder {
	b.c.autosleep = on
	return b
}

// ExternalClock clocks the chip from the EXT_CLK pin.
func (b *ConfigBuilder) ExternalClock(on bool) *ConfigBuilder {
	b.c.extClock = on
	return b
}

// ExternalSync triggers sampling from the EXT_SYNC pin.
func (b *ConfigBuilder) ExternalSync(on bool) *ConfigBuilder {
	b.c.extSync = on
	return b
}

// DisableOverrange suppresses the user overrange indication.
func (b *ConfigBuilder) DisableOverrange(off bool) *ConfigBuilder {
	b.c.noOverrange = off
	return b
}

// DisableLowPass removes the low-pass filter from the signal path.
func (b *ConfigBuilder) DisableLowPass(off bool) *ConfigBuilder {
	b.c.noLPF = off
	return b
}

// DisableHighPass removes the high-pass filter from the signal path.
func (b *ConfigBuilder) DisableHighPass(off bool) *ConfigBuilder {
	b.c.noHPF = off
	return b
}

// I2CHighSpeed enables I²C high-speed mode (3.4MHz).
func (b *ConfigBuilder) I2CHighSpeed(on bool) *ConfigBuilder {
	b.c.i2cHighSpeed = on
	return b
}

// Build validates the assembled settings and returns the immutable
// Config. Combinations the datasheet marks illegal are rejected with
// ErrInvalidConfig rather than clamped, so a surprising setting never
// reaches the bus silently.
func (b *ConfigBuilder) Build() (Config, error) {
	if err := b.c.validate(); err != nil {
		return Config{}, err
	}
	return b.c, nil
}
