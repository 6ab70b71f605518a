// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl372

// Register addresses. They mirror Table 12 of the datasheet and are the
// single place in the driver where chip addresses appear.
const (
	RegDevIDAD      = 0x00 // Analog Devices ID, reads 0xAD
	RegDevIDMST     = 0x01 // Analog Devices MEMS ID, reads 0x1D
	RegPartID       = 0x02 // Part ID, reads 0xFA
	RegRevID        = 0x03 // Silicon revision
	RegStatus       = 0x04 // Status
	RegStatus2      = 0x05 // Activity status
	RegFIFOEntries2 = 0x06 // FIFO level, high bits
	RegFIFOEntries  = 0x07 // FIFO level, low byte
	RegXDataH       = 0x08 // X-axis data, high byte
	RegXDataL       = 0x09 // X-axis data, low byte
	RegYDataH       = 0x0A // Y-axis data, high byte
	RegYDataL       = 0x0B // Y-axis data, low byte
	RegZDataH       = 0x0C // Z-axis data, high byte
	RegZDataL       = 0x0D // Z-axis data, low byte
	RegFIFOSamples  = 0x39 // FIFO watermark
	RegFIFOCtl      = 0x3A // FIFO control
	RegInt1Map      = 0x3B // INT1 function map
	RegInt2Map      = 0x3C // INT2 function map
	RegTiming       = 0x3D // ODR, wake-up rate, external timing
	RegMeasure      = 0x3E // Bandwidth, noise, link/loop
	RegPowerCtl     = 0x3F // Filters, settle time, operating mode
	RegSelfTest     = 0x40 // Self-test trigger and result
	RegReset        = 0x41 // Soft reset, write 0x52
	RegFIFOData     = 0x42 // FIFO read port
)

// Expected identification bytes.
const (
	devIDAnalog = 0xAD
	devIDMEMS   = 0x1D
	partID      = 0xFA
)

// resetCode written to RegReset restores all registers to their
// power-on defaults.
const resetCode = 0x52

// TIMING register layout.
const (
	timingODRShift   = 5
	timingODRMask    = 0x7
	timingWakeShift  = 2
	timingWakeMask   = 0x7
	timingExtClkBit  = 1 << 1
	timingExtSyncBit = 1 << 0
)

type timingReg uint8

func (t timingReg) odr() OutputDataRate { return OutputDataRate(t >> timingODRShift & timingODRMask) }
func (t timingReg) wakeUpRate() WakeUpRate {
	return WakeUpRate(t >> timingWakeShift & timingWakeMask)
}
func (t timingReg) externalClock() bool { return t&timingExtClkBit != 0 }
func (t timingReg) externalSync() bool  { return t&timingExtSyncBit != 0 }

// MEASURE register layout.
const (
	measureOverrangeBit = 1 << 7
	measureAutosleepBit = 1 << 6
	measureLinkShift    = 4
	measureLinkMask     = 0x3
	measureLowNoiseBit  = 1 << 3
	measureBWMask       = 0x7
)

type measureReg uint8

func (m measureReg) bandwidth() Bandwidth { return Bandwidth(m & measureBWMask) }
func (m measureReg) noise() NoiseMode {
	if m&measureLowNoiseBit != 0 {
		return NoiseLow
	}
	return NoiseNormal
}
func (m measureReg) linkLoop() LinkLoopMode {
	return LinkLoopMode(m >> measureLinkShift & measureLinkMask)
}
func (m measureReg) autosleep() bool         { return m&measureAutosleepBit != 0 }
func (m measureReg) overrangeDisabled() bool { return m&measureOverrangeBit != 0 }

// POWER_CTL register layout.
const (
	powerI2CHighSpeedBit = 1 << 7
	powerInstantOnBit    = 1 << 5
	powerFilterSettleBit = 1 << 4
	powerLPFDisableBit   = 1 << 3
	powerHPFDisableBit   = 1 << 2
	powerModeMask        = 0x3
)

type powerCtlReg uint8

func (p powerCtlReg) mode() PowerMode { return PowerMode(p & powerModeMask) }
func (p powerCtlReg) filterSettle() FilterSettle {
	if p&powerFilterSettleBit != 0 {
		return FilterSettle16ms
	}
	return FilterSettle370ms
}
func (p powerCtlReg) instantOnThreshold() InstantOnThreshold {
	if p&powerInstantOnBit != 0 {
		return ThresholdHigh
	}
	return ThresholdLow
}
func (p powerCtlReg) lpfDisabled() bool  { return p&powerLPFDisableBit != 0 }
func (p powerCtlReg) hpfDisabled() bool  { return p&powerHPFDisableBit != 0 }
func (p powerCtlReg) i2cHighSpeed() bool { return p&powerI2CHighSpeedBit != 0 }

func (p powerCtlReg) withMode(m PowerMode) powerCtlReg {
	return p&^powerModeMask | powerCtlReg(m)&powerModeMask
}

// STATUS register bits.
const (
	statusErrUserRegsBit = 1 << 7
	statusAwakeBit       = 1 << 6
	statusUserNVMBusyBit = 1 << 5
	statusFIFOOverrunBit = 1 << 3
	statusFIFOFullBit    = 1 << 2
	statusFIFOReadyBit   = 1 << 1
	statusDataReadyBit   = 1 << 0
)

// STATUS2 register bits.
const (
	status2Activity2Bit  = 1 << 6
	status2ActivityBit   = 1 << 5
	status2InactivityBit = 1 << 4
)

// SELF_TEST register bits.
const (
	selfTestUserBit    = 1 << 2
	selfTestDoneBit    = 1 << 1
	selfTestTriggerBit = 1 << 0
)
