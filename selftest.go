// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl372

import (
	"time"
)

// Self-test parameters from the datasheet and the ER001 errata: the
// routine runs at the default 400Hz ODR and compares 50ms averaging
// windows of the Z axis before and after electrostatic excitation.
const (
	selfTestWindow      = 20 // samples per 50ms window at 400Hz
	selfTestThresholdZ  = 5  // minimum |delta| in LSB
	selfTestTimeout     = 500 * time.Millisecond
	selfTestGuard       = 2 * time.Millisecond
	selfTestSamplePause = 2500 * time.Microsecond
	selfTestSettle      = 370 * time.Millisecond
)

// SelfTestReport is the outcome of the self-test routine.
type SelfTestReport struct {
	// Passed is true when the hardware flag is set, the Z-axis moved by
	// at least the expected amount and the routine did not time out.
	Passed bool
	// BaselineAvgZ is the average Z reading before excitation, in LSB.
	BaselineAvgZ int16
	// StimulatedAvgZ is the average Z reading while excited, in LSB.
	StimulatedAvgZ int16
	// DeltaZ is StimulatedAvgZ - BaselineAvgZ.
	DeltaZ int16
	// SamplesPerWindow is the number of samples each average covers.
	SamplesPerWindow int
	// UserFlag mirrors the chip's USER_ST result bit.
	UserFlag bool
	// TimedOut is true when ST_DONE never appeared within the timeout.
	TimedOut bool
}

// SelfTest runs the electrostatic self-test of the Z axis.
//
// The routine resets the chip to its defaults before sampling and
// resets it again when done, so run it before Init: any prior
// configuration is lost and the device is left uninitialized.
func (d *Dev) SelfTest(delay Delay) (SelfTestReport, error) {
	if delay == nil {
		delay = time.Sleep
	}
	d.state = stateUninitialized

	if err := d.reset(delay); err != nil {
		return SelfTestReport{}, err
	}
	// Measurement mode with the low-pass filter in path and the full
	// settling period, everything else at reset defaults.
	err := d.updateRegister(RegPowerCtl, func(v uint8) uint8 {
		p := powerCtlReg(v).withMode(Measurement)
		p &^= powerLPFDisableBit
		p &^= powerFilterSettleBit
		return uint8(p)
	})
	if err != nil {
		return SelfTestReport{}, err
	}
	delay(selfTestSettle)

	report, err := d.runSelfTest(delay)

	// Leave the chip at power-on defaults either way.
	if resetErr := d.reset(delay); err == nil && resetErr != nil {
		return SelfTestReport{}, resetErr
	}
	return report, err
}

func (d *Dev) runSelfTest(delay Delay) (SelfTestReport, error) {
	if err := d.setSelfTestTrigger(false); err != nil {
		return SelfTestReport{}, err
	}
	delay(selfTestGuard)
	if err := d.setSelfTestTrigger(true); err != nil {
		return SelfTestReport{}, err
	}

	var (
		baselineSum   int32
		baselineCount int
		rolling       [selfTestWindow]int16
		rollingSum    int32
		rollingCount  int
		rollingIndex  int
		elapsed       time.Duration
		timedOut      bool
		last          uint8
	)
	for {
		if elapsed >= selfTestTimeout {
			timedOut = true
			break
		}
		v, err := d.t.ReadRegister(RegSelfTest)
		if err != nil {
			return SelfTestReport{}, err
		}
		last = v
		if v&selfTestDoneBit != 0 {
			break
		}

		frame, err := d.readRaw()
		if err != nil {
			return SelfTestReport{}, err
		}
		z := frame[2]
		if baselineCount < selfTestWindow {
			baselineSum += int32(z)
			baselineCount++
		}
		if rollingCount == selfTestWindow {
			rollingSum -= int32(rolling[rollingIndex])
		} else {
			rollingCount++
		}
		rolling[rollingIndex] = z
		rollingSum += int32(z)
		rollingIndex = (rollingIndex + 1) % selfTestWindow

		delay(selfTestSamplePause)
		elapsed += selfTestSamplePause
	}

	if err := d.setSelfTestTrigger(false); err != nil {
		return SelfTestReport{}, err
	}

	report := SelfTestReport{
		UserFlag: last&selfTestUserBit != 0,
		TimedOut: timedOut || last&selfTestDoneBit == 0,
	}
	if baselineCount > 0 {
		report.BaselineAvgZ = int16(baselineSum / int32(baselineCount))
	}
	if rollingCount > 0 {
		report.StimulatedAvgZ = int16(rollingSum / int32(rollingCount))
	}
	report.DeltaZ = report.StimulatedAvgZ - report.BaselineAvgZ
	if baselineCount < rollingCount {
		report.SamplesPerWindow = baselineCount
	} else {
		report.SamplesPerWindow = rollingCount
	}
	delta := report.DeltaZ
	if delta < 0 {
		delta = -delta
	}
	report.Passed = !report.TimedOut && report.UserFlag && delta >= selfTestThresholdZ
	return report, nil
}

func (d *Dev) setSelfTestTrigger(on bool) error {
	return d.updateRegister(RegSelfTest, func(v uint8) uint8 {
		if on {
			return v | selfTestTriggerBit
		}
		return v &^ selfTestTriggerBit
	})
}
