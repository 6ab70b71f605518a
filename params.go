// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl372

import (
	"fmt"
	"time"
)

// OutputDataRate selects the sampling frequency of the internal
// conversion. The values map directly to TIMING[7:5].
type OutputDataRate uint8

const (
	ODR400Hz OutputDataRate = iota
	ODR800Hz
	ODR1600Hz
	ODR3200Hz
	ODR4000Hz
)

// Hz returns the output data rate in hertz.
func (o OutputDataRate) Hz() uint32 {
	switch o {
	case ODR400Hz:
		return 400
	case ODR800Hz:
		return 800
	case ODR1600Hz:
		return 1600
	case ODR3200Hz:
		return 3200
	case ODR4000Hz:
		return 4000
	}
	return 0
}

func (o OutputDataRate) String() string {
	if o.Hz() == 0 {
		return fmt.Sprintf("OutputDataRate(%d)", uint8(o))
	}
	return fmt.Sprintf("%dHz", o.Hz())
}

// Bandwidth selects the corner frequency of the low-pass filter applied
// to samples before output. The values map directly to MEASURE[2:0].
type Bandwidth uint8

const (
	BW200Hz Bandwidth = iota
	BW400Hz
	BW800Hz
	BW1600Hz
)

// MaxHz returns the filter corner frequency in hertz.
func (b Bandwidth) MaxHz() uint32 {
	switch b {
	case BW200Hz:
		return 200
	case BW400Hz:
		return 400
	case BW800Hz:
		return 800
	case BW1600Hz:
		return 1600
	}
	return 0
}

func (b Bandwidth) String() string {
	if b.MaxHz() == 0 {
		return fmt.Sprintf("Bandwidth(%d)", uint8(b))
	}
	return fmt.Sprintf("%dHz", b.MaxHz())
}

// PowerMode selects the operating state of the chip, POWER_CTL[1:0].
type PowerMode uint8

const (
	// Standby keeps the chip configured but not converting.
	Standby PowerMode = iota
	// WakeUp samples at the configured wake-up rate for motion detection.
	WakeUp
	// InstantOn arms the chip to start measuring after an impact above
	// the instant-on threshold.
	InstantOn
	// Measurement is the full-bandwidth continuous conversion mode.
	Measurement
)

func (p PowerMode) String() string {
	switch p {
	case Standby:
		return "standby"
	case WakeUp:
		return "wake-up"
	case InstantOn:
		return "instant-on"
	case Measurement:
		return "measurement"
	}
	return fmt.Sprintf("PowerMode(%d)", uint8(p))
}

// WakeUpRate selects the timer period between samples in wake-up mode,
// TIMING[4:2].
type WakeUpRate uint8

const (
	WakeUpRate52ms WakeUpRate = iota
	WakeUpRate104ms
	WakeUpRate208ms
	WakeUpRate512ms
	WakeUpRate2048ms
	WakeUpRate4096ms
	WakeUpRate8192ms
	WakeUpRate24576ms
)

var wakeUpRateMillis = [...]uint32{52, 104, 208, 512, 2048, 4096, 8192, 24576}

// Duration returns the wake-up timer period.
func (w WakeUpRate) Duration() time.Duration {
	if int(w) >= len(wakeUpRateMillis) {
		return 0
	}
	return time.Duration(wakeUpRateMillis[w]) * time.Millisecond
}

func (w WakeUpRate) String() string {
	if int(w) >= len(wakeUpRateMillis) {
		return fmt.Sprintf("WakeUpRate(%d)", uint8(w))
	}
	return fmt.Sprintf("%dms", wakeUpRateMillis[w])
}

// LinkLoopMode selects how the activity and inactivity detectors
// interact, MEASURE[5:4].
type LinkLoopMode uint8

const (
	// LinkLoopDefault runs both detectors concurrently.
	LinkLoopDefault LinkLoopMode = iota
	// Linked serializes activity then inactivity detection.
	Linked
	// Looped repeats the linked sequence autonomously.
	Looped
)

func (l LinkLoopMode) String() string {
	switch l {
	case LinkLoopDefault:
		return "default"
	case Linked:
		return "linked"
	case Looped:
		return "looped"
	}
	return fmt.Sprintf("LinkLoopMode(%d)", uint8(l))
}

// NoiseMode selects the noise performance trade-off, MEASURE[3].
type NoiseMode uint8

const (
	NoiseNormal NoiseMode = iota
	NoiseLow
)

func (n NoiseMode) String() string {
	if n == NoiseLow {
		return "low-noise"
	}
	return "normal"
}

// InstantOnThreshold selects the impact level that wakes the chip from
// instant-on mode, POWER_CTL[5].
type InstantOnThreshold uint8

const (
	// ThresholdLow arms instant-on mode between 10g and 15g.
	ThresholdLow InstantOnThreshold = iota
	// ThresholdHigh arms instant-on mode between 30g and 40g.
	ThresholdHigh
)

func (i InstantOnThreshold) String() string {
	if i == ThresholdHigh {
		return "high"
	}
	return "low"
}

// FilterSettle selects how long the chip settles its filters after
// entering measurement mode, POWER_CTL[4].
type FilterSettle uint8

const (
	// FilterSettle370ms is the full settling period, required whenever
	// the internal filters are in the signal path. Chip reset default.
	FilterSettle370ms FilterSettle = iota
	// FilterSettle16ms is the reduced settling period for filter-bypass
	// operation.
	FilterSettle16ms
)

// Duration returns the settling time to wait after entering measurement
// mode.
func (f FilterSettle) Duration() time.Duration {
	if f == FilterSettle16ms {
		return 16 * time.Millisecond
	}
	return 370 * time.Millisecond
}

func (f FilterSettle) String() string {
	if f == FilterSettle16ms {
		return "16ms"
	}
	return "370ms"
}
