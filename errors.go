// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package adxl372

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned by ConfigBuilder.Build, and again by
	// Init as a last line of defense, when a setting combination the
	// datasheet marks illegal is requested.
	ErrInvalidConfig = errors.New("adxl372: invalid configuration")

	// ErrNotReady is returned by sample reads before a successful Init.
	ErrNotReady = errors.New("adxl372: device not initialized")
)

// IdentityError reports that the identification registers did not match
// the ADXL372 constants. It usually means the wrong chip, the wrong bus
// address, or a wiring fault.
type IdentityError struct {
	DeviceID byte // expected 0xAD
	MEMSID   byte // expected 0x1D
	PartID   byte // expected 0xFA
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("adxl372: unexpected device identity 0x%02X/0x%02X/0x%02X, want 0xAD/0x1D/0xFA",
		e.DeviceID, e.MEMSID, e.PartID)
}
