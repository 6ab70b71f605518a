// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// meter renders a three-axis acceleration bar graph as one terminal
// line, redrawn in place with ANSI color codes.
type meter struct {
	w       io.Writer
	palette ansi256.Palette
	cells   int
	rangeMG int32
	buf     bytes.Buffer
}

func newMeter(cells int, rangeMG int32) *meter {
	return &meter{
		w:       colorable.NewColorableStdout(),
		palette: *ansi256.Default,
		cells:   cells,
		rangeMG: rangeMG,
	}
}

var axisNames = [3]string{"X", "Y", "Z"}

func (m *meter) render(mg [3]int32) error {
	m.buf.Reset()
	m.buf.WriteString("\r\033[0m")
	for axis := 0; axis < 3; axis++ {
		m.buf.WriteString(axisNames[axis])
		m.buf.WriteByte(' ')
		v := mg[axis]
		if v < 0 {
			v = -v
		}
		filled := int(v * int32(m.cells) / m.rangeMG)
		if filled > m.cells {
			filled = m.cells
		}
		for cell := 0; cell < m.cells; cell++ {
			m.buf.WriteString(m.palette.Block(m.cellColor(cell, filled)))
		}
		m.buf.WriteString("\033[0m  ")
	}
	m.buf.WriteString(readout(mg))
	_, err := m.buf.WriteTo(m.w)
	return err
}

// cellColor fades the filled part of the bar from green to red; empty
// cells stay a dim gray.
func (m *meter) cellColor(cell, filled int) color.NRGBA {
	if cell >= filled {
		return color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xFF}
	}
	r := uint8(255 * cell / m.cells)
	return color.NRGBA{R: r, G: 255 - r, A: 0xFF}
}

// close resets the terminal attributes so the shell prompt is not
// corrupted.
func (m *meter) close() error {
	_, err := io.WriteString(m.w, "\n\033[0m")
	return err
}
