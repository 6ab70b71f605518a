// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

var axisColors = [3]struct {
	r, g, b float64
	label   string
}{
	{0.86, 0.27, 0.25, "X"},
	{0.30, 0.69, 0.31, "Y"},
	{0.25, 0.47, 0.85, "Z"},
}

// plotWaveform renders the recorded samples as one trace per axis,
// centered on 0 g with ±rangeMG spanning the plot height.
func plotWaveform(path string, samples [][3]int32, width, height int, rangeMG int32, interval time.Duration) error {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	face := truetype.NewFace(f, &truetype.Options{Size: 14})

	const margin = 48.0
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(face)

	plotW := float64(width) - 2*margin
	plotH := float64(height) - 2*margin
	midY := margin + plotH/2

	// Frame and zero line.
	dc.SetRGB(0.8, 0.8, 0.8)
	dc.SetLineWidth(1)
	dc.DrawRectangle(margin, margin, plotW, plotH)
	dc.Stroke()
	dc.DrawLine(margin, midY, margin+plotW, midY)
	dc.Stroke()

	dc.SetRGB(0.4, 0.4, 0.4)
	dc.DrawStringAnchored(fmt.Sprintf("+%.1f g", float64(rangeMG)/1000), margin-6, margin, 1, 0.5)
	dc.DrawStringAnchored("0 g", margin-6, midY, 1, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("-%.1f g", float64(rangeMG)/1000), margin-6, margin+plotH, 1, 0.5)
	total := time.Duration(len(samples)-1) * interval
	dc.DrawStringAnchored(total.Round(time.Millisecond).String(), margin+plotW, margin+plotH+6, 1, 1)
	dc.DrawStringAnchored("0s", margin, margin+plotH+6, 0, 1)

	xStep := plotW / float64(len(samples)-1)
	for axis := 0; axis < 3; axis++ {
		c := axisColors[axis]
		dc.SetRGB(c.r, c.g, c.b)
		dc.SetLineWidth(1.5)
		for i, s := range samples {
			mg := s[axis]
			if mg > rangeMG {
				mg = rangeMG
			} else if mg < -rangeMG {
				mg = -rangeMG
			}
			x := margin + float64(i)*xStep
			y := midY - float64(mg)/float64(rangeMG)*plotH/2
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
		dc.DrawStringAnchored(c.label, margin+plotW-float64(2-axis)*24-8, margin-6, 1, 0)
	}
	return dc.SavePNG(path)
}
