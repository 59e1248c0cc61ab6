// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/colornames"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/io/pointer"
	"gioui.org/gesturekit/raster"
)

const plotMargin = 16

var pathColors = []color.RGBA{
	colornames.Steelblue,
	colornames.Darkorange,
	colornames.Seagreen,
	colornames.Orchid,
}

// plot draws the regions of s and the pointer paths of res. The
// image covers every region and sample.
func plot(s *script, res *result) *image.RGBA {
	var bounds f32.Rectangle
	first := true
	grow := func(r f32.Rectangle) {
		if first {
			bounds, first = r, false
			return
		}
		bounds.Min.X = min32(bounds.Min.X, r.Min.X)
		bounds.Min.Y = min32(bounds.Min.Y, r.Min.Y)
		bounds.Max.X = max32(bounds.Max.X, r.Max.X)
		bounds.Max.Y = max32(bounds.Max.Y, r.Max.Y)
	}
	for _, r := range s.Regions {
		grow(r.rect())
	}
	for _, smp := range res.Samples {
		grow(f32.Rectangle{Min: smp.Position, Max: smp.Position})
	}
	off := f32.Pt(plotMargin, plotMargin).Sub(bounds.Min)
	size := image.Pt(
		int(math.Ceil(float64(bounds.Dx())))+2*plotMargin,
		int(math.Ceil(float64(bounds.Dy())))+2*plotMargin,
	)
	c := raster.NewCanvas(size, colornames.White)
	for _, r := range s.Regions {
		area := r.rect().Add(off)
		c.Rect(area, colornames.Whitesmoke)
		c.Outline(area, 2, colornames.Darkgray)
	}

	paths := make(map[pointer.ID][]f32.Point)
	var ids []pointer.ID
	for _, smp := range res.Samples {
		if _, ok := paths[smp.ID]; !ok {
			ids = append(ids, smp.ID)
		}
		paths[smp.ID] = append(paths[smp.ID], smp.Position.Add(off))
	}
	for i, id := range ids {
		c.Polyline(paths[id], 2, pathColors[i%len(pathColors)])
	}
	for _, smp := range res.Samples {
		switch smp.Kind {
		case pointer.Press:
			c.Dot(smp.Position.Add(off), 4, colornames.Crimson)
		case pointer.Release:
			c.Dot(smp.Position.Add(off), 3, colornames.Seagreen)
		}
	}
	return c.Image
}

func writePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
