// SPDX-License-Identifier: Unlicense OR MIT

/*
Package raster draws pointer traces into images, for inspecting
recorded gesture sequences.

Shapes are filled with a vector rasterizer and composited over the
existing content.
*/
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"gioui.org/gesturekit/f32"
)

// Canvas draws into an RGBA image. Coordinates are in pixels with
// the origin at the top left of the image.
type Canvas struct {
	Image *image.RGBA

	vr *vector.Rasterizer
}

// NewCanvas returns a canvas of the given size, cleared to bg.
func NewCanvas(size image.Point, bg color.Color) *Canvas {
	img := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Canvas{Image: img}
}

// Rect fills r.
func (c *Canvas) Rect(r f32.Rectangle, col color.Color) {
	vr := c.begin()
	vr.MoveTo(r.Min.X, r.Min.Y)
	vr.LineTo(r.Max.X, r.Min.Y)
	vr.LineTo(r.Max.X, r.Max.Y)
	vr.LineTo(r.Min.X, r.Max.Y)
	vr.ClosePath()
	c.paint(col)
}

// Outline strokes the border of r with the given width, inside r.
func (c *Canvas) Outline(r f32.Rectangle, width float32, col color.Color) {
	pts := []f32.Point{
		r.Min, f32.Pt(r.Max.X, r.Min.Y), r.Max, f32.Pt(r.Min.X, r.Max.Y), r.Min,
	}
	in := f32.Pt(width/2, width/2)
	for i := range pts[:4] {
		pts[i] = clampIn(pts[i], r, in)
	}
	pts[4] = pts[0]
	c.Polyline(pts, width, col)
}

func clampIn(p f32.Point, r f32.Rectangle, in f32.Point) f32.Point {
	if p.X == r.Min.X {
		p.X += in.X
	} else {
		p.X -= in.X
	}
	if p.Y == r.Min.Y {
		p.Y += in.Y
	} else {
		p.Y -= in.Y
	}
	return p
}

// Polyline strokes the segments between consecutive points. Each
// segment is drawn as a quad of the given width, with square joins
// left open.
func (c *Canvas) Polyline(pts []f32.Point, width float32, col color.Color) {
	if len(pts) < 2 {
		return
	}
	vr := c.begin()
	for i := 1; i < len(pts); i++ {
		from, to := pts[i-1], pts[i]
		d := to.Sub(from)
		if d.Len() == 0 {
			continue
		}
		n := f32.Pt(-d.Y, d.X).Normalize().Mul(width / 2)
		// Each quad winds the same way, so that overlaps stay
		// covered once.
		a, b := from.Add(n), to.Add(n)
		cc, dd := to.Sub(n), from.Sub(n)
		vr.MoveTo(a.X, a.Y)
		vr.LineTo(b.X, b.Y)
		vr.LineTo(cc.X, cc.Y)
		vr.LineTo(dd.X, dd.Y)
		vr.ClosePath()
	}
	c.paint(col)
}

// Dot fills a circle around p, approximated by quadratic arcs.
func (c *Canvas) Dot(p f32.Point, radius float32, col color.Color) {
	vr := c.begin()
	r := radius
	vr.MoveTo(p.X+r, p.Y)
	vr.QuadTo(p.X+r, p.Y+r, p.X, p.Y+r)
	vr.QuadTo(p.X-r, p.Y+r, p.X-r, p.Y)
	vr.QuadTo(p.X-r, p.Y-r, p.X, p.Y-r)
	vr.QuadTo(p.X+r, p.Y-r, p.X+r, p.Y)
	vr.ClosePath()
	c.paint(col)
}

func (c *Canvas) begin() *vector.Rasterizer {
	b := c.Image.Bounds()
	if c.vr == nil {
		c.vr = vector.NewRasterizer(b.Dx(), b.Dy())
	} else {
		c.vr.Reset(b.Dx(), b.Dy())
	}
	c.vr.DrawOp = draw.Over
	return c.vr
}

func (c *Canvas) paint(col color.Color) {
	b := c.Image.Bounds()
	c.vr.Draw(c.Image, b, image.NewUniform(col), image.Point{})
}
