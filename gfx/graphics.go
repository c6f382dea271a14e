// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfx

import (
	"sort"

	"github.com/GermanBionicSystems/picogfx/gfxmath"
	"github.com/GermanBionicSystems/picogfx/rgb565"
)

// Graphics draws primitives into a framebuffer.
type Graphics struct {
	fb *rgb565.Framebuffer
	t  *gfxmath.Tables
}

// New returns a Graphics drawing into fb using the lookup tables t.
func New(fb *rgb565.Framebuffer, t *gfxmath.Tables) *Graphics {
	if fb == nil || t == nil {
		panic("gfx: nil framebuffer or tables")
	}
	return &Graphics{fb: fb, t: t}
}

// Framebuffer returns the framebuffer drawn into.
func (g *Graphics) Framebuffer() *rgb565.Framebuffer {
	return g.fb
}

// Tables returns the lookup tables in use.
func (g *Graphics) Tables() *gfxmath.Tables {
	return g.t
}

// Fill sets every pixel to c.
func (g *Graphics) Fill(c rgb565.Color) {
	g.fb.Fill(c.To16bit())
}

// SetPixel sets the pixel at (x, y). Out of bounds coordinates are ignored.
func (g *Graphics) SetPixel(x, y int, c rgb565.Color) {
	g.fb.SetPixel(x, y, c.To16bit())
}

// SetPixelBlend mixes c into the pixel at (x, y).
//
// alpha is in [0, 32]: 0 leaves the pixel untouched, 32 replaces it.
func (g *Graphics) SetPixelBlend(x, y int, c rgb565.Color, alpha int) {
	if x < 0 || y < 0 || x >= g.fb.Rect.Dx() || y >= g.fb.Rect.Dy() {
		return
	}
	i := g.fb.PixOffset(x, y)
	g.fb.Pix[i] = Blend(uint16(c.To16bit()), g.fb.Pix[i], alpha)
}

// Blend returns (alpha*fg + (32-alpha)*bg) / 32 computed per channel.
//
// Red and blue are weighted together in one word and green in another so
// that no carry crosses a channel boundary. alpha is clamped to [0, 32].
func Blend(fg, bg uint16, alpha int) uint16 {
	if alpha <= 0 {
		return bg
	}
	if alpha >= 32 {
		return fg
	}
	a := uint32(alpha)
	f, b := uint32(fg), uint32(bg)
	rb := (((f&rgb565.RBMask)*a + (b&rgb565.RBMask)*(32-a)) >> 5) & rgb565.RBMask
	gr := (((f&rgb565.GMask)*a + (b&rgb565.GMask)*(32-a)) >> 5) & rgb565.GMask
	return uint16(rb | gr)
}

// DrawLine draws a one pixel wide line from p0 to p1, both included.
func (g *Graphics) DrawLine(p0, p1 gfxmath.Point, c rgb565.Color) {
	v := c.To16bit()
	dx := gfxmath.Iabs(p1.X - p0.X)
	dy := -gfxmath.Iabs(p1.Y - p0.Y)
	sx, sy := 1, 1
	if p0.X > p1.X {
		sx = -1
	}
	if p0.Y > p1.Y {
		sy = -1
	}
	err := dx + dy
	x, y := p0.X, p0.Y
	for {
		g.fb.SetPixel(x, y, v)
		if x == p1.X && y == p1.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// DrawLineAA draws an anti-aliased line from p0 to p1.
//
// At each step the pixel on the line gets a coverage derived from its
// distance to the ideal line, and the neighbor across the line gets the
// complement when it is within one pixel width.
func (g *Graphics) DrawLineAA(p0, p1 gfxmath.Point, c rgb565.Color) {
	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y
	dx := gfxmath.Iabs(x1 - x0)
	dy := gfxmath.Iabs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	ed := int(gfxmath.Isqrt(uint32(dx*dx + dy*dy)))
	if ed == 0 {
		ed = 1
	}
	for {
		g.SetPixelBlend(x0, y0, c, coverage(gfxmath.Iabs(err-dx+dy), ed))
		e2, x2 := err, x0
		if 2*e2 >= -dx {
			if x0 == x1 {
				return
			}
			if e2+dy < ed {
				g.SetPixelBlend(x0, y0+sy, c, coverage(e2+dy, ed))
			}
			err -= dy
			x0 += sx
		}
		if 2*e2 <= dy {
			if y0 == y1 {
				return
			}
			if dx-e2 < ed {
				g.SetPixelBlend(x2+sx, y0, c, coverage(dx-e2, ed))
			}
			err += dx
			y0 += sy
		}
	}
}

// coverage maps a distance in [0, ed] to an alpha in [0, 32].
func coverage(dist, ed int) int {
	a := 32 - 32*dist/ed
	if a < 0 {
		return 0
	}
	if a > 32 {
		return 32
	}
	return a
}

// DrawRectangle draws the outline of the w×h rectangle whose top left corner
// is p.
func (g *Graphics) DrawRectangle(p gfxmath.Point, w, h int, c rgb565.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	v := c.To16bit()
	for x := p.X; x < p.X+w; x++ {
		g.fb.SetPixel(x, p.Y, v)
		g.fb.SetPixel(x, p.Y+h-1, v)
	}
	for y := p.Y; y < p.Y+h; y++ {
		g.fb.SetPixel(p.X, y, v)
		g.fb.SetPixel(p.X+w-1, y, v)
	}
}

// DrawFilledRectangle fills the w×h rectangle whose top left corner is p.
func (g *Graphics) DrawFilledRectangle(p gfxmath.Point, w, h int, c rgb565.Color) {
	v := uint16(c.To16bit())
	x0 := gfxmath.Imax(p.X, 0)
	x1 := gfxmath.Imin(p.X+w, g.fb.Rect.Dx())
	y0 := gfxmath.Imax(p.Y, 0)
	y1 := gfxmath.Imin(p.Y+h, g.fb.Rect.Dy())
	for y := y0; y < y1; y++ {
		row := g.fb.Pix[g.fb.PixOffset(x0, y):]
		for x := x0; x < x1; x++ {
			row[x-x0] = v
		}
	}
}

func (g *Graphics) hline(x0, x1, y int, v uint16) {
	if y < 0 || y >= g.fb.Rect.Dy() {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	x0 = gfxmath.Imax(x0, 0)
	x1 = gfxmath.Imin(x1, g.fb.Rect.Dx()-1)
	for x := x0; x <= x1; x++ {
		g.fb.Pix[g.fb.PixOffset(x, y)] = v
	}
}

// DrawCircle draws the outline of a circle using the midpoint algorithm.
func (g *Graphics) DrawCircle(center gfxmath.Point, radius int, c rgb565.Color) {
	if radius < 0 {
		return
	}
	v := c.To16bit()
	x, y := radius, 0
	err := 1 - radius
	for x >= y {
		for _, o := range [...]gfxmath.Point{
			{X: x, Y: y}, {X: y, Y: x}, {X: -y, Y: x}, {X: -x, Y: y},
			{X: -x, Y: -y}, {X: -y, Y: -x}, {X: y, Y: -x}, {X: x, Y: -y},
		} {
			g.fb.SetPixel(center.X+o.X, center.Y+o.Y, v)
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// DrawFilledCircle fills the disc of the given radius.
func (g *Graphics) DrawFilledCircle(center gfxmath.Point, radius int, c rgb565.Color) {
	if radius < 0 {
		return
	}
	v := uint16(c.To16bit())
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		hw := int(gfxmath.Isqrt(uint32(r2 - dy*dy)))
		g.hline(center.X-hw, center.X+hw, center.Y+dy, v)
	}
}

// DrawFilledTriangle fills the triangle p0, p1, p2.
func (g *Graphics) DrawFilledTriangle(p0, p1, p2 gfxmath.Point, c rgb565.Color) {
	g.DrawFilledPolygon([]gfxmath.Point{p0, p1, p2}, c)
}

// DrawFilledPolygon fills a simple polygon with the even-odd rule.
//
// Each row is sampled at its center so that edges shared by adjacent
// polygons are drawn once.
func (g *Graphics) DrawFilledPolygon(pts []gfxmath.Point, c rgb565.Color) {
	if len(pts) < 3 {
		return
	}
	v := uint16(c.To16bit())
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minY = gfxmath.Imin(minY, p.Y)
		maxY = gfxmath.Imax(maxY, p.Y)
	}
	minY = gfxmath.Imax(minY, 0)
	maxY = gfxmath.Imin(maxY, g.fb.Rect.Dy()-1)
	xs := make([]int, 0, len(pts))
	for y := minY; y <= maxY; y++ {
		// Row center in half pixel units.
		cy := 2*y + 1
		xs = xs[:0]
		j := len(pts) - 1
		for i := range pts {
			a, b := pts[i], pts[j]
			j = i
			ay, by := 2*a.Y, 2*b.Y
			if (ay <= cy) == (by <= cy) {
				continue
			}
			// x at the row center, rounded to the nearest pixel.
			xs = append(xs, roundDiv(a.X*(by-ay)+(cy-ay)*(b.X-a.X), by-ay))
		}
		sort.Ints(xs)
		for k := 0; k+1 < len(xs); k += 2 {
			g.hline(xs[k], xs[k+1], y, v)
		}
	}
}

// roundDiv returns num/den rounded to the nearest integer. den is non zero.
func roundDiv(num, den int) int {
	if den < 0 {
		num, den = -num, -den
	}
	if num >= 0 {
		return (num + den/2) / den
	}
	return -((-num + den/2) / den)
}
