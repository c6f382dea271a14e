// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfx

import (
	"github.com/GermanBionicSystems/picogfx"
	"github.com/GermanBionicSystems/picogfx/gfxmath"
	"github.com/GermanBionicSystems/picogfx/rgb565"
)

// Gradients fills a framebuffer with linear two-color gradients.
//
// It keeps the rotation angle used by DrawRotCircleGradient and
// DrawRotRectGradient, so a Gradients value is tied to one animation.
//
// When StartWorker was called, each fill is split in two: the bottom half of
// the rows is handed to a worker goroutine while the calling goroutine
// renders the top half.
type Gradients struct {
	fb    *rgb565.Framebuffer
	t     *gfxmath.Tables
	theta int

	jobs chan gradientJob
	done chan struct{}
}

// gradientJob describes a band of rows to fill. It is sent by value; lut is
// never written after the job is built.
type gradientJob struct {
	y0, y1  int
	start   gfxmath.Point
	dx, dy  int
	magSq   int
	maxDiff int
	lut     []uint16
}

// NewGradients returns a Gradients filling fb.
func NewGradients(fb *rgb565.Framebuffer, t *gfxmath.Tables) *Gradients {
	if fb == nil || t == nil {
		panic("gfx: nil framebuffer or tables")
	}
	return &Gradients{fb: fb, t: t}
}

// StartWorker starts the goroutine that renders half of every fill. It is a
// no-op if the worker is already running.
func (g *Gradients) StartWorker() {
	if g.jobs != nil {
		return
	}
	g.jobs = make(chan gradientJob, 1)
	g.done = make(chan struct{}, 1)
	go func(jobs <-chan gradientJob, done chan<- struct{}) {
		for j := range jobs {
			g.render(&j)
			done <- struct{}{}
		}
		close(done)
	}(g.jobs, g.done)
}

// Close stops the worker started by StartWorker and waits for it to exit.
// Fills keep working afterward, on the calling goroutine only.
func (g *Gradients) Close() error {
	if g.jobs == nil {
		return nil
	}
	close(g.jobs)
	for range g.done {
	}
	g.jobs = nil
	g.done = nil
	return nil
}

// Theta returns the current rotation angle in tenths of a degree.
func (g *Gradients) Theta() int {
	return g.theta
}

// FillGradient fills the whole framebuffer with a gradient going from c0 at
// start to c1 at end. Pixels are projected on the start→end axis; the ones
// before start get c0 and the ones past end get c1.
//
// When start == end or both colors are identical, the framebuffer is filled
// with c0.
func (g *Gradients) FillGradient(c0, c1 rgb565.Color, start, end gfxmath.Point) {
	dx, dy := end.X-start.X, end.Y-start.Y
	maxDiff := gfxmath.Imax(
		gfxmath.Iabs(int(c1.R)-int(c0.R)),
		gfxmath.Imax(gfxmath.Iabs(int(c1.G)-int(c0.G)), gfxmath.Iabs(int(c1.B)-int(c0.B))))
	if (dx == 0 && dy == 0) || maxDiff == 0 {
		g.fb.Fill(c0.To16bit())
		return
	}
	h := g.fb.Rect.Dy()
	j := gradientJob{
		y0:      0,
		y1:      h,
		start:   start,
		dx:      dx,
		dy:      dy,
		magSq:   dx*dx + dy*dy,
		maxDiff: maxDiff,
		lut:     buildLUT(c0, c1, maxDiff),
	}
	if g.jobs == nil || h < 2 {
		g.render(&j)
		return
	}
	bottom := j
	bottom.y0 = h / 2
	j.y1 = h / 2
	g.jobs <- bottom
	g.render(&j)
	<-g.done
	picogfx.Logger().Debug("gfx: split gradient", "rows", h, "split", h/2)
}

// buildLUT interpolates each channel over maxDiff+1 steps and packs the
// result.
func buildLUT(c0, c1 rgb565.Color, maxDiff int) []uint16 {
	var r, gr, b [256]uint8
	lerp := func(tbl *[256]uint8, from, to uint8) {
		d := int(to) - int(from)
		for i := 0; i <= maxDiff; i++ {
			tbl[i] = uint8(int(from) + d*i/maxDiff)
		}
	}
	lerp(&r, c0.R, c1.R)
	lerp(&gr, c0.G, c1.G)
	lerp(&b, c0.B, c1.B)
	lut := make([]uint16, maxDiff+1)
	for i := range lut {
		lut[i] = uint16(rgb565.Color{R: r[i], G: gr[i], B: b[i]}.To16bit())
	}
	return lut
}

func (g *Gradients) render(j *gradientJob) {
	w := g.fb.Rect.Dx()
	for y := j.y0; y < j.y1; y++ {
		row := g.fb.Pix[y*w : (y+1)*w]
		// The dot product grows by dx per pixel along the row.
		dot := -j.start.X*j.dx + (y-j.start.Y)*j.dy
		for x := range row {
			var i int
			switch {
			case dot <= 0:
				i = 0
			case dot >= j.magSq:
				i = j.maxDiff
			default:
				i = dot * j.maxDiff / j.magSq
			}
			row[x] = j.lut[i]
			dot += j.dx
		}
	}
}

// advance moves theta by speed tenths of a degree, wrapping into
// [0, NumAngles).
func (g *Gradients) advance(speed int) int {
	g.theta = ((g.theta+speed)%gfxmath.NumAngles + gfxmath.NumAngles) % gfxmath.NumAngles
	return g.theta
}

// DrawRotCircleGradient advances the rotation by speed tenths of a degree
// and fills the framebuffer with a gradient across the diameter of the given
// circle at the new angle.
func (g *Gradients) DrawRotCircleGradient(center gfxmath.Point, radius, speed int, c0, c1 rgb565.Color) {
	a := g.advance(speed)
	off := gfxmath.Point{
		X: (radius * int(g.t.Cos[a])) >> gfxmath.ScaleBits,
		Y: (radius * int(g.t.Sin[a])) >> gfxmath.ScaleBits,
	}
	g.FillGradient(c0, c1, center.Sub(off), center.Add(off))
}

// DrawRotRectGradient advances the rotation by speed tenths of a degree and
// fills the framebuffer with a gradient between a point walking the
// perimeter of the w×h rectangle centered on center and its mirror through
// the center. Each quarter turn walks one side.
func (g *Gradients) DrawRotRectGradient(center gfxmath.Point, w, h, speed int, c0, c1 rgb565.Color) {
	a := g.advance(speed)
	const quarter = gfxmath.NumAngles / 4
	frac := a % quarter
	left, top := center.X-w/2, center.Y-h/2
	var p gfxmath.Point
	switch a / quarter {
	case 0:
		p = gfxmath.Point{X: left + w*frac/quarter, Y: top}
	case 1:
		p = gfxmath.Point{X: left + w, Y: top + h*frac/quarter}
	case 2:
		p = gfxmath.Point{X: left + w - w*frac/quarter, Y: top + h}
	default:
		p = gfxmath.Point{X: left, Y: top + h - h*frac/quarter}
	}
	mirror := gfxmath.Point{X: 2*center.X - p.X, Y: 2*center.Y - p.Y}
	g.FillGradient(c0, c1, p, mirror)
}
