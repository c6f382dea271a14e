// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gauge draws a dial gauge: a colored ring open at the bottom and a
// needle pointing at the current value.
//
// The dial is symmetric around 12 o'clock. With the default 230° opening,
// the minimum sits at 7 o'clock and the maximum at 5 o'clock.
package gauge

import (
	"errors"
	"fmt"

	"github.com/GermanBionicSystems/picogfx/gfx"
	"github.com/GermanBionicSystems/picogfx/gfxmath"
	"github.com/GermanBionicSystems/picogfx/rgb565"
)

// Style selects how the value is rendered.
type Style int

const (
	// Segments draws the ring as equal segments, one per color, and a needle.
	Segments Style = iota
	// Progress fills the ring with Colors[0] up to the value and Colors[1]
	// past it, without a needle.
	Progress
)

func (s Style) String() string {
	switch s {
	case Segments:
		return "Segments"
	case Progress:
		return "Progress"
	default:
		return fmt.Sprint(int(s))
	}
}

// DefaultDialAngle is the opening of the dial in degrees.
const DefaultDialAngle = 230

// Opts defines the options for a dial.
type Opts struct {
	Center gfxmath.Point
	Radius int
	Min    int
	Max    int
	// Colors holds one color per segment. Progress uses the first two.
	Colors      []rgb565.Color
	NeedleColor rgb565.Color
	// Background, when set, is painted as a disc behind the ring on every
	// update.
	Background *rgb565.Color
	// DialAngle is the opening in degrees, in (0, 360]. 0 means
	// DefaultDialAngle.
	DialAngle int
	Style     Style
}

// Dial is a gauge drawn with a gfx.Graphics.
type Dial struct {
	g           *gfx.Graphics
	opts        Opts
	innerRadius int
	value       int
}

// New returns a Dial. It does not draw anything until Update is called.
func New(g *gfx.Graphics, opts *Opts) (*Dial, error) {
	o := *opts
	if o.DialAngle == 0 {
		o.DialAngle = DefaultDialAngle
	}
	if o.Radius <= 0 {
		return nil, fmt.Errorf("gauge: invalid radius %d", o.Radius)
	}
	if o.Max <= o.Min {
		return nil, fmt.Errorf("gauge: max %d must be above min %d", o.Max, o.Min)
	}
	if o.DialAngle < 0 || o.DialAngle > 360 {
		return nil, fmt.Errorf("gauge: invalid dial angle %d", o.DialAngle)
	}
	switch o.Style {
	case Segments:
		if len(o.Colors) == 0 || len(o.Colors) > o.DialAngle {
			return nil, fmt.Errorf("gauge: need between 1 and %d colors, got %d", o.DialAngle, len(o.Colors))
		}
	case Progress:
		if len(o.Colors) < 2 {
			return nil, errors.New("gauge: progress style needs two colors")
		}
	default:
		return nil, fmt.Errorf("gauge: unknown style %s", o.Style)
	}
	o.Colors = append([]rgb565.Color(nil), o.Colors...)
	return &Dial{
		g:           g,
		opts:        o,
		innerRadius: o.Radius * 618 / 1000,
		value:       o.Min,
	}, nil
}

// Value returns the last value passed to Update.
func (d *Dial) Value() int {
	return d.value
}

// Update redraws the whole dial for value. Values out of [Min, Max] pin the
// needle to the closest end.
func (d *Dial) Update(value int) {
	d.value = value
	if d.opts.Background != nil {
		d.g.DrawFilledCircle(d.opts.Center, d.opts.Radius, *d.opts.Background)
	}
	switch d.opts.Style {
	case Segments:
		d.drawSegments()
		d.drawNeedle(value)
	case Progress:
		d.drawProgress(value)
	}
}

// Mark draws a radial tick of width degrees across the ring at value.
func (d *Dial) Mark(value, width int, c rgb565.Color) {
	a := d.angle(value) - 90
	d.g.DrawFilledDualArc(d.opts.Center, d.innerRadius, d.opts.Radius, a-width/2, a+width-width/2, c)
}

// angle returns the needle angle for value in degrees, 0 being 12 o'clock
// and positive clockwise.
func (d *Dial) angle(value int) int {
	half := d.opts.DialAngle / 2
	a := (value-d.opts.Min)*d.opts.DialAngle/(d.opts.Max-d.opts.Min) - half
	return gfxmath.Imax(-half, gfxmath.Imin(a, half))
}

// drawSegments splits the dial evenly between the colors. The degrees left
// over by the division go half to the first segment and half to the last.
func (d *Dial) drawSegments() {
	n := len(d.opts.Colors)
	seg := d.opts.DialAngle / n
	rest := d.opts.DialAngle - seg*n
	first := rest / 2
	// Angles on screen: 0 is 3 o'clock, so 12 o'clock is -90.
	start := -d.opts.DialAngle/2 - 90
	for i, c := range d.opts.Colors {
		end := start + seg
		if i == 0 {
			end += first
		}
		if i == n-1 {
			end += rest - first
		}
		d.g.DrawFilledDualArc(d.opts.Center, d.innerRadius, d.opts.Radius, start, end, c)
		start = end
	}
}

func (d *Dial) drawProgress(value int) {
	start := -d.opts.DialAngle/2 - 90
	end := start + d.opts.DialAngle
	mid := d.angle(value) - 90
	if mid > start {
		d.g.DrawFilledDualArc(d.opts.Center, d.innerRadius, d.opts.Radius, start, mid, d.opts.Colors[0])
	}
	if mid < end {
		d.g.DrawFilledDualArc(d.opts.Center, d.innerRadius, d.opts.Radius, mid, end, d.opts.Colors[1])
	}
}

// drawNeedle draws the hub and the needle. Thin needles are a line, thicker
// ones a triangle whose base spans the hub.
func (d *Dial) drawNeedle(value int) {
	t := d.g.Tables()
	c := d.opts.Center
	a := d.angle(value) - 90
	tip := c.OnCircle(t, d.opts.Radius, a)
	hub := d.opts.Radius * 5 / 100
	d.g.DrawFilledCircle(c, hub, d.opts.NeedleColor)
	if hub < 4 {
		d.g.DrawLine(c, tip, d.opts.NeedleColor)
		return
	}
	d.g.DrawFilledTriangle(c.OnCircle(t, hub, a+90), c.OnCircle(t, hub, a-90), tip, d.opts.NeedleColor)
}
