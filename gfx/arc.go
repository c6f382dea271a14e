// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfx

import (
	"github.com/GermanBionicSystems/picogfx/gfxmath"
	"github.com/GermanBionicSystems/picogfx/rgb565"
)

// sweep normalizes start and end into table steps so that the arc always
// runs forward from start: both angles are brought into [0, 360) and end is
// pushed one turn further when it lands before start. Distinct angles that
// normalize to the same value make a full turn.
func sweep(start, end int) (int, int) {
	full := start != end
	start = ((start % 360) + 360) % 360
	end = ((end % 360) + 360) % 360
	if end < start || (full && end == start) {
		end += 360
	}
	return start * gfxmath.AngleScale, end * gfxmath.AngleScale
}

// DrawArc draws a one pixel wide arc of the given radius from start to end
// degrees, clockwise on screen. Angle 0 points right and 90 points down.
func (g *Graphics) DrawArc(center gfxmath.Point, radius, start, end int, c rgb565.Color) {
	g.DrawFilledDualArc(center, radius, radius, start, end, c)
}

// DrawFilledDualArc fills the ring sector between innerRadius and
// outerRadius, both included, from start to end degrees.
//
// The sector is sampled every 0.1° for every radius, so the cost grows with
// the sweep times the ring thickness.
func (g *Graphics) DrawFilledDualArc(center gfxmath.Point, innerRadius, outerRadius, start, end int, c rgb565.Color) {
	if innerRadius > outerRadius {
		innerRadius, outerRadius = outerRadius, innerRadius
	}
	v := uint16(c.To16bit())
	w, h := g.fb.Rect.Dx(), g.fb.Rect.Dy()
	a0, a1 := sweep(start, end)
	for a := a0; a <= a1; a++ {
		i := a % gfxmath.NumAngles
		cos, sin := int(g.t.Cos[i]), int(g.t.Sin[i])
		for r := innerRadius; r <= outerRadius; r++ {
			x := center.X + (cos*r)>>gfxmath.ScaleBits
			y := center.Y + (sin*r)>>gfxmath.ScaleBits
			if x < 0 || y < 0 || x >= w || y >= h {
				continue
			}
			g.fb.Pix[y*w+x] = v
		}
	}
}
