// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gfxmath provides the fixed-point trigonometry and integer helpers
// used by the rendering core.
//
// Angles are handled in tenths of a degree. Tables hold 3600 entries, one per
// 0.1°, scaled by 4096 (2^12), so a rotated offset is computed with one
// multiply and one shift:
//
//	t := gfxmath.NewTables()
//	x := cx + (r*t.Cos[i])>>gfxmath.ScaleBits
//
// None of the integer helpers check for overflow; callers keep inputs within
// 32-bit range.
package gfxmath

import "math"

const (
	// NumAngles is the number of table entries, one per 0.1°.
	NumAngles = 3600
	// AngleScale converts degrees into table steps.
	AngleScale = NumAngles / 360
	// ScaleBits is the fixed-point shift.
	ScaleBits = 12
	// Scale is the fixed-point unit, 1.0 == Scale.
	Scale = 1 << ScaleBits

	quarter = NumAngles / 4
	half    = NumAngles / 2

	// tanLimit is stored where the tangent is undefined.
	tanLimit = 1 << 30
)

// Tables holds the cosine, sine and tangent lookup tables.
//
// A Tables value is immutable after NewTables returns and can be shared
// between goroutines.
type Tables struct {
	Cos [NumAngles]int32
	Sin [NumAngles]int32
	Tan [NumAngles]int32
}

// NewTables computes the lookup tables.
//
// The first quadrant is computed with rounding and mirrored into the other
// three, so that Cos[a] == Cos[NumAngles-a] holds exactly.
func NewTables() *Tables {
	t := &Tables{}
	for a := 0; a <= quarter; a++ {
		c := int32(math.Round(math.Cos(float64(a) * math.Pi / half) * Scale))
		t.Cos[a] = c
		t.Cos[half-a] = -c
		t.Cos[(half+a)%NumAngles] = -c
		t.Cos[(NumAngles-a)%NumAngles] = c
	}
	for a := 0; a < NumAngles; a++ {
		// sin(θ) == cos(θ - 90°)
		t.Sin[a] = t.Cos[(a-quarter+NumAngles)%NumAngles]
	}
	for a := 0; a < NumAngles; a++ {
		c, s := int64(t.Cos[a]), int64(t.Sin[a])
		switch {
		case c != 0:
			v := s * Scale / c
			if v > tanLimit {
				v = tanLimit
			} else if v < -tanLimit {
				v = -tanLimit
			}
			t.Tan[a] = int32(v)
		case s >= 0:
			t.Tan[a] = tanLimit
		default:
			t.Tan[a] = -tanLimit
		}
	}
	return t
}

// AngleToIndex converts degrees into a table index in [0, NumAngles), also
// for negative input.
func AngleToIndex(degrees int) int {
	return ((degrees*AngleScale)%NumAngles + NumAngles) % NumAngles
}

// Imin returns the smaller of x and y.
func Imin(x, y int) int {
	if x < y {
		return x
	}
	return y
}

// Imax returns the larger of x and y.
func Imax(x, y int) int {
	if x > y {
		return x
	}
	return y
}

// Iabs returns the absolute value of x.
func Iabs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Isqrt returns the largest r such that r*r <= x.
func Isqrt(x uint32) uint32 {
	var r uint32
	bit := uint32(1) << 30
	for bit > x {
		bit >>= 2
	}
	for bit != 0 {
		if x >= r+bit {
			x -= r + bit
			r = r>>1 + bit
		} else {
			r >>= 1
		}
		bit >>= 2
	}
	return r
}

// Ipow returns x raised to the power y.
func Ipow(x, y uint32) uint32 {
	r := uint32(1)
	for ; y > 0; y-- {
		r *= x
	}
	return r
}

// Ifactorial returns x!.
func Ifactorial(x uint32) uint32 {
	r := uint32(1)
	for i := uint32(2); i <= x; i++ {
		r *= i
	}
	return r
}
