// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfxmath

import (
	"fmt"
	"image"
)

// Point is an integer screen coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul returns the componentwise product of p and q.
func (p Point) Mul(q Point) Point {
	return Point{p.X * q.X, p.Y * q.Y}
}

// Div returns the componentwise quotient of p and q. It panics if a
// component of q is zero.
func (p Point) Div(q Point) Point {
	return Point{p.X / q.X, p.Y / q.Y}
}

// Eq reports whether p and q are the same point.
func (p Point) Eq(q Point) bool {
	return p == q
}

// Distance returns the Euclidean distance between p and q, rounded down.
func (p Point) Distance(q Point) int {
	dx, dy := p.X-q.X, p.Y-q.Y
	return int(Isqrt(uint32(dx*dx + dy*dy)))
}

// OnCircle returns the point at the given radius and angle (in degrees)
// around p. The angle is normalized into [0, 360).
func (p Point) OnCircle(t *Tables, radius, degrees int) Point {
	i := AngleToIndex(degrees)
	return Point{
		X: p.X + (radius*int(t.Cos[i]))>>ScaleBits,
		Y: p.Y + (radius*int(t.Sin[i]))>>ScaleBits,
	}
}

// Image converts p into an image.Point.
func (p Point) Image() image.Point {
	return image.Point{X: p.X, Y: p.Y}
}
