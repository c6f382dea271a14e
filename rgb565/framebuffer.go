// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rgb565

import (
	"image"
	"image/color"
	"image/draw"
)

// Framebuffer is a RGB565 image with a fixed size.
//
// The zero value is an empty image.
type Framebuffer struct {
	// Pix holds width*height pixels in row-major order. It can be passed
	// directly to lcd.Dev.WritePixels and encoder.Encoder.Encode.
	Pix []uint16
	// Rect is the image's bounds. Min is always {0, 0}.
	Rect image.Rectangle
}

// NewFramebuffer returns a black w×h framebuffer.
//
// It panics if w or h is negative.
func NewFramebuffer(w, h int) *Framebuffer {
	if w < 0 || h < 0 {
		panic("rgb565: negative framebuffer size")
	}
	return &Framebuffer{Pix: make([]uint16, w*h), Rect: image.Rect(0, 0, w, h)}
}

// Width returns the number of pixels per row.
func (f *Framebuffer) Width() int {
	return f.Rect.Dx()
}

// Height returns the number of rows.
func (f *Framebuffer) Height() int {
	return f.Rect.Dy()
}

// ColorModel implements image.Image.
func (f *Framebuffer) ColorModel() color.Model {
	return Model
}

// Bounds implements image.Image.
func (f *Framebuffer) Bounds() image.Rectangle {
	return f.Rect
}

// At implements image.Image.
func (f *Framebuffer) At(x, y int) color.Color {
	return f.PixelAt(x, y)
}

// PixelAt is the optimized version of At. Out of bounds reads return black.
func (f *Framebuffer) PixelAt(x, y int) Pixel {
	if !(image.Point{x, y}.In(f.Rect)) {
		return 0
	}
	return Pixel(f.Pix[f.PixOffset(x, y)])
}

// Set implements draw.Image.
func (f *Framebuffer) Set(x, y int, c color.Color) {
	f.SetPixel(x, y, toPixel(c))
}

// SetPixel is the optimized version of Set. Out of bounds writes are ignored.
func (f *Framebuffer) SetPixel(x, y int, p Pixel) {
	if !(image.Point{x, y}.In(f.Rect)) {
		return
	}
	f.Pix[f.PixOffset(x, y)] = uint16(p)
}

// PixOffset returns the index of the pixel at (x, y) in Pix.
func (f *Framebuffer) PixOffset(x, y int) int {
	return (y-f.Rect.Min.Y)*f.Rect.Dx() + (x - f.Rect.Min.X)
}

// Fill sets every pixel to p.
func (f *Framebuffer) Fill(p Pixel) {
	v := uint16(p)
	for i := range f.Pix {
		f.Pix[i] = v
	}
}

// Clone returns a deep copy of f.
func (f *Framebuffer) Clone() *Framebuffer {
	c := &Framebuffer{Pix: make([]uint16, len(f.Pix)), Rect: f.Rect}
	copy(c.Pix, f.Pix)
	return c
}

var _ draw.Image = &Framebuffer{}
