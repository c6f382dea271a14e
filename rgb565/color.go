// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rgb565

import (
	"fmt"
	"image/color"
)

const (
	// RBMask selects the red and blue bitfields of a pixel.
	RBMask = 0xF81F
	// GMask selects the green bitfield of a pixel.
	GMask = 0x07E0
)

// Color is a logical 8 bits per channel color.
//
// The conversion to Pixel drops the low bits of each channel; the conversion
// back replicates the high bits into the low ones so that 0xFF survives as
// 0xFF.
type Color struct {
	R, G, B uint8
}

// To16bit packs c into a Pixel.
func (c Color) To16bit() Pixel {
	return Pixel(uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3))
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xFFFF
}

func (c Color) String() string {
	return fmt.Sprintf("Color(#%02X%02X%02X)", c.R, c.G, c.B)
}

// FromRGB565 unpacks a raw RGB565 value.
func FromRGB565(v uint16) Color {
	return Pixel(v).Color()
}

// Pixel is a raw RGB565 value.
type Pixel uint16

// R returns the 5 bits red channel.
func (p Pixel) R() uint8 { return uint8(p >> 11) }

// G returns the 6 bits green channel.
func (p Pixel) G() uint8 { return uint8(p>>5) & 0x3F }

// B returns the 5 bits blue channel.
func (p Pixel) B() uint8 { return uint8(p) & 0x1F }

// Color expands p to 8 bits per channel by bit replication.
func (p Pixel) Color() Color {
	r, g, b := p.R(), p.G(), p.B()
	return Color{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
	}
}

// RGBA implements color.Color.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return p.Color().RGBA()
}

func (p Pixel) String() string {
	return fmt.Sprintf("Pixel(0x%04X)", uint16(p))
}

// Model is the color Model for RGB565 pixels.
var Model = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	return toPixel(c)
}

func toPixel(c color.Color) Pixel {
	switch v := c.(type) {
	case Pixel:
		return v
	case Color:
		return v.To16bit()
	}
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}.To16bit()
}

// Named colors.
var (
	Black   = Color{0x00, 0x00, 0x00}
	White   = Color{0xFF, 0xFF, 0xFF}
	Red     = Color{0xFF, 0x00, 0x00}
	Green   = Color{0x00, 0xFF, 0x00}
	Blue    = Color{0x00, 0x00, 0xFF}
	Yellow  = Color{0xFF, 0xFF, 0x00}
	Cyan    = Color{0x00, 0xFF, 0xFF}
	Magenta = Color{0xFF, 0x00, 0xFF}
	Orange  = Color{0xFF, 0xA5, 0x00}
	Gray    = Color{0x80, 0x80, 0x80}
)
