// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package encoder

import "github.com/GermanBionicSystems/picogfx/rgb565"

// ToYCbCr converts a RGB565 pixel to YCbCr with 8 bits integer weights.
func ToYCbCr(p uint16) (y, cb, cr uint8) {
	c := rgb565.FromRGB565(p)
	r, g, b := int(c.R), int(c.G), int(c.B)
	yy := (77*r + 150*g + 29*b) >> 8
	cbb := 128 + ((-44*r - 87*g + 131*b) >> 8)
	crr := 128 + ((131*r - 110*g - 21*b) >> 8)
	return clamp8(yy), clamp8(cbb), clamp8(crr)
}

// FromYCbCr is the integer inverse of ToYCbCr. Each channel is clamped
// before packing since the inverse overshoots.
func FromYCbCr(y, cb, cr uint8) uint16 {
	yy, u, v := int(y), int(cb)-128, int(cr)-128
	r := yy + ((359 * v) >> 8)
	g := yy - ((88*u + 183*v) >> 8)
	b := yy + ((454 * u) >> 8)
	return uint16(rgb565.Color{R: clamp8(r), G: clamp8(g), B: clamp8(b)}.To16bit())
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 0xFF {
		return 0xFF
	}
	return uint8(v)
}

// lossyCodec keeps the color of even pixels only and run-length encodes the
// resulting YCbCr samples as 4 bytes per run.
type lossyCodec struct{}

func (lossyCodec) encode(_ *Config, src []uint16, out []byte) int {
	o := 0
	sample := func(k int) uint32 {
		y, cb, cr := ToYCbCr(src[2*k])
		return uint32(y)<<16 | uint32(cb)<<8 | uint32(cr)
	}
	runs((len(src)+1)/2, 0xFF, sample, func(count int, v uint32) {
		out[o], out[o+1], out[o+2], out[o+3] = byte(count), byte(v>>16), byte(v>>8), byte(v)
		o += 4
	})
	return o
}

func (lossyCodec) decode(_ *Config, payload []byte, dst []uint16) int {
	p := 0
	for i := 0; i+4 <= len(payload) && p < len(dst); i += 4 {
		// Each sample covers an even pixel and its odd neighbor.
		p = fill(dst, p, 2*int(payload[i]), FromYCbCr(payload[i+1], payload[i+2], payload[i+3]))
	}
	return p
}
