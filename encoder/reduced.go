// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package encoder

// To332 quantizes a RGB565 pixel to RGB332 by keeping the high bits of each
// channel.
func To332(p uint16) byte {
	r := byte(p>>11) >> 2
	g := byte(p>>5&0x3F) >> 3
	b := byte(p&0x1F) >> 3
	return r<<5 | g<<2 | b
}

// From332 expands a RGB332 value to RGB565 by bit replication.
func From332(q byte) uint16 {
	r3 := uint16(q >> 5)
	g3 := uint16(q>>2) & 7
	b2 := uint16(q) & 3
	r5 := r3<<2 | r3>>1
	g6 := g3<<3 | g3
	b5 := b2<<3 | b2<<1 | b2>>1
	return r5<<11 | g6<<5 | b5
}

// reducedColorCodec stores one RGB332 byte per pixel.
type reducedColorCodec struct{}

func (reducedColorCodec) encode(_ *Config, src []uint16, out []byte) int {
	for i, v := range src {
		out[i] = To332(v)
	}
	return len(src)
}

func (reducedColorCodec) decode(_ *Config, payload []byte, dst []uint16) int {
	n := len(payload)
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = From332(payload[i])
	}
	return n
}

// reducedColorRLECodec run-length encodes RGB332 values as 2 bytes per run.
type reducedColorRLECodec struct{}

func (reducedColorRLECodec) encode(_ *Config, src []uint16, out []byte) int {
	o := 0
	runs(len(src), 0xFF, func(i int) uint32 { return uint32(To332(src[i])) }, func(count int, v uint32) {
		out[o], out[o+1] = byte(count), byte(v)
		o += 2
	})
	return o
}

func (reducedColorRLECodec) decode(_ *Config, payload []byte, dst []uint16) int {
	p := 0
	for i := 0; i+2 <= len(payload) && p < len(dst); i += 2 {
		p = fill(dst, p, int(payload[i]), From332(payload[i+1]))
	}
	return p
}
