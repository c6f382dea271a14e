// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package encoder

const (
	monoOff uint16 = 0x0000
	monoOn  uint16 = 0xFFFF
)

// monochromeCodec packs 8 pixels per byte, MSB first.
type monochromeCodec struct{}

func (monochromeCodec) encode(cfg *Config, src []uint16, out []byte) int {
	o := 0
	for i := 0; i < len(src); i += 8 {
		var b byte
		for k := 0; k < 8 && i+k < len(src); k++ {
			if src[i+k] > cfg.MonochromeCutoff {
				b |= 0x80 >> k
			}
		}
		out[o] = b
		o++
	}
	return o
}

func (monochromeCodec) decode(_ *Config, payload []byte, dst []uint16) int {
	p := 0
	for _, b := range payload {
		for k := 0; k < 8 && p < len(dst); k++ {
			if b&(0x80>>k) != 0 {
				dst[p] = monoOn
			} else {
				dst[p] = monoOff
			}
			p++
		}
		if p == len(dst) {
			break
		}
	}
	return p
}

// monochromeRLECodec encodes runs of lit or unlit pixels, one byte per run.
type monochromeRLECodec struct{}

func (monochromeRLECodec) encode(cfg *Config, src []uint16, out []byte) int {
	o := 0
	bit := func(i int) uint32 {
		if src[i] > cfg.MonochromeCutoff {
			return 1
		}
		return 0
	}
	runs(len(src), 0x7F, bit, func(count int, v uint32) {
		out[o] = byte(count)<<1 | byte(v)
		o++
	})
	return o
}

func (monochromeRLECodec) decode(_ *Config, payload []byte, dst []uint16) int {
	p := 0
	for _, b := range payload {
		if p == len(dst) {
			break
		}
		v := monoOff
		if b&1 != 0 {
			v = monoOn
		}
		p = fill(dst, p, int(b>>1), v)
	}
	return p
}
