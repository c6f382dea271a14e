// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package encoder

// runs splits the n values returned by at into runs of equal values of at
// most limit items and calls emit for each, in order. The last run is always
// emitted, so a constant input yields at least one run.
func runs(n, limit int, at func(i int) uint32, emit func(count int, v uint32)) {
	if n == 0 {
		return
	}
	cur := at(0)
	count := 1
	for i := 1; i < n; i++ {
		v := at(i)
		if v == cur && count < limit {
			count++
			continue
		}
		emit(count, cur)
		cur = v
		count = 1
	}
	emit(count, cur)
}

// fill writes v into dst[i:i+count], clipped to len(dst), and returns the
// next index.
func fill(dst []uint16, i, count int, v uint16) int {
	end := i + count
	if end > len(dst) {
		end = len(dst)
	}
	for ; i < end; i++ {
		dst[i] = v
	}
	return end
}

// rleCodec encodes runs of identical pixels as 3 bytes.
type rleCodec struct{}

func (rleCodec) encode(cfg *Config, src []uint16, out []byte) int {
	o := 0
	runs(len(src), 0xFF, func(i int) uint32 { return uint32(src[i]) }, func(count int, v uint32) {
		if cfg.IsReceiverBigEndian {
			out[o], out[o+1], out[o+2] = byte(count), byte(v>>8), byte(v)
		} else {
			out[o], out[o+1], out[o+2] = byte(v), byte(v>>8), byte(count)
		}
		o += 3
	})
	return o
}

func (rleCodec) decode(cfg *Config, payload []byte, dst []uint16) int {
	p := 0
	for i := 0; i+3 <= len(payload) && p < len(dst); i += 3 {
		var count int
		var v uint16
		if cfg.IsReceiverBigEndian {
			count, v = int(payload[i]), uint16(payload[i+1])<<8|uint16(payload[i+2])
		} else {
			count, v = int(payload[i+2]), uint16(payload[i+1])<<8|uint16(payload[i])
		}
		p = fill(dst, p, count, v)
	}
	return p
}

// rawCodec copies pixels as 2 bytes each.
type rawCodec struct{}

func (rawCodec) encode(cfg *Config, src []uint16, out []byte) int {
	for i, v := range src {
		if cfg.IsReceiverBigEndian {
			out[2*i], out[2*i+1] = byte(v>>8), byte(v)
		} else {
			out[2*i], out[2*i+1] = byte(v), byte(v>>8)
		}
	}
	return 2 * len(src)
}

func (rawCodec) decode(cfg *Config, payload []byte, dst []uint16) int {
	n := len(payload) / 2
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		hi, lo := payload[2*i], payload[2*i+1]
		if !cfg.IsReceiverBigEndian {
			hi, lo = lo, hi
		}
		dst[i] = uint16(hi)<<8 | uint16(lo)
	}
	return n
}
