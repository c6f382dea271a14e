// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package encoder

// DitherMonochrome applies Floyd–Steinberg error diffusion to fb in place,
// leaving only 0x0000 and 0xFFFF pixels. A pixel is lit when its value,
// after the error it received, is above strength.
//
// fb holds md.Width*md.Height pixels; extra pixels are ignored and missing
// rows are skipped.
func DitherMonochrome(md *Metadata, fb []uint16, strength uint16) {
	w, h := int(md.Width), int(md.Height)
	if w == 0 {
		return
	}
	if rows := len(fb) / w; rows < h {
		h = rows
	}
	add := func(x, y, d int) {
		if x < 0 || x >= w || y >= h {
			return
		}
		i := y*w + x
		v := int(fb[i]) + d
		if v < 0 {
			v = 0
		} else if v > 0xFFFF {
			v = 0xFFFF
		}
		fb[i] = uint16(v)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			old := int(fb[i])
			nv := int(monoOff)
			if fb[i] > strength {
				nv = int(monoOn)
			}
			fb[i] = uint16(nv)
			e := old - nv
			add(x+1, y, e*7/16)
			add(x-1, y+1, e*3/16)
			add(x, y+1, e*5/16)
			add(x+1, y+1, e/16)
		}
	}
}
