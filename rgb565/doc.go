// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rgb565 implements 16 bits per pixel RGB565 2D graphics.
//
// It is compatible with package image/draw.
//
// A pixel packs 5 bits of red in the high bits, 6 bits of green in the middle
// and 5 bits of blue in the low bits:
//
//	rrrrrggg gggbbbbb
//
// Framebuffer stores one uint16 per pixel in row-major order, the layout
// expected by the lcd package and by the encoder package.
package rgb565
