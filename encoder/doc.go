// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package encoder compresses a RGB565 framebuffer into a byte stream and
// back, to ship frames over a slow link such as a serial port.
//
// # Wire format
//
// Every stream starts with a 9 bytes header, all fields big endian:
//
//	byte 0:     codec Type, 0 to 6
//	bytes 1-2:  width
//	bytes 3-4:  height
//	bytes 5-8:  number of payload bytes following the header
//	bytes 9..:  payload
//
// Payloads per Type:
//
//	Monochrome         1 bit per pixel, MSB first, 1 = above the cutoff
//	MonochromeRLE      1 byte per run: run<<1 | bit, runs of at most 127
//	RunLengthEncoding  3 bytes per run: count, pixel hi, pixel lo (big
//	                   endian receiver) or pixel lo, pixel hi, count
//	Lossy              4 bytes per run: count, Y, Cb, Cr; one sample per
//	                   pair of pixels
//	ReducedColor       1 RGB332 byte per pixel
//	ReducedColorRLE    2 bytes per run: count, RGB332
//	Raw                2 bytes per pixel, byte order per receiver
//
// RunLengthEncoding, Lossy and ReducedColorRLE runs hold at most 255 items.
//
// The format carries no checksum. Decode never reads past the stream nor
// writes past the framebuffer, but a corrupted stream yields a garbled frame.
package encoder
