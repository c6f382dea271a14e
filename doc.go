// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package picogfx is a container for a small RGB565 graphics stack aimed at
// SPI LCD panels.
//
// The sub-packages are layered leaf first:
//
//	gfxmath   fixed-point trigonometry tables and integer helpers
//	rgb565    colors and the in-memory framebuffer
//	gfx       gradients, arcs, anti-aliased lines, primitives and text
//	encoder   framebuffer codecs for streaming frames off the device
//	gauge     dial gauge widget built on gfx
//	lcd       ST7789 / GC9A01 panel driver (periph.io SPI transport)
//	termview  terminal preview of a framebuffer
//	netview   framebuffer served over HTTP as PNG, JPEG or encoded frames
//
// This package only carries the shared logger.
package picogfx
