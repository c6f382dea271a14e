// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcd controls RGB565 TFT panels driven by a ST7789 or GC9A01
// controller over 4-wire SPI.
//
// The driver owns a rgb565.Framebuffer. Draw renders into it and sends the
// touched rectangle; Update sends the whole frame. UpdateAsync sends a
// snapshot of the frame from a background goroutine so that the next frame
// can be rendered meanwhile.
//
// # Wiring
//
// Connect SDA to SPI_MOSI, SCL to SPI_CLK, CS to SPI_CS and DC to any GPIO.
// RST and BL (backlight) are optional.
//
// # Datasheets
//
// ST7789
//
// https://www.rhydolabz.com/documents/33/ST7789.pdf
//
// GC9A01
//
// https://buydisplay.com/download/ic/GC9A01A.pdf
package lcd
