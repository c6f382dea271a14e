// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termview implements a display.Drawer backed by a RGB565
// framebuffer that outputs to the terminal (stdout) using ANSI color codes.
//
// Useful to work on a gauge layout while the panel is still in the mail.
package termview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"

	"github.com/GermanBionicSystems/picogfx/rgb565"
)

// Opts represents the options available for this display.
type Opts struct {
	W, H    int
	Palette *ansi256.Palette
	// Scale keeps one pixel out of Scale in each direction. Defaults to 1.
	Scale int
	// Writer defaults to a colorable stdout.
	Writer io.Writer

	_ struct{}
}

// Dev is a panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	scale   int
	fb      *rgb565.Framebuffer

	buf    bytes.Buffer
	frames int
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Writer
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	s := opts.Scale
	if s < 1 {
		s = 1
	}
	return &Dev{
		w:       w,
		palette: *p,
		scale:   s,
		fb:      rgb565.NewFramebuffer(opts.W, opts.H),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("TermView{%dx%d}", d.fb.Width(), d.fb.Height())
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.fb.Rect
}

// Framebuffer returns the frame shown by Update.
func (d *Dev) Framebuffer() *rgb565.Framebuffer {
	return d.fb
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.fb.Rect)
	if r.Empty() {
		return nil
	}
	if fb, ok := src.(*rgb565.Framebuffer); !ok || fb != d.fb || sp != r.Min {
		draw.Draw(d.fb, r, src, sp, draw.Src)
	}
	return d.Update()
}

// Update redraws the whole framebuffer in place of the previous frame.
func (d *Dev) Update() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	rows := (d.fb.Height() + d.scale - 1) / d.scale
	if d.frames != 0 && rows != 0 {
		// Move the cursor back to the first line of the previous frame.
		fmt.Fprintf(&d.buf, "\033[%dF", rows)
	}
	for y := 0; y < d.fb.Height(); y += d.scale {
		_, _ = d.buf.WriteString("\033[0m")
		for x := 0; x < d.fb.Width(); x += d.scale {
			c := d.fb.PixelAt(x, y).Color()
			_, _ = io.WriteString(&d.buf, d.palette.Block(color.NRGBA{c.R, c.G, c.B, 255}))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.frames++
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
