// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gauge

import (
	"image"
	"image/draw"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/GermanBionicSystems/picogfx/rgb565"
)

// Caption renders s centered below the hub, inside the ring, and blends it
// over the dial. A nil face uses a 7x13 bitmap font.
//
// The text is drawn into a transparent RGBA scratch image first, so glyph
// edges are anti-aliased against whatever the dial left below.
func (d *Dial) Caption(s string, face font.Face, c rgb565.Color) {
	r := d.innerRadius
	w, h := 2*r, max(r/2, 1)
	if w <= 0 {
		return
	}
	ctx := gg.NewContext(w, h)
	if face != nil {
		ctx.SetFontFace(face)
	}
	ctx.SetColor(c)
	ctx.DrawStringAnchored(s, float64(w)/2, float64(h)/2, 0.5, 0.5)

	draw.Draw(d.g.Framebuffer(), d.captionRect(), ctx.Image(), image.Point{}, draw.Over)
}

// captionRect returns where Caption draws.
func (d *Dial) captionRect() image.Rectangle {
	r := d.innerRadius
	at := image.Pt(d.opts.Center.X-r, d.opts.Center.Y+r/3)
	return image.Rectangle{Min: at, Max: at.Add(image.Pt(2*r, max(r/2, 1)))}
}
