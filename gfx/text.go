// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfx

import (
	"fmt"
	"image"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/GermanBionicSystems/picogfx/gfxmath"
	"github.com/GermanBionicSystems/picogfx/rgb565"
)

// DefaultFace returns the 7×13 bitmap face.
func DefaultFace() font.Face {
	return basicfont.Face7x13
}

// LoadFace parses a TrueType font and returns a face of the given size in
// points at 72 DPI, so that size is also the pixel height.
func LoadFace(ttf []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("gfx: failed to parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}

// GoRegular returns the Go Regular font at the given size.
func GoRegular(size float64) (font.Face, error) {
	return LoadFace(goregular.TTF, size)
}

// DrawString draws s with its baseline starting at dot and returns the x
// coordinate following the last glyph.
func (g *Graphics) DrawString(face font.Face, dot gfxmath.Point, c rgb565.Color, s string) int {
	d := font.Drawer{
		Dst:  g.fb,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(dot.X, dot.Y),
	}
	d.DrawString(s)
	return d.Dot.X.Round()
}

// MeasureString returns the advance width of s in pixels.
func MeasureString(face font.Face, s string) int {
	return font.MeasureString(face, s).Round()
}
