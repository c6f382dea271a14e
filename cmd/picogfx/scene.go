// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/GermanBionicSystems/picogfx/gauge"
	"github.com/GermanBionicSystems/picogfx/gfx"
	"github.com/GermanBionicSystems/picogfx/gfxmath"
	"github.com/GermanBionicSystems/picogfx/rgb565"
)

// scene renders one animation frame into its framebuffer.
type scene interface {
	render(frame int)
	Close() error
}

var sceneNames = []string{"gauge", "gradient", "shapes"}

func newScene(name string, fb *rgb565.Framebuffer, t *gfxmath.Tables) (scene, error) {
	switch name {
	case "gauge":
		return newGaugeScene(fb, t)
	case "gradient":
		g := gfx.NewGradients(fb, t)
		g.StartWorker()
		return &gradientScene{fb: fb, g: g}, nil
	case "shapes":
		return &shapesScene{g: gfx.New(fb, t)}, nil
	default:
		return nil, fmt.Errorf("unknown scene %q, want one of %v", name, sceneNames)
	}
}

// triangle returns a value bouncing between 0 and top.
func triangle(frame, top int) int {
	v := frame % (2 * top)
	if v > top {
		v = 2*top - v
	}
	return v
}

type gaugeScene struct {
	g    *gfx.Graphics
	dial *gauge.Dial
}

func newGaugeScene(fb *rgb565.Framebuffer, t *gfxmath.Tables) (*gaugeScene, error) {
	g := gfx.New(fb, t)
	size := gfxmath.Imin(fb.Width(), fb.Height())
	bg := rgb565.Black
	d, err := gauge.New(g, &gauge.Opts{
		Center:      gfxmath.Pt(fb.Width()/2, fb.Height()/2),
		Radius:      size/2 - 2,
		Min:         0,
		Max:         100,
		Colors:      []rgb565.Color{rgb565.Blue, rgb565.Cyan, rgb565.Green, rgb565.Yellow, rgb565.Red},
		NeedleColor: rgb565.White,
		Background:  &bg,
	})
	if err != nil {
		return nil, err
	}
	return &gaugeScene{g: g, dial: d}, nil
}

func (s *gaugeScene) render(frame int) {
	v := triangle(frame, 100)
	s.g.Fill(rgb565.Black)
	s.dial.Update(v)
	s.dial.Mark(80, 2, rgb565.White)
	s.dial.Caption(strconv.Itoa(v), nil, rgb565.White)
}

func (s *gaugeScene) Close() error {
	return nil
}

type gradientScene struct {
	fb *rgb565.Framebuffer
	g  *gfx.Gradients
}

func (s *gradientScene) render(frame int) {
	c := gfxmath.Pt(s.fb.Width()/2, s.fb.Height()/2)
	r := gfxmath.Imin(s.fb.Width(), s.fb.Height()) / 2
	if frame/180%2 == 0 {
		s.g.DrawRotCircleGradient(c, r, 20, rgb565.Magenta, rgb565.Cyan)
	} else {
		s.g.DrawRotRectGradient(c, s.fb.Width(), s.fb.Height(), 20, rgb565.Orange, rgb565.Blue)
	}
}

func (s *gradientScene) Close() error {
	return s.g.Close()
}

type shapesScene struct {
	g *gfx.Graphics
}

func (s *shapesScene) render(frame int) {
	fb := s.g.Framebuffer()
	w, h := fb.Width(), fb.Height()
	c := gfxmath.Pt(w/2, h/2)
	r := gfxmath.Imin(w, h)/2 - 4
	t := s.g.Tables()

	s.g.Fill(rgb565.Black)
	s.g.DrawRectangle(gfxmath.Pt(0, 0), w, h, rgb565.Gray)
	s.g.DrawCircle(c, r, rgb565.Gray)
	for i := 0; i < 12; i++ {
		a := i*30 + frame
		s.g.DrawLineAA(c.OnCircle(t, r/3, a), c.OnCircle(t, r-2, a), rgb565.White)
	}
	s.g.DrawFilledDualArc(c, r*2/3, r*3/4, frame*3, frame*3+90, rgb565.Orange)
	s.g.DrawArc(c, r/4, -frame*2, -frame*2+180, rgb565.Cyan)
	s.g.DrawFilledTriangle(c.OnCircle(t, r/5, frame), c.OnCircle(t, r/5, frame+120), c.OnCircle(t, r/5, frame+240), rgb565.Red)
	label := strconv.Itoa(frame)
	face := gfx.DefaultFace()
	s.g.DrawString(face, gfxmath.Pt(c.X-gfx.MeasureString(face, label)/2, h-8), rgb565.Yellow, label)
}

func (s *shapesScene) Close() error {
	return nil
}
