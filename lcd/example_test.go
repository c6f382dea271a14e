// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcd_test

import (
	"log"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/picogfx/gfx"
	"github.com/GermanBionicSystems/picogfx/gfxmath"
	"github.com/GermanBionicSystems/picogfx/lcd"
	"github.com/GermanBionicSystems/picogfx/rgb565"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	opts := lcd.DefaultOpts
	opts.Backlight = gpioreg.ByName("GPIO18")
	dev, err := lcd.NewSPI(p, gpioreg.ByName("GPIO25"), &opts)
	if err != nil {
		log.Fatalf("failed to initialize display: %v", err)
	}
	defer dev.Halt()
	if err := dev.SetBrightness(255); err != nil {
		log.Fatal(err)
	}

	g := gfx.New(dev.Framebuffer(), gfxmath.NewTables())
	g.Fill(rgb565.Black)
	g.DrawFilledCircle(gfxmath.Pt(120, 120), 60, rgb565.Orange)
	if err := dev.UpdateAsync(); err != nil {
		log.Fatal(err)
	}
	if err := dev.Wait(); err != nil {
		log.Fatal(err)
	}
}
