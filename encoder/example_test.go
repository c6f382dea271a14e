// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package encoder_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/picogfx/encoder"
	"github.com/GermanBionicSystems/picogfx/rgb565"
)

func Example() {
	fb := rgb565.NewFramebuffer(240, 240)
	fb.Fill(rgb565.Blue.To16bit())

	e := encoder.New(&encoder.DefaultConfig)
	md := encoder.Metadata{Type: encoder.ReducedColorRLE, Width: 240, Height: 240}
	out := make([]byte, encoder.MaxEncodedLen(md.Type, 240, 240))
	n, err := e.Encode(&md, fb.Pix, out)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d pixels in %d bytes\n", md.Pixels(), n)

	dst := rgb565.NewFramebuffer(240, 240)
	var got encoder.Metadata
	if _, err := e.Decode(&got, out[:n], dst.Pix); err != nil {
		log.Fatal(err)
	}
	fmt.Println(&got, dst.PixelAt(10, 10))
	// Output:
	// 57600 pixels in 461 bytes
	// Metadata{reduced-color-rle, 240x240, 452 bytes} Pixel(0x001F)
}
