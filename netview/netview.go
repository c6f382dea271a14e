// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package netview provides a display.Drawer that is also an http.Handler.
// Each client gets the current frame and then a new one on every Update.
//
// Frames are sent as a "multipart/x-mixed-replace" stream, the MJPEG
// convention used by IP cameras, so a browser can show the PNG or JPEG
// stream directly. Clients that speak the compressed wire format, for
// example a host mirroring the panel, ask for a codec instead with the
// "format" URL parameter:
//
//	http://host:8080/?format=png
//	http://host:8080/?format=reduced-color-rle
package netview

import (
	"image"
	"image/color"
	"image/draw"
	"net/http"
	"sync"

	"periph.io/x/conn/v3/display"

	"github.com/GermanBionicSystems/picogfx/encoder"
	"github.com/GermanBionicSystems/picogfx/rgb565"
)

// Opts for a netview device.
type Opts struct {
	W, H int
	// Format is used when the client does not ask for one.
	Format Format
	// Codec is used with the Wire format.
	Codec encoder.Type
	// Encoder defaults to encoder.DefaultConfig.
	Encoder *encoder.Config
}

// Dev is a framebuffer served over HTTP.
//
// Rendering happens in the back buffer returned by Framebuffer. Update
// publishes it to the clients.
type Dev struct {
	defaultCfg frameConfig
	back       *rgb565.Framebuffer

	mu       sync.Mutex
	front    *rgb565.Framebuffer
	enc      *encoder.Encoder
	clients  map[*client]struct{}
	snapshot map[frameConfig][]byte
}

var _ display.Drawer = (*Dev)(nil)
var _ http.Handler = (*Dev)(nil)

// New returns a Dev showing a black frame.
func New(opts *Opts) *Dev {
	cfg := opts.Encoder
	if cfg == nil {
		cfg = &encoder.DefaultConfig
	}
	return &Dev{
		defaultCfg: frameConfig{format: opts.Format, codec: opts.Codec},
		back:       rgb565.NewFramebuffer(opts.W, opts.H),
		front:      rgb565.NewFramebuffer(opts.W, opts.H),
		enc:        encoder.New(cfg),
		clients:    map[*client]struct{}{},
		snapshot:   map[frameConfig][]byte{},
	}
}

func (d *Dev) String() string {
	return "NetView"
}

// Halt implements conn.Resource. It ends all running client requests
// asynchronously.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for c := range d.clients {
		select {
		case c.terminate <- struct{}{}:
		default:
		}
	}
	return nil
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.back.Rect
}

// Framebuffer returns the back buffer.
func (d *Dev) Framebuffer() *rgb565.Framebuffer {
	return d.back
}

// Draw implements display.Drawer. It draws into the back buffer and
// publishes it.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if fb, ok := src.(*rgb565.Framebuffer); !ok || fb != d.back || sp != r.Min {
		draw.Draw(d.back, r, src, sp, draw.Src)
	}
	return d.Update()
}

// Update publishes the back buffer to the clients.
func (d *Dev) Update() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	copy(d.front.Pix, d.back.Pix)
	clear(d.snapshot)
	for c := range d.clients {
		select {
		case c.refresh <- struct{}{}:
		default:
		}
	}
	return nil
}
