// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package netview

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"mime"
	"net/http"
	"net/textproto"
	"sync"

	"github.com/GermanBionicSystems/picogfx"
)

type client struct {
	refresh   chan struct{}
	terminate chan struct{}
}

// pngBuffers implements png.EncoderBufferPool.
type pngBuffers sync.Pool

func (p *pngBuffers) Get() *png.EncoderBuffer {
	b, _ := (*sync.Pool)(p).Get().(*png.EncoderBuffer)
	return b
}

func (p *pngBuffers) Put(b *png.EncoderBuffer) {
	(*sync.Pool)(p).Put(b)
}

var pngEncoder = png.Encoder{
	CompressionLevel: png.BestSpeed,
	BufferPool:       &pngBuffers{},
}

var jpegOptions = jpeg.Options{Quality: 90}

func (d *Dev) encodeLocked(cfg frameConfig) ([]byte, error) {
	var buf bytes.Buffer
	switch cfg.format {
	case PNG:
		if err := pngEncoder.Encode(&buf, d.front); err != nil {
			return nil, err
		}
	case JPEG:
		if err := jpeg.Encode(&buf, d.front, &jpegOptions); err != nil {
			return nil, err
		}
	case Wire:
		return d.enc.EncodeFramebuffer(cfg.codec, d.front)
	default:
		return nil, fmt.Errorf("netview: unhandled format %s", cfg.format)
	}
	return buf.Bytes(), nil
}

// frame returns the current frame encoded per cfg. Encoded frames are
// cached until the next Update and must not be modified.
func (d *Dev) frame(cfg frameConfig) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if b, ok := d.snapshot[cfg]; ok {
		return b, nil
	}
	b, err := d.encodeLocked(cfg)
	if err != nil {
		return nil, err
	}
	d.snapshot[cfg] = b
	return b, nil
}

// ServeHTTP handles GET requests with a never ending stream of frames. The
// "format" parameter overrides Opts.Format.
func (d *Dev) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.Body.Close()
	if r.Method != http.MethodGet {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}
	cfg := d.defaultCfg
	if v := r.URL.Query().Get("format"); v != "" {
		var err error
		if cfg, err = parseFormat(v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	// Fail before the multipart header is sent.
	if _, err := d.frame(cfg); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	pw := newPartWriter(w)
	w.Header().Set("Content-Type", mime.FormatMediaType("multipart/x-mixed-replace", map[string]string{"boundary": pw.boundary}))

	c := &client{
		refresh:   make(chan struct{}, 1),
		terminate: make(chan struct{}, 1),
	}
	d.mu.Lock()
	d.clients[c] = struct{}{}
	d.mu.Unlock()
	defer func() {
		d.mu.Lock()
		delete(d.clients, c)
		d.mu.Unlock()
	}()

	h := textproto.MIMEHeader{}
	h.Set("Content-Type", cfg.format.mimeType())
	h.Set("Content-Transfer-Encoding", "binary")
	if cfg.format == Wire {
		h.Set("X-Codec", cfg.codec.String())
	}
	for {
		b, err := d.frame(cfg)
		if err == nil {
			err = pw.writePart(h, b)
		}
		if err != nil {
			// There is no way to report an error inside the stream.
			picogfx.Logger().Debug("netview: client dropped", "remote", r.RemoteAddr, "err", err)
			return
		}
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		select {
		case <-c.refresh:
		case <-c.terminate:
			return
		case <-r.Context().Done():
			return
		}
	}
}
