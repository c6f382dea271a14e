// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/GermanBionicSystems/picogfx/encoder"
	"github.com/GermanBionicSystems/picogfx/gfxmath"
	"github.com/GermanBionicSystems/picogfx/rgb565"
	"github.com/GermanBionicSystems/picogfx/termview"
)

func TestTriangle(t *testing.T) {
	var got []int
	for i := 0; i < 9; i++ {
		got = append(got, triangle(i, 3))
	}
	if diff := cmp.Diff(got, []int{0, 1, 2, 3, 2, 1, 0, 1, 2}); diff != "" {
		t.Errorf("triangle() difference (-got +want):\n%s", diff)
	}
}

func TestScenes(t *testing.T) {
	tables := gfxmath.NewTables()
	for _, name := range sceneNames {
		t.Run(name, func(t *testing.T) {
			fb := rgb565.NewFramebuffer(64, 48)
			sc, err := newScene(name, fb, tables)
			if err != nil {
				t.Fatal(err)
			}
			defer sc.Close()
			var prev *rgb565.Framebuffer
			changed := false
			for i := 0; i < 4; i++ {
				sc.render(i * 10)
				if prev != nil && !cmp.Equal(prev.Pix, fb.Pix) {
					changed = true
				}
				prev = fb.Clone()
			}
			if !changed {
				t.Error("scene is not animated")
			}
		})
	}
	if _, err := newScene("nope", rgb565.NewFramebuffer(1, 1), tables); err == nil {
		t.Error("expected error")
	}
}

func TestEncodeDecode(t *testing.T) {
	cfg := encoder.DefaultConfig
	for _, codec := range []encoder.Type{encoder.Raw, encoder.RunLengthEncoding, encoder.ReducedColorRLE} {
		t.Run(codec.String(), func(t *testing.T) {
			var stream bytes.Buffer
			if err := encodeFrame(&stream, "shapes", 32, 32, 5, codec, &cfg); err != nil {
				t.Fatal(err)
			}
			var out bytes.Buffer
			d := termview.New(&termview.Opts{W: 32, H: 32, Writer: &out})
			md, err := decodeFrame(&stream, d, &cfg)
			if err != nil {
				t.Fatal(err)
			}
			if md.Type != codec || md.Width != 32 || md.Height != 32 {
				t.Errorf("metadata = %s", md)
			}
			if out.Len() == 0 {
				t.Error("nothing shown")
			}
			if codec == encoder.ReducedColorRLE {
				return
			}
			want := rgb565.NewFramebuffer(32, 32)
			sc, _ := newScene("shapes", want, gfxmath.NewTables())
			sc.render(5)
			if diff := cmp.Diff(d.Framebuffer().Pix, want.Pix); diff != "" {
				t.Errorf("decoded frame difference (-got +want):\n%s", diff)
			}
		})
	}
	if err := encodeFrame(&bytes.Buffer{}, "nope", 8, 8, 0, encoder.Raw, &cfg); err == nil {
		t.Error("expected error")
	}
	d := termview.New(&termview.Opts{W: 8, H: 8, Writer: &bytes.Buffer{}})
	if _, err := decodeFrame(strings.NewReader("abc"), d, &cfg); err == nil {
		t.Error("expected error on short stream")
	}
}

func TestShow(t *testing.T) {
	var out bytes.Buffer
	d := termview.New(&termview.Opts{W: 16, H: 16, Scale: 2, Writer: &out})
	sc, err := newScene("gauge", d.Framebuffer(), gfxmath.NewTables())
	if err != nil {
		t.Fatal(err)
	}
	if err := show(context.Background(), d, sc, 3, time.Millisecond); err != nil {
		t.Fatal(err)
	}
	// Frames after the first rewind the cursor over the 8 rows.
	if n := strings.Count(out.String(), "\033[8F"); n != 2 {
		t.Errorf("got %d rewinds, want 2", n)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out.Reset()
	if err := show(ctx, d, sc, 0, time.Hour); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out.String(), "\033[8F"); n != 1 {
		t.Errorf("cancelled show drew %d frames, want 1", n)
	}
}
