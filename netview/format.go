// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package netview

import (
	"fmt"

	"github.com/GermanBionicSystems/picogfx/encoder"
)

// Format is the payload of each part of the stream.
type Format int

const (
	PNG Format = iota
	JPEG
	// Wire is an encoder stream, header included.
	Wire
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case Wire:
		return "Wire"
	default:
		return fmt.Sprint(int(f))
	}
}

func (f Format) mimeType() string {
	switch f {
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	}
	return "application/octet-stream"
}

type frameConfig struct {
	format Format
	codec  encoder.Type
}

// parseFormat accepts "png", "jpg", "jpeg" or a codec name.
func parseFormat(s string) (frameConfig, error) {
	switch s {
	case "png":
		return frameConfig{format: PNG}, nil
	case "jpg", "jpeg":
		return frameConfig{format: JPEG}, nil
	}
	var t encoder.Type
	if err := t.Set(s); err != nil {
		return frameConfig{}, fmt.Errorf("unrecognized format %q", s)
	}
	return frameConfig{format: Wire, codec: t}, nil
}
