// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package encoder

import "fmt"

// Type is the codec used for a frame. It is the first byte of a stream.
type Type uint8

// Supported codecs.
const (
	Monochrome Type = iota
	MonochromeRLE
	RunLengthEncoding
	Lossy
	ReducedColor
	ReducedColorRLE
	Raw
)

var typeNames = [...]string{
	Monochrome:        "monochrome",
	MonochromeRLE:     "monochrome-rle",
	RunLengthEncoding: "rle",
	Lossy:             "lossy",
	ReducedColor:      "reduced-color",
	ReducedColorRLE:   "reduced-color-rle",
	Raw:               "raw",
}

// Valid reports whether t is a known codec.
func (t Type) Valid() bool {
	return int(t) < len(typeNames)
}

func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}
	return fmt.Sprint(int(t))
}

// Set implements flag.Value.
func (t *Type) Set(s string) error {
	for i, n := range typeNames {
		if n == s {
			*t = Type(i)
			return nil
		}
	}
	return fmt.Errorf("unknown codec %q: expected one of %q", s, typeNames[:])
}

// monochrome reports whether the codec packs pixels as bits.
func (t Type) monochrome() bool {
	return t == Monochrome || t == MonochromeRLE
}
