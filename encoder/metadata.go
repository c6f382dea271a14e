// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package encoder

import (
	"encoding/binary"
	"fmt"
)

// MetadataBytes is the size of the stream header.
const MetadataBytes = 9

// Metadata is the stream header.
type Metadata struct {
	Type   Type
	Width  uint16
	Height uint16
	// TotalBytes is the payload size following the header. Encode computes
	// it; Decode only trusts it up to the actual stream length.
	TotalBytes uint32
}

func (m *Metadata) String() string {
	return fmt.Sprintf("Metadata{%s, %dx%d, %d bytes}", m.Type, m.Width, m.Height, m.TotalBytes)
}

// Pixels returns Width*Height.
func (m *Metadata) Pixels() int {
	return int(m.Width) * int(m.Height)
}

// AddMetadata serializes m into the first MetadataBytes of out.
func AddMetadata(m *Metadata, out []byte) error {
	if len(out) < MetadataBytes {
		return fmt.Errorf("encoder: %w: %d bytes for the header", ErrShortBuffer, len(out))
	}
	out[0] = byte(m.Type)
	binary.BigEndian.PutUint16(out[1:], m.Width)
	binary.BigEndian.PutUint16(out[3:], m.Height)
	binary.BigEndian.PutUint32(out[5:], m.TotalBytes)
	return nil
}

// StripMetadata parses the header at the start of stream into m.
func StripMetadata(m *Metadata, stream []byte) error {
	if len(stream) < MetadataBytes {
		return fmt.Errorf("encoder: %w: got %d bytes", ErrShortStream, len(stream))
	}
	m.Type = Type(stream[0])
	m.Width = binary.BigEndian.Uint16(stream[1:])
	m.Height = binary.BigEndian.Uint16(stream[3:])
	m.TotalBytes = binary.BigEndian.Uint32(stream[5:])
	return nil
}

// MaxEncodedLen returns the largest stream, header included, that Encode
// can produce for a w×h frame with codec t. Unknown codecs are sized as Raw.
func MaxEncodedLen(t Type, w, h int) int {
	n := w * h
	var p int
	switch t {
	case Monochrome:
		p = (n + 7) / 8
	case MonochromeRLE, ReducedColor:
		p = n
	case RunLengthEncoding:
		p = 3 * n
	case Lossy:
		p = 4 * ((n + 1) / 2)
	default:
		p = 2 * n
	}
	return MetadataBytes + p
}

// maxDecodedPixels returns how many pixels n payload bytes can describe at
// most with codec t. Unknown codecs decode as Raw.
func maxDecodedPixels(t Type, n int) int {
	switch t {
	case Monochrome:
		return 8 * n
	case MonochromeRLE:
		return 127 * n
	case RunLengthEncoding:
		return 255 * (n / 3)
	case Lossy:
		return 510 * (n / 4)
	case ReducedColor:
		return n
	case ReducedColorRLE:
		return 255 * (n / 2)
	default:
		return n / 2
	}
}
