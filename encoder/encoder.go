// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package encoder

import (
	"errors"
	"fmt"

	"github.com/GermanBionicSystems/picogfx"
	"github.com/GermanBionicSystems/picogfx/rgb565"
)

var (
	// ErrShortBuffer is returned when the output buffer cannot hold the
	// worst case stream, see MaxEncodedLen.
	ErrShortBuffer = errors.New("output buffer too small")
	// ErrDimensions is returned when the framebuffer does not match the
	// header dimensions or the codec cannot represent them.
	ErrDimensions = errors.New("invalid dimensions")
	// ErrShortStream is returned when a stream is shorter than its header.
	ErrShortStream = errors.New("stream shorter than header")
)

// Config tunes the encoder. It is not stored in the stream; Decode must be
// given the same IsReceiverBigEndian as Encode.
type Config struct {
	// MonochromeCutoff is the raw 16 bits value above which a pixel is lit.
	MonochromeCutoff uint16
	// MonochromeDithering runs DitherMonochrome before the monochrome codecs.
	MonochromeDithering bool
	// IsReceiverBigEndian selects the pixel byte order of Raw and
	// RunLengthEncoding.
	IsReceiverBigEndian bool
}

// DefaultConfig is the recommended configuration.
var DefaultConfig = Config{
	MonochromeCutoff:    0x7FFF,
	IsReceiverBigEndian: true,
}

// Encoder encodes and decodes frames.
//
// An Encoder is not safe for concurrent use; it keeps a scratch buffer so
// that dithering never touches the caller's framebuffer.
type Encoder struct {
	Config
	scratch []uint16
}

// New returns an Encoder using cfg.
func New(cfg *Config) *Encoder {
	return &Encoder{Config: *cfg}
}

// codec is one of the payload formats.
//
// encode writes the payload for src into out, which is at least as long as
// MaxEncodedLen minus the header, and returns the bytes written. decode reads
// payload and fills at most len(dst) pixels, returning how many it wrote.
type codec interface {
	encode(cfg *Config, src []uint16, out []byte) int
	decode(cfg *Config, payload []byte, dst []uint16) int
}

var codecs = [...]codec{
	Monochrome:        monochromeCodec{},
	MonochromeRLE:     monochromeRLECodec{},
	RunLengthEncoding: rleCodec{},
	Lossy:             lossyCodec{},
	ReducedColor:      reducedColorCodec{},
	ReducedColorRLE:   reducedColorRLECodec{},
	Raw:               rawCodec{},
}

// Encode compresses fb, a md.Width×md.Height frame, into out and returns the
// stream length. md.TotalBytes is recomputed. An unknown md.Type is replaced
// by Raw.
//
// fb is never modified. out must hold MaxEncodedLen(md.Type, w, h) bytes.
// Monochrome needs Width*Height to be a multiple of 8.
func (e *Encoder) Encode(md *Metadata, fb []uint16, out []byte) (int, error) {
	md.TotalBytes = 0
	n := md.Pixels()
	if n == 0 || len(fb) != n {
		return 0, fmt.Errorf("encoder: %w: %dx%d frame with %d pixels", ErrDimensions, md.Width, md.Height, len(fb))
	}
	if !md.Type.Valid() {
		picogfx.Logger().Warn("encoder: unknown codec, using raw", "type", int(md.Type))
		md.Type = Raw
	}
	if md.Type == Monochrome && n%8 != 0 {
		return 0, fmt.Errorf("encoder: %w: %s needs a multiple of 8 pixels, got %d", ErrDimensions, md.Type, n)
	}
	if need := MaxEncodedLen(md.Type, int(md.Width), int(md.Height)); len(out) < need {
		return 0, fmt.Errorf("encoder: %w: need %d bytes, got %d", ErrShortBuffer, need, len(out))
	}
	src := fb
	if md.Type.monochrome() && e.MonochromeDithering {
		if cap(e.scratch) < n {
			e.scratch = make([]uint16, n)
		}
		src = e.scratch[:n]
		copy(src, fb)
		DitherMonochrome(md, src, e.MonochromeCutoff)
	}
	l := codecs[md.Type].encode(&e.Config, src, out[MetadataBytes:])
	md.TotalBytes = uint32(l)
	if err := AddMetadata(md, out); err != nil {
		return 0, err
	}
	picogfx.Logger().Debug("encoder: encoded", "type", md.Type, "pixels", n, "bytes", l)
	return MetadataBytes + l, nil
}

// Decode parses stream into md and fills fb with the decoded frame. It
// returns the number of pixels written.
//
// The payload is bounded by both the stream length and md.TotalBytes, and at
// most min(len(fb), Width*Height) pixels are written. A truncated payload is
// not an error; the remaining pixels are left untouched. An unknown type is
// decoded as Raw.
func (e *Encoder) Decode(md *Metadata, stream []byte, fb []uint16) (int, error) {
	if err := StripMetadata(md, stream); err != nil {
		return 0, err
	}
	payload := stream[MetadataBytes:]
	if uint64(len(payload)) > uint64(md.TotalBytes) {
		payload = payload[:md.TotalBytes]
	} else if uint64(len(payload)) < uint64(md.TotalBytes) {
		picogfx.Logger().Debug("encoder: truncated stream", "want", md.TotalBytes, "got", len(payload))
	}
	dst := fb
	if n := md.Pixels(); len(dst) > n {
		dst = dst[:n]
	}
	t := md.Type
	if !t.Valid() {
		picogfx.Logger().Warn("encoder: unknown codec, decoding as raw", "type", int(t))
		t = Raw
	}
	return codecs[t].decode(&e.Config, payload, dst), nil
}

// EncodeFramebuffer encodes fb with codec t into a newly allocated stream.
func (e *Encoder) EncodeFramebuffer(t Type, fb *rgb565.Framebuffer) ([]byte, error) {
	w, h := fb.Width(), fb.Height()
	if w > 0xFFFF || h > 0xFFFF {
		return nil, fmt.Errorf("encoder: %w: %dx%d does not fit the header", ErrDimensions, w, h)
	}
	md := Metadata{Type: t, Width: uint16(w), Height: uint16(h)}
	out := make([]byte, MaxEncodedLen(t, w, h))
	l, err := e.Encode(&md, fb.Pix, out)
	if err != nil {
		return nil, err
	}
	return out[:l], nil
}

// DecodeFramebuffer decodes stream into a framebuffer sized from its header.
//
// It returns ErrDimensions when the header claims more pixels than the
// payload could describe with its codec, before allocating anything.
func (e *Encoder) DecodeFramebuffer(stream []byte) (*rgb565.Framebuffer, *Metadata, error) {
	md := &Metadata{}
	if err := StripMetadata(md, stream); err != nil {
		return nil, nil, err
	}
	n := uint64(len(stream) - MetadataBytes)
	if n > uint64(md.TotalBytes) {
		n = uint64(md.TotalBytes)
	}
	if limit := maxDecodedPixels(md.Type, int(n)); md.Pixels() > limit {
		return nil, nil, fmt.Errorf("encoder: %w: %s header claims %dx%d from %d bytes", ErrDimensions, md.Type, md.Width, md.Height, n)
	}
	fb := rgb565.NewFramebuffer(int(md.Width), int(md.Height))
	if _, err := e.Decode(md, stream, fb.Pix); err != nil {
		return nil, nil, err
	}
	return fb, md, nil
}
