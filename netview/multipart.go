// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package netview

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/textproto"
	"sort"
	"strconv"
)

// newBoundary returns a random RFC 2046 boundary of 64 hex digits.
func newBoundary() string {
	var b [32]byte
	if _, err := io.ReadFull(rand.Reader, b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// partWriter writes an endless multipart body. mime/multipart.Writer only
// writes the closing boundary of a part when the next one starts, so the
// client would always be one frame late.
type partWriter struct {
	w        io.Writer
	boundary string
	started  bool
}

func newPartWriter(w io.Writer) *partWriter {
	return &partWriter{w: w, boundary: newBoundary()}
}

// writePart writes one part followed by its closing boundary. h gets a
// Content-Length.
func (p *partWriter) writePart(h textproto.MIMEHeader, body []byte) error {
	h.Set("Content-Length", strconv.Itoa(len(body)))
	bw := bufio.NewWriter(p.w)
	if !p.started {
		bw.WriteString("--" + p.boundary + "\r\n")
		p.started = true
	}
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range h[k] {
			bw.WriteString(k + ": " + v + "\r\n")
		}
	}
	bw.WriteString("\r\n")
	bw.Write(body)
	bw.WriteString("\r\n--" + p.boundary + "\r\n")
	return bw.Flush()
}
