// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcd

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// sleep is replaced in tests.
var sleep = time.Sleep

// errorHandler is a wrapper for error management. Once an operation failed,
// the following ones are skipped and the first error is kept.
type errorHandler struct {
	d   *Dev
	err error
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.dc.Out(l)
}

func (eh *errorHandler) cTx(w []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.c.Tx(w, nil)
}

func (eh *errorHandler) sendCommand(cmd byte) {
	if eh.err != nil {
		return
	}
	eh.d.dataMode = false
	eh.dcOut(gpio.Low)
	eh.cTx([]byte{cmd})
}

// sendData sends data in chunks no larger than the connection allows.
func (eh *errorHandler) sendData(data []byte) {
	if eh.err != nil {
		return
	}
	eh.dcOut(gpio.High)
	for len(data) > 0 && eh.err == nil {
		n := min(len(data), eh.d.maxTx)
		eh.cTx(data[:n])
		data = data[n:]
	}
}

func (eh *errorHandler) sleep(d time.Duration) {
	if eh.err != nil {
		return
	}
	sleep(d)
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil || eh.d.rst == nil {
		return
	}
	eh.err = eh.d.rst.Out(l)
}

// sendPixels starts a memory write if none is in progress and streams pix
// big endian. A halted display is turned back on first.
func (eh *errorHandler) sendPixels(pix []uint16) {
	if eh.err != nil {
		return
	}
	if eh.d.halted {
		eh.sendCommand(displayOn)
		if eh.err != nil {
			return
		}
		eh.d.halted = false
	}
	if !eh.d.dataMode {
		eh.sendCommand(memoryWrite)
		eh.d.dataMode = true
	}
	eh.dcOut(gpio.High)
	buf := eh.d.buf
	for len(pix) > 0 && eh.err == nil {
		n := min(len(pix), len(buf)/2)
		for i, p := range pix[:n] {
			buf[2*i] = byte(p >> 8)
			buf[2*i+1] = byte(p)
		}
		eh.cTx(buf[:2*n])
		pix = pix[n:]
	}
}
