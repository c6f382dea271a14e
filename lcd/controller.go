// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcd

import "time"

// Commands shared by both controllers.
const (
	swReset        byte = 0x01
	sleepOut       byte = 0x11
	normalDisplay  byte = 0x13
	inversionOff   byte = 0x20
	inversionOn    byte = 0x21
	displayOff     byte = 0x28
	displayOn      byte = 0x29
	columnAddrSet  byte = 0x2A
	rowAddrSet     byte = 0x2B
	memoryWrite    byte = 0x2C
	tearingOn      byte = 0x35
	memAccessCtrl  byte = 0x36
	pixelFormatSet byte = 0x3A

	// 65k colors, 16 bits per pixel.
	pixelFormat565 byte = 0x55
)

type controller interface {
	sendCommand(byte)
	sendData([]byte)
	sleep(time.Duration)
}

// madctl returns the memory access control value for a rotation in quarter
// turns.
func madctl(v Variant, rotation int) byte {
	st7789 := [4]byte{0x00, 0x60, 0xC0, 0xA0}
	gc9a01 := [4]byte{0x48, 0x60, 0x88, 0xA8}
	if v == GC9A01 {
		return gc9a01[rotation&3]
	}
	return st7789[rotation&3]
}

func sendInversion(ctrl controller, invert bool) {
	if invert {
		ctrl.sendCommand(inversionOn)
	} else {
		ctrl.sendCommand(inversionOff)
	}
}

// initST7789 brings the controller out of reset up to normal display mode.
// The display is left off.
func initST7789(ctrl controller, opts *Opts) {
	ctrl.sendCommand(swReset)
	ctrl.sleep(100 * time.Millisecond)

	ctrl.sendCommand(sleepOut)
	ctrl.sleep(50 * time.Millisecond)

	ctrl.sendCommand(pixelFormatSet)
	ctrl.sendData([]byte{pixelFormat565})
	ctrl.sleep(10 * time.Millisecond)

	ctrl.sendCommand(memAccessCtrl)
	ctrl.sendData([]byte{madctl(ST7789, opts.Rotation)})

	sendInversion(ctrl, opts.Invert)
	ctrl.sleep(10 * time.Millisecond)

	ctrl.sendCommand(normalDisplay)
	ctrl.sleep(10 * time.Millisecond)
}

// gc9a01Init is the vendor register sequence: inter register enable, power
// and gamma settings.
var gc9a01Init = []struct {
	cmd  byte
	data []byte
}{
	{0xEF, nil},
	{0xEB, []byte{0x14}},
	{0xFE, nil},
	{0xEF, nil},
	{0xEB, []byte{0x14}},
	{0x84, []byte{0x40}},
	{0x85, []byte{0xFF}},
	{0x86, []byte{0xFF}},
	{0x87, []byte{0xFF}},
	{0x88, []byte{0x0A}},
	{0x89, []byte{0x21}},
	{0x8A, []byte{0x00}},
	{0x8B, []byte{0x80}},
	{0x8C, []byte{0x01}},
	{0x8D, []byte{0x01}},
	{0x8E, []byte{0xFF}},
	{0x8F, []byte{0xFF}},
	{0xB6, []byte{0x00, 0x00}},
}

var gc9a01Power = []struct {
	cmd  byte
	data []byte
}{
	{0x90, []byte{0x08, 0x08, 0x08, 0x08}},
	{0xBD, []byte{0x06}},
	{0xBC, []byte{0x00}},
	{0xFF, []byte{0x60, 0x01, 0x04}},
	{0xC3, []byte{0x13}},
	{0xC4, []byte{0x13}},
	{0xC9, []byte{0x22}},
	{0xBE, []byte{0x11}},
	{0xE1, []byte{0x10, 0x0E}},
	{0xDF, []byte{0x21, 0x0C, 0x02}},
	{0xF0, []byte{0x45, 0x09, 0x08, 0x08, 0x26, 0x2A}},
	{0xF1, []byte{0x43, 0x70, 0x72, 0x36, 0x37, 0x6F}},
	{0xF2, []byte{0x45, 0x09, 0x08, 0x08, 0x26, 0x2A}},
	{0xF3, []byte{0x43, 0x70, 0x72, 0x36, 0x37, 0x6F}},
	{0xED, []byte{0x1B, 0x0B}},
	{0xAE, []byte{0x77}},
	{0xCD, []byte{0x63}},
	{0x70, []byte{0x07, 0x07, 0x04, 0x0E, 0x0F, 0x09, 0x07, 0x08, 0x03}},
	{0xE8, []byte{0x34}},
	{0x62, []byte{0x18, 0x0D, 0x71, 0xED, 0x70, 0x70, 0x18, 0x0F, 0x71, 0xEF, 0x70, 0x70}},
	{0x63, []byte{0x18, 0x11, 0x71, 0xF1, 0x70, 0x70, 0x18, 0x13, 0x71, 0xF3, 0x70, 0x70}},
	{0x64, []byte{0x28, 0x29, 0xF1, 0x01, 0xF1, 0x00, 0x07}},
	{0x66, []byte{0x3C, 0x00, 0xCD, 0x67, 0x45, 0x45, 0x10, 0x00, 0x00, 0x00}},
	{0x67, []byte{0x00, 0x3C, 0x00, 0x00, 0x00, 0x01, 0x54, 0x10, 0x32, 0x98}},
	{0x74, []byte{0x10, 0x85, 0x80, 0x00, 0x00, 0x4E, 0x00}},
	{0x98, []byte{0x3E, 0x07}},
}

// initGC9A01 configures the controller and wakes it up. The display is left
// off.
func initGC9A01(ctrl controller, opts *Opts) {
	for _, r := range gc9a01Init {
		ctrl.sendCommand(r.cmd)
		if r.data != nil {
			ctrl.sendData(r.data)
		}
	}
	ctrl.sendCommand(memAccessCtrl)
	ctrl.sendData([]byte{madctl(GC9A01, opts.Rotation)})
	ctrl.sendCommand(pixelFormatSet)
	ctrl.sendData([]byte{pixelFormat565})
	for _, r := range gc9a01Power {
		ctrl.sendCommand(r.cmd)
		ctrl.sendData(r.data)
	}
	ctrl.sendCommand(tearingOn)
	sendInversion(ctrl, opts.Invert)
	ctrl.sendCommand(sleepOut)
	ctrl.sleep(120 * time.Millisecond)
}

// setWindow selects the controller RAM area written by the next
// memoryWrite. x1 and y1 are inclusive.
func setWindow(ctrl controller, x0, y0, x1, y1 int) {
	ctrl.sendCommand(columnAddrSet)
	ctrl.sendData([]byte{byte(x0 >> 8), byte(x0), byte(x1 >> 8), byte(x1)})
	ctrl.sendCommand(rowAddrSet)
	ctrl.sendData([]byte{byte(y0 >> 8), byte(y0), byte(y1 >> 8), byte(y1)})
}
