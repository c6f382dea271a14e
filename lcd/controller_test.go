// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcd

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type record struct {
	cmd  byte
	data []byte
}

type fakeController struct {
	records []record
	slept   time.Duration
}

func (r *fakeController) sendCommand(cmd byte) {
	r.records = append(r.records, record{cmd: cmd})
}

func (r *fakeController) sendData(data []byte) {
	cur := &r.records[len(r.records)-1]
	cur.data = append(cur.data, data...)
}

func (r *fakeController) sleep(d time.Duration) {
	r.slept += d
}

func TestInitST7789(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts Opts
		want []record
	}{
		{
			name: "default",
			opts: Opts{W: 240, H: 240},
			want: []record{
				{cmd: swReset},
				{cmd: sleepOut},
				{cmd: pixelFormatSet, data: []byte{0x55}},
				{cmd: memAccessCtrl, data: []byte{0x00}},
				{cmd: inversionOff},
				{cmd: normalDisplay},
			},
		},
		{
			name: "rotated inverted",
			opts: Opts{W: 240, H: 135, Rotation: 1, Invert: true},
			want: []record{
				{cmd: swReset},
				{cmd: sleepOut},
				{cmd: pixelFormatSet, data: []byte{0x55}},
				{cmd: memAccessCtrl, data: []byte{0x60}},
				{cmd: inversionOn},
				{cmd: normalDisplay},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var got fakeController
			initST7789(&got, &tc.opts)
			if diff := cmp.Diff(got.records, tc.want, cmpopts.EquateEmpty(), cmp.AllowUnexported(record{})); diff != "" {
				t.Errorf("initST7789() difference (-got +want):\n%s", diff)
			}
			if got.slept != 180*time.Millisecond {
				t.Errorf("slept %v, want 180ms", got.slept)
			}
		})
	}
}

func TestInitGC9A01(t *testing.T) {
	var got fakeController
	initGC9A01(&got, &Opts{W: 240, H: 240, Rotation: 2, Invert: true})

	if n := len(gc9a01Init) + 2 + len(gc9a01Power) + 3; len(got.records) != n {
		t.Fatalf("got %d commands, want %d", len(got.records), n)
	}
	if got.records[0].cmd != 0xEF {
		t.Errorf("first command %#x, want 0xEF", got.records[0].cmd)
	}
	m := got.records[len(gc9a01Init)]
	if diff := cmp.Diff(m, record{cmd: memAccessCtrl, data: []byte{0x88}}, cmp.AllowUnexported(record{})); diff != "" {
		t.Errorf("memory access control difference (-got +want):\n%s", diff)
	}
	tail := got.records[len(got.records)-3:]
	want := []record{{cmd: tearingOn}, {cmd: inversionOn}, {cmd: sleepOut}}
	if diff := cmp.Diff(tail, want, cmpopts.EquateEmpty(), cmp.AllowUnexported(record{})); diff != "" {
		t.Errorf("tail difference (-got +want):\n%s", diff)
	}
	if got.slept != 120*time.Millisecond {
		t.Errorf("slept %v, want 120ms", got.slept)
	}
}

func TestMadctl(t *testing.T) {
	for _, tc := range []struct {
		v        Variant
		rotation int
		want     byte
	}{
		{ST7789, 0, 0x00},
		{ST7789, 1, 0x60},
		{ST7789, 2, 0xC0},
		{ST7789, 3, 0xA0},
		{GC9A01, 0, 0x48},
		{GC9A01, 1, 0x60},
		{GC9A01, 2, 0x88},
		{GC9A01, 3, 0xA8},
	} {
		if got := madctl(tc.v, tc.rotation); got != tc.want {
			t.Errorf("madctl(%s, %d) = %#x, want %#x", tc.v, tc.rotation, got, tc.want)
		}
	}
}

func TestSetWindow(t *testing.T) {
	var got fakeController
	setWindow(&got, 1, 2, 300, 4)
	want := []record{
		{cmd: columnAddrSet, data: []byte{0x00, 0x01, 0x01, 0x2C}},
		{cmd: rowAddrSet, data: []byte{0x00, 0x02, 0x00, 0x04}},
	}
	if diff := cmp.Diff(got.records, want, cmp.AllowUnexported(record{})); diff != "" {
		t.Errorf("setWindow() difference (-got +want):\n%s", diff)
	}
}
