// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcd

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"

	"github.com/GermanBionicSystems/picogfx/rgb565"
)

// stubTime replaces sleep and now for the duration of the test and returns
// a pointer to the total slept time and to the fake clock.
func stubTime(t *testing.T) (*time.Duration, *time.Time) {
	var slept time.Duration
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	oldSleep, oldNow := sleep, now
	sleep = func(d time.Duration) { slept += d }
	now = func() time.Time { return clock }
	t.Cleanup(func() {
		sleep, now = oldSleep, oldNow
	})
	return &slept, &clock
}

func newTestDev(t *testing.T, opts *Opts) (*Dev, *spitest.Record) {
	t.Helper()
	stubTime(t)
	record := &spitest.Record{}
	d, err := NewSPI(record, &gpiotest.Pin{N: "DC"}, opts)
	if err != nil {
		t.Fatal(err)
	}
	record.Ops = nil
	return d, record
}

func TestNewSPI(t *testing.T) {
	slept, _ := stubTime(t)
	record := &spitest.Record{}
	dc := &gpiotest.Pin{N: "DC"}
	d, err := NewSPI(record, dc, &Opts{W: 4, H: 2})
	if err != nil {
		t.Fatal(err)
	}
	want := []conntest.IO{
		{W: []byte{swReset}},
		{W: []byte{sleepOut}},
		{W: []byte{pixelFormatSet}},
		{W: []byte{0x55}},
		{W: []byte{memAccessCtrl}},
		{W: []byte{0x00}},
		{W: []byte{inversionOff}},
		{W: []byte{normalDisplay}},
		{W: []byte{columnAddrSet}},
		{W: []byte{0, 0, 0, 3}},
		{W: []byte{rowAddrSet}},
		{W: []byte{0, 0, 0, 1}},
		{W: []byte{memoryWrite}},
		{W: make([]byte, 16)},
		{W: []byte{displayOn}},
	}
	if diff := cmp.Diff(record.Ops, want); diff != "" {
		t.Errorf("init difference (-got +want):\n%s", diff)
	}
	if *slept != 200*time.Millisecond {
		t.Errorf("slept %v, want 200ms", *slept)
	}
	if s := d.String(); s != "ST7789.Dev{record, DC(0), (4,2)}" {
		t.Errorf("String() = %q", s)
	}
	if d.ColorModel() != rgb565.Model {
		t.Error("unexpected color model")
	}
}

func TestNewSPIReset(t *testing.T) {
	slept, _ := stubTime(t)
	rst := &gpiotest.Pin{N: "RST"}
	_, err := NewSPI(&spitest.Record{}, &gpiotest.Pin{N: "DC"}, &Opts{W: 2, H: 2, Variant: GC9A01, RST: rst})
	if err != nil {
		t.Fatal(err)
	}
	if rst.L != gpio.High {
		t.Error("reset pin left low")
	}
	if *slept != 290*time.Millisecond {
		t.Errorf("slept %v, want 290ms", *slept)
	}
}

func TestNewSPIErrors(t *testing.T) {
	stubTime(t)
	for _, tc := range []struct {
		name string
		dc   gpio.PinOut
		opts Opts
	}{
		{"nil dc", nil, Opts{W: 2, H: 2}},
		{"invalid dc", gpio.INVALID, Opts{W: 2, H: 2}},
		{"zero size", &gpiotest.Pin{}, Opts{W: 0, H: 2}},
		{"rotation", &gpiotest.Pin{}, Opts{W: 2, H: 2, Rotation: 4}},
		{"variant", &gpiotest.Pin{}, Opts{W: 2, H: 2, Variant: 7}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSPI(&spitest.Record{}, tc.dc, &tc.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

type failConn struct {
	calls int
}

func (f *failConn) String() string      { return "fail" }
func (f *failConn) Duplex() conn.Duplex { return conn.Half }

func (f *failConn) Tx(w, r []byte) error {
	f.calls++
	return errors.New("bus error")
}

func TestErrorIsSticky(t *testing.T) {
	stubTime(t)
	c := &failConn{}
	if _, err := newDev(c, &gpiotest.Pin{}, &Opts{W: 2, H: 2}); err == nil {
		t.Fatal("expected error")
	}
	if c.calls != 1 {
		t.Errorf("Tx called %d times after the first failure", c.calls)
	}
}

func TestRotation(t *testing.T) {
	d, _ := newTestDev(t, &Opts{W: 4, H: 2, Rotation: 1})
	if got, want := d.Bounds(), image.Rect(0, 0, 2, 4); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if got := d.Framebuffer().Bounds(); got != d.Bounds() {
		t.Errorf("framebuffer bounds %v", got)
	}
}

func TestDrawPartial(t *testing.T) {
	d, record := newTestDev(t, &Opts{W: 4, H: 2, ColumnOffset1: 2, ColumnOffset2: 2, RowOffset1: 1, RowOffset2: 1})
	if err := d.Draw(image.Rect(1, 0, 3, 2), image.NewUniform(rgb565.Red), image.Point{}); err != nil {
		t.Fatal(err)
	}
	want := []conntest.IO{
		{W: []byte{columnAddrSet}},
		{W: []byte{0, 3, 0, 4}},
		{W: []byte{rowAddrSet}},
		{W: []byte{0, 1, 0, 2}},
		{W: []byte{memoryWrite}},
		{W: []byte{0xF8, 0x00, 0xF8, 0x00}},
		{W: []byte{0xF8, 0x00, 0xF8, 0x00}},
	}
	if diff := cmp.Diff(record.Ops, want); diff != "" {
		t.Errorf("Draw() difference (-got +want):\n%s", diff)
	}
	fb := d.Framebuffer()
	if got := fb.PixelAt(1, 0); got != 0xF800 {
		t.Errorf("PixelAt(1, 0) = %s", got)
	}
	if got := fb.PixelAt(0, 0); got != 0 {
		t.Errorf("PixelAt(0, 0) = %s", got)
	}
}

func TestDrawOwnFramebuffer(t *testing.T) {
	d, record := newTestDev(t, &Opts{W: 2, H: 2})
	fb := d.Framebuffer()
	fb.SetPixel(1, 1, rgb565.White.To16bit())
	if err := d.Draw(d.Bounds(), fb, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if n := len(record.Ops); n != 6 {
		t.Fatalf("got %d ops, want 6", n)
	}
	if diff := cmp.Diff(record.Ops[5].W, []byte{0, 0, 0, 0, 0, 0, 0xFF, 0xFF}); diff != "" {
		t.Errorf("pixels difference (-got +want):\n%s", diff)
	}
}

func TestDrawOutside(t *testing.T) {
	d, record := newTestDev(t, &Opts{W: 2, H: 2})
	if err := d.Draw(image.Rect(5, 5, 8, 8), image.NewUniform(rgb565.Red), image.Point{}); err != nil {
		t.Fatal(err)
	}
	if len(record.Ops) != 0 {
		t.Errorf("unexpected ops %v", record.Ops)
	}
}

func TestWritePixelsChunks(t *testing.T) {
	d, record := newTestDev(t, &Opts{W: 4, H: 2})
	d.maxTx = 4
	d.buf = make([]byte, 4)
	if err := d.WritePixels([]uint16{0x1234, 0x5678, 0x9ABC}); err != nil {
		t.Fatal(err)
	}
	if err := d.WritePixels([]uint16{0x0001}); err != nil {
		t.Fatal(err)
	}
	if err := d.WriteData(inversionOn, nil); err != nil {
		t.Fatal(err)
	}
	if err := d.WriteData(pixelFormatSet, []byte{1, 2, 3, 4, 5}); err != nil {
		t.Fatal(err)
	}
	if err := d.WritePixels([]uint16{0xFFFF}); err != nil {
		t.Fatal(err)
	}
	want := []conntest.IO{
		{W: []byte{memoryWrite}},
		{W: []byte{0x12, 0x34, 0x56, 0x78}},
		{W: []byte{0x9A, 0xBC}},
		{W: []byte{0x00, 0x01}},
		{W: []byte{inversionOn}},
		{W: []byte{pixelFormatSet}},
		{W: []byte{1, 2, 3, 4}},
		{W: []byte{5}},
		{W: []byte{memoryWrite}},
		{W: []byte{0xFF, 0xFF}},
	}
	if diff := cmp.Diff(record.Ops, want); diff != "" {
		t.Errorf("difference (-got +want):\n%s", diff)
	}
}

func TestUpdateRange(t *testing.T) {
	d, record := newTestDev(t, &Opts{W: 4, H: 2})
	d.Framebuffer().Fill(0x0102)
	if err := d.UpdateRange(5, 8); err != nil {
		t.Fatal(err)
	}
	want := []conntest.IO{
		{W: []byte{columnAddrSet}},
		{W: []byte{0, 1, 0, 3}},
		{W: []byte{rowAddrSet}},
		{W: []byte{0, 1, 0, 1}},
		{W: []byte{memoryWrite}},
		{W: []byte{1, 2, 1, 2, 1, 2}},
	}
	if diff := cmp.Diff(record.Ops, want); diff != "" {
		t.Errorf("UpdateRange() difference (-got +want):\n%s", diff)
	}
	for _, r := range [][2]int{{0, 0}, {-1, 2}, {0, 9}, {4, 3}} {
		if err := d.UpdateRange(r[0], r[1]); err == nil {
			t.Errorf("UpdateRange(%d, %d) should fail", r[0], r[1])
		}
	}
}

func TestSetCursor(t *testing.T) {
	d, record := newTestDev(t, &Opts{W: 4, H: 2, ColumnOffset1: 1, ColumnOffset2: 2})
	if err := d.SetCursor(2, 1); err != nil {
		t.Fatal(err)
	}
	want := []conntest.IO{
		{W: []byte{columnAddrSet}},
		{W: []byte{0, 3, 0, 5}},
		{W: []byte{rowAddrSet}},
		{W: []byte{0, 1, 0, 1}},
	}
	if diff := cmp.Diff(record.Ops, want); diff != "" {
		t.Errorf("SetCursor() difference (-got +want):\n%s", diff)
	}
	if err := d.SetCursor(4, 0); err == nil {
		t.Error("expected error")
	}
}

func TestUpdateAsync(t *testing.T) {
	d, record := newTestDev(t, &Opts{W: 2, H: 2})
	fb := d.Framebuffer()
	fb.Fill(0xFFFF)
	if err := d.UpdateAsync(); err != nil {
		t.Fatal(err)
	}
	// The snapshot is taken before UpdateAsync returns.
	fb.Fill(0)
	if err := d.Wait(); err != nil {
		t.Fatal(err)
	}
	if d.Busy() {
		t.Error("Busy() after Wait()")
	}
	if n := len(record.Ops); n != 6 {
		t.Fatalf("got %d ops, want 6", n)
	}
	if diff := cmp.Diff(record.Ops[5].W, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}); diff != "" {
		t.Errorf("pixels difference (-got +want):\n%s", diff)
	}
	// A synchronous update waits for the transfer in flight.
	if err := d.UpdateAsync(); err != nil {
		t.Fatal(err)
	}
	if err := d.Update(); err != nil {
		t.Fatal(err)
	}
	if n := len(record.Ops); n != 18 {
		t.Errorf("got %d ops, want 18", n)
	}
}

func TestFPS(t *testing.T) {
	_, clock := stubTime(t)
	d, err := NewSPI(&spitest.Record{}, &gpiotest.Pin{N: "DC"}, &Opts{W: 2, H: 2})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 29; i++ {
		if err := d.Update(); err != nil {
			t.Fatal(err)
		}
	}
	if got := d.FPS(); got != 0 {
		t.Errorf("FPS() = %d before one second elapsed", got)
	}
	*clock = clock.Add(time.Second)
	if err := d.Update(); err != nil {
		t.Fatal(err)
	}
	if got := d.FPS(); got != 30 {
		t.Errorf("FPS() = %d, want 30", got)
	}
}

func TestDisplayState(t *testing.T) {
	d, record := newTestDev(t, &Opts{W: 2, H: 2})
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if !d.halted {
		t.Error("not halted")
	}
	if err := d.SetDisplayState(true); err != nil {
		t.Fatal(err)
	}
	if d.halted {
		t.Error("still halted")
	}
	if err := d.Invert(true); err != nil {
		t.Fatal(err)
	}
	if err := d.Invert(false); err != nil {
		t.Fatal(err)
	}
	want := []conntest.IO{
		{W: []byte{displayOff}},
		{W: []byte{displayOn}},
		{W: []byte{inversionOn}},
		{W: []byte{inversionOff}},
	}
	if diff := cmp.Diff(record.Ops, want); diff != "" {
		t.Errorf("difference (-got +want):\n%s", diff)
	}
}

func TestHaltWakesOnPixels(t *testing.T) {
	d, record := newTestDev(t, &Opts{W: 2, H: 2})
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if err := d.Update(); err != nil {
		t.Fatal(err)
	}
	if err := d.Update(); err != nil {
		t.Fatal(err)
	}
	frame := []conntest.IO{
		{W: []byte{columnAddrSet}},
		{W: []byte{0, 0, 0, 1}},
		{W: []byte{rowAddrSet}},
		{W: []byte{0, 0, 0, 1}},
	}
	want := []conntest.IO{{W: []byte{displayOff}}}
	want = append(want, frame...)
	want = append(want, conntest.IO{W: []byte{displayOn}}, conntest.IO{W: []byte{memoryWrite}}, conntest.IO{W: make([]byte, 8)})
	want = append(want, frame...)
	want = append(want, conntest.IO{W: []byte{memoryWrite}}, conntest.IO{W: make([]byte, 8)})
	if diff := cmp.Diff(record.Ops, want); diff != "" {
		t.Errorf("(-got +want):\n%s", diff)
	}
	if d.halted {
		t.Error("still halted")
	}
}

func TestSetBrightness(t *testing.T) {
	d, _ := newTestDev(t, &Opts{W: 2, H: 2})
	if err := d.SetBrightness(10); err == nil {
		t.Error("expected error without backlight pin")
	}

	bl := &gpiotest.Pin{N: "BL"}
	d, _ = newTestDev(t, &Opts{W: 2, H: 2, Backlight: bl})
	if err := d.SetBrightness(10); err != nil {
		t.Fatal(err)
	}
	if bl.L != gpio.High {
		t.Error("backlight off")
	}
	if err := d.SetBrightness(0); err != nil {
		t.Fatal(err)
	}
	if bl.L != gpio.Low {
		t.Error("backlight on")
	}

	bl = &gpiotest.Pin{N: "BL"}
	d, _ = newTestDev(t, &Opts{W: 2, H: 2, Backlight: bl, Dimming: true})
	for _, tc := range []struct {
		level uint8
		want  gpio.Duty
	}{
		{255, gpio.DutyMax},
		{0, 0},
		{128, 8421504},
	} {
		if err := d.SetBrightness(tc.level); err != nil {
			t.Fatal(err)
		}
		if bl.D != tc.want || bl.F != physic.KiloHertz {
			t.Errorf("SetBrightness(%d): duty %d at %s, want %d", tc.level, bl.D, bl.F, tc.want)
		}
	}
}

func TestVariant(t *testing.T) {
	var v Variant
	if err := v.Set("gc9a01"); err != nil || v != GC9A01 {
		t.Errorf("Set(gc9a01) = %v, %s", err, v)
	}
	if err := v.Set("ili9341"); err == nil {
		t.Error("expected error")
	}
	if s := Variant(9).String(); s != "Variant(9)" {
		t.Errorf("String() = %q", s)
	}
}
