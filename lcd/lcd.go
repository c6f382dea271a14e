// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcd

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/GermanBionicSystems/picogfx"
	"github.com/GermanBionicSystems/picogfx/rgb565"
)

// Variant is the display controller.
type Variant uint8

// Supported controllers.
const (
	ST7789 Variant = iota
	GC9A01
)

func (v Variant) String() string {
	switch v {
	case ST7789:
		return "ST7789"
	case GC9A01:
		return "GC9A01"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

// Set implements flag.Value.
func (v *Variant) Set(s string) error {
	switch s {
	case "st7789", "ST7789":
		*v = ST7789
	case "gc9a01", "GC9A01":
		*v = GC9A01
	default:
		return fmt.Errorf("lcd: unknown variant %q", s)
	}
	return nil
}

// DefaultOpts is a 240x240 ST7789 panel.
var DefaultOpts = Opts{
	W:       240,
	H:       240,
	Variant: ST7789,
	Invert:  true,
}

// Opts defines the options for the device.
type Opts struct {
	// W and H are the panel size with rotation 0.
	W, H    int
	Variant Variant
	// Rotation is in quarter turns clockwise. Odd values swap W and H.
	Rotation int
	// Offsets of the visible area inside the controller RAM. The first
	// offset is added to the window start, the second to the window end.
	ColumnOffset1, ColumnOffset2 int
	RowOffset1, RowOffset2       int
	// Invert enables color inversion. Most IPS panels need it.
	Invert bool
	// RST is the optional hardware reset pin.
	RST gpio.PinOut
	// Backlight is the optional backlight pin.
	Backlight gpio.PinOut
	// Dimming drives Backlight with PWM instead of on/off.
	Dimming bool
	// MaxSpeed is the SPI clock. Defaults to 62.5MHz.
	MaxSpeed physic.Frequency
}

// defaultMaxTx is used when the connection does not report a limit.
const defaultMaxTx = 4096

// NewSPI returns a Dev object that communicates over SPI to the display
// controller. dc is required.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("lcd: dc pin is required")
	}
	if err := dc.Out(gpio.Low); err != nil {
		return nil, err
	}
	f := opts.MaxSpeed
	if f == 0 {
		f = 62500 * physic.KiloHertz
	}
	c, err := p.Connect(f, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	return newDev(c, dc, opts)
}

// Dev is an open handle to the display controller.
type Dev struct {
	// Communication
	c     conn.Conn
	dc    gpio.PinOut
	rst   gpio.PinOut
	bl    gpio.PinOut
	maxTx int
	buf   []byte

	opts Opts
	rect image.Rectangle
	fb   *rgb565.Framebuffer

	// mu serializes bus access. Fields below are guarded by mu.
	mu       sync.Mutex
	dataMode bool
	halted   bool
	frames   int
	fps      int
	tick     time.Time

	// Background transfer.
	wg       sync.WaitGroup
	asyncMu  sync.Mutex
	busy     bool
	asyncErr error
	snap     []uint16
}

var _ display.Drawer = &Dev{}

// now is replaced in tests.
var now = time.Now

func newDev(c conn.Conn, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts.W <= 0 || opts.H <= 0 || opts.W > 0xFFFF || opts.H > 0xFFFF {
		return nil, fmt.Errorf("lcd: invalid size %dx%d", opts.W, opts.H)
	}
	if opts.Rotation < 0 || opts.Rotation > 3 {
		return nil, fmt.Errorf("lcd: invalid rotation %d", opts.Rotation)
	}
	w, h := opts.W, opts.H
	if opts.Rotation&1 != 0 {
		w, h = h, w
	}
	maxTx := defaultMaxTx
	if l, ok := c.(conn.Limits); ok {
		if m := l.MaxTxSize(); m > 1 {
			maxTx = m
		}
	}
	maxTx &^= 1
	d := &Dev{
		c:     c,
		dc:    dc,
		rst:   opts.RST,
		bl:    opts.Backlight,
		maxTx: maxTx,
		buf:   make([]byte, min(maxTx, 2*w*h)),
		opts:  *opts,
		rect:  image.Rect(0, 0, w, h),
		fb:    rgb565.NewFramebuffer(w, h),
		tick:  now(),
	}
	eh := &errorHandler{d: d}
	d.reset(eh)
	switch opts.Variant {
	case ST7789:
		initST7789(eh, opts)
	case GC9A01:
		initGC9A01(eh, opts)
	default:
		return nil, fmt.Errorf("lcd: unknown variant %s", opts.Variant)
	}
	// Clear the controller RAM before showing it.
	d.setCursor(eh, 0, 0)
	eh.sendPixels(d.fb.Pix)
	eh.sendCommand(displayOn)
	eh.sleep(20 * time.Millisecond)
	if eh.err != nil {
		return nil, eh.err
	}
	picogfx.Logger().Debug("lcd: initialized", "variant", opts.Variant, "size", d.rect.Max, "maxTx", maxTx)
	return d, nil
}

// reset pulses the hardware reset pin, if any.
func (d *Dev) reset(eh *errorHandler) {
	if d.rst == nil {
		return
	}
	eh.rstOut(gpio.High)
	eh.sleep(50 * time.Millisecond)
	eh.rstOut(gpio.Low)
	eh.sleep(50 * time.Millisecond)
	eh.rstOut(gpio.High)
	eh.sleep(50 * time.Millisecond)
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s.Dev{%s, %s, %s}", d.opts.Variant, d.c, d.dc, d.rect.Max)
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Framebuffer returns the frame owned by the device. Render into it, then
// call Update or UpdateAsync.
func (d *Dev) Framebuffer() *rgb565.Framebuffer {
	return d.fb
}

// Draw implements display.Drawer.
//
// src is copied into the framebuffer and the touched rectangle is sent
// synchronously. Passing the device's own Framebuffer skips the copy.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.rect)
	if r.Empty() {
		return nil
	}
	if err := d.Wait(); err != nil {
		return err
	}
	if fb, ok := src.(*rgb565.Framebuffer); !ok || fb != d.fb || sp != r.Min {
		draw.Draw(d.fb, r, src, sp, draw.Src)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	eh := &errorHandler{d: d}
	d.sendRect(eh, r, d.fb.Pix)
	d.countFrame()
	return eh.err
}

// sendRect sends the rectangle r of pix, a full frame.
func (d *Dev) sendRect(eh *errorHandler, r image.Rectangle, pix []uint16) {
	setWindow(eh,
		r.Min.X+d.opts.ColumnOffset1, r.Min.Y+d.opts.RowOffset1,
		r.Max.X-1+d.opts.ColumnOffset2, r.Max.Y-1+d.opts.RowOffset2)
	w := d.rect.Dx()
	if r.Min.X == 0 && r.Max.X == w {
		eh.sendPixels(pix[r.Min.Y*w : r.Max.Y*w])
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		eh.sendPixels(pix[y*w+r.Min.X : y*w+r.Max.X])
	}
}

// WriteData sends a command followed by its parameters. data may be empty.
func (d *Dev) WriteData(cmd byte, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	eh := &errorHandler{d: d}
	eh.sendCommand(cmd)
	if len(data) != 0 {
		eh.sendData(data)
	}
	return eh.err
}

// WritePixels streams pixels into the current window. The memory write
// command is sent first unless a previous WritePixels already did.
func (d *Dev) WritePixels(pix []uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	eh := &errorHandler{d: d}
	eh.sendPixels(pix)
	return eh.err
}

// SetCursor sets the window from (x, y) to the bottom right corner of the
// display.
func (d *Dev) SetCursor(x, y int) error {
	if !(image.Point{x, y}).In(d.rect) {
		return fmt.Errorf("lcd: cursor (%d,%d) outside %s", x, y, d.rect)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	eh := &errorHandler{d: d}
	d.setCursor(eh, x, y)
	return eh.err
}

func (d *Dev) setCursor(eh *errorHandler, x, y int) {
	setWindow(eh,
		x+d.opts.ColumnOffset1, y+d.opts.RowOffset1,
		d.rect.Dx()-1+d.opts.ColumnOffset2, d.rect.Dy()-1+d.opts.RowOffset2)
}

// Update sends the whole framebuffer synchronously.
func (d *Dev) Update() error {
	if err := d.Wait(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.update(d.fb.Pix)
}

func (d *Dev) update(pix []uint16) error {
	eh := &errorHandler{d: d}
	d.setCursor(eh, 0, 0)
	eh.sendPixels(pix)
	d.countFrame()
	return eh.err
}

// UpdateRange sends pixels [start, end) of the framebuffer, counted in row
// major order.
func (d *Dev) UpdateRange(start, end int) error {
	if start < 0 || start >= end || end > len(d.fb.Pix) {
		return fmt.Errorf("lcd: invalid range [%d, %d) for %d pixels", start, end, len(d.fb.Pix))
	}
	if err := d.Wait(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	w := d.rect.Dx()
	eh := &errorHandler{d: d}
	d.setCursor(eh, start%w, start/w)
	eh.sendPixels(d.fb.Pix[start:end])
	return eh.err
}

// UpdateAsync copies the framebuffer and sends the copy from a background
// goroutine. It waits for a previous transfer first. The framebuffer can be
// modified as soon as it returns.
func (d *Dev) UpdateAsync() error {
	if err := d.Wait(); err != nil {
		return err
	}
	if d.snap == nil {
		d.snap = make([]uint16, len(d.fb.Pix))
	}
	copy(d.snap, d.fb.Pix)
	d.asyncMu.Lock()
	d.busy = true
	d.asyncMu.Unlock()
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.mu.Lock()
		err := d.update(d.snap)
		d.mu.Unlock()
		d.asyncMu.Lock()
		d.busy = false
		d.asyncErr = err
		d.asyncMu.Unlock()
	}()
	return nil
}

// Busy reports whether a background transfer is in progress.
func (d *Dev) Busy() bool {
	d.asyncMu.Lock()
	defer d.asyncMu.Unlock()
	return d.busy
}

// Wait blocks until the background transfer, if any, completes and returns
// its error.
func (d *Dev) Wait() error {
	d.wg.Wait()
	d.asyncMu.Lock()
	defer d.asyncMu.Unlock()
	err := d.asyncErr
	d.asyncErr = nil
	return err
}

// countFrame updates the frame rate once per second.
func (d *Dev) countFrame() {
	d.frames++
	t := now()
	if el := t.Sub(d.tick); el >= time.Second {
		d.fps = int(int64(d.frames) * int64(time.Second) / int64(el))
		d.frames = 0
		d.tick = t
	}
}

// FPS returns the number of full or partial frames sent during the last
// measured second.
func (d *Dev) FPS() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fps
}

// Halt implements conn.Resource.
//
// It turns the display off. SetDisplayState(true) or sending pixels turns it
// back on.
func (d *Dev) Halt() error {
	if err := d.Wait(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	eh := &errorHandler{d: d}
	eh.sendCommand(displayOff)
	if eh.err == nil {
		d.halted = true
	}
	return eh.err
}

// SetDisplayState turns the display on or off. The controller RAM is kept.
func (d *Dev) SetDisplayState(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	eh := &errorHandler{d: d}
	if on {
		eh.sendCommand(displayOn)
	} else {
		eh.sendCommand(displayOff)
	}
	eh.sleep(10 * time.Millisecond)
	if eh.err == nil {
		d.halted = !on
	}
	return eh.err
}

// Invert toggles color inversion.
func (d *Dev) Invert(invert bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	eh := &errorHandler{d: d}
	sendInversion(eh, invert)
	return eh.err
}

// backlightFreq is the PWM frequency used when Dimming is set.
const backlightFreq = 1 * physic.KiloHertz

// SetBrightness sets the backlight level. Without Dimming, any level above
// zero turns the backlight fully on.
func (d *Dev) SetBrightness(level uint8) error {
	if d.bl == nil {
		return errors.New("lcd: no backlight pin")
	}
	if !d.opts.Dimming {
		return d.bl.Out(level != 0)
	}
	return d.bl.PWM(gpio.Duty(int64(level)*int64(gpio.DutyMax)/255), backlightFreq)
}
