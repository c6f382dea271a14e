// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// picogfx renders demo scenes on a ST7789 or GC9A01 panel, or in the
// terminal, and converts frames to and from the compressed wire format.
//
// Show the gauge scene on a 240x240 panel:
//
//	picogfx -dc GPIO25 -bl GPIO18 -scene gauge
//
// Preview it in the terminal instead:
//
//	picogfx -term -scale 4 -scene gauge
//
// Or serve it to a browser, or to a host asking for a codec:
//
//	picogfx -http :8080 -scene gradient
//	curl -N 'http://localhost:8080/?format=reduced-color-rle'
//
// Encode one frame and show it back:
//
//	picogfx -mode encode -codec rle > frame.bin
//	picogfx -term -scale 4 -mode decode < frame.bin
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/picogfx"
	"github.com/GermanBionicSystems/picogfx/encoder"
	"github.com/GermanBionicSystems/picogfx/gfxmath"
	"github.com/GermanBionicSystems/picogfx/lcd"
	"github.com/GermanBionicSystems/picogfx/netview"
	"github.com/GermanBionicSystems/picogfx/rgb565"
	"github.com/GermanBionicSystems/picogfx/termview"
)

// sink is where frames are shown.
type sink interface {
	display.Drawer
	Framebuffer() *rgb565.Framebuffer
	Update() error
}

var (
	_ sink = (*lcd.Dev)(nil)
	_ sink = (*termview.Dev)(nil)
	_ sink = (*netview.Dev)(nil)
)

func pin(name string) (gpio.PinOut, error) {
	if name == "" {
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("GPIO pin %s not found", name)
	}
	return p, nil
}

func openPanel(spiName, dcName, rstName, blName string, opts *lcd.Opts) (sink, func() error, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	p, err := spireg.Open(spiName)
	if err != nil {
		return nil, nil, err
	}
	dc, err := pin(dcName)
	if err == nil && dc == nil {
		err = errors.New("-dc is required")
	}
	if err == nil {
		opts.RST, err = pin(rstName)
	}
	if err == nil {
		opts.Backlight, err = pin(blName)
	}
	if err != nil {
		p.Close()
		return nil, nil, err
	}
	d, err := lcd.NewSPI(p, dc, opts)
	if err != nil {
		p.Close()
		return nil, nil, err
	}
	if opts.Backlight != nil {
		if err := d.SetBrightness(255); err != nil {
			p.Close()
			return nil, nil, err
		}
	}
	closer := func() error {
		err := d.Halt()
		if err2 := p.Close(); err == nil {
			err = err2
		}
		return err
	}
	return d, closer, nil
}

// show renders frames of sc into s every period until ctx is done or n
// frames were shown. n == 0 means forever.
func show(ctx context.Context, s sink, sc scene, n int, period time.Duration) error {
	t := time.NewTicker(period)
	defer t.Stop()
	for i := 0; n == 0 || i < n; i++ {
		sc.render(i)
		if err := s.Update(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
	return nil
}

// encodeFrame renders one frame of the named scene and writes it encoded.
func encodeFrame(w io.Writer, name string, width, height, frame int, t encoder.Type, cfg *encoder.Config) error {
	fb := rgb565.NewFramebuffer(width, height)
	sc, err := newScene(name, fb, gfxmath.NewTables())
	if err != nil {
		return err
	}
	sc.render(frame)
	if err := sc.Close(); err != nil {
		return err
	}
	b, err := encoder.New(cfg).EncodeFramebuffer(t, fb)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// decodeFrame reads a whole stream from r and draws it on s.
func decodeFrame(r io.Reader, s sink, cfg *encoder.Config) (*encoder.Metadata, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fb, md, err := encoder.New(cfg).DecodeFramebuffer(b)
	if err != nil {
		return nil, err
	}
	return md, s.Draw(fb.Bounds(), fb, fb.Bounds().Min)
}

func mainImpl() error {
	term := flag.Bool("term", false, "render in the terminal instead of a panel")
	httpAddr := flag.String("http", "", "serve frames over HTTP on this address instead of a panel")
	scale := flag.Int("scale", 4, "terminal downscale factor")
	spiName := flag.String("spi", "", "SPI port name (empty for default)")
	dcName := flag.String("dc", "GPIO25", "data/command pin")
	rstName := flag.String("rst", "", "optional reset pin")
	blName := flag.String("bl", "", "optional backlight pin")
	width := flag.Int("w", 240, "panel width")
	height := flag.Int("h", 240, "panel height")
	rotation := flag.Int("rotation", 0, "rotation in quarter turns")
	invert := flag.Bool("invert", true, "enable color inversion")
	sceneName := flag.String("scene", "gauge", fmt.Sprintf("scene, one of %v", sceneNames))
	frames := flag.Int("frames", 0, "number of frames to show, 0 for forever")
	fps := flag.Int("fps", 30, "target frame rate")
	mode := flag.String("mode", "show", "show, encode or decode")
	littleEndian := flag.Bool("le", false, "receiver is little endian")
	verbose := flag.Bool("v", false, "verbose mode")
	variant := lcd.ST7789
	flag.Var(&variant, "variant", "panel controller, st7789 or gc9a01")
	codec := encoder.ReducedColorRLE
	flag.Var(&codec, "codec", "codec used by -mode encode")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	if *verbose {
		picogfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if *fps <= 0 {
		return errors.New("-fps must be positive")
	}

	cfg := encoder.DefaultConfig
	cfg.IsReceiverBigEndian = !*littleEndian
	if *mode == "encode" {
		return encodeFrame(os.Stdout, *sceneName, *width, *height, *frames, codec, &cfg)
	}

	var s sink
	closer := func() error { return nil }
	w, h := *width, *height
	if *rotation&1 != 0 {
		w, h = h, w
	}
	switch {
	case *term:
		d := termview.New(&termview.Opts{W: w, H: h, Scale: *scale})
		s, closer = d, d.Halt
	case *httpAddr != "":
		d := netview.New(&netview.Opts{W: w, H: h, Encoder: &cfg})
		srv := &http.Server{Addr: *httpAddr, Handler: d}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("picogfx: %v", err)
			}
		}()
		s = d
		closer = func() error {
			_ = d.Halt()
			return srv.Close()
		}
	default:
		opts := lcd.DefaultOpts
		opts.W, opts.H = *width, *height
		opts.Variant = variant
		opts.Rotation = *rotation
		opts.Invert = *invert
		var err error
		if s, closer, err = openPanel(*spiName, *dcName, *rstName, *blName, &opts); err != nil {
			return err
		}
	}

	var err error
	switch *mode {
	case "show":
		var sc scene
		if sc, err = newScene(*sceneName, s.Framebuffer(), gfxmath.NewTables()); err == nil {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			err = show(ctx, s, sc, *frames, time.Second/time.Duration(*fps))
			stop()
			if err2 := sc.Close(); err == nil {
				err = err2
			}
		}
	case "decode":
		var md *encoder.Metadata
		if md, err = decodeFrame(os.Stdin, s, &cfg); err == nil {
			picogfx.Logger().Info("decoded", "frame", md)
		}
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err2 := closer(); err == nil {
		err = err2
	}
	return err
}

func main() {
	if err := mainImpl(); err != nil {
		log.Fatalf("picogfx: %v", err)
	}
}
