// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

// Command boxes opens a window and draws instanced rounded boxes with WebGPU.
package main

import (
	"image"
	"log/slog"
	"os"
	"runtime"
	"time"

	"cogentcore.org/boxes/base/errors"
	"cogentcore.org/boxes/boxes"
	"cogentcore.org/boxes/cli"
	"cogentcore.org/boxes/gpu"
	"cogentcore.org/boxes/gpu/webgpu"
	"cogentcore.org/boxes/logx"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/pflag"
)

func init() {
	// must lock main thread for gpu!
	runtime.LockOSThread()
}

func main() {
	logx.SetDefault(os.Stderr)
	cfg := &Config{}
	err := cli.Parse(cfg, cli.DefaultOptions("boxes"), os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		slog.Error("boxes: configuration", "err", err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		slog.Error("boxes: exiting", "err", err)
		os.Exit(1)
	}
}

func run(cfg *Config) error {
	copts, opts, err := cfg.setup()
	if err != nil {
		return err
	}
	inst := webgpu.NewInstance()
	win, sf, err := webgpu.CreateWindow(inst, image.Point{cfg.Width, cfg.Height}, cfg.Title)
	if err != nil {
		inst.Release()
		return err
	}
	defer win.Destroy()

	// the context owns inst and sf from here on, releasing them on error
	ctx, err := gpu.NewContext(inst, sf, win.Size(), copts)
	if err != nil {
		return err
	}
	st, err := boxes.New(ctx, opts)
	if err != nil {
		ctx.Release()
		return err
	}
	defer st.Release()
	info := ctx.AdapterInfo()
	slog.Info("boxes: using adapter", "name", info.Name, "backend", info.BackendType, "format", ctx.Format())

	connectEvents(win, st)

	exitC := make(chan struct{}, 2)
	fpsTicker := time.NewTicker(time.Second / time.Duration(cfg.FPS))
	defer fpsTicker.Stop()
	stTime := time.Now()
	for {
		select {
		case <-exitC:
			slog.Info("boxes: closed", "frames", st.FrameCount(), "elapsed", time.Since(stTime).Round(time.Millisecond))
			return nil
		case <-fpsTicker.C:
			if !win.PollEvents() {
				exitC <- struct{}{}
				continue
			}
			if err := st.Render(); err != nil {
				return err
			}
		}
	}
}

// connectEvents forwards the window events to the renderer.
// Escape closes the window unless the renderer consumes it.
func connectEvents(win *webgpu.Window, st *boxes.State) {
	w := win.Window
	w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		st.Resize(width, height)
	})
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		ev := boxes.Event{Type: boxes.KeyEvent, Code: int(key), Action: int(action)}
		if !st.Input(ev) && key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	w.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		st.Input(boxes.Event{Type: boxes.MouseButtonEvent, Code: int(button), Action: int(action)})
	})
	w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		st.Input(boxes.Event{Type: boxes.MouseMoveEvent, X: x, Y: y})
	})
	w.SetScrollCallback(func(_ *glfw.Window, x, y float64) {
		st.Input(boxes.Event{Type: boxes.ScrollEvent, X: x, Y: y})
	})
}
