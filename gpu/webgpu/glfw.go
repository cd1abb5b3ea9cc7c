// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

package webgpu

import (
	"image"

	"cogentcore.org/boxes/base/errors"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// note: this file contains the glfw dependencies, for desktop platform builds.

// Init initializes glfw for windowed use.
// IMPORTANT: must be called on the main initial thread!
func Init() error {
	return errors.Log(glfw.Init())
}

// Terminate shuts down glfw. Call it as the last thing before quitting.
// IMPORTANT: must be called on the main initial thread!
func Terminate() {
	glfw.Terminate()
}

// Window is a glfw window with no client API, for WebGPU rendering.
type Window struct {
	Window *glfw.Window
}

// CreateWindow initializes glfw and opens a window of the given size,
// returning it with a surface for it created on the given instance.
func CreateWindow(inst *Instance, size image.Point, title string) (*Window, *Surface, error) {
	if err := Init(); err != nil {
		return nil, nil, err
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	w, err := glfw.CreateWindow(size.X, size.Y, title, nil, nil)
	if err != nil {
		Terminate()
		return nil, nil, errors.Log(err)
	}
	sf := inst.CreateSurface(wgpuglfw.GetSurfaceDescriptor(w))
	return &Window{Window: w}, sf, nil
}

// Size returns the current framebuffer size in pixels.
func (w *Window) Size() image.Point {
	x, y := w.Window.GetFramebufferSize()
	return image.Point{x, y}
}

// PollEvents processes pending window events, returning false
// once the window should close.
func (w *Window) PollEvents() bool {
	if w.Window.ShouldClose() {
		return false
	}
	glfw.PollEvents()
	return true
}

// Destroy closes the window and terminates glfw.
func (w *Window) Destroy() {
	w.Window.Destroy()
	Terminate()
}
