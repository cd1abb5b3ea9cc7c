// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package boxes renders instanced rounded boxes with a perspective
// camera. A [State] owns all the GPU resources of the renderer and
// draws one frame per call to [State.Render].
package boxes

import (
	"fmt"
	"image"
	"log/slog"

	"cogentcore.org/boxes/colors"
	"cogentcore.org/boxes/gpu"
	"cogentcore.org/boxes/shader"
)

// Options are the options for [New].
type Options struct {
	// Compiler selects how the shader reaches the device.
	Compiler shader.Compilers

	// Viewport is the initial camera. If nil, [DefaultViewport] is used.
	// Its aspect ratio is replaced by that of the surface once configured.
	Viewport *Viewport

	// Instances are the initial boxes. If nil, a single [DefaultBox] is drawn.
	Instances []Box

	// ClearColor is the background color. If nil, [DefaultClearColor] is used.
	ClearColor *gpu.Color
}

// DefaultClearColor is the background color of every frame.
func DefaultClearColor() gpu.Color {
	c := colors.RGBToSRGB(30, 30, 46)
	return gpu.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: 1}
}

// State is the renderer: the GPU context, the viewport and its uniform,
// the pipeline, the quad geometry and the instances. All methods must
// be called from the goroutine that drives the window event loop.
type State struct {
	ctx *gpu.Context

	viewport Viewport
	uniform  ViewportUniform

	// viewportDirty is set when the uniform must be uploaded
	// before the next frame.
	viewportDirty bool

	binding    *ViewportBinding
	pipeline   *Pipeline
	geometry   *Geometry
	instances  *InstanceStore
	clearColor gpu.Color
	frameCount int
}

// New creates the renderer resources on the given context, in order:
// the viewport uniform and its bind group, the pipeline, the quad
// geometry and the instance buffer. The State takes ownership of the
// context, except when an error is returned, in which case all of
// the resources created so far are released but the context is not.
func New(ctx *gpu.Context, opts *Options) (*State, error) {
	if opts == nil {
		opts = &Options{}
	}
	st := &State{ctx: ctx, instances: NewInstanceStore(), clearColor: DefaultClearColor()}
	if opts.ClearColor != nil {
		st.clearColor = *opts.ClearColor
	}
	if opts.Viewport != nil {
		st.viewport = *opts.Viewport
	} else {
		st.viewport = DefaultViewport(ctx.Aspect())
	}
	if ctx.Configured() {
		sz := ctx.Size()
		st.viewport.SetAspect(sz.X, sz.Y)
	}
	if err := st.viewport.Validate(); err != nil {
		return nil, err
	}
	st.uniform = NewViewportUniform()
	st.uniform.Update(&st.viewport)

	dev := ctx.Device
	var err error
	fail := func(err error) (*State, error) {
		st.releaseResources()
		return nil, err
	}
	if st.binding, err = NewViewportBinding(dev, &st.uniform); err != nil {
		return fail(err)
	}
	if st.pipeline, err = NewPipeline(dev, ShaderSource, opts.Compiler, st.binding.Layout, ctx.Format()); err != nil {
		return fail(err)
	}
	if st.geometry, err = NewGeometry(dev); err != nil {
		return fail(err)
	}
	bs := opts.Instances
	if bs == nil {
		bs = []Box{DefaultBox()}
	}
	if err := st.instances.Upload(dev, ctx.Queue, bs); err != nil {
		return fail(err)
	}
	slog.Info("boxes: renderer ready", "format", ctx.Format(), "instances", st.instances.Count(), "compiler", opts.Compiler)
	return st, nil
}

// Context returns the GPU context.
func (st *State) Context() *gpu.Context {
	return st.ctx
}

// Resize reconfigures the surface for the new window size and updates
// the viewport aspect ratio. A zero dimension is a no-op. Returns true
// if the surface was reconfigured.
func (st *State) Resize(width, height int) bool {
	if !st.ctx.Resize(image.Point{width, height}) {
		return false
	}
	st.viewport.SetAspect(width, height)
	st.viewportDirty = true
	slog.Debug("boxes: resized", "width", width, "height", height, "aspect", st.viewport.Aspect)
	return true
}

// Input handles a window input event, returning true if it was consumed.
// No events are consumed.
func (st *State) Input(ev Event) bool {
	return false
}

// Update uploads the viewport uniform if the viewport changed
// since the last upload.
func (st *State) Update() error {
	if !st.viewportDirty {
		return nil
	}
	st.uniform.Update(&st.viewport)
	if err := st.binding.Write(st.ctx.Queue, &st.uniform); err != nil {
		return fmt.Errorf("boxes: writing viewport uniform: %w", err)
	}
	st.viewportDirty = false
	return nil
}

// SetViewport sets the camera, which is uploaded by the next [State.Update].
func (st *State) SetViewport(vp Viewport) error {
	if err := vp.Validate(); err != nil {
		return err
	}
	st.viewport = vp
	st.viewportDirty = true
	return nil
}

// Viewport returns the current camera.
func (st *State) Viewport() Viewport {
	return st.viewport
}

// Uniform returns the last computed viewport uniform.
func (st *State) Uniform() ViewportUniform {
	return st.uniform
}

// SetInstances replaces the boxes to draw. It must be called between frames.
func (st *State) SetInstances(bs []Box) error {
	return st.instances.Upload(st.ctx.Device, st.ctx.Queue, bs)
}

// Instances returns the instance store.
func (st *State) Instances() *InstanceStore {
	return st.instances
}

// InstanceCount returns the number of boxes drawn per frame.
func (st *State) InstanceCount() int {
	return st.instances.Count()
}

// FrameCount returns the number of frames presented.
func (st *State) FrameCount() int {
	return st.frameCount
}

func (st *State) releaseResources() {
	st.instances.Release()
	if st.geometry != nil {
		st.geometry.Release()
		st.geometry = nil
	}
	if st.pipeline != nil {
		st.pipeline.Release()
		st.pipeline = nil
	}
	if st.binding != nil {
		st.binding.Release()
		st.binding = nil
	}
}

// Release releases all resources in reverse creation order,
// and then the context.
func (st *State) Release() {
	st.releaseResources()
	if st.ctx != nil {
		st.ctx.Release()
		st.ctx = nil
	}
}
