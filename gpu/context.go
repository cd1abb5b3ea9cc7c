// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"log/slog"
	"slices"
)

// ContextOptions are the options for [NewContext].
type ContextOptions struct {
	// Label is used for the device and in log messages.
	Label string

	// PowerPreference is the adapter preference; high performance by default.
	PowerPreference PowerPreference

	// PresentMode is the preferred present mode. If it is undefined or
	// not supported by the surface, the first supported mode is used.
	PresentMode PresentMode

	// ForceFallbackAdapter requests a software adapter.
	ForceFallbackAdapter bool
}

// DefaultContextOptions returns the default [ContextOptions].
func DefaultContextOptions() *ContextOptions {
	return &ContextOptions{
		Label:           "boxes",
		PowerPreference: PowerPreferenceHighPerformance,
	}
}

// Context owns the GPU objects bound to one window surface:
// the adapter, the logical device and its queue, and the surface
// configuration, which it keeps in sync with the window size.
type Context struct {
	// Instance is the backend instance, owned by the Context.
	Instance Instance

	// Surface is the window surface, owned by the Context.
	Surface Surface

	// Adapter is the physical device selected for the surface.
	Adapter Adapter

	// Device is the logical device.
	Device Device

	// Queue is the queue of the device.
	Queue Queue

	// Capabilities are the surface capabilities for the adapter.
	Capabilities SurfaceCapabilities

	// current surface configuration
	config SurfaceConfig

	// current window size in pixels
	size image.Point

	// configured is true once the surface has been configured
	// with a positive size.
	configured bool

	label string
}

// NewContext selects an adapter compatible with the given surface,
// opens a device and configures the surface for the given size,
// taking ownership of the instance and the surface.
// The surface format is the first sRGB format the surface supports,
// falling back to its first format. If size is empty, configuration
// is deferred until the first positive [Context.Resize].
// All errors are fatal and release whatever was created.
func NewContext(inst Instance, surface Surface, size image.Point, opts *ContextOptions) (*Context, error) {
	if opts == nil {
		opts = DefaultContextOptions()
	}
	pp := opts.PowerPreference
	if pp == PowerPreferenceUndefined {
		pp = PowerPreferenceHighPerformance
	}
	ctx := &Context{Instance: inst, Surface: surface, label: opts.Label}
	ad, err := inst.RequestAdapter(&RequestAdapterOptions{
		CompatibleSurface:    surface,
		PowerPreference:      pp,
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
	})
	if err != nil || ad == nil {
		ctx.Release()
		return nil, wrapInit(ErrNoAdapter, err)
	}
	ctx.Adapter = ad
	info := ad.Info()
	slog.Info("gpu: adapter selected", "name", info.Name, "type", info.AdapterType, "backend", info.BackendType)

	dev, err := ad.RequestDevice(&DeviceDescriptor{Label: opts.Label})
	if err != nil || dev == nil {
		ctx.Release()
		return nil, wrapInit(ErrNoDevice, err)
	}
	ctx.Device = dev
	ctx.Queue = dev.Queue()

	caps := surface.Capabilities(ad)
	if len(caps.Formats) == 0 {
		ctx.Release()
		return nil, ErrNoSurfaceFormat
	}
	ctx.Capabilities = caps
	ctx.config = SurfaceConfig{
		Usage:       TextureUsageRenderAttachment,
		Format:      SelectSurfaceFormat(caps.Formats),
		PresentMode: selectPresentMode(caps.PresentModes, opts.PresentMode),
		AlphaMode:   CompositeAlphaModeAuto,
	}
	if len(caps.AlphaModes) > 0 {
		ctx.config.AlphaMode = caps.AlphaModes[0]
	}
	if !ctx.Resize(size) {
		slog.Debug("gpu: surface configuration deferred", "size", size)
	}
	return ctx, nil
}

func wrapInit(kind, err error) error {
	if err == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, err)
}

// selectPresentMode returns the preferred mode if supported,
// and otherwise the first supported mode.
func selectPresentMode(modes []PresentMode, preferred PresentMode) PresentMode {
	if preferred != PresentModeUndefined && slices.Contains(modes, preferred) {
		return preferred
	}
	if len(modes) == 0 {
		return PresentModeFifo
	}
	if preferred != PresentModeUndefined {
		slog.Warn("gpu: present mode not supported, using default", "preferred", preferred, "using", modes[0])
	}
	return modes[0]
}

// Resize sets the surface size and reconfigures the surface if both
// dimensions are positive. A zero dimension (a minimized window) is a
// no-op that keeps the previous configuration. Returns true if the
// surface was reconfigured.
func (ctx *Context) Resize(size image.Point) bool {
	if size.X <= 0 || size.Y <= 0 {
		return false
	}
	ctx.size = size
	ctx.config.Width = uint32(size.X)
	ctx.config.Height = uint32(size.Y)
	ctx.configure()
	return true
}

// Reconfigure reapplies the current configuration, to recover
// from an outdated or lost surface. It does nothing if the
// surface has never been configured.
func (ctx *Context) Reconfigure() {
	if !ctx.configured {
		return
	}
	ctx.configure()
}

func (ctx *Context) configure() {
	cfg := ctx.config
	ctx.Surface.Configure(ctx.Adapter, ctx.Device, &cfg)
	ctx.configured = true
	slog.Debug("gpu: surface configured", "config", cfg.String())
}

// CurrentTexture acquires the texture for the next frame.
// Errors are returned as a classified [*SurfaceError].
func (ctx *Context) CurrentTexture() (SurfaceTexture, error) {
	tex, err := ctx.Surface.AcquireTexture()
	if err != nil {
		return nil, ClassifySurfaceError(err)
	}
	return tex, nil
}

// Config returns the current surface configuration.
func (ctx *Context) Config() SurfaceConfig {
	return ctx.config
}

// Configured returns true if the surface has been configured
// and frames can be rendered.
func (ctx *Context) Configured() bool {
	return ctx.configured
}

// Format returns the surface texture format.
func (ctx *Context) Format() TextureFormat {
	return ctx.config.Format
}

// Size returns the current surface size in pixels.
func (ctx *Context) Size() image.Point {
	return ctx.size
}

// Aspect returns the width / height aspect ratio of the surface,
// or 1 if it has no size yet.
func (ctx *Context) Aspect() float32 {
	if ctx.size.X <= 0 || ctx.size.Y <= 0 {
		return 1
	}
	return float32(ctx.size.X) / float32(ctx.size.Y)
}

// AdapterInfo returns the description of the selected adapter.
func (ctx *Context) AdapterInfo() AdapterInfo {
	if ctx.Adapter == nil {
		return AdapterInfo{}
	}
	return ctx.Adapter.Info()
}

// Label returns the label given in the options.
func (ctx *Context) Label() string {
	return ctx.label
}

// Release releases the device, adapter, surface and instance,
// in that order.
func (ctx *Context) Release() {
	if ctx.Device != nil {
		ctx.Device.Release()
		ctx.Device = nil
		ctx.Queue = nil
	}
	if ctx.Adapter != nil {
		ctx.Adapter.Release()
		ctx.Adapter = nil
	}
	if ctx.Surface != nil {
		ctx.Surface.Release()
		ctx.Surface = nil
	}
	if ctx.Instance != nil {
		ctx.Instance.Release()
		ctx.Instance = nil
	}
	ctx.configured = false
}
