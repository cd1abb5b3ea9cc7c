// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gputest provides an in-memory implementation of the gpu
// interfaces that records every call, for testing rendering code
// without a GPU or a display.
package gputest

import (
	"fmt"
	"slices"

	"cogentcore.org/boxes/gpu"
)

// Log is the ordered list of lifecycle events (creation,
// configuration, release) shared by all objects of an [Instance].
type Log struct {
	Events []string
}

func (l *Log) add(format string, args ...any) {
	l.Events = append(l.Events, fmt.Sprintf(format, args...))
}

// Index returns the index of the first event equal to ev, or -1.
func (l *Log) Index(ev string) int {
	return slices.Index(l.Events, ev)
}

// Instance is a recording [gpu.Instance]. Its fields can be set
// before use to script failures.
type Instance struct {
	Log *Log

	// Adapter is returned by RequestAdapter.
	Adapter *Adapter

	// AdapterError is returned by RequestAdapter if set.
	AdapterError error

	// Options is the last adapter request.
	Options gpu.RequestAdapterOptions

	Released bool
}

// NewInstance returns a new [Instance] with an adapter and device,
// and a surface supporting a linear and an sRGB BGRA format.
func NewInstance() (*Instance, *Surface) {
	lg := &Log{}
	dev := &Device{Log: lg}
	dev.QueueValue = &Queue{Log: lg, device: dev}
	inst := &Instance{
		Log: lg,
		Adapter: &Adapter{
			Log:         lg,
			Device:      dev,
			AdapterInfo: gpu.AdapterInfo{Name: "gputest", AdapterType: "cpu", BackendType: "null"},
		},
	}
	sf := &Surface{
		Log: lg,
		Caps: gpu.SurfaceCapabilities{
			Formats:      []gpu.TextureFormat{gpu.TextureFormatBGRA8Unorm, gpu.TextureFormatBGRA8UnormSrgb},
			PresentModes: []gpu.PresentMode{gpu.PresentModeFifo, gpu.PresentModeMailbox},
			AlphaModes:   []gpu.CompositeAlphaMode{gpu.CompositeAlphaModeOpaque},
		},
	}
	return inst, sf
}

func (in *Instance) RequestAdapter(opts *gpu.RequestAdapterOptions) (gpu.Adapter, error) {
	in.Options = *opts
	if in.AdapterError != nil {
		return nil, in.AdapterError
	}
	if in.Adapter == nil {
		return nil, nil
	}
	in.Log.add("adapter")
	return in.Adapter, nil
}

func (in *Instance) Release() {
	in.Released = true
	in.Log.add("release instance")
}

// Adapter is a recording [gpu.Adapter].
type Adapter struct {
	Log         *Log
	AdapterInfo gpu.AdapterInfo

	// Device is returned by RequestDevice.
	Device *Device

	// DeviceError is returned by RequestDevice if set.
	DeviceError error

	Released bool
}

func (ad *Adapter) Info() gpu.AdapterInfo { return ad.AdapterInfo }

func (ad *Adapter) RequestDevice(desc *gpu.DeviceDescriptor) (gpu.Device, error) {
	if ad.DeviceError != nil {
		return nil, ad.DeviceError
	}
	ad.Log.add("device %s", desc.Label)
	return ad.Device, nil
}

func (ad *Adapter) Release() {
	ad.Released = true
	ad.Log.add("release adapter")
}

// Surface is a recording [gpu.Surface].
type Surface struct {
	Log  *Log
	Caps gpu.SurfaceCapabilities

	// Configs has every configuration applied, in order.
	Configs []gpu.SurfaceConfig

	// AcquireErrors are returned by successive AcquireTexture calls
	// until exhausted. A nil entry acquires normally.
	AcquireErrors []error

	// Textures has every texture acquired.
	Textures []*SurfaceTexture

	Presented int
	Released  bool
}

func (sf *Surface) Capabilities(adapter gpu.Adapter) gpu.SurfaceCapabilities {
	return sf.Caps
}

func (sf *Surface) Configure(adapter gpu.Adapter, device gpu.Device, config *gpu.SurfaceConfig) {
	sf.Configs = append(sf.Configs, *config)
	sf.Log.add("configure %dx%d", config.Width, config.Height)
}

// LastConfig returns the last applied configuration, and false if none.
func (sf *Surface) LastConfig() (gpu.SurfaceConfig, bool) {
	if len(sf.Configs) == 0 {
		return gpu.SurfaceConfig{}, false
	}
	return sf.Configs[len(sf.Configs)-1], true
}

func (sf *Surface) AcquireTexture() (gpu.SurfaceTexture, error) {
	if len(sf.AcquireErrors) > 0 {
		err := sf.AcquireErrors[0]
		sf.AcquireErrors = sf.AcquireErrors[1:]
		if err != nil {
			return nil, err
		}
	}
	tex := &SurfaceTexture{Log: sf.Log}
	sf.Textures = append(sf.Textures, tex)
	return tex, nil
}

func (sf *Surface) Present() {
	sf.Presented++
	sf.Log.add("present")
}

func (sf *Surface) Release() {
	sf.Released = true
	sf.Log.add("release surface")
}

// SurfaceTexture is a recording [gpu.SurfaceTexture].
type SurfaceTexture struct {
	Log      *Log
	Views    []*TextureView
	Released bool
}

func (st *SurfaceTexture) CreateView() (gpu.TextureView, error) {
	tv := &TextureView{}
	st.Views = append(st.Views, tv)
	return tv, nil
}

func (st *SurfaceTexture) Release() { st.Released = true }

// TextureView is a recording [gpu.TextureView].
type TextureView struct {
	Released bool
}

func (tv *TextureView) Release() { tv.Released = true }

var (
	_ gpu.Instance       = (*Instance)(nil)
	_ gpu.Adapter        = (*Adapter)(nil)
	_ gpu.Surface        = (*Surface)(nil)
	_ gpu.SurfaceTexture = (*SurfaceTexture)(nil)
	_ gpu.TextureView    = (*TextureView)(nil)
	_ gpu.Device         = (*Device)(nil)
	_ gpu.Queue          = (*Queue)(nil)
	_ gpu.Buffer         = (*Buffer)(nil)
	_ gpu.CommandEncoder = (*CommandEncoder)(nil)
	_ gpu.CommandBuffer  = (*CommandBuffer)(nil)
	_ gpu.RenderPass     = (*RenderPass)(nil)
	_ gpu.RenderPipeline = (*RenderPipeline)(nil)
)
