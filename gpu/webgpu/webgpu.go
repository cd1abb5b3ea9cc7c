// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package webgpu implements the gpu interfaces on wgpu-native,
// using github.com/cogentcore/webgpu.
package webgpu

import (
	"fmt"
	"log/slog"

	"cogentcore.org/boxes/base/errors"
	"cogentcore.org/boxes/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Instance is a [gpu.Instance] on a wgpu instance.
type Instance struct {
	Instance *wgpu.Instance
}

// NewInstance creates a new wgpu instance.
func NewInstance() *Instance {
	return &Instance{Instance: wgpu.CreateInstance(nil)}
}

// CreateSurface creates a surface from the given platform descriptor,
// typically from wgpuglfw.GetSurfaceDescriptor.
func (in *Instance) CreateSurface(desc *wgpu.SurfaceDescriptor) *Surface {
	return &Surface{Surface: in.Instance.CreateSurface(desc)}
}

func (in *Instance) RequestAdapter(opts *gpu.RequestAdapterOptions) (gpu.Adapter, error) {
	wo := &wgpu.RequestAdapterOptions{
		PowerPreference:      powerPreference(opts.PowerPreference),
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
	}
	if sf, ok := opts.CompatibleSurface.(*Surface); ok && sf != nil {
		wo.CompatibleSurface = sf.Surface
	}
	a, err := in.Instance.RequestAdapter(wo)
	if err != nil {
		return nil, err
	}
	return &Adapter{Adapter: a}, nil
}

func (in *Instance) Release() {
	in.Instance.Release()
}

// Adapter is a [gpu.Adapter].
type Adapter struct {
	Adapter *wgpu.Adapter
}

func (ad *Adapter) Info() gpu.AdapterInfo {
	info := ad.Adapter.GetInfo()
	return gpu.AdapterInfo{
		Name:        info.Name,
		Driver:      info.DriverDescription,
		AdapterType: fmt.Sprint(info.AdapterType),
		BackendType: fmt.Sprint(info.BackendType),
	}
}

func (ad *Adapter) RequestDevice(desc *gpu.DeviceDescriptor) (gpu.Device, error) {
	d, err := ad.Adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: desc.Label,
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, err
	}
	return &Device{Device: d, queue: &Queue{Queue: d.GetQueue()}}, nil
}

func (ad *Adapter) Release() {
	ad.Adapter.Release()
}

// Surface is a [gpu.Surface] on a window surface.
type Surface struct {
	Surface *wgpu.Surface
}

func (sf *Surface) Capabilities(adapter gpu.Adapter) gpu.SurfaceCapabilities {
	caps := sf.Surface.GetCapabilities(adapter.(*Adapter).Adapter)
	var sc gpu.SurfaceCapabilities
	for _, f := range caps.Formats {
		if tf, ok := textureFormatsFrom[f]; ok && tf != gpu.TextureFormatUndefined {
			sc.Formats = append(sc.Formats, tf)
		} else {
			slog.Debug("webgpu: skipping unsupported surface format", "format", f)
		}
	}
	for _, m := range caps.PresentModes {
		if pm, ok := presentModesFrom[m]; ok {
			sc.PresentModes = append(sc.PresentModes, pm)
		}
	}
	for _, m := range caps.AlphaModes {
		if am, ok := alphaModesFrom[m]; ok {
			sc.AlphaModes = append(sc.AlphaModes, am)
		}
	}
	return sc
}

func (sf *Surface) Configure(adapter gpu.Adapter, device gpu.Device, config *gpu.SurfaceConfig) {
	sf.Surface.Configure(adapter.(*Adapter).Adapter, device.(*Device).Device, &wgpu.SurfaceConfiguration{
		Usage:       textureUsage(config.Usage),
		Format:      TextureFormat(config.Format),
		Width:       config.Width,
		Height:      config.Height,
		PresentMode: presentModes[config.PresentMode],
		AlphaMode:   alphaModes[config.AlphaMode],
	})
}

// AcquireTexture returns the current surface texture. Its errors
// carry the wgpu surface status name, which [gpu.ClassifySurfaceError]
// recognizes.
func (sf *Surface) AcquireTexture() (gpu.SurfaceTexture, error) {
	tex, err := sf.Surface.GetCurrentTexture()
	if err != nil {
		return nil, err
	}
	if tex == nil {
		return nil, errors.New("webgpu: surface returned no texture")
	}
	return &SurfaceTexture{Texture: tex}, nil
}

func (sf *Surface) Present() {
	sf.Surface.Present()
}

func (sf *Surface) Release() {
	sf.Surface.Release()
}

// SurfaceTexture is a [gpu.SurfaceTexture].
type SurfaceTexture struct {
	Texture *wgpu.Texture
}

func (st *SurfaceTexture) CreateView() (gpu.TextureView, error) {
	v, err := st.Texture.CreateView(nil)
	if err != nil {
		return nil, err
	}
	return &TextureView{View: v}, nil
}

func (st *SurfaceTexture) Release() {
	st.Texture.Release()
}

// TextureView is a [gpu.TextureView].
type TextureView struct {
	View *wgpu.TextureView
}

func (tv *TextureView) Release() {
	tv.View.Release()
}

// Queue is a [gpu.Queue].
type Queue struct {
	Queue *wgpu.Queue
}

func (qu *Queue) WriteBuffer(buf gpu.Buffer, offset uint64, data []byte) error {
	return qu.Queue.WriteBuffer(buf.(*Buffer).Buffer, offset, data)
}

func (qu *Queue) Submit(cmds ...gpu.CommandBuffer) {
	for _, c := range cmds {
		qu.Queue.Submit(c.(*CommandBuffer).CommandBuffer)
	}
}

// Buffer is a [gpu.Buffer].
type Buffer struct {
	Buffer *wgpu.Buffer
	size   uint64
}

func (b *Buffer) Size() uint64 { return b.size }

func (b *Buffer) Release() {
	b.Buffer.Release()
}

// ShaderModule is a [gpu.ShaderModule].
type ShaderModule struct {
	Module *wgpu.ShaderModule
}

func (sm *ShaderModule) Release() { sm.Module.Release() }

// BindGroupLayout is a [gpu.BindGroupLayout].
type BindGroupLayout struct {
	Layout *wgpu.BindGroupLayout
}

func (bl *BindGroupLayout) Release() { bl.Layout.Release() }

// BindGroup is a [gpu.BindGroup].
type BindGroup struct {
	Group *wgpu.BindGroup
}

func (bg *BindGroup) Release() { bg.Group.Release() }

// PipelineLayout is a [gpu.PipelineLayout].
type PipelineLayout struct {
	Layout *wgpu.PipelineLayout
}

func (pl *PipelineLayout) Release() { pl.Layout.Release() }

// RenderPipeline is a [gpu.RenderPipeline].
type RenderPipeline struct {
	Pipeline *wgpu.RenderPipeline
}

func (rp *RenderPipeline) Release() { rp.Pipeline.Release() }

var (
	_ gpu.Instance        = (*Instance)(nil)
	_ gpu.Adapter         = (*Adapter)(nil)
	_ gpu.Surface         = (*Surface)(nil)
	_ gpu.SurfaceTexture  = (*SurfaceTexture)(nil)
	_ gpu.TextureView     = (*TextureView)(nil)
	_ gpu.Queue           = (*Queue)(nil)
	_ gpu.Buffer          = (*Buffer)(nil)
	_ gpu.ShaderModule    = (*ShaderModule)(nil)
	_ gpu.BindGroupLayout = (*BindGroupLayout)(nil)
	_ gpu.BindGroup       = (*BindGroup)(nil)
	_ gpu.PipelineLayout  = (*PipelineLayout)(nil)
	_ gpu.RenderPipeline  = (*RenderPipeline)(nil)
)
