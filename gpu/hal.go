// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu defines a small backend-neutral interface to WebGPU style
// devices: instance, adapter, device, queue, surface, buffers, pipelines
// and render passes, along with the [Context] that owns the surface
// configuration for one window. The gpu/webgpu package implements it
// with wgpu-native, and gpu/gputest with an in-memory recorder.
//
// All handles are owned by the goroutine that created them, which for
// a windowed app is the main OS thread.
package gpu

// Releaser is a GPU object that holds backend resources.
type Releaser interface {
	Release()
}

// Instance is the entry point to a GPU backend.
type Instance interface {
	Releaser

	// RequestAdapter returns an adapter matching the given options.
	RequestAdapter(opts *RequestAdapterOptions) (Adapter, error)
}

// PowerPreference selects between integrated and discrete adapters.
type PowerPreference int32

const (
	PowerPreferenceUndefined PowerPreference = iota
	PowerPreferenceLowPower
	PowerPreferenceHighPerformance
)

// RequestAdapterOptions are the options for [Instance.RequestAdapter].
type RequestAdapterOptions struct {
	CompatibleSurface    Surface
	PowerPreference      PowerPreference
	ForceFallbackAdapter bool
}

// AdapterInfo describes a physical adapter.
type AdapterInfo struct {
	Name        string
	Driver      string
	AdapterType string
	BackendType string
}

// Adapter is a physical GPU.
type Adapter interface {
	Releaser

	Info() AdapterInfo

	// RequestDevice opens a logical device with its queue.
	RequestDevice(desc *DeviceDescriptor) (Device, error)
}

// DeviceDescriptor describes a logical device. The default
// features and limits are always requested.
type DeviceDescriptor struct {
	Label string
}

// Device is a logical device, which creates all other resources.
type Device interface {
	Releaser

	Queue() Queue
	CreateShaderModule(desc *ShaderModuleDescriptor) (ShaderModule, error)
	CreateBufferInit(desc *BufferInitDescriptor) (Buffer, error)
	CreateBindGroupLayout(desc *BindGroupLayoutDescriptor) (BindGroupLayout, error)
	CreateBindGroup(desc *BindGroupDescriptor) (BindGroup, error)
	CreatePipelineLayout(desc *PipelineLayoutDescriptor) (PipelineLayout, error)
	CreateRenderPipeline(desc *RenderPipelineDescriptor) (RenderPipeline, error)
	CreateCommandEncoder(label string) (CommandEncoder, error)
}

// Queue executes command buffers and buffer writes in submission order.
type Queue interface {
	// WriteBuffer copies data into the buffer at the given byte offset.
	// The write is ordered before any later Submit.
	WriteBuffer(buf Buffer, offset uint64, data []byte) error

	// Submit schedules the command buffers for execution.
	// It does not wait for the GPU.
	Submit(cmds ...CommandBuffer)
}

// Surface is a presentable window surface.
type Surface interface {
	Releaser

	Capabilities(adapter Adapter) SurfaceCapabilities
	Configure(adapter Adapter, device Device, config *SurfaceConfig)

	// AcquireTexture returns the next texture to render into.
	// Errors are classified by [ClassifySurfaceError].
	AcquireTexture() (SurfaceTexture, error)

	// Present shows the most recently acquired texture.
	Present()
}

// SurfaceTexture is the texture acquired from a [Surface] for one frame.
type SurfaceTexture interface {
	Releaser
	CreateView() (TextureView, error)
}

// TextureView is a view of a texture usable as a render target.
type TextureView interface {
	Releaser
}

// Buffer is a block of device memory.
type Buffer interface {
	Releaser

	// Size is the size of the buffer in bytes.
	Size() uint64
}

// ShaderModule is a compiled shader.
type ShaderModule interface {
	Releaser
}

// BindGroupLayout describes the bindings of one @group.
type BindGroupLayout interface {
	Releaser
}

// BindGroup binds resources to one @group.
type BindGroup interface {
	Releaser
}

// PipelineLayout lists the bind group layouts of a pipeline.
type PipelineLayout interface {
	Releaser
}

// RenderPipeline is a compiled graphics pipeline.
type RenderPipeline interface {
	Releaser
}

// CommandEncoder records commands into a [CommandBuffer].
type CommandEncoder interface {
	Releaser

	BeginRenderPass(desc *RenderPassDescriptor) RenderPass
	Finish() (CommandBuffer, error)
}

// CommandBuffer is a finished list of commands for [Queue.Submit].
type CommandBuffer interface {
	Releaser
}

// RenderPass records draw commands for one render pass.
// Release must be called after End and before [CommandEncoder.Finish].
type RenderPass interface {
	Releaser

	SetPipeline(pipeline RenderPipeline)
	SetBindGroup(index uint32, group BindGroup)
	SetVertexBuffer(slot uint32, buf Buffer)
	SetIndexBuffer(buf Buffer, format IndexFormat)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)
	End()
}
