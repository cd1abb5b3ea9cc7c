// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gputest

import (
	"fmt"

	"cogentcore.org/boxes/gpu"
)

// Device is a recording [gpu.Device]. All created objects are
// kept in creation order.
type Device struct {
	Log        *Log
	QueueValue *Queue

	Buffers          []*Buffer
	ShaderModules    []*ShaderModule
	BindGroupLayouts []*BindGroupLayout
	BindGroups       []*BindGroup
	PipelineLayouts  []*PipelineLayout
	Pipelines        []*RenderPipeline
	Encoders         []*CommandEncoder

	// ShaderError is returned by CreateShaderModule if set.
	ShaderError error

	// PipelineError is returned by CreateRenderPipeline if set.
	PipelineError error

	// BufferError is returned by CreateBufferInit if set.
	BufferError error

	Released bool
}

func (dv *Device) Queue() gpu.Queue { return dv.QueueValue }

func (dv *Device) CreateShaderModule(desc *gpu.ShaderModuleDescriptor) (gpu.ShaderModule, error) {
	if dv.ShaderError != nil {
		return nil, dv.ShaderError
	}
	sm := &ShaderModule{Log: dv.Log, Desc: *desc}
	dv.ShaderModules = append(dv.ShaderModules, sm)
	dv.Log.add("shader %s", desc.Label)
	return sm, nil
}

func (dv *Device) CreateBufferInit(desc *gpu.BufferInitDescriptor) (gpu.Buffer, error) {
	if dv.BufferError != nil {
		return nil, dv.BufferError
	}
	b := &Buffer{Log: dv.Log, Label: desc.Label, Usage: desc.Usage, Data: append([]byte(nil), desc.Contents...)}
	dv.Buffers = append(dv.Buffers, b)
	dv.Log.add("buffer %s %d", desc.Label, len(desc.Contents))
	return b, nil
}

func (dv *Device) CreateBindGroupLayout(desc *gpu.BindGroupLayoutDescriptor) (gpu.BindGroupLayout, error) {
	bl := &BindGroupLayout{Log: dv.Log, Desc: *desc}
	dv.BindGroupLayouts = append(dv.BindGroupLayouts, bl)
	dv.Log.add("bind group layout %s", desc.Label)
	return bl, nil
}

func (dv *Device) CreateBindGroup(desc *gpu.BindGroupDescriptor) (gpu.BindGroup, error) {
	bg := &BindGroup{Log: dv.Log, Desc: *desc}
	dv.BindGroups = append(dv.BindGroups, bg)
	dv.Log.add("bind group %s", desc.Label)
	return bg, nil
}

func (dv *Device) CreatePipelineLayout(desc *gpu.PipelineLayoutDescriptor) (gpu.PipelineLayout, error) {
	pl := &PipelineLayout{Log: dv.Log, Desc: *desc}
	dv.PipelineLayouts = append(dv.PipelineLayouts, pl)
	dv.Log.add("pipeline layout %s", desc.Label)
	return pl, nil
}

func (dv *Device) CreateRenderPipeline(desc *gpu.RenderPipelineDescriptor) (gpu.RenderPipeline, error) {
	if dv.PipelineError != nil {
		return nil, dv.PipelineError
	}
	rp := &RenderPipeline{Log: dv.Log, Desc: *desc}
	dv.Pipelines = append(dv.Pipelines, rp)
	dv.Log.add("pipeline %s", desc.Label)
	return rp, nil
}

func (dv *Device) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	ce := &CommandEncoder{Label: label}
	dv.Encoders = append(dv.Encoders, ce)
	return ce, nil
}

func (dv *Device) Release() {
	dv.Released = true
	dv.Log.add("release device")
}

// LiveBuffers returns the buffers that have not been released.
func (dv *Device) LiveBuffers() []*Buffer {
	var bs []*Buffer
	for _, b := range dv.Buffers {
		if !b.Released {
			bs = append(bs, b)
		}
	}
	return bs
}

// BufferWrite is one recorded [Queue.WriteBuffer] call.
type BufferWrite struct {
	Buffer *Buffer
	Offset uint64
	Data   []byte
}

// Queue is a recording [gpu.Queue].
type Queue struct {
	Log       *Log
	Writes    []BufferWrite
	Submitted []*CommandBuffer
	device    *Device
}

func (qu *Queue) WriteBuffer(buf gpu.Buffer, offset uint64, data []byte) error {
	b, ok := buf.(*Buffer)
	if !ok {
		return fmt.Errorf("gputest: WriteBuffer: foreign buffer %T", buf)
	}
	if b.Released {
		return fmt.Errorf("gputest: WriteBuffer: buffer %q is released", b.Label)
	}
	end := offset + uint64(len(data))
	if end > uint64(len(b.Data)) {
		return fmt.Errorf("gputest: WriteBuffer: write of %d bytes at %d overflows buffer %q of size %d", len(data), offset, b.Label, len(b.Data))
	}
	copy(b.Data[offset:end], data)
	qu.Writes = append(qu.Writes, BufferWrite{Buffer: b, Offset: offset, Data: append([]byte(nil), data...)})
	return nil
}

func (qu *Queue) Submit(cmds ...gpu.CommandBuffer) {
	for _, c := range cmds {
		cb := c.(*CommandBuffer)
		qu.Submitted = append(qu.Submitted, cb)
	}
	qu.Log.add("submit %d", len(cmds))
}

// Draws returns all draw calls of all submitted command buffers, in order.
func (qu *Queue) Draws() []DrawCall {
	var ds []DrawCall
	for _, cb := range qu.Submitted {
		for _, rp := range cb.Encoder.Passes {
			ds = append(ds, rp.Draws...)
		}
	}
	return ds
}

// Passes returns all render passes of all submitted command buffers, in order.
func (qu *Queue) Passes() []*RenderPass {
	var ps []*RenderPass
	for _, cb := range qu.Submitted {
		ps = append(ps, cb.Encoder.Passes...)
	}
	return ps
}

// Buffer is a recording [gpu.Buffer] holding a copy of its contents.
type Buffer struct {
	Log      *Log
	Label    string
	Usage    gpu.BufferUsage
	Data     []byte
	Released bool
}

func (b *Buffer) Size() uint64 { return uint64(len(b.Data)) }

func (b *Buffer) Release() {
	b.Released = true
	b.Log.add("release buffer %s", b.Label)
}

// ShaderModule is a recording [gpu.ShaderModule].
type ShaderModule struct {
	Log      *Log
	Desc     gpu.ShaderModuleDescriptor
	Released bool
}

func (sm *ShaderModule) Release() {
	sm.Released = true
	sm.Log.add("release shader %s", sm.Desc.Label)
}

// BindGroupLayout is a recording [gpu.BindGroupLayout].
type BindGroupLayout struct {
	Log      *Log
	Desc     gpu.BindGroupLayoutDescriptor
	Released bool
}

func (bl *BindGroupLayout) Release() {
	bl.Released = true
	bl.Log.add("release bind group layout %s", bl.Desc.Label)
}

// BindGroup is a recording [gpu.BindGroup].
type BindGroup struct {
	Log      *Log
	Desc     gpu.BindGroupDescriptor
	Released bool
}

func (bg *BindGroup) Release() {
	bg.Released = true
	bg.Log.add("release bind group %s", bg.Desc.Label)
}

// PipelineLayout is a recording [gpu.PipelineLayout].
type PipelineLayout struct {
	Log      *Log
	Desc     gpu.PipelineLayoutDescriptor
	Released bool
}

func (pl *PipelineLayout) Release() {
	pl.Released = true
	pl.Log.add("release pipeline layout %s", pl.Desc.Label)
}

// RenderPipeline is a recording [gpu.RenderPipeline].
type RenderPipeline struct {
	Log      *Log
	Desc     gpu.RenderPipelineDescriptor
	Released bool
}

func (rp *RenderPipeline) Release() {
	rp.Released = true
	rp.Log.add("release pipeline %s", rp.Desc.Label)
}
