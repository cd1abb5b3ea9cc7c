// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webgpu

import (
	"encoding/binary"

	"cogentcore.org/boxes/base/errors"
	"cogentcore.org/boxes/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Device is a [gpu.Device] on a wgpu device.
type Device struct {
	Device *wgpu.Device
	queue  *Queue
}

func (dv *Device) Queue() gpu.Queue { return dv.queue }

func (dv *Device) CreateShaderModule(desc *gpu.ShaderModuleDescriptor) (gpu.ShaderModule, error) {
	wd := &wgpu.ShaderModuleDescriptor{Label: desc.Label}
	switch {
	case len(desc.SPIRV) > 0:
		wd.SPIRVDescriptor = &wgpu.ShaderModuleSPIRVDescriptor{Code: spirvBytes(desc.SPIRV)}
	case desc.WGSL != "":
		wd.WGSLDescriptor = &wgpu.ShaderModuleWGSLDescriptor{Code: desc.WGSL}
	default:
		return nil, errors.New("webgpu: shader module " + desc.Label + " has no code")
	}
	sm, err := dv.Device.CreateShaderModule(wd)
	if err != nil {
		return nil, err
	}
	return &ShaderModule{Module: sm}, nil
}

// spirvBytes returns the SPIR-V words as little-endian bytes.
func spirvBytes(words []uint32) []byte {
	b := make([]byte, 0, 4*len(words))
	for _, w := range words {
		b = binary.LittleEndian.AppendUint32(b, w)
	}
	return b
}

func (dv *Device) CreateBufferInit(desc *gpu.BufferInitDescriptor) (gpu.Buffer, error) {
	buf, err := dv.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    desc.Label,
		Contents: desc.Contents,
		Usage:    bufferUsage(desc.Usage),
	})
	if err != nil {
		return nil, err
	}
	return &Buffer{Buffer: buf, size: uint64(len(desc.Contents))}, nil
}

func (dv *Device) CreateBindGroupLayout(desc *gpu.BindGroupLayoutDescriptor) (gpu.BindGroupLayout, error) {
	entries := make([]wgpu.BindGroupLayoutEntry, len(desc.Entries))
	for i, e := range desc.Entries {
		entries[i] = wgpu.BindGroupLayoutEntry{
			Binding:    e.Binding,
			Visibility: shaderStage(e.Visibility),
			Buffer: wgpu.BufferBindingLayout{
				Type:             bufferBindingType(e.Buffer.Type),
				HasDynamicOffset: e.Buffer.HasDynamicOffset,
				MinBindingSize:   e.Buffer.MinBindingSize,
			},
		}
	}
	bl, err := dv.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}
	return &BindGroupLayout{Layout: bl}, nil
}

func (dv *Device) CreateBindGroup(desc *gpu.BindGroupDescriptor) (gpu.BindGroup, error) {
	entries := make([]wgpu.BindGroupEntry, len(desc.Entries))
	for i, e := range desc.Entries {
		entries[i] = wgpu.BindGroupEntry{
			Binding: e.Binding,
			Buffer:  e.Buffer.(*Buffer).Buffer,
			Offset:  e.Offset,
			Size:    e.Size,
		}
	}
	bg, err := dv.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  desc.Layout.(*BindGroupLayout).Layout,
		Entries: entries,
	})
	if err != nil {
		return nil, err
	}
	return &BindGroup{Group: bg}, nil
}

func (dv *Device) CreatePipelineLayout(desc *gpu.PipelineLayoutDescriptor) (gpu.PipelineLayout, error) {
	layouts := make([]*wgpu.BindGroupLayout, len(desc.BindGroupLayouts))
	for i, bl := range desc.BindGroupLayouts {
		layouts[i] = bl.(*BindGroupLayout).Layout
	}
	pl, err := dv.Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            desc.Label,
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return nil, err
	}
	return &PipelineLayout{Layout: pl}, nil
}

func vertexBuffers(bufs []gpu.VertexBufferLayout) ([]wgpu.VertexBufferLayout, error) {
	wb := make([]wgpu.VertexBufferLayout, len(bufs))
	for i, b := range bufs {
		attrs := make([]wgpu.VertexAttribute, len(b.Attributes))
		for j, at := range b.Attributes {
			vf, err := VertexFormat(at.Format)
			if err != nil {
				return nil, err
			}
			attrs[j] = wgpu.VertexAttribute{
				Format:         vf,
				Offset:         at.Offset,
				ShaderLocation: at.ShaderLocation,
			}
		}
		wb[i] = wgpu.VertexBufferLayout{
			ArrayStride: b.ArrayStride,
			StepMode:    stepMode(b.StepMode),
			Attributes:  attrs,
		}
	}
	return wb, nil
}

func (dv *Device) CreateRenderPipeline(desc *gpu.RenderPipelineDescriptor) (gpu.RenderPipeline, error) {
	bufs, err := vertexBuffers(desc.Vertex.Buffers)
	if err != nil {
		return nil, err
	}
	wd := &wgpu.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: desc.Layout.(*PipelineLayout).Layout,
		Vertex: wgpu.VertexState{
			Module:     desc.Vertex.Module.(*ShaderModule).Module,
			EntryPoint: desc.Vertex.EntryPoint,
			Buffers:    bufs,
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  topology(desc.Primitive.Topology),
			FrontFace: frontFace(desc.Primitive.FrontFace),
			CullMode:  cullMode(desc.Primitive.CullMode),
		},
		Multisample: wgpu.MultisampleState{
			Count:                  desc.Multisample.Count,
			Mask:                   desc.Multisample.Mask,
			AlphaToCoverageEnabled: desc.Multisample.AlphaToCoverageEnabled,
		},
	}
	if fs := desc.Fragment; fs != nil {
		targets := make([]wgpu.ColorTargetState, len(fs.Targets))
		for i, t := range fs.Targets {
			targets[i] = wgpu.ColorTargetState{
				Format:    TextureFormat(t.Format),
				WriteMask: colorWriteMask(t.WriteMask),
			}
			if t.Blend != nil {
				targets[i].Blend = &wgpu.BlendState{
					Color: blendComponent(t.Blend.Color),
					Alpha: blendComponent(t.Blend.Alpha),
				}
			}
		}
		wd.Fragment = &wgpu.FragmentState{
			Module:     fs.Module.(*ShaderModule).Module,
			EntryPoint: fs.EntryPoint,
			Targets:    targets,
		}
	}
	if ds := desc.DepthStencil; ds != nil {
		wd.DepthStencil = &wgpu.DepthStencilState{
			Format:            TextureFormat(ds.Format),
			DepthWriteEnabled: ds.DepthWriteEnabled,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		}
	}
	rp, err := dv.Device.CreateRenderPipeline(wd)
	if err != nil {
		return nil, err
	}
	return &RenderPipeline{Pipeline: rp}, nil
}

func (dv *Device) CreateCommandEncoder(label string) (gpu.CommandEncoder, error) {
	enc, err := dv.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, err
	}
	return &CommandEncoder{Encoder: enc}, nil
}

func (dv *Device) Release() {
	dv.Device.Release()
}

// CommandEncoder is a [gpu.CommandEncoder].
type CommandEncoder struct {
	Encoder *wgpu.CommandEncoder
}

func (ce *CommandEncoder) BeginRenderPass(desc *gpu.RenderPassDescriptor) gpu.RenderPass {
	atts := make([]wgpu.RenderPassColorAttachment, len(desc.ColorAttachments))
	for i, ca := range desc.ColorAttachments {
		atts[i] = wgpu.RenderPassColorAttachment{
			View:       ca.View.(*TextureView).View,
			LoadOp:     loadOp(ca.LoadOp),
			StoreOp:    storeOp(ca.StoreOp),
			ClearValue: wgpu.Color{R: ca.ClearValue.R, G: ca.ClearValue.G, B: ca.ClearValue.B, A: ca.ClearValue.A},
		}
	}
	rp := ce.Encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:            desc.Label,
		ColorAttachments: atts,
	})
	return &RenderPass{Pass: rp}
}

func (ce *CommandEncoder) Finish() (gpu.CommandBuffer, error) {
	cb, err := ce.Encoder.Finish(nil)
	if err != nil {
		return nil, err
	}
	return &CommandBuffer{CommandBuffer: cb}, nil
}

func (ce *CommandEncoder) Release() {
	ce.Encoder.Release()
}

// CommandBuffer is a [gpu.CommandBuffer].
type CommandBuffer struct {
	CommandBuffer *wgpu.CommandBuffer
}

func (cb *CommandBuffer) Release() {
	cb.CommandBuffer.Release()
}

// RenderPass is a [gpu.RenderPass] on a wgpu render pass encoder.
type RenderPass struct {
	Pass *wgpu.RenderPassEncoder
}

func (rp *RenderPass) SetPipeline(pipeline gpu.RenderPipeline) {
	rp.Pass.SetPipeline(pipeline.(*RenderPipeline).Pipeline)
}

func (rp *RenderPass) SetBindGroup(index uint32, group gpu.BindGroup) {
	rp.Pass.SetBindGroup(index, group.(*BindGroup).Group, nil)
}

func (rp *RenderPass) SetVertexBuffer(slot uint32, buf gpu.Buffer) {
	rp.Pass.SetVertexBuffer(slot, buf.(*Buffer).Buffer, 0, wgpu.WholeSize)
}

func (rp *RenderPass) SetIndexBuffer(buf gpu.Buffer, format gpu.IndexFormat) {
	rp.Pass.SetIndexBuffer(buf.(*Buffer).Buffer, indexFormat(format), 0, wgpu.WholeSize)
}

func (rp *RenderPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	rp.Pass.DrawIndexed(indexCount, instanceCount, firstIndex, baseVertex, firstInstance)
}

func (rp *RenderPass) End() {
	rp.Pass.End()
}

func (rp *RenderPass) Release() {
	rp.Pass.Release()
}

var (
	_ gpu.Device         = (*Device)(nil)
	_ gpu.CommandEncoder = (*CommandEncoder)(nil)
	_ gpu.CommandBuffer  = (*CommandBuffer)(nil)
	_ gpu.RenderPass     = (*RenderPass)(nil)
)
