// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gputest

import (
	"cogentcore.org/boxes/base/errors"
	"cogentcore.org/boxes/gpu"
)

// CommandEncoder is a recording [gpu.CommandEncoder].
type CommandEncoder struct {
	Label    string
	Passes   []*RenderPass
	Finished bool
	Released bool
}

func (ce *CommandEncoder) BeginRenderPass(desc *gpu.RenderPassDescriptor) gpu.RenderPass {
	rp := &RenderPass{Desc: *desc, vertexBuffers: map[uint32]gpu.Buffer{}, bindGroups: map[uint32]gpu.BindGroup{}}
	ce.Passes = append(ce.Passes, rp)
	return rp
}

func (ce *CommandEncoder) Finish() (gpu.CommandBuffer, error) {
	for _, rp := range ce.Passes {
		if !rp.Ended {
			return nil, errors.New("gputest: Finish: render pass not ended")
		}
	}
	ce.Finished = true
	return &CommandBuffer{Encoder: ce}, nil
}

func (ce *CommandEncoder) Release() { ce.Released = true }

// CommandBuffer is a recording [gpu.CommandBuffer].
type CommandBuffer struct {
	Encoder  *CommandEncoder
	Released bool
}

func (cb *CommandBuffer) Release() { cb.Released = true }

// DrawCall is one recorded DrawIndexed call, with the state bound at
// the time of the call.
type DrawCall struct {
	IndexCount    uint32
	InstanceCount uint32
	FirstIndex    uint32
	BaseVertex    int32
	FirstInstance uint32

	Pipeline      gpu.RenderPipeline
	BindGroups    map[uint32]gpu.BindGroup
	VertexBuffers map[uint32]gpu.Buffer
	IndexBuffer   gpu.Buffer
	IndexFormat   gpu.IndexFormat
}

// RenderPass is a recording [gpu.RenderPass].
type RenderPass struct {
	Desc  gpu.RenderPassDescriptor
	Draws []DrawCall

	// Commands are the names of the recorded commands, in order.
	Commands []string

	Ended    bool
	Released bool

	pipeline      gpu.RenderPipeline
	bindGroups    map[uint32]gpu.BindGroup
	vertexBuffers map[uint32]gpu.Buffer
	indexBuffer   gpu.Buffer
	indexFormat   gpu.IndexFormat
}

func (rp *RenderPass) SetPipeline(pipeline gpu.RenderPipeline) {
	rp.pipeline = pipeline
	rp.Commands = append(rp.Commands, "SetPipeline")
}

func (rp *RenderPass) SetBindGroup(index uint32, group gpu.BindGroup) {
	rp.bindGroups[index] = group
	rp.Commands = append(rp.Commands, "SetBindGroup")
}

func (rp *RenderPass) SetVertexBuffer(slot uint32, buf gpu.Buffer) {
	rp.vertexBuffers[slot] = buf
	rp.Commands = append(rp.Commands, "SetVertexBuffer")
}

func (rp *RenderPass) SetIndexBuffer(buf gpu.Buffer, format gpu.IndexFormat) {
	rp.indexBuffer = buf
	rp.indexFormat = format
	rp.Commands = append(rp.Commands, "SetIndexBuffer")
}

func (rp *RenderPass) DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32) {
	dc := DrawCall{
		IndexCount:    indexCount,
		InstanceCount: instanceCount,
		FirstIndex:    firstIndex,
		BaseVertex:    baseVertex,
		FirstInstance: firstInstance,
		Pipeline:      rp.pipeline,
		BindGroups:    map[uint32]gpu.BindGroup{},
		VertexBuffers: map[uint32]gpu.Buffer{},
		IndexBuffer:   rp.indexBuffer,
		IndexFormat:   rp.indexFormat,
	}
	for k, v := range rp.bindGroups {
		dc.BindGroups[k] = v
	}
	for k, v := range rp.vertexBuffers {
		dc.VertexBuffers[k] = v
	}
	rp.Draws = append(rp.Draws, dc)
	rp.Commands = append(rp.Commands, "DrawIndexed")
}

func (rp *RenderPass) End() {
	rp.Ended = true
	rp.Commands = append(rp.Commands, "End")
}

func (rp *RenderPass) Release() { rp.Released = true }
