// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxes

import (
	"fmt"

	"cogentcore.org/boxes/gpu"
	"cogentcore.org/boxes/shader"
)

// Pipeline is the render pipeline drawing the boxes,
// with the shader module and layout it was created from.
type Pipeline struct {
	Shader   gpu.ShaderModule
	Layout   gpu.PipelineLayout
	Pipeline gpu.RenderPipeline
}

// VertexBuffers are the vertex buffer layouts of the pipeline:
// [VertexLayout] in slot 0 and [BoxRawLayout] in slot 1.
func VertexBuffers() []gpu.VertexBufferLayout {
	return []gpu.VertexBufferLayout{VertexLayout(), BoxRawLayout()}
}

// PipelineDescriptor returns the complete descriptor of the box pipeline
// for the given shader module, layout and color target format.
func PipelineDescriptor(module gpu.ShaderModule, layout gpu.PipelineLayout, format gpu.TextureFormat) *gpu.RenderPipelineDescriptor {
	return &gpu.RenderPipelineDescriptor{
		Label:  "Render Pipeline",
		Layout: layout,
		Vertex: gpu.VertexState{
			Module:     module,
			EntryPoint: VertexEntry,
			Buffers:    VertexBuffers(),
		},
		Fragment: &gpu.FragmentState{
			Module:     module,
			EntryPoint: FragmentEntry,
			Targets: []gpu.ColorTargetState{{
				Format:    format,
				Blend:     &gpu.BlendStateReplace,
				WriteMask: gpu.ColorWriteMaskAll,
			}},
		},
		Primitive: gpu.PrimitiveState{
			Topology:  gpu.PrimitiveTopologyTriangleList,
			FrontFace: gpu.FrontFaceCCW,
			CullMode:  gpu.CullModeBack,
		},
		DepthStencil: nil,
		Multisample: gpu.MultisampleState{
			Count:                  1,
			Mask:                   ^uint32(0),
			AlphaToCoverageEnabled: false,
		},
	}
}

// CheckShader checks that the source has both entry points and
// that the vertex inputs match [VertexBuffers].
func CheckShader(src string) error {
	m, err := shader.Reflect(src)
	if err != nil {
		return err
	}
	if _, err := m.EntryPoint("fragment", FragmentEntry); err != nil {
		return err
	}
	return m.CheckVertexLayout(VertexEntry, VertexBuffers())
}

// NewPipeline checks and compiles the shader source with the given
// compiler, and creates the pipeline for the given bind group layout
// and color target format. All errors are fatal.
func NewPipeline(dev gpu.Device, src string, compiler shader.Compilers, bindings gpu.BindGroupLayout, format gpu.TextureFormat) (*Pipeline, error) {
	if err := CheckShader(src); err != nil {
		return nil, fmt.Errorf("boxes: shader: %w", err)
	}
	desc, err := shader.ModuleDescriptor("Shader", src, compiler)
	if err != nil {
		return nil, fmt.Errorf("boxes: shader: %w", err)
	}
	pl := &Pipeline{}
	pl.Shader, err = dev.CreateShaderModule(desc)
	if err != nil {
		return nil, fmt.Errorf("boxes: creating shader module: %w", err)
	}
	pl.Layout, err = dev.CreatePipelineLayout(&gpu.PipelineLayoutDescriptor{
		Label:            "Render Pipeline Layout",
		BindGroupLayouts: []gpu.BindGroupLayout{bindings},
	})
	if err != nil {
		pl.Release()
		return nil, fmt.Errorf("boxes: creating pipeline layout: %w", err)
	}
	pl.Pipeline, err = dev.CreateRenderPipeline(PipelineDescriptor(pl.Shader, pl.Layout, format))
	if err != nil {
		pl.Release()
		return nil, fmt.Errorf("boxes: creating render pipeline: %w", err)
	}
	return pl, nil
}

// Release releases the pipeline, its layout and the shader module.
func (pl *Pipeline) Release() {
	if pl.Pipeline != nil {
		pl.Pipeline.Release()
		pl.Pipeline = nil
	}
	if pl.Layout != nil {
		pl.Layout.Release()
		pl.Layout = nil
	}
	if pl.Shader != nil {
		pl.Shader.Release()
		pl.Shader = nil
	}
}
