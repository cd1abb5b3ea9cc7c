// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "math"

// WholeSize binds the rest of a buffer from the offset.
const WholeSize = math.MaxUint64

// BufferUsage is a bit set of the ways a buffer can be used.
type BufferUsage uint32

const (
	BufferUsageCopySrc BufferUsage = 1 << iota
	BufferUsageCopyDst
	BufferUsageIndex
	BufferUsageVertex
	BufferUsageUniform
	BufferUsageStorage
)

// Has returns true if all the given usage bits are set.
func (u BufferUsage) Has(flags BufferUsage) bool {
	return u&flags == flags
}

// BufferInitDescriptor describes a buffer created with initial contents.
// The buffer size is len(Contents).
type BufferInitDescriptor struct {
	Label    string
	Contents []byte
	Usage    BufferUsage
}

// ShaderStage is a bit set of shader stages.
type ShaderStage uint32

const (
	ShaderStageVertex ShaderStage = 1 << iota
	ShaderStageFragment
	ShaderStageCompute
)

// ShaderModuleDescriptor describes a shader module, given either
// as WGSL source or as SPIR-V words. SPIRV takes precedence.
type ShaderModuleDescriptor struct {
	Label string
	WGSL  string
	SPIRV []uint32
}

// BufferBindingType is the kind of buffer binding.
type BufferBindingType int32

const (
	BufferBindingTypeUniform BufferBindingType = iota
	BufferBindingTypeStorage
	BufferBindingTypeReadOnlyStorage
)

// BufferBindingLayout describes a buffer binding in a bind group layout.
type BufferBindingLayout struct {
	Type             BufferBindingType
	HasDynamicOffset bool
	MinBindingSize   uint64
}

// BindGroupLayoutEntry is one @binding in a bind group layout.
type BindGroupLayoutEntry struct {
	Binding    uint32
	Visibility ShaderStage
	Buffer     BufferBindingLayout
}

// BindGroupLayoutDescriptor describes a bind group layout.
type BindGroupLayoutDescriptor struct {
	Label   string
	Entries []BindGroupLayoutEntry
}

// BindGroupEntry binds a buffer range to one @binding.
type BindGroupEntry struct {
	Binding uint32
	Buffer  Buffer
	Offset  uint64
	Size    uint64
}

// BindGroupDescriptor describes a bind group.
type BindGroupDescriptor struct {
	Label   string
	Layout  BindGroupLayout
	Entries []BindGroupEntry
}

// PipelineLayoutDescriptor describes a pipeline layout.
type PipelineLayoutDescriptor struct {
	Label            string
	BindGroupLayouts []BindGroupLayout
}

// VertexStepMode determines whether a vertex buffer advances
// per vertex or per instance.
type VertexStepMode int32

const (
	VertexStepModeVertex VertexStepMode = iota
	VertexStepModeInstance
)

func (m VertexStepMode) String() string {
	if m == VertexStepModeInstance {
		return "instance"
	}
	return "vertex"
}

// VertexAttribute is one shader input read from a vertex buffer.
type VertexAttribute struct {
	Format         Types
	Offset         uint64
	ShaderLocation uint32
}

// VertexBufferLayout describes the layout of one vertex buffer slot.
type VertexBufferLayout struct {
	ArrayStride uint64
	StepMode    VertexStepMode
	Attributes  []VertexAttribute
}

// VertexState is the vertex stage of a render pipeline.
type VertexState struct {
	Module     ShaderModule
	EntryPoint string
	Buffers    []VertexBufferLayout
}

// BlendFactor is a blend equation factor.
type BlendFactor int32

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
)

// BlendOperation is a blend equation operation.
type BlendOperation int32

const (
	BlendOperationAdd BlendOperation = iota
	BlendOperationSubtract
)

// BlendComponent is the blend equation for either color or alpha.
type BlendComponent struct {
	Operation BlendOperation
	SrcFactor BlendFactor
	DstFactor BlendFactor
}

// BlendState is the blending of a color target.
type BlendState struct {
	Color BlendComponent
	Alpha BlendComponent
}

// BlendStateReplace overwrites the target with the new color and alpha.
var BlendStateReplace = BlendState{
	Color: BlendComponent{Operation: BlendOperationAdd, SrcFactor: BlendFactorOne, DstFactor: BlendFactorZero},
	Alpha: BlendComponent{Operation: BlendOperationAdd, SrcFactor: BlendFactorOne, DstFactor: BlendFactorZero},
}

// BlendStateAlphaBlending blends the new color over the target by its alpha.
var BlendStateAlphaBlending = BlendState{
	Color: BlendComponent{Operation: BlendOperationAdd, SrcFactor: BlendFactorSrcAlpha, DstFactor: BlendFactorOneMinusSrcAlpha},
	Alpha: BlendComponent{Operation: BlendOperationAdd, SrcFactor: BlendFactorOne, DstFactor: BlendFactorOneMinusSrcAlpha},
}

// ColorWriteMask is a bit set of the color channels written.
type ColorWriteMask uint32

const (
	ColorWriteMaskRed ColorWriteMask = 1 << iota
	ColorWriteMaskGreen
	ColorWriteMaskBlue
	ColorWriteMaskAlpha

	ColorWriteMaskNone ColorWriteMask = 0
	ColorWriteMaskAll                 = ColorWriteMaskRed | ColorWriteMaskGreen | ColorWriteMaskBlue | ColorWriteMaskAlpha
)

// ColorTargetState is one color attachment of a render pipeline.
// A nil Blend disables blending.
type ColorTargetState struct {
	Format    TextureFormat
	Blend     *BlendState
	WriteMask ColorWriteMask
}

// FragmentState is the fragment stage of a render pipeline.
type FragmentState struct {
	Module     ShaderModule
	EntryPoint string
	Targets    []ColorTargetState
}

// PrimitiveTopology is how vertices are assembled into primitives.
type PrimitiveTopology int32

const (
	PrimitiveTopologyTriangleList PrimitiveTopology = iota
	PrimitiveTopologyTriangleStrip
	PrimitiveTopologyLineList
	PrimitiveTopologyLineStrip
	PrimitiveTopologyPointList
)

// FrontFace is the winding order of front facing triangles.
type FrontFace int32

const (
	FrontFaceCCW FrontFace = iota
	FrontFaceCW
)

// CullMode selects which faces are discarded.
type CullMode int32

const (
	CullModeNone CullMode = iota
	CullModeFront
	CullModeBack
)

// PrimitiveState is the primitive assembly and rasterization state.
type PrimitiveState struct {
	Topology  PrimitiveTopology
	FrontFace FrontFace
	CullMode  CullMode
}

// DepthStencilState is the depth test state; nil in a pipeline
// descriptor disables depth and stencil.
type DepthStencilState struct {
	Format            TextureFormat
	DepthWriteEnabled bool
}

// MultisampleState is the multisampling of the render targets.
type MultisampleState struct {
	Count                  uint32
	Mask                   uint32
	AlphaToCoverageEnabled bool
}

// RenderPipelineDescriptor describes a render pipeline.
type RenderPipelineDescriptor struct {
	Label        string
	Layout       PipelineLayout
	Vertex       VertexState
	Fragment     *FragmentState
	Primitive    PrimitiveState
	DepthStencil *DepthStencilState
	Multisample  MultisampleState
}

// LoadOp is what happens to an attachment at the start of a pass.
type LoadOp int32

const (
	LoadOpClear LoadOp = iota
	LoadOpLoad
)

// StoreOp is what happens to an attachment at the end of a pass.
type StoreOp int32

const (
	StoreOpStore StoreOp = iota
	StoreOpDiscard
)

// Color is a float color value used for clearing.
type Color struct {
	R, G, B, A float64
}

// RenderPassColorAttachment is one color attachment of a render pass.
type RenderPassColorAttachment struct {
	View       TextureView
	LoadOp     LoadOp
	StoreOp    StoreOp
	ClearValue Color
}

// RenderPassDescriptor describes a render pass.
type RenderPassDescriptor struct {
	Label            string
	ColorAttachments []RenderPassColorAttachment
}
