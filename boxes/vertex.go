// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxes

import (
	"encoding/binary"

	"cogentcore.org/boxes/colors"
	"cogentcore.org/boxes/gpu"
)

// Vertex is one corner of the box quad.
type Vertex struct {
	Position [3]float32
	Color    [3]float32
}

// VertexSize is the size of a packed [Vertex] in bytes.
const VertexSize = 24

// QuadColor is the flat color of the quad.
var QuadColor = colors.RGBToSRGB(250, 179, 135)

// QuadVertices are the corners of the quad, counter-clockwise
// from the top left.
var QuadVertices = []Vertex{
	{Position: [3]float32{-0.4, 0.2, 0}, Color: QuadColor},
	{Position: [3]float32{-0.4, -0.2, 0}, Color: QuadColor},
	{Position: [3]float32{0.4, -0.2, 0}, Color: QuadColor},
	{Position: [3]float32{0.4, 0.2, 0}, Color: QuadColor},
}

// QuadIndices are the two triangles of the quad.
var QuadIndices = []uint16{0, 1, 2, 2, 3, 0}

// VertexLayout is the per-vertex layout of [Vertex] in vertex buffer slot 0.
func VertexLayout() gpu.VertexBufferLayout {
	return gpu.VertexBufferLayout{
		ArrayStride: VertexSize,
		StepMode:    gpu.VertexStepModeVertex,
		Attributes: []gpu.VertexAttribute{
			{Format: gpu.Float32Vector3, Offset: 0, ShaderLocation: 0},
			{Format: gpu.Float32Vector3, Offset: 12, ShaderLocation: 1},
		},
	}
}

// VerticesBytes packs the vertices in little-endian order.
func VerticesBytes(vs []Vertex) []byte {
	b, _ := binary.Append(make([]byte, 0, len(vs)*VertexSize), binary.LittleEndian, vs)
	return b
}

// IndicesBytes packs the indices in little-endian order.
func IndicesBytes(idx []uint16) []byte {
	b, _ := binary.Append(make([]byte, 0, len(idx)*2), binary.LittleEndian, idx)
	return b
}
