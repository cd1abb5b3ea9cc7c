// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxes

import (
	"fmt"

	"cogentcore.org/boxes/gpu"
)

// Geometry holds the static vertex and index buffers of the quad.
type Geometry struct {
	Vertices gpu.Buffer
	Indices  gpu.Buffer

	// NumIndices is the number of indices in Indices.
	NumIndices uint32

	// IndexFormat is the format of Indices.
	IndexFormat gpu.IndexFormat
}

// NewGeometry uploads the quad vertices and indices.
func NewGeometry(dev gpu.Device) (*Geometry, error) {
	vb, err := dev.CreateBufferInit(&gpu.BufferInitDescriptor{
		Label:    "Vertex Buffer",
		Contents: VerticesBytes(QuadVertices),
		Usage:    gpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("boxes: creating vertex buffer: %w", err)
	}
	ib, err := dev.CreateBufferInit(&gpu.BufferInitDescriptor{
		Label:    "Index Buffer",
		Contents: IndicesBytes(QuadIndices),
		Usage:    gpu.BufferUsageIndex,
	})
	if err != nil {
		vb.Release()
		return nil, fmt.Errorf("boxes: creating index buffer: %w", err)
	}
	return &Geometry{
		Vertices:    vb,
		Indices:     ib,
		NumIndices:  uint32(len(QuadIndices)),
		IndexFormat: gpu.Uint16.IndexType(),
	}, nil
}

// Release releases the index and vertex buffers.
func (ge *Geometry) Release() {
	if ge.Indices != nil {
		ge.Indices.Release()
		ge.Indices = nil
	}
	if ge.Vertices != nil {
		ge.Vertices.Release()
		ge.Vertices = nil
	}
}
