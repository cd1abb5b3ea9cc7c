// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxes

import (
	"fmt"

	"cogentcore.org/boxes/gpu"
)

// ViewportBinding is the uniform buffer holding the [ViewportUniform]
// and the bind group exposing it at @group(0) @binding(0) to the
// vertex stage.
type ViewportBinding struct {
	Buffer gpu.Buffer
	Layout gpu.BindGroupLayout
	Group  gpu.BindGroup
}

// ViewportBindGroupLayout describes the single uniform binding.
func ViewportBindGroupLayout() *gpu.BindGroupLayoutDescriptor {
	return &gpu.BindGroupLayoutDescriptor{
		Label: "viewport_bind_group_layout",
		Entries: []gpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: gpu.ShaderStageVertex,
			Buffer: gpu.BufferBindingLayout{
				Type:             gpu.BufferBindingTypeUniform,
				HasDynamicOffset: false,
				MinBindingSize:   0,
			},
		}},
	}
}

// NewViewportBinding creates the uniform buffer with the initial
// contents of the uniform, its bind group layout and bind group.
func NewViewportBinding(dev gpu.Device, vu *ViewportUniform) (*ViewportBinding, error) {
	vb := &ViewportBinding{}
	buf, err := dev.CreateBufferInit(&gpu.BufferInitDescriptor{
		Label:    "Viewport Buffer",
		Contents: vu.Bytes(),
		Usage:    gpu.BufferUsageUniform | gpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("boxes: creating viewport buffer: %w", err)
	}
	vb.Buffer = buf
	vb.Layout, err = dev.CreateBindGroupLayout(ViewportBindGroupLayout())
	if err != nil {
		vb.Release()
		return nil, fmt.Errorf("boxes: creating viewport bind group layout: %w", err)
	}
	vb.Group, err = dev.CreateBindGroup(&gpu.BindGroupDescriptor{
		Label:  "camera_bind_group",
		Layout: vb.Layout,
		Entries: []gpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  buf,
			Offset:  0,
			Size:    gpu.WholeSize,
		}},
	})
	if err != nil {
		vb.Release()
		return nil, fmt.Errorf("boxes: creating viewport bind group: %w", err)
	}
	return vb, nil
}

// Write overwrites the uniform buffer with the uniform.
func (vb *ViewportBinding) Write(queue gpu.Queue, vu *ViewportUniform) error {
	return queue.WriteBuffer(vb.Buffer, 0, vu.Bytes())
}

// Release releases the bind group, its layout and the buffer.
func (vb *ViewportBinding) Release() {
	if vb.Group != nil {
		vb.Group.Release()
		vb.Group = nil
	}
	if vb.Layout != nil {
		vb.Layout.Release()
		vb.Layout = nil
	}
	if vb.Buffer != nil {
		vb.Buffer.Release()
		vb.Buffer = nil
	}
}
