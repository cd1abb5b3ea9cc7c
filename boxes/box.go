// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxes

import (
	"encoding/binary"
	"fmt"

	"cogentcore.org/boxes/gpu"
	"cogentcore.org/boxes/math32"
)

// Box is one rounded rectangle instance in world space.
type Box struct {
	Position math32.Vector3

	// Rotation is normalized when packed; the zero value is
	// treated as the identity.
	Rotation math32.Quat

	CornerRadius float32
}

// DefaultBox is the box drawn at startup: at the origin,
// unrotated, with a corner radius of 0.4.
func DefaultBox() Box {
	return Box{Rotation: math32.QuatIdentity(), CornerRadius: 0.4}
}

func (bx Box) String() string {
	return fmt.Sprintf("Box{pos: %v, rot: %v, radius: %g}", bx.Position, bx.Rotation, bx.CornerRadius)
}

// BoxRaw is the packed per-instance form of a [Box]
// read by the vertex shader.
type BoxRaw struct {
	// Model is the column-major model transform.
	Model math32.Matrix4

	CornerRadius float32
}

// BoxRawSize is the size of a packed [BoxRaw] in bytes.
const BoxRawSize = 68

// ToRaw returns the packed form of the box, with the model
// transform translation(Position) * rotation(Rotation).
func (bx Box) ToRaw() BoxRaw {
	tr := math32.Translate3D(bx.Position.X, bx.Position.Y, bx.Position.Z)
	return BoxRaw{
		Model:        tr.Mul(math32.RotationFromQuat(bx.Rotation)),
		CornerRadius: bx.CornerRadius,
	}
}

// BoxRawLayout is the per-instance layout of [BoxRaw] in vertex
// buffer slot 1: the four model columns at locations 2 to 5,
// and the corner radius at location 6.
func BoxRawLayout() gpu.VertexBufferLayout {
	return gpu.VertexBufferLayout{
		ArrayStride: BoxRawSize,
		StepMode:    gpu.VertexStepModeInstance,
		Attributes: []gpu.VertexAttribute{
			{Format: gpu.Float32Vector4, Offset: 0, ShaderLocation: 2},
			{Format: gpu.Float32Vector4, Offset: 16, ShaderLocation: 3},
			{Format: gpu.Float32Vector4, Offset: 32, ShaderLocation: 4},
			{Format: gpu.Float32Vector4, Offset: 48, ShaderLocation: 5},
			{Format: gpu.Float32, Offset: 64, ShaderLocation: 6},
		},
	}
}

// PackBoxes returns the packed forms of the boxes.
func PackBoxes(bs []Box) []BoxRaw {
	raw := make([]BoxRaw, len(bs))
	for i, bx := range bs {
		raw[i] = bx.ToRaw()
	}
	return raw
}

// BoxRawBytes packs the raw boxes in little-endian order.
func BoxRawBytes(raw []BoxRaw) []byte {
	b, _ := binary.Append(make([]byte, 0, len(raw)*BoxRawSize), binary.LittleEndian, raw)
	return b
}
