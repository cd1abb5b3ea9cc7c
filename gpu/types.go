// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "fmt"

// Types is a list of supported GPU data types, used for vertex
// attributes, index buffers and uniform members.
// Note that a Vector3 is only well supported for vertex data,
// due to the 16 byte alignment of uniforms.
type Types int32

const (
	UndefinedType Types = iota

	Uint16
	Uint32
	Int32

	Float32
	Float32Vector2
	Float32Vector3 // note: only use for vertex data -- not properly aligned for uniforms
	Float32Vector4

	Float32Matrix4 // std transform matrix: math32.Matrix4 works directly
)

// TypeSizes gives our data type sizes in bytes
var TypeSizes = map[Types]int{
	Uint16: 2,
	Uint32: 4,
	Int32:  4,

	Float32:        4,
	Float32Vector2: 8,
	Float32Vector3: 12,
	Float32Vector4: 16,

	Float32Matrix4: 64,
}

// TypeWGSL gives the WGSL type name of each type.
var TypeWGSL = map[Types]string{
	Uint16: "u32", // 16 bit values are promoted in shaders
	Uint32: "u32",
	Int32:  "i32",

	Float32:        "f32",
	Float32Vector2: "vec2<f32>",
	Float32Vector3: "vec3<f32>",
	Float32Vector4: "vec4<f32>",

	Float32Matrix4: "mat4x4<f32>",
}

var typeNames = map[Types]string{
	UndefinedType:  "UndefinedType",
	Uint16:         "Uint16",
	Uint32:         "Uint32",
	Int32:          "Int32",
	Float32:        "Float32",
	Float32Vector2: "Float32Vector2",
	Float32Vector3: "Float32Vector3",
	Float32Vector4: "Float32Vector4",
	Float32Matrix4: "Float32Matrix4",
}

// Bytes returns number of bytes for this type
func (tp Types) Bytes() int {
	return TypeSizes[tp]
}

// WGSL returns the WGSL type name for this type, "" if unknown.
func (tp Types) WGSL() string {
	return TypeWGSL[tp]
}

func (tp Types) String() string {
	if nm, ok := typeNames[tp]; ok {
		return nm
	}
	return fmt.Sprintf("Types(%d)", int32(tp))
}

// IndexType returns the IndexFormat for given type.
// must be either Uint16 or Uint32.
func (tp Types) IndexType() IndexFormat {
	if tp == Uint16 {
		return IndexFormatUint16
	}
	return IndexFormatUint32
}

// IndexFormat is the element format of an index buffer.
type IndexFormat int32

const (
	IndexFormatUint16 IndexFormat = iota
	IndexFormatUint32
)

// Bytes returns the size of one index in bytes.
func (f IndexFormat) Bytes() int {
	if f == IndexFormatUint16 {
		return 2
	}
	return 4
}
