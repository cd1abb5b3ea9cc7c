// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// Matrix4 is 4x4 matrix organized internally as column matrix,
// which is the layout expected by WGSL mat4x4<f32> uniforms.
// Element (row, col) is at index col*4+row.
type Matrix4 [16]float32

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() Matrix4 {
	m := Matrix4{}
	m.SetIdentity()
	return m
}

// Translate3D returns a translation matrix for the given offsets.
func Translate3D(x, y, z float32) Matrix4 {
	m := Identity4()
	m[12] = x
	m[13] = y
	m[14] = z
	return m
}

// RotationFromQuat returns a rotation matrix for the given quaternion,
// which is normalized first.
func RotationFromQuat(q Quat) Matrix4 {
	m := Matrix4{}
	m.SetRotationFromQuat(q)
	return m
}

// Set sets all the elements of this matrix row by row starting at row1, column1,
// row1, column2, row1, column3 and so forth.
func (m *Matrix4) Set(n11, n12, n13, n14, n21, n22, n23, n24, n31, n32, n33, n34, n41, n42, n43, n44 float32) {
	m[0] = n11
	m[4] = n12
	m[8] = n13
	m[12] = n14
	m[1] = n21
	m[5] = n22
	m[9] = n23
	m[13] = n24
	m[2] = n31
	m[6] = n32
	m[10] = n33
	m[14] = n34
	m[3] = n41
	m[7] = n42
	m[11] = n43
	m[15] = n44
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix4) SetIdentity() {
	m.Set(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	)
}

// IsIdentity returns true if this matrix is the identity matrix.
func (m Matrix4) IsIdentity() bool {
	return m == Identity4()
}

// At returns the element at the given row and column.
func (m Matrix4) At(row, col int) float32 {
	return m[col*4+row]
}

// Column returns the given column as a [Vector4].
func (m Matrix4) Column(col int) Vector4 {
	i := col * 4
	return Vec4(m[i], m[i+1], m[i+2], m[i+3])
}

// Row returns the given row as a [Vector4].
func (m Matrix4) Row(row int) Vector4 {
	return Vec4(m[row], m[4+row], m[8+row], m[12+row])
}

// Mul returns this matrix times the other matrix (this * other).
// When applied to a vector, other is applied first.
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var r Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += m[k*4+row] * other[col*4+k]
			}
			r[col*4+row] = s
		}
	}
	return r
}

// MulVector4 returns the product of this matrix with the given column vector.
func (m Matrix4) MulVector4(v Vector4) Vector4 {
	return Vec4(
		m[0]*v.X+m[4]*v.Y+m[8]*v.Z+m[12]*v.W,
		m[1]*v.X+m[5]*v.Y+m[9]*v.Z+m[13]*v.W,
		m[2]*v.X+m[6]*v.Y+m[10]*v.Z+m[14]*v.W,
		m[3]*v.X+m[7]*v.Y+m[11]*v.Z+m[15]*v.W,
	)
}

// MulVector3AsPoint transforms the given point (w = 1) by this matrix,
// returning the homogeneous result.
func (m Matrix4) MulVector3AsPoint(v Vector3) Vector4 {
	return m.MulVector4(Vector4FromVector3(v, 1))
}

// Transpose returns the transpose of this matrix.
func (m Matrix4) Transpose() Matrix4 {
	var r Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			r[row*4+col] = m[col*4+row]
		}
	}
	return r
}

// SetRotationFromQuat sets this matrix as a rotation matrix from the specified [Quat].
func (m *Matrix4) SetRotationFromQuat(q Quat) {
	q = q.Normal()
	x, y, z, w := q.X, q.Y, q.Z, q.W
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	m[0] = 1 - (yy + zz)
	m[4] = xy - wz
	m[8] = xz + wy

	m[1] = xy + wz
	m[5] = 1 - (xx + zz)
	m[9] = yz - wx

	m[2] = xz - wy
	m[6] = yz + wx
	m[10] = 1 - (xx + yy)

	// bottom row
	m[3] = 0
	m[7] = 0
	m[11] = 0

	// last column
	m[12] = 0
	m[13] = 0
	m[14] = 0
	m[15] = 1
}

// SetPerspective sets this matrix to a right-handed perspective projection
// with the given vertical field of view in degrees, aspect ratio (width / height),
// and near and far clip planes. Depth is mapped to the OpenGL [-1, 1] range.
func (m *Matrix4) SetPerspective(fovy, aspect, near, far float32) {
	f := 1 / Tan(DegToRad(fovy)/2)
	nf := near - far
	m.Set(
		f/aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far+near)/nf, 2*far*near/nf,
		0, 0, -1, 0,
	)
}

// Perspective returns a new perspective projection matrix.
// See [Matrix4.SetPerspective].
func Perspective(fovy, aspect, near, far float32) Matrix4 {
	m := Matrix4{}
	m.SetPerspective(fovy, aspect, near, far)
	return m
}

// SetLookAtRH sets this matrix to a right-handed view matrix
// for a camera at eye looking at target with the given up direction.
// The camera looks down its -Z axis.
func (m *Matrix4) SetLookAtRH(eye, target, up Vector3) {
	f := target.Sub(eye).Normal()
	s := f.Cross(up).Normal()
	u := s.Cross(f)
	m.Set(
		s.X, s.Y, s.Z, -s.Dot(eye),
		u.X, u.Y, u.Z, -u.Dot(eye),
		-f.X, -f.Y, -f.Z, f.Dot(eye),
		0, 0, 0, 1,
	)
}

// LookAtRH returns a new right-handed view matrix.
// See [Matrix4.SetLookAtRH].
func LookAtRH(eye, target, up Vector3) Matrix4 {
	m := Matrix4{}
	m.SetLookAtRH(eye, target, up)
	return m
}
