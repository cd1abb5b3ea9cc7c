// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

import "fmt"

// Vector4 is a vector/point in homogeneous coordinates with X, Y, Z and W components.
type Vector4 struct {
	X float32
	Y float32
	Z float32
	W float32
}

// Vec4 returns a new [Vector4] with the given x, y, z, and w components.
func Vec4(x, y, z, w float32) Vector4 {
	return Vector4{X: x, Y: y, Z: z, W: w}
}

// Vector4FromVector3 returns a new [Vector4] from the given [Vector3] and w component.
func Vector4FromVector3(v Vector3, w float32) Vector4 {
	return Vector4{X: v.X, Y: v.Y, Z: v.Z, W: w}
}

// String returns a string representation of the vector.
func (v Vector4) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", v.X, v.Y, v.Z, v.W)
}

// Dot returns the dot product of this vector with the given other vector.
func (v Vector4) Dot(other Vector4) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

// MulScalar returns a vector with each component multiplied by the given scalar.
func (v Vector4) MulScalar(s float32) Vector4 {
	return Vec4(v.X*s, v.Y*s, v.Z*s, v.W*s)
}

// PerspDiv returns the 3D point after perspective division,
// dividing X, Y, Z by W. Returns zero if W is zero.
func (v Vector4) PerspDiv() Vector3 {
	if v.W == 0 {
		return Vector3{}
	}
	return Vec3(v.X/v.W, v.Y/v.W, v.Z/v.W)
}

// Array returns the components as a [4]float32 array,
// in X, Y, Z, W order.
func (v Vector4) Array() [4]float32 {
	return [4]float32{v.X, v.Y, v.Z, v.W}
}
