// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// Quat is quaternion with X,Y,Z and W components.
type Quat struct {
	X float32
	Y float32
	Z float32
	W float32
}

// NewQuat returns a new quaternion from the specified components.
func NewQuat(x, y, z, w float32) Quat {
	return Quat{X: x, Y: y, Z: z, W: w}
}

// QuatIdentity returns the identity quaternion, which
// represents no rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// NewQuatAxisAngle returns a new quaternion from given axis and angle rotation (radians).
func NewQuatAxisAngle(axis Vector3, angle float32) Quat {
	nq := Quat{}
	nq.SetFromAxisAngle(axis, angle)
	return nq
}

// IsIdentity returns if this is an identity quaternion.
func (q Quat) IsIdentity() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 1
}

// IsNil returns true if all values are 0 (uninitialized).
func (q Quat) IsNil() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 0
}

// SetFromAxisAngle sets this quaternion with the rotation
// specified by the given axis and angle (radians).
// The axis is normalized.
func (q *Quat) SetFromAxisAngle(axis Vector3, angle float32) {
	axis = axis.Normal()
	halfAngle := angle / 2
	s := Sin(halfAngle)
	q.X = axis.X * s
	q.Y = axis.Y * s
	q.Z = axis.Z * s
	q.W = Cos(halfAngle)
}

// Length returns the length of this quaternion
func (q Quat) Length() float32 {
	return Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normal returns the normalized version of this quaternion.
// A zero quaternion normalizes to the identity.
func (q Quat) Normal() Quat {
	l := q.Length()
	if l == 0 {
		return QuatIdentity()
	}
	l = 1 / l
	return Quat{X: q.X * l, Y: q.Y * l, Z: q.Z * l, W: q.W * l}
}

// Mul returns the product of this quaternion with the other,
// which applies other first and then this rotation.
func (q Quat) Mul(other Quat) Quat {
	qax, qay, qaz, qaw := q.X, q.Y, q.Z, q.W
	qbx, qby, qbz, qbw := other.X, other.Y, other.Z, other.W
	return Quat{
		X: qax*qbw + qaw*qbx + qay*qbz - qaz*qby,
		Y: qay*qbw + qaw*qby + qaz*qbx - qax*qbz,
		Z: qaz*qbw + qaw*qbz + qax*qby - qay*qbx,
		W: qaw*qbw - qax*qbx - qay*qby - qaz*qbz,
	}
}
