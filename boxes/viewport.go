// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxes

import (
	"encoding/binary"
	"fmt"

	"cogentcore.org/boxes/base/errors"
	"cogentcore.org/boxes/math32"
)

// OpenGLToWGPU remaps the OpenGL [-1, 1] clip depth produced by
// [math32.Perspective] to the [0, 1] depth range of WebGPU.
var OpenGLToWGPU = func() math32.Matrix4 {
	m := math32.Matrix4{}
	m.Set(
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0.5, 0.5,
		0, 0, 0, 1,
	)
	return m
}()

// ErrInvalidViewport is returned by [Viewport.Validate].
var ErrInvalidViewport = errors.New("boxes: invalid viewport")

// Viewport is a perspective camera looking from Eye at Target.
type Viewport struct {
	Eye    math32.Vector3
	Target math32.Vector3
	Up     math32.Vector3

	// Aspect is the width / height ratio of the surface.
	Aspect float32

	// Fovy is the vertical field of view in degrees.
	Fovy float32

	// Znear and Zfar are the clip plane distances, with 0 < Znear < Zfar.
	Znear float32
	Zfar  float32
}

// DefaultViewport returns the startup camera for the given aspect ratio:
// 12 units out on +Z looking at the origin, 45 degree field of view.
func DefaultViewport(aspect float32) Viewport {
	return Viewport{
		Eye:    math32.Vec3(0, 0, 12),
		Target: math32.Vec3(0, 0, 0),
		Up:     math32.Vec3(0, 1, 0),
		Aspect: aspect,
		Fovy:   45,
		Znear:  0.1,
		Zfar:   100,
	}
}

// SetAspect sets the aspect ratio from a surface size.
// It does nothing if either dimension is not positive.
func (vp *Viewport) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	vp.Aspect = float32(width) / float32(height)
}

// Validate returns an error if the viewport cannot be projected.
func (vp *Viewport) Validate() error {
	switch {
	case !(vp.Znear > 0) || !(vp.Zfar > vp.Znear):
		return fmt.Errorf("%w: clip planes znear=%g zfar=%g", ErrInvalidViewport, vp.Znear, vp.Zfar)
	case !(vp.Aspect > 0):
		return fmt.Errorf("%w: aspect %g", ErrInvalidViewport, vp.Aspect)
	case !(vp.Fovy > 0 && vp.Fovy < 180):
		return fmt.Errorf("%w: fovy %g", ErrInvalidViewport, vp.Fovy)
	case vp.Target.Sub(vp.Eye).IsNil():
		return fmt.Errorf("%w: eye and target are both %v", ErrInvalidViewport, vp.Eye)
	case vp.Up.IsNil() || vp.Target.Sub(vp.Eye).Cross(vp.Up).IsNil():
		return fmt.Errorf("%w: up %v is parallel to the view direction", ErrInvalidViewport, vp.Up)
	}
	return nil
}

// BuildViewProjectionMatrix returns OpenGLToWGPU * projection * view.
func (vp Viewport) BuildViewProjectionMatrix() math32.Matrix4 {
	view := math32.LookAtRH(vp.Eye, vp.Target, vp.Up)
	proj := math32.Perspective(vp.Fovy, vp.Aspect, vp.Znear, vp.Zfar)
	return OpenGLToWGPU.Mul(proj.Mul(view))
}

// ViewportUniform is the uniform block of the box shader.
type ViewportUniform struct {
	ViewProj math32.Matrix4
}

// ViewportUniformSize is the size of a packed [ViewportUniform] in bytes.
const ViewportUniformSize = 64

// NewViewportUniform returns a uniform holding the identity.
func NewViewportUniform() ViewportUniform {
	return ViewportUniform{ViewProj: math32.Identity4()}
}

// Update recomputes the matrix from the viewport.
func (vu *ViewportUniform) Update(vp *Viewport) {
	vu.ViewProj = vp.BuildViewProjectionMatrix()
}

// Bytes returns the little-endian column-major matrix.
func (vu *ViewportUniform) Bytes() []byte {
	b, _ := binary.Append(make([]byte, 0, ViewportUniformSize), binary.LittleEndian, vu.ViewProj)
	return b
}
