// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"fmt"

	"cogentcore.org/boxes/base/errors"
	"cogentcore.org/boxes/gpu"
)

// CheckLayout checks that every shader input is fed by exactly one
// vertex attribute of the given buffer layouts, at the same location
// and with a matching type, and that no two attributes share a location.
// Attributes that the shader does not read are allowed. Layouts must
// also keep each attribute inside its stride. All mismatches are
// joined and wrap [ErrLayoutMismatch].
func CheckLayout(inputs []Input, layouts []gpu.VertexBufferLayout) error {
	var errs []error
	attrs := map[uint32]gpu.VertexAttribute{}
	for slot, ly := range layouts {
		for _, at := range ly.Attributes {
			if _, dup := attrs[at.ShaderLocation]; dup {
				errs = append(errs, fmt.Errorf("%w: location %d is set by more than one attribute", ErrLayoutMismatch, at.ShaderLocation))
				continue
			}
			attrs[at.ShaderLocation] = at
			if end := at.Offset + uint64(at.Format.Bytes()); end > ly.ArrayStride {
				errs = append(errs, fmt.Errorf("%w: slot %d location %d ends at %d past stride %d", ErrLayoutMismatch, slot, at.ShaderLocation, end, ly.ArrayStride))
			}
		}
	}
	for _, in := range inputs {
		at, ok := attrs[in.Location]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: no attribute for %s", ErrLayoutMismatch, in))
			continue
		}
		if at.Format.WGSL() != in.Type {
			errs = append(errs, fmt.Errorf("%w: %s is fed by %s (%s)", ErrLayoutMismatch, in, at.Format, at.Format.WGSL()))
		}
	}
	return errors.Join(errs...)
}

// CheckVertexShader parses the source, reflects the inputs of the given vertex entry point
// and checks them against the layouts with [CheckLayout].
func CheckVertexShader(src, entry string, layouts []gpu.VertexBufferLayout) error {
	m, err := Reflect(src)
	if err != nil {
		return err
	}
	return m.CheckVertexLayout(entry, layouts)
}

// CheckVertexLayout checks the inputs of the given vertex entry
// point against the layouts with [CheckLayout].
func (m *Module) CheckVertexLayout(entry string, layouts []gpu.VertexBufferLayout) error {
	inputs, err := m.VertexInputs(entry)
	if err != nil {
		return err
	}
	return CheckLayout(inputs, layouts)
}
