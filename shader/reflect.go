// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shader handles WGSL shader sources: reflection of entry
// points and vertex stage inputs with gogpu/naga, checking them against
// vertex buffer layouts, and compilation to SPIR-V.
package shader

import (
	"cmp"
	"fmt"
	"slices"

	"cogentcore.org/boxes/base/errors"
	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
)

var (
	// ErrEntryPointNotFound is returned when a named entry point
	// is not defined in the source.
	ErrEntryPointNotFound = errors.New("shader: entry point not found")

	// ErrLayoutMismatch is returned when the vertex inputs
	// of a shader do not match the vertex buffer layouts.
	ErrLayoutMismatch = errors.New("shader: vertex layout mismatch")
)

// Input is one @location input of a vertex entry point.
type Input struct {
	Location uint32
	Name     string

	// Type is the WGSL type, such as vec3<f32>.
	Type string
}

func (in Input) String() string {
	return fmt.Sprintf("@location(%d) %s: %s", in.Location, in.Name, in.Type)
}

// Module is a WGSL module lowered to naga IR, for reflection.
type Module struct {
	IR *ir.Module
}

// Reflect parses and lowers the WGSL source.
func Reflect(src string) (*Module, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("shader: %w", err)
	}
	m, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("shader: lowering WGSL: %w", err)
	}
	return &Module{IR: m}, nil
}

var stageNames = map[ir.ShaderStage]string{
	ir.StageVertex:   "vertex",
	ir.StageFragment: "fragment",
	ir.StageCompute:  "compute",
	ir.StageTask:     "task",
	ir.StageMesh:     "mesh",
}

// EntryPoint returns the entry point with the given stage
// (vertex, fragment or compute) and name.
func (m *Module) EntryPoint(stage, name string) (*ir.EntryPoint, error) {
	for i := range m.IR.EntryPoints {
		ep := &m.IR.EntryPoints[i]
		if ep.Name == name && stageNames[ep.Stage] == stage {
			return ep, nil
		}
	}
	return nil, fmt.Errorf("%w: @%s fn %s", ErrEntryPointNotFound, stage, name)
}

// HasEntryPoint returns true if the module defines the entry point.
func (m *Module) HasEntryPoint(stage, name string) bool {
	_, err := m.EntryPoint(stage, name)
	return err == nil
}

// VertexInputs returns the @location inputs of the given vertex entry
// point, sorted by location, expanding struct typed arguments into
// their members. @builtin inputs are skipped.
func (m *Module) VertexInputs(entry string) ([]Input, error) {
	ep, err := m.EntryPoint("vertex", entry)
	if err != nil {
		return nil, err
	}
	var inputs []Input
	add := func(name string, th ir.TypeHandle, b *ir.Binding) error {
		if b == nil {
			return fmt.Errorf("shader: %s input %q has no @location or @builtin", entry, name)
		}
		loc, ok := (*b).(ir.LocationBinding)
		if !ok {
			return nil
		}
		tn, err := m.TypeName(th)
		if err != nil {
			return fmt.Errorf("shader: %s input %q: %w", entry, name, err)
		}
		inputs = append(inputs, Input{Location: loc.Location, Name: name, Type: tn})
		return nil
	}
	for _, arg := range ep.Function.Arguments {
		if arg.Binding != nil {
			if err := add(arg.Name, arg.Type, arg.Binding); err != nil {
				return nil, err
			}
			continue
		}
		st, isStruct := m.IR.Types[arg.Type].Inner.(ir.StructType)
		if !isStruct {
			return nil, fmt.Errorf("shader: %s parameter %q has no @location or @builtin", entry, arg.Name)
		}
		for _, mem := range st.Members {
			if err := add(mem.Name, mem.Type, mem.Binding); err != nil {
				return nil, err
			}
		}
	}
	slices.SortFunc(inputs, func(a, b Input) int {
		return cmp.Compare(a.Location, b.Location)
	})
	for i := 1; i < len(inputs); i++ {
		if inputs[i].Location == inputs[i-1].Location {
			return nil, fmt.Errorf("shader: %s uses @location(%d) twice", entry, inputs[i].Location)
		}
	}
	return inputs, nil
}

// TypeName returns the WGSL name of a scalar, vector or matrix type.
func (m *Module) TypeName(th ir.TypeHandle) (string, error) {
	if int(th) >= len(m.IR.Types) {
		return "", fmt.Errorf("shader: invalid type handle %d", th)
	}
	switch t := m.IR.Types[th].Inner.(type) {
	case ir.ScalarType:
		return scalarName(t)
	case ir.VectorType:
		s, err := scalarName(t.Scalar)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("vec%d<%s>", t.Size, s), nil
	case ir.MatrixType:
		s, err := scalarName(t.Scalar)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("mat%dx%d<%s>", t.Columns, t.Rows, s), nil
	}
	return "", fmt.Errorf("shader: type %T is not a vertex input type", m.IR.Types[th].Inner)
}

func scalarName(s ir.ScalarType) (string, error) {
	switch {
	case s.Kind == ir.ScalarFloat && s.Width == 4:
		return "f32", nil
	case s.Kind == ir.ScalarFloat && s.Width == 2:
		return "f16", nil
	case s.Kind == ir.ScalarSint && s.Width == 4:
		return "i32", nil
	case s.Kind == ir.ScalarUint && s.Width == 4:
		return "u32", nil
	case s.Kind == ir.ScalarBool:
		return "bool", nil
	}
	return "", fmt.Errorf("shader: unsupported scalar kind %d width %d", s.Kind, s.Width)
}

// HasEntryPoint returns true if the source defines a function with the
// given name marked with the given stage attribute (vertex, fragment or compute).
// Sources that do not parse have no entry points.
func HasEntryPoint(src, stage, name string) bool {
	m, err := Reflect(src)
	if err != nil {
		return false
	}
	return m.HasEntryPoint(stage, name)
}

// VertexInputs parses the source and returns the inputs of the given
// vertex entry point, as [Module.VertexInputs].
func VertexInputs(src, entry string) ([]Input, error) {
	m, err := Reflect(src)
	if err != nil {
		return nil, err
	}
	return m.VertexInputs(entry)
}
