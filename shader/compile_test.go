// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleShader = `
@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
	return vec4<f32>(position, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
	return vec4<f32>(1.0, 0.5, 0.25, 1.0);
}
`

// skipNagaLimit skips the test for WGSL features naga does not support yet.
func skipNagaLimit(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		return
	}
	msg := err.Error()
	if strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
		t.Skipf("naga feature not yet implemented: %v", err)
	}
}

func TestCompileSPIRV(t *testing.T) {
	words, err := CompileSPIRV(simpleShader)
	skipNagaLimit(t, err)
	require.NoError(t, err)
	require.NotEmpty(t, words)
	assert.Equal(t, uint32(SPIRVMagic), words[0])
}

func TestCompileSPIRVError(t *testing.T) {
	_, err := CompileSPIRV("fn broken( {")
	assert.Error(t, err)
}

func TestModuleDescriptor(t *testing.T) {
	desc, err := ModuleDescriptor("test", simpleShader, Native)
	require.NoError(t, err)
	assert.Equal(t, "test", desc.Label)
	assert.Equal(t, simpleShader, desc.WGSL)
	assert.Nil(t, desc.SPIRV)

	desc, err = ModuleDescriptor("test", simpleShader, Naga)
	skipNagaLimit(t, err)
	require.NoError(t, err)
	assert.Empty(t, desc.WGSL)
	assert.Equal(t, uint32(SPIRVMagic), desc.SPIRV[0])
}

func TestParseCompiler(t *testing.T) {
	for _, c := range []Compilers{Native, Naga} {
		p, err := ParseCompiler(c.String())
		assert.NoError(t, err)
		assert.Equal(t, c, p)
	}
	p, err := ParseCompiler(" NAGA ")
	assert.NoError(t, err)
	assert.Equal(t, Naga, p)
	_, err = ParseCompiler("glslang")
	assert.Error(t, err)
}
