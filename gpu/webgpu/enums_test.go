// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webgpu

import (
	"testing"

	"cogentcore.org/boxes/gpu"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestFormats(t *testing.T) {
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, TextureFormat(gpu.TextureFormatBGRA8UnormSrgb))
	assert.Equal(t, gpu.TextureFormatRGBA16Float, textureFormatsFrom[wgpu.TextureFormatRGBA16Float])
	assert.Len(t, textureFormatsFrom, len(textureFormats))
	assert.Len(t, presentModesFrom, len(presentModes))
	assert.Len(t, alphaModesFrom, len(alphaModes))

	vf, err := VertexFormat(gpu.Float32Vector3)
	assert.NoError(t, err)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, vf)
	_, err = VertexFormat(gpu.Float32Matrix4)
	assert.Error(t, err)
}

func TestFlags(t *testing.T) {
	assert.Equal(t, wgpu.BufferUsageVertex|wgpu.BufferUsageCopyDst, bufferUsage(gpu.BufferUsageVertex|gpu.BufferUsageCopyDst))
	assert.Equal(t, wgpu.BufferUsageUniform, bufferUsage(gpu.BufferUsageUniform))
	assert.Equal(t, wgpu.ShaderStageVertex, shaderStage(gpu.ShaderStageVertex))
	assert.Equal(t, wgpu.TextureUsageRenderAttachment, textureUsage(gpu.TextureUsageRenderAttachment))
	assert.Equal(t, wgpu.ColorWriteMaskAll, colorWriteMask(gpu.ColorWriteMaskAll))
	assert.Equal(t, wgpu.VertexStepModeInstance, stepMode(gpu.VertexStepModeInstance))
	assert.Equal(t, wgpu.IndexFormatUint16, indexFormat(gpu.IndexFormatUint16))
	assert.Equal(t, wgpu.CullModeBack, cullMode(gpu.CullModeBack))
	assert.Equal(t, wgpu.FrontFaceCCW, frontFace(gpu.FrontFaceCCW))
	assert.Equal(t, wgpu.LoadOpClear, loadOp(gpu.LoadOpClear))
	assert.Equal(t, wgpu.StoreOpStore, storeOp(gpu.StoreOpStore))
}

func TestSPIRVBytes(t *testing.T) {
	b := spirvBytes([]uint32{0x07230203, 1})
	assert.Equal(t, []byte{0x03, 0x02, 0x23, 0x07, 1, 0, 0, 0}, b)
}
