// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webgpu

import (
	"fmt"

	"cogentcore.org/boxes/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

var textureFormats = map[gpu.TextureFormat]wgpu.TextureFormat{
	gpu.TextureFormatUndefined:      wgpu.TextureFormatUndefined,
	gpu.TextureFormatRGBA8Unorm:     wgpu.TextureFormatRGBA8Unorm,
	gpu.TextureFormatRGBA8UnormSrgb: wgpu.TextureFormatRGBA8UnormSrgb,
	gpu.TextureFormatBGRA8Unorm:     wgpu.TextureFormatBGRA8Unorm,
	gpu.TextureFormatBGRA8UnormSrgb: wgpu.TextureFormatBGRA8UnormSrgb,
	gpu.TextureFormatRGB10A2Unorm:   wgpu.TextureFormatRGB10A2Unorm,
	gpu.TextureFormatRGBA16Float:    wgpu.TextureFormatRGBA16Float,
}

var presentModes = map[gpu.PresentMode]wgpu.PresentMode{
	gpu.PresentModeFifo:        wgpu.PresentModeFifo,
	gpu.PresentModeFifoRelaxed: wgpu.PresentModeFifoRelaxed,
	gpu.PresentModeImmediate:   wgpu.PresentModeImmediate,
	gpu.PresentModeMailbox:     wgpu.PresentModeMailbox,
}

var alphaModes = map[gpu.CompositeAlphaMode]wgpu.CompositeAlphaMode{
	gpu.CompositeAlphaModeAuto:            wgpu.CompositeAlphaModeAuto,
	gpu.CompositeAlphaModeOpaque:          wgpu.CompositeAlphaModeOpaque,
	gpu.CompositeAlphaModePremultiplied:   wgpu.CompositeAlphaModePreMultiplied,
	gpu.CompositeAlphaModeUnpremultiplied: wgpu.CompositeAlphaModePostMultiplied,
	gpu.CompositeAlphaModeInherit:         wgpu.CompositeAlphaModeInherit,
}

var vertexFormats = map[gpu.Types]wgpu.VertexFormat{
	gpu.Uint32:         wgpu.VertexFormatUint32,
	gpu.Int32:          wgpu.VertexFormatSint32,
	gpu.Float32:        wgpu.VertexFormatFloat32,
	gpu.Float32Vector2: wgpu.VertexFormatFloat32x2,
	gpu.Float32Vector3: wgpu.VertexFormatFloat32x3,
	gpu.Float32Vector4: wgpu.VertexFormatFloat32x4,
}

// inverse returns the inverse of a one to one map.
func inverse[K, V comparable](m map[K]V) map[V]K {
	inv := make(map[V]K, len(m))
	for k, v := range m {
		inv[v] = k
	}
	return inv
}

var (
	textureFormatsFrom = inverse(textureFormats)
	presentModesFrom   = inverse(presentModes)
	alphaModesFrom     = inverse(alphaModes)
)

// TextureFormat returns the WebGPU texture format.
func TextureFormat(tf gpu.TextureFormat) wgpu.TextureFormat {
	return textureFormats[tf]
}

// VertexFormat returns the WebGPU vertex format for the given type.
func VertexFormat(tp gpu.Types) (wgpu.VertexFormat, error) {
	vf, ok := vertexFormats[tp]
	if !ok {
		return wgpu.VertexFormatUndefined, fmt.Errorf("webgpu: type %s is not a vertex format", tp)
	}
	return vf, nil
}

func textureUsage(u gpu.TextureUsage) wgpu.TextureUsage {
	var wu wgpu.TextureUsage
	for _, m := range []struct {
		from gpu.TextureUsage
		to   wgpu.TextureUsage
	}{
		{gpu.TextureUsageCopySrc, wgpu.TextureUsageCopySrc},
		{gpu.TextureUsageCopyDst, wgpu.TextureUsageCopyDst},
		{gpu.TextureUsageTextureBinding, wgpu.TextureUsageTextureBinding},
		{gpu.TextureUsageStorageBinding, wgpu.TextureUsageStorageBinding},
		{gpu.TextureUsageRenderAttachment, wgpu.TextureUsageRenderAttachment},
	} {
		if u&m.from != 0 {
			wu |= m.to
		}
	}
	return wu
}

func bufferUsage(u gpu.BufferUsage) wgpu.BufferUsage {
	var wu wgpu.BufferUsage
	for _, m := range []struct {
		from gpu.BufferUsage
		to   wgpu.BufferUsage
	}{
		{gpu.BufferUsageCopySrc, wgpu.BufferUsageCopySrc},
		{gpu.BufferUsageCopyDst, wgpu.BufferUsageCopyDst},
		{gpu.BufferUsageIndex, wgpu.BufferUsageIndex},
		{gpu.BufferUsageVertex, wgpu.BufferUsageVertex},
		{gpu.BufferUsageUniform, wgpu.BufferUsageUniform},
		{gpu.BufferUsageStorage, wgpu.BufferUsageStorage},
	} {
		if u.Has(m.from) {
			wu |= m.to
		}
	}
	return wu
}

func shaderStage(s gpu.ShaderStage) wgpu.ShaderStage {
	var ws wgpu.ShaderStage
	if s&gpu.ShaderStageVertex != 0 {
		ws |= wgpu.ShaderStageVertex
	}
	if s&gpu.ShaderStageFragment != 0 {
		ws |= wgpu.ShaderStageFragment
	}
	if s&gpu.ShaderStageCompute != 0 {
		ws |= wgpu.ShaderStageCompute
	}
	return ws
}

func bufferBindingType(bt gpu.BufferBindingType) wgpu.BufferBindingType {
	switch bt {
	case gpu.BufferBindingTypeStorage:
		return wgpu.BufferBindingTypeStorage
	case gpu.BufferBindingTypeReadOnlyStorage:
		return wgpu.BufferBindingTypeReadOnlyStorage
	}
	return wgpu.BufferBindingTypeUniform
}

func powerPreference(pp gpu.PowerPreference) wgpu.PowerPreference {
	switch pp {
	case gpu.PowerPreferenceLowPower:
		return wgpu.PowerPreferenceLowPower
	case gpu.PowerPreferenceHighPerformance:
		return wgpu.PowerPreferenceHighPerformance
	}
	return wgpu.PowerPreferenceUndefined
}

func stepMode(sm gpu.VertexStepMode) wgpu.VertexStepMode {
	if sm == gpu.VertexStepModeInstance {
		return wgpu.VertexStepModeInstance
	}
	return wgpu.VertexStepModeVertex
}

func blendFactor(bf gpu.BlendFactor) wgpu.BlendFactor {
	switch bf {
	case gpu.BlendFactorOne:
		return wgpu.BlendFactorOne
	case gpu.BlendFactorSrcAlpha:
		return wgpu.BlendFactorSrcAlpha
	case gpu.BlendFactorOneMinusSrcAlpha:
		return wgpu.BlendFactorOneMinusSrcAlpha
	}
	return wgpu.BlendFactorZero
}

func blendOperation(op gpu.BlendOperation) wgpu.BlendOperation {
	if op == gpu.BlendOperationSubtract {
		return wgpu.BlendOperationSubtract
	}
	return wgpu.BlendOperationAdd
}

func blendComponent(bc gpu.BlendComponent) wgpu.BlendComponent {
	return wgpu.BlendComponent{
		Operation: blendOperation(bc.Operation),
		SrcFactor: blendFactor(bc.SrcFactor),
		DstFactor: blendFactor(bc.DstFactor),
	}
}

func colorWriteMask(m gpu.ColorWriteMask) wgpu.ColorWriteMask {
	var wm wgpu.ColorWriteMask
	if m&gpu.ColorWriteMaskRed != 0 {
		wm |= wgpu.ColorWriteMaskRed
	}
	if m&gpu.ColorWriteMaskGreen != 0 {
		wm |= wgpu.ColorWriteMaskGreen
	}
	if m&gpu.ColorWriteMaskBlue != 0 {
		wm |= wgpu.ColorWriteMaskBlue
	}
	if m&gpu.ColorWriteMaskAlpha != 0 {
		wm |= wgpu.ColorWriteMaskAlpha
	}
	return wm
}

func topology(pt gpu.PrimitiveTopology) wgpu.PrimitiveTopology {
	switch pt {
	case gpu.PrimitiveTopologyTriangleStrip:
		return wgpu.PrimitiveTopologyTriangleStrip
	case gpu.PrimitiveTopologyLineList:
		return wgpu.PrimitiveTopologyLineList
	case gpu.PrimitiveTopologyLineStrip:
		return wgpu.PrimitiveTopologyLineStrip
	case gpu.PrimitiveTopologyPointList:
		return wgpu.PrimitiveTopologyPointList
	}
	return wgpu.PrimitiveTopologyTriangleList
}

func frontFace(ff gpu.FrontFace) wgpu.FrontFace {
	if ff == gpu.FrontFaceCW {
		return wgpu.FrontFaceCW
	}
	return wgpu.FrontFaceCCW
}

func cullMode(cm gpu.CullMode) wgpu.CullMode {
	switch cm {
	case gpu.CullModeFront:
		return wgpu.CullModeFront
	case gpu.CullModeBack:
		return wgpu.CullModeBack
	}
	return wgpu.CullModeNone
}

func indexFormat(f gpu.IndexFormat) wgpu.IndexFormat {
	if f == gpu.IndexFormatUint32 {
		return wgpu.IndexFormatUint32
	}
	return wgpu.IndexFormatUint16
}

func loadOp(op gpu.LoadOp) wgpu.LoadOp {
	if op == gpu.LoadOpLoad {
		return wgpu.LoadOpLoad
	}
	return wgpu.LoadOpClear
}

func storeOp(op gpu.StoreOp) wgpu.StoreOp {
	if op == gpu.StoreOpDiscard {
		return wgpu.StoreOpDiscard
	}
	return wgpu.StoreOpStore
}
