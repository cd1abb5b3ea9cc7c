// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"strings"
)

// TextureFormat is the pixel format of a texture or surface.
type TextureFormat int32

const (
	TextureFormatUndefined TextureFormat = iota
	TextureFormatRGBA8Unorm
	TextureFormatRGBA8UnormSrgb
	TextureFormatBGRA8Unorm
	TextureFormatBGRA8UnormSrgb
	TextureFormatRGB10A2Unorm
	TextureFormatRGBA16Float
)

// TextureFormatNames translates image format into human-readable string
// for most commonly available formats
var TextureFormatNames = map[TextureFormat]string{
	TextureFormatUndefined:      "undefined",
	TextureFormatRGBA8Unorm:     "RGBA 8bit unsigned linear colorspace",
	TextureFormatRGBA8UnormSrgb: "RGBA 8bit sRGB colorspace",
	TextureFormatBGRA8Unorm:     "BGRA 8bit unsigned linear colorspace",
	TextureFormatBGRA8UnormSrgb: "BGRA 8bit sRGB colorspace",
	TextureFormatRGB10A2Unorm:   "RGB 10bit, 2bit alpha, unsigned linear colorspace",
	TextureFormatRGBA16Float:    "RGBA 16bit floating point linear colorspace",
}

func (f TextureFormat) String() string {
	if nm, ok := TextureFormatNames[f]; ok {
		return nm
	}
	return fmt.Sprintf("TextureFormat(%d)", int32(f))
}

// IsSRGB returns true if the format stores sRGB encoded values,
// so that the hardware applies gamma on write.
func (f TextureFormat) IsSRGB() bool {
	return f == TextureFormatRGBA8UnormSrgb || f == TextureFormatBGRA8UnormSrgb
}

// SelectSurfaceFormat returns the first sRGB format in the given list,
// or the first format if none is sRGB. It returns
// [TextureFormatUndefined] for an empty list.
func SelectSurfaceFormat(formats []TextureFormat) TextureFormat {
	for _, f := range formats {
		if f.IsSRGB() {
			return f
		}
	}
	if len(formats) == 0 {
		return TextureFormatUndefined
	}
	return formats[0]
}

// PresentMode determines how frames are queued for display.
type PresentMode int32

const (
	// PresentModeUndefined means no preference: the first mode
	// supported by the surface is used.
	PresentModeUndefined PresentMode = iota
	PresentModeFifo
	PresentModeFifoRelaxed
	PresentModeImmediate
	PresentModeMailbox
)

var presentModeNames = []string{"undefined", "fifo", "fifo-relaxed", "immediate", "mailbox"}

func (m PresentMode) String() string {
	if m >= 0 && int(m) < len(presentModeNames) {
		return presentModeNames[m]
	}
	return fmt.Sprintf("PresentMode(%d)", int32(m))
}

// ParsePresentMode returns the [PresentMode] with the given name
// (as returned by [PresentMode.String]); "" is [PresentModeUndefined].
func ParsePresentMode(s string) (PresentMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PresentModeUndefined, nil
	}
	for i, nm := range presentModeNames {
		if nm == s {
			return PresentMode(i), nil
		}
	}
	return PresentModeUndefined, fmt.Errorf("gpu.ParsePresentMode: unknown present mode %q", s)
}

// CompositeAlphaMode determines how the surface alpha is
// composited with the windowing system.
type CompositeAlphaMode int32

const (
	CompositeAlphaModeAuto CompositeAlphaMode = iota
	CompositeAlphaModeOpaque
	CompositeAlphaModePremultiplied
	CompositeAlphaModeUnpremultiplied
	CompositeAlphaModeInherit
)

// TextureUsage is a bit set of the ways a texture can be used.
type TextureUsage uint32

const (
	TextureUsageCopySrc TextureUsage = 1 << iota
	TextureUsageCopyDst
	TextureUsageTextureBinding
	TextureUsageStorageBinding
	TextureUsageRenderAttachment
)

// SurfaceCapabilities are the formats and modes supported by
// a surface with a given adapter.
type SurfaceCapabilities struct {
	Formats      []TextureFormat
	PresentModes []PresentMode
	AlphaModes   []CompositeAlphaMode
}

// SurfaceConfig is the configuration of a presentable surface.
// Width and Height are always positive when applied.
type SurfaceConfig struct {
	Usage       TextureUsage
	Format      TextureFormat
	Width       uint32
	Height      uint32
	PresentMode PresentMode
	AlphaMode   CompositeAlphaMode
}

func (sc SurfaceConfig) String() string {
	return fmt.Sprintf("%dx%d %s present: %s", sc.Width, sc.Height, sc.Format, sc.PresentMode)
}
