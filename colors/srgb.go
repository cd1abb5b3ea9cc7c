// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colors provides color conversions between 8-bit sRGB
// values and the linear floating point components used by the GPU.
package colors

import (
	"image/color"

	"cogentcore.org/boxes/math32"
)

// SRGBToLinearComp converts an sRGB rgb component to linear space (removes gamma).
func SRGBToLinearComp(srgb float32) float32 {
	if srgb <= 0.04045 {
		return srgb / 12.92
	}
	return math32.Pow((srgb+0.055)/1.055, 2.4)
}

// SRGBFromLinearComp converts an sRGB rgb linear component
// to non-linear (gamma corrected) sRGB value.
func SRGBFromLinearComp(lin float32) float32 {
	if lin <= 0.0031308 {
		return 12.92 * lin
	}
	return (1.055*math32.Pow(lin, 1/2.4) - 0.055)
}

// RGBToSRGB converts 8-bit sRGB color components into the linear
// float components expected by an sRGB render target, which
// re-applies the gamma on write. Each component is divided by 255
// and then linearized with [SRGBToLinearComp].
func RGBToSRGB(r, g, b uint8) [3]float32 {
	return [3]float32{
		SRGBToLinearComp(float32(r) / 255),
		SRGBToLinearComp(float32(g) / 255),
		SRGBToLinearComp(float32(b) / 255),
	}
}

// ToLinear returns the linear float components of the given color,
// with alpha passed through unchanged as a 0-1 value.
func ToLinear(c color.Color) (r, g, b, a float32) {
	rgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	l := RGBToSRGB(rgba.R, rgba.G, rgba.B)
	return l[0], l[1], l[2], float32(rgba.A) / 255
}
