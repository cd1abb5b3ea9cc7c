// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colors

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBToSRGBBounds(t *testing.T) {
	assert.Equal(t, [3]float32{0, 0, 0}, RGBToSRGB(0, 0, 0))
	white := RGBToSRGB(255, 255, 255)
	for _, c := range white {
		assert.InDelta(t, 1, c, 1e-6)
	}
}

func TestRGBToSRGBLinearBranch(t *testing.T) {
	// 10/255 is below the 0.04045 threshold
	c := RGBToSRGB(10, 0, 0)
	assert.InDelta(t, (10.0/255.0)/12.92, c[0], 1e-7)

	// 11/255 is above it, so the power curve applies
	c = RGBToSRGB(11, 0, 0)
	assert.InDelta(t, 0.0033465, c[0], 1e-5)
}

func TestRGBToSRGBKnown(t *testing.T) {
	peach := RGBToSRGB(250, 179, 135)
	assert.InDelta(t, 0.9559735, peach[0], 1e-5)
	assert.InDelta(t, 0.45078585, peach[1], 1e-5)
	assert.InDelta(t, 0.2422812, peach[2], 1e-5)

	r, g, b, a := ToLinear(color.RGBA{30, 30, 46, 255})
	assert.InDelta(t, 0.01298, r, 1e-4)
	assert.InDelta(t, 0.01298, g, 1e-4)
	assert.InDelta(t, 0.02732, b, 1e-4)
	assert.Equal(t, float32(1), a)
}

func TestSRGBRoundTrip(t *testing.T) {
	for _, v := range []float32{0, 0.01, 0.04045, 0.1, 0.5, 0.9, 1} {
		assert.InDelta(t, v, SRGBFromLinearComp(SRGBToLinearComp(v)), 1e-5)
	}
}

func TestRGBToSRGBMonotonic(t *testing.T) {
	prev := float32(-1)
	for i := 0; i < 256; i++ {
		c := RGBToSRGB(uint8(i), 0, 0)[0]
		assert.Greater(t, c, prev)
		prev = c
	}
}
