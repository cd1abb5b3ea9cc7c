// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"errors"
	"image"
	"testing"

	"cogentcore.org/boxes/gpu"
	"cogentcore.org/boxes/gpu/gputest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext(t *testing.T) {
	inst, sf := gputest.NewInstance()
	ctx, err := gpu.NewContext(inst, sf, image.Point{800, 600}, nil)
	require.NoError(t, err)

	assert.Equal(t, gpu.PowerPreferenceHighPerformance, inst.Options.PowerPreference)
	assert.Equal(t, gpu.Surface(sf), inst.Options.CompatibleSurface)

	cfg, ok := sf.LastConfig()
	require.True(t, ok)
	assert.Len(t, sf.Configs, 1)
	assert.Equal(t, gpu.TextureFormatBGRA8UnormSrgb, cfg.Format)
	assert.Equal(t, gpu.TextureUsageRenderAttachment, cfg.Usage)
	assert.Equal(t, gpu.PresentModeFifo, cfg.PresentMode)
	assert.Equal(t, gpu.CompositeAlphaModeOpaque, cfg.AlphaMode)
	assert.Equal(t, uint32(800), cfg.Width)
	assert.Equal(t, uint32(600), cfg.Height)
	assert.Equal(t, cfg, ctx.Config())
	assert.True(t, ctx.Configured())
	assert.InDelta(t, 800.0/600.0, ctx.Aspect(), 1e-6)
}

func TestNewContextFormatFallback(t *testing.T) {
	inst, sf := gputest.NewInstance()
	sf.Caps.Formats = []gpu.TextureFormat{gpu.TextureFormatRGBA16Float, gpu.TextureFormatBGRA8Unorm}
	ctx, err := gpu.NewContext(inst, sf, image.Point{10, 10}, nil)
	require.NoError(t, err)
	assert.Equal(t, gpu.TextureFormatRGBA16Float, ctx.Format())
}

func TestNewContextPresentMode(t *testing.T) {
	inst, sf := gputest.NewInstance()
	opts := gpu.DefaultContextOptions()
	opts.PresentMode = gpu.PresentModeMailbox
	ctx, err := gpu.NewContext(inst, sf, image.Point{10, 10}, opts)
	require.NoError(t, err)
	assert.Equal(t, gpu.PresentModeMailbox, ctx.Config().PresentMode)

	inst, sf = gputest.NewInstance()
	opts.PresentMode = gpu.PresentModeImmediate
	ctx, err = gpu.NewContext(inst, sf, image.Point{10, 10}, opts)
	require.NoError(t, err)
	assert.Equal(t, gpu.PresentModeFifo, ctx.Config().PresentMode)
}

func TestNewContextErrors(t *testing.T) {
	inst, sf := gputest.NewInstance()
	inst.Adapter = nil
	_, err := gpu.NewContext(inst, sf, image.Point{10, 10}, nil)
	assert.ErrorIs(t, err, gpu.ErrNoAdapter)
	assert.True(t, inst.Released)
	assert.True(t, sf.Released)

	inst, sf = gputest.NewInstance()
	inst.AdapterError = errors.New("no vulkan")
	_, err = gpu.NewContext(inst, sf, image.Point{10, 10}, nil)
	assert.ErrorIs(t, err, gpu.ErrNoAdapter)
	assert.ErrorContains(t, err, "no vulkan")

	inst, sf = gputest.NewInstance()
	inst.Adapter.DeviceError = errors.New("limits")
	_, err = gpu.NewContext(inst, sf, image.Point{10, 10}, nil)
	assert.ErrorIs(t, err, gpu.ErrNoDevice)
	assert.True(t, inst.Adapter.Released)

	inst, sf = gputest.NewInstance()
	sf.Caps.Formats = nil
	_, err = gpu.NewContext(inst, sf, image.Point{10, 10}, nil)
	assert.ErrorIs(t, err, gpu.ErrNoSurfaceFormat)
	assert.True(t, inst.Adapter.Device.Released)
	assert.Empty(t, sf.Configs)
}

func TestContextResize(t *testing.T) {
	inst, sf := gputest.NewInstance()
	ctx, err := gpu.NewContext(inst, sf, image.Point{800, 600}, nil)
	require.NoError(t, err)

	assert.True(t, ctx.Resize(image.Point{1024, 768}))
	cfg := ctx.Config()
	assert.Equal(t, uint32(1024), cfg.Width)
	assert.Equal(t, uint32(768), cfg.Height)
	assert.Equal(t, image.Point{1024, 768}, ctx.Size())
	last, _ := sf.LastConfig()
	assert.Equal(t, cfg, last)

	// zero size is a no-op
	n := len(sf.Configs)
	assert.False(t, ctx.Resize(image.Point{0, 768}))
	assert.False(t, ctx.Resize(image.Point{1024, 0}))
	assert.False(t, ctx.Resize(image.Point{-1, -1}))
	assert.Len(t, sf.Configs, n)
	assert.Equal(t, cfg, ctx.Config())

	ctx.Reconfigure()
	assert.Len(t, sf.Configs, n+1)
}

func TestContextDeferredConfigure(t *testing.T) {
	inst, sf := gputest.NewInstance()
	ctx, err := gpu.NewContext(inst, sf, image.Point{}, nil)
	require.NoError(t, err)
	assert.False(t, ctx.Configured())
	assert.Empty(t, sf.Configs)
	assert.Equal(t, float32(1), ctx.Aspect())

	ctx.Reconfigure()
	assert.Empty(t, sf.Configs)

	assert.True(t, ctx.Resize(image.Point{20, 10}))
	assert.True(t, ctx.Configured())
	assert.Len(t, sf.Configs, 1)
}

func TestContextRelease(t *testing.T) {
	inst, sf := gputest.NewInstance()
	ctx, err := gpu.NewContext(inst, sf, image.Point{8, 8}, nil)
	require.NoError(t, err)
	ctx.Release()
	lg := inst.Log
	dev := lg.Index("release device")
	ad := lg.Index("release adapter")
	srf := lg.Index("release surface")
	ins := lg.Index("release instance")
	assert.True(t, dev >= 0 && dev < ad && ad < srf && srf < ins, "release order: %v", lg.Events)
	assert.False(t, ctx.Configured())
	ctx.Release()
}

func TestCurrentTextureClassified(t *testing.T) {
	inst, sf := gputest.NewInstance()
	ctx, err := gpu.NewContext(inst, sf, image.Point{8, 8}, nil)
	require.NoError(t, err)
	sf.AcquireErrors = []error{errors.New("Error getting current texture: Outdated"), nil}

	_, err = ctx.CurrentTexture()
	var se *gpu.SurfaceError
	require.ErrorAs(t, err, &se)
	assert.ErrorIs(t, err, gpu.ErrSurfaceOutdated)
	assert.True(t, se.NeedsReconfigure())

	tex, err := ctx.CurrentTexture()
	assert.NoError(t, err)
	assert.NotNil(t, tex)
}
