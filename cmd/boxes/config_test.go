// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/boxes/cli"
	"cogentcore.org/boxes/gpu"
	"cogentcore.org/boxes/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cli.Parse(cfg, &cli.Options{AppName: "boxes"}, nil))
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, float32(12), cfg.Camera.EyeZ)

	copts, opts, err := cfg.setup()
	require.NoError(t, err)
	assert.Equal(t, gpu.PresentModeFifo, copts.PresentMode)
	assert.Equal(t, gpu.PowerPreferenceHighPerformance, copts.PowerPreference)
	assert.Equal(t, shader.Native, opts.Compiler)
	require.NotNil(t, opts.Viewport)
	assert.InDelta(t, 800.0/600.0, opts.Viewport.Aspect, 1e-6)
	assert.Equal(t, float32(12), opts.Viewport.Eye.Z)
}

func TestConfigFlags(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "boxes.yaml")
	require.NoError(t, os.WriteFile(file, []byte("shadercompiler: naga\ncamera:\n  fovy: 60\n"), 0666))

	cfg := &Config{}
	args := []string{"--config", file, "--present-mode", "mailbox", "--camera-eye-z", "5", "--fallback"}
	require.NoError(t, cli.Parse(cfg, &cli.Options{AppName: "boxes"}, args))
	copts, opts, err := cfg.setup()
	require.NoError(t, err)
	assert.Equal(t, gpu.PresentModeMailbox, copts.PresentMode)
	assert.True(t, copts.ForceFallbackAdapter)
	assert.Equal(t, shader.Naga, opts.Compiler)
	assert.Equal(t, float32(60), opts.Viewport.Fovy)
	assert.Equal(t, float32(5), opts.Viewport.Eye.Z)
}

func TestConfigErrors(t *testing.T) {
	for _, mod := range []func(cfg *Config){
		func(cfg *Config) { cfg.Width = 0 },
		func(cfg *Config) { cfg.FPS = -1 },
		func(cfg *Config) { cfg.PresentMode = "vsync" },
		func(cfg *Config) { cfg.ShaderCompiler = "glslang" },
		func(cfg *Config) { cfg.LogLevel = "loud" },
		func(cfg *Config) { cfg.Camera.Fovy = 180 },
		func(cfg *Config) { cfg.Camera.EyeZ = 0 },
	} {
		cfg := &Config{}
		require.NoError(t, cli.SetFromDefaults(cfg))
		mod(cfg)
		_, _, err := cfg.setup()
		assert.Error(t, err)
	}
}
