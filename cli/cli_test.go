// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCamera struct {
	Fovy float32 `default:"45" desc:"vertical field of view in degrees"`
}

type testConfig struct {
	Title  string `default:"boxes"`
	Width  int    `default:"800"`
	Height int    `default:"600"`
	VSync  bool   `default:"false"`
	Camera testCamera
}

func TestKebabCase(t *testing.T) {
	assert.Equal(t, "width", kebabCase("Width"))
	assert.Equal(t, "present-mode", kebabCase("PresentMode"))
	assert.Equal(t, "fps", kebabCase("FPS"))
	assert.Equal(t, "eye-z", kebabCase("EyeZ"))
	assert.Equal(t, "v-sync", kebabCase("VSync"))
	assert.Equal(t, "gpu-name", kebabCase("GPUName"))
}

func TestParseDefaults(t *testing.T) {
	cfg := &testConfig{}
	opts := &Options{AppName: "test"}
	require.NoError(t, Parse(cfg, opts, nil))
	assert.Equal(t, "boxes", cfg.Title)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, float32(45), cfg.Camera.Fovy)
}

func TestParsePrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.toml")
	require.NoError(t, os.WriteFile(file, []byte("Width = 1024\nHeight = 768\n[Camera]\nFovy = 60.0\n"), 0666))

	cfg := &testConfig{}
	opts := &Options{AppName: "test", DefaultFiles: []string{filepath.Join(dir, "missing.toml"), file}}
	require.NoError(t, Parse(cfg, opts, []string{"--height", "100", "--v-sync"}))
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 100, cfg.Height)
	assert.True(t, cfg.VSync)
	assert.Equal(t, float32(60), cfg.Camera.Fovy)

	cfg = &testConfig{}
	require.NoError(t, Parse(cfg, &Options{AppName: "test"}, []string{"--config", file, "--camera-fovy", "30"}))
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, float32(30), cfg.Camera.Fovy)
}

func TestParseErrors(t *testing.T) {
	opts := &Options{AppName: "test"}
	assert.Error(t, Parse(&testConfig{}, opts, []string{"--width", "wide"}))
	assert.Error(t, Parse(&testConfig{}, opts, []string{"--nope"}))
	assert.ErrorIs(t, Parse(&testConfig{}, opts, []string{"-h"}), pflag.ErrHelp)
	assert.Error(t, Parse(&testConfig{}, opts, []string{"--config", "cfg.json"}))
}

func TestOpenSaveYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cfg.yaml")
	in := &testConfig{Title: "y", Width: 3}
	require.NoError(t, Save(in, file))
	out := &testConfig{}
	require.NoError(t, Open(out, file))
	assert.Equal(t, in, out)
}
