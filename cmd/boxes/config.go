// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"cogentcore.org/boxes/boxes"
	"cogentcore.org/boxes/gpu"
	"cogentcore.org/boxes/logx"
	"cogentcore.org/boxes/math32"
	"cogentcore.org/boxes/shader"
)

// Camera is the camera part of the [Config].
type Camera struct {
	// EyeZ is the distance of the eye from the origin along +Z.
	EyeZ float32 `default:"12" desc:"distance of the camera from the origin"`

	Fovy float32 `default:"45" desc:"vertical field of view in degrees"`
}

// Config is the configuration of the boxes app, set from
// boxes.toml or boxes.yaml and the command line.
type Config struct {
	Title  string `default:"boxes" desc:"window title"`
	Width  int    `default:"800" desc:"initial window width"`
	Height int    `default:"600" desc:"initial window height"`

	// FPS is the frame rate of the render loop.
	FPS int `default:"60" desc:"frames per second"`

	PresentMode    string `default:"fifo" desc:"preferred present mode: fifo, fifo-relaxed, immediate or mailbox"`
	ShaderCompiler string `default:"native" desc:"WGSL compiler: native or naga"`
	Fallback       bool   `default:"false" desc:"request a software fallback adapter"`
	LogLevel       string `default:"" desc:"log level: debug, info, warn or error"`

	Camera Camera
}

// setup applies the config to the logger and returns the options
// for the GPU context and the renderer.
func (cfg *Config) setup() (*gpu.ContextOptions, *boxes.Options, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, nil, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.FPS <= 0 {
		return nil, nil, fmt.Errorf("invalid fps %d", cfg.FPS)
	}
	if cfg.LogLevel != "" {
		l, err := logx.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, err
		}
		logx.UserLevel.Set(l)
	}
	copts := gpu.DefaultContextOptions()
	pm, err := gpu.ParsePresentMode(cfg.PresentMode)
	if err != nil {
		return nil, nil, err
	}
	copts.PresentMode = pm
	copts.ForceFallbackAdapter = cfg.Fallback

	comp, err := shader.ParseCompiler(cfg.ShaderCompiler)
	if err != nil {
		return nil, nil, err
	}
	vp := boxes.DefaultViewport(float32(cfg.Width) / float32(cfg.Height))
	vp.Eye = math32.Vec3(0, 0, cfg.Camera.EyeZ)
	vp.Fovy = cfg.Camera.Fovy
	if err := vp.Validate(); err != nil {
		return nil, nil, err
	}
	return copts, &boxes.Options{Compiler: comp, Viewport: &vp}, nil
}
