// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxes

import (
	_ "embed"
)

// ShaderSource is the WGSL source of the box shader, with the
// vertex entry point [VertexEntry] and fragment entry point [FragmentEntry].
//
//go:embed shaders/boxes.wgsl
var ShaderSource string

const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)
