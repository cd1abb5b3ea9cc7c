// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"encoding/binary"
	"fmt"
	"strings"

	"cogentcore.org/boxes/gpu"
	"github.com/gogpu/naga"
)

// SPIRVMagic is the first word of every SPIR-V module.
const SPIRVMagic = 0x07230203

// Compilers selects how WGSL source reaches the device.
type Compilers int32

const (
	// Native passes the WGSL source to the backend, which compiles it.
	Native Compilers = iota

	// Naga compiles the WGSL source to SPIR-V in Go with gogpu/naga,
	// and passes the SPIR-V to the backend.
	Naga
)

func (c Compilers) String() string {
	if c == Naga {
		return "naga"
	}
	return "native"
}

// ParseCompiler returns the compiler with the given name: native or naga.
func ParseCompiler(s string) (Compilers, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "native":
		return Native, nil
	case "naga":
		return Naga, nil
	}
	return Native, fmt.Errorf("shader.ParseCompiler: unknown compiler %q", s)
}

// CompileSPIRV compiles the WGSL source to SPIR-V words.
func CompileSPIRV(src string) ([]uint32, error) {
	b, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("shader: compiling WGSL to SPIR-V: %w", err)
	}
	if len(b) < 4 || len(b)%4 != 0 {
		return nil, fmt.Errorf("shader: invalid SPIR-V output of %d bytes", len(b))
	}
	// SPIR-V is little-endian 32-bit words
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	if words[0] != SPIRVMagic {
		return nil, fmt.Errorf("shader: invalid SPIR-V magic 0x%08X", words[0])
	}
	return words, nil
}

// ModuleDescriptor returns the shader module descriptor for the given
// WGSL source, compiled according to the given compiler.
func ModuleDescriptor(label, src string, c Compilers) (*gpu.ShaderModuleDescriptor, error) {
	desc := &gpu.ShaderModuleDescriptor{Label: label}
	if c == Naga {
		words, err := CompileSPIRV(src)
		if err != nil {
			return nil, err
		}
		desc.SPIRV = words
		return desc, nil
	}
	desc.WGSL = src
	return desc, nil
}
