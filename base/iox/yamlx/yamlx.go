// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yamlx provides functions for reading and writing
// YAML files using gopkg.in/yaml.v3.
package yamlx

import (
	"bytes"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Open reads the given object from the given filename using YAML encoding.
func Open(v any, filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return ReadBytes(v, b)
}

// Read reads the given object from the given reader using YAML encoding.
// An empty document leaves v unchanged.
func Read(v any, reader io.Reader) error {
	err := yaml.NewDecoder(reader).Decode(v)
	if err == io.EOF {
		return nil
	}
	return err
}

// ReadBytes reads the given object from the given bytes using YAML encoding.
func ReadBytes(v any, data []byte) error {
	return Read(v, bytes.NewReader(data))
}

// Save writes the given object to the given filename using YAML encoding.
func Save(v any, filename string) error {
	b, err := WriteBytes(v)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0666)
}

// WriteBytes writes the given object, returning bytes of the encoding.
func WriteBytes(v any) ([]byte, error) {
	return yaml.Marshal(v)
}
