// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tomlx provides functions for reading and writing
// TOML files using github.com/pelletier/go-toml/v2.
package tomlx

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Open reads the given object from the given filename using TOML encoding.
func Open(v any, filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return ReadBytes(v, b)
}

// OpenFiles reads the given object from the given filenames using TOML encoding,
// applying each file in turn so that later files override earlier ones.
func OpenFiles(v any, filenames ...string) error {
	var errs []error
	for _, file := range filenames {
		errs = append(errs, Open(v, file))
	}
	return errors.Join(errs...)
}

// OpenFS reads the given object from the given filename in the
// given filesystem using TOML encoding.
func OpenFS(v any, fsys fs.FS, filename string) error {
	b, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return err
	}
	return ReadBytes(v, b)
}

// Read reads the given object from the given reader using TOML encoding.
func Read(v any, reader io.Reader) error {
	return toml.NewDecoder(reader).Decode(v)
}

// ReadBytes reads the given object from the given bytes using TOML encoding.
func ReadBytes(v any, data []byte) error {
	return Read(v, bytes.NewReader(data))
}

// Save writes the given object to the given filename using TOML encoding.
func Save(v any, filename string) error {
	b, err := WriteBytes(v)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0666)
}

// Write writes the given object using TOML encoding.
func Write(v any, writer io.Writer) error {
	return toml.NewEncoder(writer).Encode(v)
}

// WriteBytes writes the given object, returning bytes of the encoding.
func WriteBytes(v any) ([]byte, error) {
	var b bytes.Buffer
	err := Write(v, &b)
	return b.Bytes(), err
}
