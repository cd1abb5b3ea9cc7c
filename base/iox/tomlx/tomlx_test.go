// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tomlx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testWindow struct {
	Title  string
	Width  int
	Height int
}

func TestOpenFilesOverride(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.toml")
	over := filepath.Join(dir, "over.toml")
	require.NoError(t, os.WriteFile(base, []byte("Title = \"boxes\"\nWidth = 800\nHeight = 600\n"), 0666))
	require.NoError(t, os.WriteFile(over, []byte("Width = 1024\n"), 0666))

	var w testWindow
	require.NoError(t, OpenFiles(&w, base, over))
	assert.Equal(t, testWindow{Title: "boxes", Width: 1024, Height: 600}, w)

	assert.Error(t, OpenFiles(&w, filepath.Join(dir, "missing.toml")))
}

func TestSaveOpen(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "w.toml")
	in := testWindow{Title: "t", Width: 2, Height: 3}
	require.NoError(t, Save(&in, fn))
	var out testWindow
	require.NoError(t, Open(&out, fn))
	assert.Equal(t, in, out)

	assert.Error(t, ReadBytes(&out, []byte("Width = \"not a number\"")))
}
