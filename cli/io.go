// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/boxes/base/iox/tomlx"
	"cogentcore.org/boxes/base/iox/yamlx"
)

// Open reads the config struct from the given config file,
// choosing the encoding from the file extension:
// .toml, or .yaml / .yml.
func Open(cfg any, file string) error {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".toml":
		return tomlx.Open(cfg, file)
	case ".yaml", ".yml":
		return yamlx.Open(cfg, file)
	}
	return fmt.Errorf("cli.Open: unsupported config file type %q", file)
}

// Save writes the config struct to the given file, with the
// encoding chosen as in [Open].
func Save(cfg any, file string) error {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".toml":
		return tomlx.Save(cfg, file)
	case ".yaml", ".yml":
		return yamlx.Save(cfg, file)
	}
	return fmt.Errorf("cli.Save: unsupported config file type %q", file)
}

// firstExisting returns the first of the given files that exists, or "".
func firstExisting(files []string) string {
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			return f
		}
	}
	return ""
}
