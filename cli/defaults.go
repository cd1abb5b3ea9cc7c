// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli loads app configuration structs from `default:` tags,
// an optional TOML or YAML config file, and command line flags,
// in that order of precedence.
package cli

import (
	"cogentcore.org/boxes/base/errors"
	"cogentcore.org/boxes/base/reflectx"
)

// SetFromDefaults sets the values of the given config object
// from `default:` struct field tag values. Errors are automatically
// logged in addition to being returned.
func SetFromDefaults(cfg any) error {
	return errors.Log(reflectx.SetFromDefaultTags(cfg))
}
