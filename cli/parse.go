// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"cogentcore.org/boxes/base/reflectx"
	"github.com/spf13/pflag"
)

// Options are the options passed to [Parse].
type Options struct {
	// AppName is the name of the app, used in help output.
	AppName string

	// DefaultFiles are the config files that are opened when no
	// -config flag is given. The first one that exists is used.
	DefaultFiles []string
}

// DefaultOptions returns a new [Options] value with the
// given app name and a default config file of appname.toml.
func DefaultOptions(appName string) *Options {
	return &Options{
		AppName:      appName,
		DefaultFiles: []string{appName + ".toml"},
	}
}

// Parse sets the given config struct from its `default:` tags,
// then from a config file (the -config flag, or the first existing
// [Options.DefaultFiles]), and finally from the given command line args.
// Each exported field is a kebab-case flag; nested struct fields are
// prefixed with the kebab-case name of their parent (camera-fovy).
// The `desc:` tag gives the flag usage. It returns [pflag.ErrHelp]
// if help was requested.
func Parse(cfg any, opts *Options, args []string) error {
	if err := SetFromDefaults(cfg); err != nil {
		return err
	}
	fs := pflag.NewFlagSet(opts.AppName, pflag.ContinueOnError)
	var configFile string
	fs.StringVar(&configFile, "config", "", "config file to open (.toml or .yaml)")
	fields := addFields(fs, reflectx.NonPointerValue(reflect.ValueOf(cfg)), "")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if configFile == "" {
		configFile = firstExisting(opts.DefaultFiles)
	}
	if configFile != "" {
		if err := Open(cfg, configFile); err != nil {
			return fmt.Errorf("cli.Parse: opening config file: %w", err)
		}
	}
	// flags override the config file
	for _, f := range fields {
		if !f.changed {
			continue
		}
		if err := reflectx.SetRobust(f.value, f.str); err != nil {
			return fmt.Errorf("cli.Parse: flag %q: %w", f.name, err)
		}
	}
	return nil
}

// field is a [pflag.Value] bound to a config struct field.
// The value is applied after the config file is read.
type field struct {
	name    string
	value   reflect.Value
	str     string
	changed bool
}

func (f *field) String() string {
	if f.changed {
		return f.str
	}
	if f.value.IsValid() {
		return fmt.Sprint(f.value.Interface())
	}
	return ""
}

func (f *field) Set(s string) error {
	tmp := reflect.New(f.value.Type()).Elem()
	if err := reflectx.SetRobust(tmp, s); err != nil {
		return err
	}
	f.str = s
	f.changed = true
	return nil
}

func (f *field) Type() string {
	return f.value.Type().String()
}

// IsBoolFlag allows -vsync without a value.
func (f *field) IsBoolFlag() bool {
	return f.value.Kind() == reflect.Bool
}

func addFields(fs *pflag.FlagSet, val reflect.Value, prefix string) []*field {
	var fields []*field
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := prefix + kebabCase(sf.Name)
		fv := val.Field(i)
		if fv.Kind() == reflect.Struct {
			fields = append(fields, addFields(fs, fv, name+"-")...)
			continue
		}
		f := &field{name: name, value: fv}
		fl := fs.VarPF(f, name, "", sf.Tag.Get("desc"))
		if f.IsBoolFlag() {
			fl.NoOptDefVal = "true"
		}
		fields = append(fields, f)
	}
	return fields
}

// kebabCase converts a Go identifier like PresentMode to present-mode.
func kebabCase(s string) string {
	var b strings.Builder
	rs := []rune(s)
	for i, r := range rs {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(rs[i-1]) || (i+1 < len(rs) && unicode.IsLower(rs[i+1]))) {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
