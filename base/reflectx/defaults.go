// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reflectx provides a set of reflection utilities,
// mainly for setting struct fields from `default:` tags and strings.
package reflectx

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// NonPointerValue returns a non-pointer version of the given value.
func NonPointerValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v
}

// SetFromDefaultTags sets the values of fields in the given struct
// based on `default:` default value struct field tags.
// Nested struct fields are set recursively.
func SetFromDefaultTags(v any) error {
	ov := reflect.ValueOf(v)
	if v == nil || ov.Kind() != reflect.Pointer || ov.IsNil() {
		return fmt.Errorf("reflectx.SetFromDefaultTags: must pass a non-nil pointer, not %T", v)
	}
	val := NonPointerValue(ov)
	if val.Kind() != reflect.Struct {
		return fmt.Errorf("reflectx.SetFromDefaultTags: must pass a pointer to a struct, not %T", v)
	}
	return setFromDefaultTags(val)
}

func setFromDefaultTags(val reflect.Value) error {
	typ := val.Type()
	var errs []error
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := val.Field(i)
		def, ok := f.Tag.Lookup("default")
		if !ok {
			if fv.Kind() == reflect.Struct {
				errs = append(errs, setFromDefaultTags(fv))
			}
			continue
		}
		if err := SetRobust(fv, def); err != nil {
			errs = append(errs, fmt.Errorf("reflectx.SetFromDefaultTags: field %q: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

// SetRobust sets the given settable value from the given string,
// converting it to the kind of the value.
func SetRobust(v reflect.Value, s string) error {
	if !v.CanSet() {
		return fmt.Errorf("value of type %v is not settable", v.Type())
	}
	if v.Type() == reflect.TypeFor[time.Duration]() {
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		v.SetInt(int64(d))
		return nil
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(strings.TrimSpace(s), 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(strings.TrimSpace(s), 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		fl, err := strconv.ParseFloat(strings.TrimSpace(s), v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(fl)
	default:
		return fmt.Errorf("unsupported kind %v", v.Kind())
	}
	return nil
}
