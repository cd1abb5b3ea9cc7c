// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"strings"
	"unicode"

	"cogentcore.org/boxes/base/errors"
)

// Initialization errors. These are fatal.
var (
	ErrNoAdapter       = errors.New("gpu: no compatible adapter found")
	ErrNoDevice        = errors.New("gpu: device request failed")
	ErrNoSurfaceFormat = errors.New("gpu: surface reports no supported formats")
)

// Surface texture acquisition errors. See [ClassifySurfaceError].
var (
	// ErrSurfaceTimeout means no texture became available in time.
	// The frame is skipped.
	ErrSurfaceTimeout = errors.New("gpu: surface texture acquisition timed out")

	// ErrSurfaceOutdated means the surface no longer matches its
	// configuration, typically after a resize. It must be reconfigured.
	ErrSurfaceOutdated = errors.New("gpu: surface is outdated")

	// ErrSurfaceLost means the surface was lost and must be reconfigured.
	ErrSurfaceLost = errors.New("gpu: surface was lost")

	// ErrOutOfMemory means the device ran out of memory. This is fatal.
	ErrOutOfMemory = errors.New("gpu: out of memory")

	// ErrSurfaceOther is any other acquisition failure, which is
	// treated like an outdated surface.
	ErrSurfaceOther = errors.New("gpu: surface texture acquisition failed")
)

// SurfaceError is a classified surface acquisition error.
// errors.Is matches both its Kind and the backend error.
type SurfaceError struct {
	// Kind is one of the ErrSurface* sentinels or [ErrOutOfMemory].
	Kind error

	// Err is the backend error, if any.
	Err error
}

func (e *SurfaceError) Error() string {
	if e.Err == nil || e.Err == e.Kind {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *SurfaceError) Unwrap() []error {
	if e.Err == nil || e.Err == e.Kind {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NeedsReconfigure returns true if the surface must be reconfigured
// before the next frame.
func (e *SurfaceError) NeedsReconfigure() bool {
	return e.Kind == ErrSurfaceOutdated || e.Kind == ErrSurfaceLost || e.Kind == ErrSurfaceOther
}

// Fatal returns true if rendering cannot continue.
func (e *SurfaceError) Fatal() bool {
	return e.Kind == ErrOutOfMemory
}

// ClassifySurfaceError returns the given acquisition error as a
// [*SurfaceError]. Errors that already wrap one of the sentinels keep
// that kind; otherwise the kind is derived from the status text that
// backends report (Timeout, Outdated, Lost, OutOfMemory), matched as
// whole words. A lost device is not a lost surface.
// It returns nil for a nil error.
func ClassifySurfaceError(err error) *SurfaceError {
	if err == nil {
		return nil
	}
	var se *SurfaceError
	if errors.As(err, &se) {
		return se
	}
	for _, kind := range []error{ErrOutOfMemory, ErrSurfaceLost, ErrSurfaceOutdated, ErrSurfaceTimeout} {
		if errors.Is(err, kind) {
			return &SurfaceError{Kind: kind, Err: err}
		}
	}
	words := " " + strings.Join(strings.FieldsFunc(strings.ToLower(err.Error()), func(r rune) bool {
		return !unicode.IsLetter(r)
	}), " ") + " "
	has := func(phrases ...string) bool {
		for _, p := range phrases {
			if strings.Contains(words, " "+p+" ") {
				return true
			}
		}
		return false
	}
	switch {
	case has("outofmemory", "out of memory"):
		return &SurfaceError{Kind: ErrOutOfMemory, Err: err}
	case has("devicelost", "device lost"):
		// not a surface status, so it gets no surface kind
		return &SurfaceError{Kind: ErrSurfaceOther, Err: err}
	case has("lost"):
		return &SurfaceError{Kind: ErrSurfaceLost, Err: err}
	case has("outdated"):
		return &SurfaceError{Kind: ErrSurfaceOutdated, Err: err}
	case has("timeout", "timed out"):
		return &SurfaceError{Kind: ErrSurfaceTimeout, Err: err}
	}
	return &SurfaceError{Kind: ErrSurfaceOther, Err: err}
}
