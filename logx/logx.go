// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the slog handler and user log level
// used by the app, with terminal colored level labels.
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity [slog.Level] that the user has selected for
// what logging and printing messages should be shown. Messages at levels
// at or above this level will be shown. It should typically be set through
// the app config. The default is [slog.LevelInfo], or [slog.LevelDebug]
// with the debug build tag and [slog.LevelWarn] with the release build tag.
var UserLevel = new(slog.LevelVar)

func init() {
	UserLevel.Set(defaultUserLevel)
}

// ParseLevel returns the [slog.Level] named by the given string:
// debug, info, warn or error (case insensitive).
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return l, fmt.Errorf("logx.ParseLevel: %w", err)
	}
	return l, nil
}

// NewHandler returns a new text [slog.Handler] writing to w, filtered by
// [UserLevel]. Level labels are colored when w is a terminal that
// supports colors.
func NewHandler(w io.Writer) slog.Handler {
	return newHandler(w, termenv.NewOutput(w))
}

func newHandler(w io.Writer, out *termenv.Output) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: UserLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok {
					a.Value = slog.StringValue(LevelLabel(out, l))
				}
			}
			return a
		},
	})
}

// SetDefault sets the default slog logger to use [NewHandler] on w.
func SetDefault(w io.Writer) {
	slog.SetDefault(slog.New(NewHandler(w)))
}

// LevelLabel returns the label for the given level, colored for
// the given output. Outputs without color support get the plain label.
func LevelLabel(out *termenv.Output, l slog.Level) string {
	label := l.String()
	var c string
	switch {
	case l >= slog.LevelError:
		c = "1" // red
	case l >= slog.LevelWarn:
		c = "3" // yellow
	case l >= slog.LevelInfo:
		c = "2" // green
	default:
		c = "6" // cyan
	}
	return out.String(label).Foreground(out.Color(c)).Bold().String()
}
