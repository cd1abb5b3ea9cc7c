// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package boxes

import "fmt"

// EventTypes are the kinds of window input events.
type EventTypes int32

const (
	KeyEvent EventTypes = iota
	MouseButtonEvent
	MouseMoveEvent
	ScrollEvent
)

var eventTypeNames = [...]string{"Key", "MouseButton", "MouseMove", "Scroll"}

func (et EventTypes) String() string {
	if et < 0 || int(et) >= len(eventTypeNames) {
		return fmt.Sprintf("EventTypes(%d)", et)
	}
	return eventTypeNames[et]
}

// Event is a window input event, forwarded by the window system.
type Event struct {
	Type EventTypes

	// Code is the key or mouse button code of the window system.
	Code int

	// Action is the press, release or repeat action of the window system.
	Action int

	// X, Y are the cursor position, or the scroll offsets.
	X, Y float64
}

func (ev Event) String() string {
	return fmt.Sprintf("%s{code: %d, action: %d, pos: (%g, %g)}", ev.Type, ev.Code, ev.Action, ev.X, ev.Y)
}
