// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"strings"
	"time"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/io/key"
)

// Event is a snapshot of the active contacts at one instant.
type Event struct {
	Kind Kind
	// Changes holds one entry per contact affected by the event.
	Changes []Change
	// Button is the button whose state changed, for Press and
	// Release events of mice and styluses.
	Button Buttons
	// Buttons are the set of pressed buttons for this event.
	Buttons Buttons
	// Modifiers is the set of active modifiers when
	// the event was generated.
	Modifiers key.Modifiers
	// Scroll is the scroll amount, if any.
	Scroll f32.Point
	// Time is when the event was received. The
	// timestamp is relative to an undefined base.
	Time time.Duration
}

// Change describes one contact of an Event.
type Change struct {
	// ID is the id for the pointer and can be used
	// to track a particular pointer from Press to
	// Release or Cancel.
	ID     ID
	Source Source
	// Position is the coordinates of the contact in the local
	// coordinate system of the receiving handler.
	Position f32.Point

	// consumed is shared by every copy of the change
	// routed for the same event.
	consumed *bool
}

type ID uint16

// Kind of an Event.
type Kind uint

// Source of an Event.
type Source uint8

// Buttons is a set of mouse or stylus buttons.
type Buttons uint8

const (
	// A Cancel event is generated when the current gesture is
	// interrupted by other handlers or the system.
	Cancel Kind = 1 << iota
	// Press of a pointer.
	Press
	// Release of a pointer.
	Release
	// Move of a pointer.
	Move
	// Pointer enters an area watching for pointer input
	Enter
	// Pointer leaves an area watching for pointer input
	Leave
	// Scroll of a pointer.
	Scroll
)

const (
	// Mouse generated event.
	Mouse Source = iota
	// Touch generated event.
	Touch
	// Stylus generated event, from the tip of a pen.
	Stylus
	// Eraser generated event, from the back end of a pen.
	Eraser
)

const (
	// ButtonPrimary is the primary button, usually the left button for a
	// right-handed user.
	ButtonPrimary Buttons = 1 << iota
	// ButtonSecondary is the secondary button, usually the right button for a
	// right-handed user.
	ButtonSecondary
	// ButtonTertiary is the tertiary button, usually the middle button.
	ButtonTertiary
	// ButtonBack is the back navigation button.
	ButtonBack
	// ButtonForward is the forward navigation button.
	ButtonForward
)

// Consume marks the change as handled. Handlers receiving the same
// event later in the routing order observe the change as consumed.
// Changes of events that were never tracked cannot be consumed.
func (c Change) Consume() {
	if c.consumed != nil {
		*c.consumed = true
	}
}

// Consumed reports whether the change was consumed.
func (c Change) Consumed() bool {
	return c.consumed != nil && *c.consumed
}

// Track returns a copy of e where every change has its own
// consumption flag. Flags already allocated are preserved.
func (e Event) Track() Event {
	changes := make([]Change, len(e.Changes))
	for i, c := range e.Changes {
		if c.consumed == nil {
			c.consumed = new(bool)
		}
		changes[i] = c
	}
	e.Changes = changes
	return e
}

// Translate returns a copy of e with positions offset by d. The copy
// shares consumption flags with e.
func (e Event) Translate(d f32.Point) Event {
	changes := make([]Change, len(e.Changes))
	for i, c := range e.Changes {
		c.Position = c.Position.Add(d)
		changes[i] = c
	}
	e.Changes = changes
	return e
}

// Change returns the change for the pointer id, if any.
func (e Event) Change(id ID) (Change, bool) {
	for _, c := range e.Changes {
		if c.ID == id {
			return c, true
		}
	}
	return Change{}, false
}

// Sources reports whether all changes originate from the source s.
func (e Event) Sources(s Source) bool {
	if len(e.Changes) == 0 {
		return false
	}
	for _, c := range e.Changes {
		if c.Source != s {
			return false
		}
	}
	return true
}

func (t Kind) String() string {
	if t == Cancel {
		return "Cancel"
	}
	var buf strings.Builder
	for tt := Kind(1); tt > 0; tt <<= 1 {
		if t&tt > 0 {
			if buf.Len() > 0 {
				buf.WriteByte('|')
			}
			buf.WriteString((t & tt).string())
		}
	}
	return buf.String()
}

func (t Kind) string() string {
	switch t {
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Cancel:
		return "Cancel"
	case Move:
		return "Move"
	case Enter:
		return "Enter"
	case Leave:
		return "Leave"
	case Scroll:
		return "Scroll"
	default:
		panic("unknown Type")
	}
}

func (s Source) String() string {
	switch s {
	case Mouse:
		return "Mouse"
	case Touch:
		return "Touch"
	case Stylus:
		return "Stylus"
	case Eraser:
		return "Eraser"
	default:
		panic("unknown source")
	}
}

// Contain reports whether the set b contains
// all of the buttons.
func (b Buttons) Contain(buttons Buttons) bool {
	return b&buttons == buttons
}

func (b Buttons) String() string {
	var strs []string
	if b.Contain(ButtonPrimary) {
		strs = append(strs, "ButtonPrimary")
	}
	if b.Contain(ButtonSecondary) {
		strs = append(strs, "ButtonSecondary")
	}
	if b.Contain(ButtonTertiary) {
		strs = append(strs, "ButtonTertiary")
	}
	if b.Contain(ButtonBack) {
		strs = append(strs, "ButtonBack")
	}
	if b.Contain(ButtonForward) {
		strs = append(strs, "ButtonForward")
	}
	return strings.Join(strs, "|")
}

func (Event) ImplementsEvent() {}
