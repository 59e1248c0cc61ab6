// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"time"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/interaction"
	"gioui.org/gesturekit/io/key"
	"gioui.org/gesturekit/io/pointer"
)

// pressState is an in-flight press, shared by click and drag
// recognition.
type pressState struct {
	id       pointer.ID
	source   pointer.Source
	button   pointer.Buttons
	position f32.Point
	// modifiers are the modifiers held at press time. They are the
	// baseline for the first drag change.
	modifiers key.Modifiers
	time      time.Duration
	record    interaction.Press
}

func newPress(e pointer.Event) pressState {
	c := e.Changes[0]
	return pressState{
		id:        c.ID,
		source:    c.Source,
		button:    e.Button,
		position:  c.Position,
		modifiers: e.Modifiers,
		time:      e.Time,
		record:    interaction.Press{Position: c.Position, Time: e.Time},
	}
}

// releasedBy reports whether the release e lifts the press: the
// initiating button was released, or no button remains held.
func (p *pressState) releasedBy(e pointer.Event) bool {
	return e.Buttons == 0 || (p.button != 0 && e.Button == p.button)
}

// overSlop reports whether pos is farther than slop from start and,
// if so, the part of the displacement beyond slop.
func overSlop(start, pos f32.Point, slop float32) (f32.Point, bool) {
	d := pos.Sub(start)
	l := d.Len()
	if l <= slop {
		return f32.Point{}, false
	}
	return d.Sub(d.Mul(slop / l)), true
}
