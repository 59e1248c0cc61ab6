// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"testing"

	"gioui.org/gesturekit/f32"
)

func TestTypeString(t *testing.T) {
	for _, tc := range []struct {
		typ Kind
		res string
	}{
		{Cancel, "Cancel"},
		{Press, "Press"},
		{Release, "Release"},
		{Move, "Move"},
		{Enter, "Enter"},
		{Leave, "Leave"},
		{Scroll, "Scroll"},
		{Enter | Leave, "Enter|Leave"},
		{Press | Release, "Press|Release"},
		{Enter | Leave | Press | Release, "Press|Release|Enter|Leave"},
		{Move | Scroll, "Move|Scroll"},
	} {
		t.Run(tc.res, func(t *testing.T) {
			if want, got := tc.res, tc.typ.String(); want != got {
				t.Errorf("got %q; want %q", got, want)
			}
		})
	}
}

func TestButtonsString(t *testing.T) {
	if got, want := (ButtonPrimary | ButtonBack).String(), "ButtonPrimary|ButtonBack"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}
}

func TestConsumeShared(t *testing.T) {
	e := Event{
		Kind:    Move,
		Changes: []Change{{ID: 1, Position: f32.Pt(10, 10)}, {ID: 2}},
	}
	// Untracked changes cannot be consumed.
	e.Changes[0].Consume()
	if e.Changes[0].Consumed() {
		t.Fatal("untracked change reported consumed")
	}

	tracked := e.Track()
	local := tracked.Translate(f32.Pt(-5, -5))
	if got := local.Changes[0].Position; got != f32.Pt(5, 5) {
		t.Errorf("translated position %v, want (5,5)", got)
	}
	if got := tracked.Changes[0].Position; got != f32.Pt(10, 10) {
		t.Errorf("Translate modified the original event: %v", got)
	}
	local.Changes[0].Consume()
	if !tracked.Changes[0].Consumed() {
		t.Error("consumption not visible through the tracked event")
	}
	if tracked.Changes[1].Consumed() {
		t.Error("consuming one change consumed another")
	}
	if again := tracked.Track(); !again.Changes[0].Consumed() {
		t.Error("Track cleared an existing consumption flag")
	}
}

func TestEventLookup(t *testing.T) {
	e := Event{Changes: []Change{{ID: 3, Source: Stylus}, {ID: 4, Source: Stylus}}}
	if c, ok := e.Change(4); !ok || c.ID != 4 {
		t.Errorf("Change(4) = %v, %v", c, ok)
	}
	if _, ok := e.Change(5); ok {
		t.Error("Change(5) found a missing pointer")
	}
	if !e.Sources(Stylus) {
		t.Error("Sources(Stylus) = false")
	}
	e.Changes[1].Source = Eraser
	if e.Sources(Stylus) {
		t.Error("Sources(Stylus) = true for mixed event")
	}
	if (Event{}).Sources(Mouse) {
		t.Error("empty event matched a source")
	}
}
