// SPDX-License-Identifier: Unlicense OR MIT

// Package term feeds terminal mouse input to gesture detection.
//
// Terminals report the state of the mouse rather than changes: a
// position, the held buttons and the held modifiers. Translator
// diffs consecutive reports into pointer and modifier events.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"gioui.org/gesturekit/app"
	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/key"
	"gioui.org/gesturekit/io/pointer"
)

// Translator converts tcell mouse reports into events.
type Translator struct {
	// CellSize is the size of a terminal cell in pixels. Pointer
	// positions are cell centers. The zero value means 1×1 cells.
	CellSize f32.Point

	init    bool
	cell    [2]int
	buttons pointer.Buttons
	mods    key.Modifiers
}

// buttonMap lists the tcell buttons in the order their transitions
// are reported.
var buttonMap = []struct {
	tcell   tcell.ButtonMask
	pointer pointer.Buttons
}{
	{tcell.Button1, pointer.ButtonPrimary},
	{tcell.Button2, pointer.ButtonSecondary},
	{tcell.Button3, pointer.ButtonTertiary},
	{tcell.Button4, pointer.ButtonBack},
	{tcell.Button5, pointer.ButtonForward},
}

// Mouse translates the report e, received at time now.
func (t *Translator) Mouse(e *tcell.EventMouse, now time.Duration) []event.Event {
	var events []event.Event
	x, y := e.Position()
	mods := Modifiers(e.Modifiers())
	if mods != t.mods {
		t.mods = mods
		events = append(events, key.ModifiersEvent{Modifiers: mods, Time: now})
	}
	pos := t.position(x, y)
	ev := pointer.Event{
		Buttons:   t.buttons,
		Modifiers: mods,
		Time:      now,
		Changes:   []pointer.Change{{Source: pointer.Mouse, Position: pos}},
	}
	if !t.init || t.cell != [2]int{x, y} {
		t.init = true
		t.cell = [2]int{x, y}
		ev.Kind = pointer.Move
		events = append(events, ev)
	}
	mask := e.Buttons()
	for _, b := range buttonMap {
		held := mask&b.tcell != 0
		switch {
		case held && !t.buttons.Contain(b.pointer):
			t.buttons |= b.pointer
			ev.Kind = pointer.Press
		case !held && t.buttons.Contain(b.pointer):
			t.buttons &^= b.pointer
			ev.Kind = pointer.Release
		default:
			continue
		}
		ev.Button = b.pointer
		ev.Buttons = t.buttons
		events = append(events, ev)
	}
	if s := wheel(mask); s != (f32.Point{}) {
		ev.Kind = pointer.Scroll
		ev.Button = 0
		ev.Buttons = t.buttons
		ev.Scroll = s
		events = append(events, ev)
	}
	return events
}

func (t *Translator) position(x, y int) f32.Point {
	cs := t.CellSize
	if cs == (f32.Point{}) {
		cs = f32.Pt(1, 1)
	}
	return f32.Pt((float32(x)+.5)*cs.X, (float32(y)+.5)*cs.Y)
}

// Cell returns the terminal cell of the pointer position p.
func (t *Translator) Cell(p f32.Point) (x, y int) {
	cs := t.CellSize
	if cs == (f32.Point{}) {
		cs = f32.Pt(1, 1)
	}
	return int(p.X / cs.X), int(p.Y / cs.Y)
}

// Modifiers converts a tcell modifier mask.
func Modifiers(m tcell.ModMask) key.Modifiers {
	var mods key.Modifiers
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModSuper
	}
	return mods
}

func wheel(mask tcell.ButtonMask) f32.Point {
	var s f32.Point
	if mask&tcell.WheelUp != 0 {
		s.Y--
	}
	if mask&tcell.WheelDown != 0 {
		s.Y++
	}
	if mask&tcell.WheelLeft != 0 {
		s.X--
	}
	if mask&tcell.WheelRight != 0 {
		s.X++
	}
	return s
}

// Poll forwards the mouse reports of s to l until s is finalized or
// ctx is done. Other events are passed to other, if set. The screen
// must have mouse reporting enabled.
func Poll(ctx context.Context, s tcell.Screen, l *app.Loop, t *Translator, other func(tcell.Event)) {
	for {
		ev := s.PollEvent()
		if ev == nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
		me, ok := ev.(*tcell.EventMouse)
		if !ok {
			if other != nil {
				other(ev)
			}
			continue
		}
		for _, e := range t.Mouse(me, l.Now()) {
			if !l.Queue(e) {
				return
			}
		}
	}
}
