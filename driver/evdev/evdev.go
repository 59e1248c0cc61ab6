// SPDX-License-Identifier: Unlicense OR MIT

// Package evdev feeds Linux input devices to gesture detection.
//
// A Decoder turns the input_event records of a mouse, touchpad,
// touchscreen or pen tablet into pointer and modifier events. Device
// reads the records from a /dev/input/event* node.
package evdev

import (
	"encoding/binary"
	"time"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/key"
	"gioui.org/gesturekit/io/pointer"
)

// RecordSize is the size of an input_event record on 64-bit Linux.
const RecordSize = 24

// Event types and codes from linux/input-event-codes.h.
const (
	evSyn = 0x00
	evKey = 0x01
	evRel = 0x02
	evAbs = 0x03

	synReport = 0x00

	relX      = 0x00
	relY      = 0x01
	relHWheel = 0x06
	relWheel  = 0x08

	absX = 0x00
	absY = 0x01

	btnLeft       = 0x110
	btnRight      = 0x111
	btnMiddle     = 0x112
	btnSide       = 0x113
	btnExtra      = 0x114
	btnToolPen    = 0x140
	btnToolRubber = 0x141
	btnToolFinger = 0x145
	btnTouch      = 0x14a
	btnStylus     = 0x14b

	keyLeftCtrl   = 29
	keyLeftShift  = 42
	keyRightShift = 54
	keyLeftAlt    = 56
	keyRightCtrl  = 97
	keyRightAlt   = 100
	keyLeftMeta   = 125
	keyRightMeta  = 126
)

// Record is a decoded input_event.
type Record struct {
	Type  uint16
	Code  uint16
	Value int32
}

// ParseRecord decodes a RecordSize byte input_event. The timestamp
// is ignored.
func ParseRecord(b []byte) Record {
	return Record{
		Type:  binary.LittleEndian.Uint16(b[16:]),
		Code:  binary.LittleEndian.Uint16(b[18:]),
		Value: int32(binary.LittleEndian.Uint32(b[20:])),
	}
}

// Decoder converts records into events. Records are collected until
// a SYN_REPORT closes the frame.
type Decoder struct {
	// Scale multiplies absolute axis values. The zero value means 1.
	Scale f32.Point
	// Bounds, if not empty, clamps relative pointer motion.
	Bounds f32.Rectangle

	source pointer.Source
	pos    f32.Point
	mods   key.Modifiers
	// buttons are the buttons held at the end of the last frame.
	buttons pointer.Buttons

	// Frame state. next and nextMods are the buttons and modifiers
	// held after the frame; order lists the buttons changed within
	// it.
	moved    bool
	next     pointer.Buttons
	order    []pointer.Buttons
	touch    int // 0: no change, 1: down, -1: up
	scroll   f32.Point
	nextMods key.Modifiers
}

// Decode processes r and returns the events of the frame it
// completes, timestamped now.
func (d *Decoder) Decode(r Record, now time.Duration) []event.Event {
	switch r.Type {
	case evSyn:
		if r.Code == synReport {
			return d.flush(now)
		}
	case evRel:
		d.source = pointer.Mouse
		switch r.Code {
		case relX:
			d.pos.X += float32(r.Value)
			d.moved = true
		case relY:
			d.pos.Y += float32(r.Value)
			d.moved = true
		case relWheel:
			d.scroll.Y -= float32(r.Value)
		case relHWheel:
			d.scroll.X += float32(r.Value)
		}
	case evAbs:
		s := d.Scale
		if s == (f32.Point{}) {
			s = f32.Pt(1, 1)
		}
		switch r.Code {
		case absX:
			d.pos.X = float32(r.Value) * s.X
			d.moved = true
		case absY:
			d.pos.Y = float32(r.Value) * s.Y
			d.moved = true
		}
	case evKey:
		d.key(r)
	}
	return nil
}

func (d *Decoder) key(r Record) {
	down := r.Value != 0
	switch r.Code {
	case btnToolPen:
		d.tool(pointer.Stylus, down)
	case btnToolRubber:
		d.tool(pointer.Eraser, down)
	case btnToolFinger:
		d.tool(pointer.Touch, down)
	case btnTouch:
		if d.source == pointer.Mouse {
			// Touchscreens may not report a tool.
			d.source = pointer.Touch
		}
		if down {
			d.touch = 1
		} else {
			d.touch = -1
		}
	}
	if b := buttonCode(r.Code); b != 0 {
		if r.Code != btnStylus {
			d.source = pointer.Mouse
		}
		if down {
			d.next |= b
		} else {
			d.next &^= b
		}
		d.order = append(d.order, b)
	}
	if m := modifierCode(r.Code); m != 0 {
		if down {
			d.nextMods |= m
		} else {
			d.nextMods &^= m
		}
	}
}

func (d *Decoder) tool(s pointer.Source, down bool) {
	if down {
		d.source = s
	}
}

func (d *Decoder) flush(now time.Duration) []event.Event {
	var events []event.Event
	if d.nextMods != d.mods {
		d.mods = d.nextMods
		events = append(events, key.ModifiersEvent{Modifiers: d.mods, Time: now})
	}
	if d.moved && d.source == pointer.Mouse && !d.Bounds.Empty() {
		d.pos = clamp(d.pos, d.Bounds)
	}
	ev := pointer.Event{
		Buttons:   d.buttons,
		Modifiers: d.mods,
		Time:      now,
		Changes:   []pointer.Change{{ID: d.id(), Source: d.source, Position: d.pos}},
	}
	if d.touch == 1 {
		ev.Kind = pointer.Press
		ev.Button = d.contactButton()
		d.buttons |= ev.Button
		ev.Buttons = d.buttons
		events = append(events, ev)
	} else if d.moved {
		ev.Kind = pointer.Move
		events = append(events, ev)
	}
	for _, b := range d.order {
		held := d.next.Contain(b)
		if held == d.buttons.Contain(b) {
			continue
		}
		ev.Kind = pointer.Release
		if held {
			ev.Kind = pointer.Press
			d.buttons |= b
		} else {
			d.buttons &^= b
		}
		ev.Button = b
		ev.Buttons = d.buttons
		events = append(events, ev)
	}
	if d.touch == -1 {
		ev.Kind = pointer.Release
		ev.Button = d.contactButton()
		d.buttons &^= ev.Button
		ev.Buttons = d.buttons
		events = append(events, ev)
	}
	if d.scroll != (f32.Point{}) {
		ev.Kind = pointer.Scroll
		ev.Button = 0
		ev.Buttons = d.buttons
		ev.Scroll = d.scroll
		events = append(events, ev)
	}
	d.moved = false
	d.order = d.order[:0]
	d.next = d.buttons
	d.touch = 0
	d.scroll = f32.Point{}
	return events
}

// contactButton is the button of a touch or pen contact. Touches
// have none; a pen tip acts as the primary button.
func (d *Decoder) contactButton() pointer.Buttons {
	if d.source == pointer.Stylus || d.source == pointer.Eraser {
		return pointer.ButtonPrimary
	}
	return 0
}

func (d *Decoder) id() pointer.ID {
	return pointer.ID(d.source)
}

func buttonCode(code uint16) pointer.Buttons {
	switch code {
	case btnLeft:
		return pointer.ButtonPrimary
	case btnRight, btnStylus:
		return pointer.ButtonSecondary
	case btnMiddle:
		return pointer.ButtonTertiary
	case btnSide:
		return pointer.ButtonBack
	case btnExtra:
		return pointer.ButtonForward
	}
	return 0
}

func modifierCode(code uint16) key.Modifiers {
	switch code {
	case keyLeftShift, keyRightShift:
		return key.ModShift
	case keyLeftCtrl, keyRightCtrl:
		return key.ModCtrl
	case keyLeftAlt:
		return key.ModAlt
	case keyRightAlt:
		return key.ModAltGraph
	case keyLeftMeta, keyRightMeta:
		return key.ModSuper
	}
	return 0
}

func clamp(p f32.Point, r f32.Rectangle) f32.Point {
	if p.X < r.Min.X {
		p.X = r.Min.X
	}
	if p.X > r.Max.X {
		p.X = r.Max.X
	}
	if p.Y < r.Min.Y {
		p.Y = r.Min.Y
	}
	if p.Y > r.Max.Y {
		p.Y = r.Max.Y
	}
	return p
}
