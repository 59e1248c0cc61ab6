// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"time"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/gesture"
	"gioui.org/gesturekit/interaction"
	"gioui.org/gesturekit/io/key"
	"gioui.org/gesturekit/io/pointer"
	"gioui.org/gesturekit/io/router"
)

// record is a recognized gesture.
type record struct {
	Time    time.Duration
	Region  string
	Gesture string
	Detail  string
}

func (r record) String() string {
	s := fmt.Sprintf("%v %s %s", r.Time, r.Region, r.Gesture)
	if r.Detail != "" {
		s += " " + r.Detail
	}
	return s
}

// sample is a pointer position fed to the router, in window
// coordinates.
type sample struct {
	ID       pointer.ID
	Kind     pointer.Kind
	Position f32.Point
}

// result is the outcome of a replay.
type result struct {
	Records []record
	Samples []sample
	// Interactions holds the interaction records of each region.
	Interactions map[string][]interaction.Interaction
}

// replay runs the events of s through a router with one detector per
// region. Callbacks are timestamped with the time of the event or
// tick that triggered them.
func replay(s *script, cfg gesture.Config) (*result, error) {
	res := &result{Interactions: make(map[string][]interaction.Interaction)}
	var (
		r       router.Router
		now     time.Duration
		sinks   []*interaction.Source
		regions []regionSpec
	)
	for _, spec := range s.Regions {
		f, err := spec.filter()
		if err != nil {
			return nil, err
		}
		sink := new(interaction.Source)
		d := &gesture.Detector{Filter: f, Config: cfg, Interactions: sink}
		name := spec.Name
		emit := func(g, detail string) {
			res.Records = append(res.Records, record{Time: now, Region: name, Gesture: g, Detail: detail})
		}
		for _, g := range spec.Gestures {
			switch g {
			case "click":
				d.OnClick = func() { emit("click", "") }
			case "double_click":
				d.OnDoubleClick = func() { emit("double_click", "") }
			case "long_click":
				d.OnLongClick = func() { emit("long_click", "") }
			case "drag":
				d.OnDragStart = func(p f32.Point, m key.Modifiers) {
					emit("drag_start", fmt.Sprintf("at %v %s", p, modString(m)))
				}
				d.OnDrag = func(c gesture.DragChange) {
					detail := fmt.Sprintf("by %v", c.Offset)
					if c.ModifiersChanged() {
						detail += fmt.Sprintf(" %s -> %s", modString(c.Previous), modString(c.Current))
					}
					emit("drag", detail)
				}
				d.OnDragEnd = func() { emit("drag_end", "") }
				d.OnDragCancel = func() { emit("drag_cancel", "") }
			}
		}
		r.Add(spec.rect(), d)
		sinks = append(sinks, sink)
		regions = append(regions, spec)
	}

	held := make(map[pointer.ID]pointer.Buttons)
	var mods key.Modifiers
	for _, spec := range s.Events {
		now = spec.T
		switch spec.Kind {
		case "tick":
			r.Tick(now)
			continue
		case "modifiers":
			m, err := parseModifiers(spec.Modifiers)
			if err != nil {
				return nil, err
			}
			mods = m
			r.Queue(key.ModifiersEvent{Modifiers: mods})
			continue
		}
		e, err := pointerEvent(spec, held)
		if err != nil {
			return nil, err
		}
		if spec.Modifiers != nil {
			if mods, err = parseModifiers(spec.Modifiers); err != nil {
				return nil, err
			}
		}
		e.Modifiers = mods
		if len(e.Changes) > 0 {
			c := e.Changes[0]
			res.Samples = append(res.Samples, sample{ID: c.ID, Kind: e.Kind, Position: c.Position})
		}
		r.Queue(e)
	}
	for i, sink := range sinks {
		name := regions[i].Name
		res.Interactions[name] = append(res.Interactions[name], sink.Interactions()...)
	}
	return res, nil
}

// pointerEvent converts spec to an event. held tracks the buttons of
// every pointer.
func pointerEvent(spec eventSpec, held map[pointer.ID]pointer.Buttons) (pointer.Event, error) {
	e := pointer.Event{Kind: kinds[spec.Kind], Time: spec.T}
	if e.Kind == pointer.Cancel {
		for id := range held {
			delete(held, id)
		}
		return e, nil
	}
	src, err := spec.source()
	if err != nil {
		return e, err
	}
	id := pointer.ID(spec.ID)
	if spec.ID == 0 {
		id = pointer.ID(src) + 1
	}
	btn, err := lookup(buttons, spec.Button)
	if err != nil {
		return e, err
	}
	switch e.Kind {
	case pointer.Press:
		if btn == 0 && src != pointer.Touch {
			btn = pointer.ButtonPrimary
		}
		held[id] |= btn
		e.Button = btn
	case pointer.Release:
		if btn == 0 {
			btn = held[id]
		}
		held[id] &^= btn
		e.Button = btn
	case pointer.Scroll:
		e.Scroll = f32.Pt(spec.Scroll[0], spec.Scroll[1])
	}
	e.Buttons = held[id]
	e.Changes = []pointer.Change{{ID: id, Source: src, Position: f32.Pt(spec.X, spec.Y)}}
	return e, nil
}

func modString(m key.Modifiers) string {
	if m == 0 {
		return "-"
	}
	return m.String()
}
