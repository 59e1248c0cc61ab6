// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gesture recognizes clicks, double clicks, long clicks and
drags from pointer events.

A Detector is a router.Handler. It receives the events of its region
and reports recognized gestures through callbacks, which run on the
goroutine delivering the events. Time only advances through event
timestamps and Tick, so recognition is deterministic for a given
event sequence.

A press goes through a slop check before it becomes a drag: while the
pointer stays within the touch slop of the press position, the press
may still resolve into a click. Click and drag recognition share the
press, and every press resolves into exactly one outcome.
*/
package gesture

import (
	"time"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/interaction"
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/key"
	"gioui.org/gesturekit/io/pointer"
)

// Detector recognizes the gestures of one region.
//
// Callbacks that are nil disable their gesture: without OnLongClick
// no long press deadline is armed, without OnDoubleClick a release
// clicks right away, and without any drag callback a press never
// turns into a drag.
type Detector struct {
	// Filter selects the events that may start a gesture. A nil
	// Filter means DefaultFilter.
	Filter Filter
	// Config holds the recognition thresholds.
	Config Config
	// Interactions, if set, receives the interaction records of the
	// region.
	Interactions interaction.Sink

	OnClick       func()
	OnDoubleClick func()
	OnLongClick   func()

	// OnDragStart is called with the press position and the
	// modifiers held when the drag started.
	OnDragStart  func(pos f32.Point, mods key.Modifiers)
	OnDrag       func(c DragChange)
	OnDragEnd    func()
	OnDragCancel func()

	disabled bool
	state    State
	// press is the press in flight. first is the completed press
	// awaiting a second one.
	press pressState
	first pressState
	drag  dragSession

	deadline time.Duration
	armed    bool

	hovered bool
	hover   interaction.HoverEnter
}

// State is the recognition state of a Detector.
type State uint8

const (
	// StateIdle waits for a qualifying press.
	StateIdle State = iota
	// StatePressed tracks a press that may become a click, a long
	// click or a drag.
	StatePressed
	// StateDragging tracks a drag.
	StateDragging
	// StateAwaitSecondPress waits for the second press of a double
	// click.
	StateAwaitSecondPress
	// StateSecondPressed tracks the second press of a double click.
	StateSecondPressed
)

// State returns the current recognition state.
func (d *Detector) State() State {
	return d.state
}

// Enabled reports whether the detector recognizes gestures.
func (d *Detector) Enabled() bool {
	return !d.disabled
}

// SetEnabled enables or disables recognition. Disabling aborts the
// gesture in progress: an active drag is cancelled and pending
// clicks are dropped.
func (d *Detector) SetEnabled(enabled bool) {
	if enabled == !d.disabled {
		return
	}
	d.disabled = !enabled
	if d.disabled {
		d.abort()
	}
}

// Event implements router.Handler.
func (d *Detector) Event(e event.Event) {
	if d.disabled {
		return
	}
	switch e := e.(type) {
	case key.ModifiersEvent:
		if d.state == StateDragging {
			d.dragModifiers(e.Modifiers)
		}
	case pointer.Event:
		d.pointerEvent(e)
	}
}

// Deadline implements router.Handler.
func (d *Detector) Deadline() (time.Duration, bool) {
	return d.deadline, d.armed && !d.disabled
}

// Tick implements router.Handler. An expired second press reports
// the first click before the long click.
func (d *Detector) Tick(t time.Duration) {
	if d.disabled || !d.armed || t < d.deadline {
		return
	}
	d.armed = false
	switch d.state {
	case StatePressed:
		d.longClick()
	case StateAwaitSecondPress:
		d.reset()
		d.click()
	case StateSecondPressed:
		d.click()
		if d.disabled || d.state != StateSecondPressed {
			return
		}
		d.longClick()
	}
}

// Detach implements router.Handler. It aborts the gesture in
// progress and forgets the hover state.
func (d *Detector) Detach() {
	d.abort()
}

func (d *Detector) pointerEvent(e pointer.Event) {
	switch e.Kind {
	case pointer.Enter:
		d.hoverEnter(e)
		return
	case pointer.Leave:
		d.hoverExit(e)
	case pointer.Cancel:
		// Cancelled pointers are forgotten without a Leave.
		d.clearHover()
	case pointer.Scroll:
		return
	}
	switch d.state {
	case StateIdle:
		d.idle(e)
	case StatePressed:
		d.pressed(e)
	case StateDragging:
		d.dragging(e)
	case StateAwaitSecondPress:
		d.awaitSecondPress(e)
	case StateSecondPressed:
		d.secondPressed(e)
	}
}

// abort resets the detector without click callbacks. An active drag
// is still reported as cancelled.
func (d *Detector) abort() {
	switch d.state {
	case StateDragging:
		d.cancelDrag()
	case StatePressed, StateSecondPressed:
		p := d.press.record
		d.reset()
		d.emit(interaction.Cancel{Press: p})
	case StateAwaitSecondPress:
		d.reset()
	}
	d.clearHover()
}

func (d *Detector) reset() {
	d.state = StateIdle
	d.press = pressState{}
	d.first = pressState{}
	d.drag = dragSession{}
	d.disarm()
}

func (d *Detector) arm(t time.Duration) {
	d.deadline = t
	d.armed = true
}

func (d *Detector) disarm() {
	d.deadline = 0
	d.armed = false
}

func (d *Detector) filter() Filter {
	if d.Filter == nil {
		return DefaultFilter()
	}
	return d.Filter
}

func (d *Detector) emit(i interaction.Interaction) {
	if d.Interactions != nil {
		d.Interactions.Emit(i)
	}
}

func (d *Detector) hoverEnter(e pointer.Event) {
	if d.hovered || !e.Sources(pointer.Mouse) {
		return
	}
	d.hovered = true
	d.hover = interaction.HoverEnter{Time: e.Time}
	d.emit(d.hover)
}

func (d *Detector) hoverExit(e pointer.Event) {
	if e.Sources(pointer.Mouse) {
		d.clearHover()
	}
}

func (d *Detector) clearHover() {
	if !d.hovered {
		return
	}
	d.hovered = false
	d.emit(interaction.HoverExit{Enter: d.hover})
}

func (s State) String() string {
	switch s {
	case StateIdle:
		return "StateIdle"
	case StatePressed:
		return "StatePressed"
	case StateDragging:
		return "StateDragging"
	case StateAwaitSecondPress:
		return "StateAwaitSecondPress"
	case StateSecondPressed:
		return "StateSecondPressed"
	default:
		panic("invalid State")
	}
}
