// SPDX-License-Identifier: Unlicense OR MIT

/*
Package router routes pointer and keyboard modifier events to the
handlers of rectangular regions.

Regions are kept in registration order, which is also the delivery
order: a region registered earlier, typically an ancestor, receives
each event first and wins when two handlers compete for the same
change. A change consumed by one handler is observed as consumed by
every later handler of the same pass.

The router has no clock. Time advances through event timestamps and
explicit calls to Tick; WakeupTime reports when the next pending
handler deadline expires.
*/
package router

import (
	"time"

	"golang.org/x/exp/slices"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/key"
	"gioui.org/gesturekit/io/pointer"
)

// Handler receives the events routed to a region.
type Handler interface {
	// Event delivers an event. Pointer positions are local to the
	// region of the handler.
	Event(e event.Event)
	// Deadline reports the time of the handler's pending timeout,
	// if any.
	Deadline() (time.Duration, bool)
	// Tick notifies the handler that time t has been reached.
	Tick(t time.Duration)
	// Detach releases the handler's state, cancelling any gesture in
	// progress. It is called when the handler is removed.
	Detach()
}

// Router tracks regions and routes events to their handlers.
// The zero value is ready to use.
type Router struct {
	regions   []region
	pointers  []pointerInfo
	modifiers key.Modifiers
}

type region struct {
	area    f32.Rectangle
	handler Handler
}

type pointerInfo struct {
	id      pointer.ID
	pressed bool
	// handlers are the targets of the pointer. They are
	// fixed from press to release.
	handlers []Handler

	// entered tracks the handlers that contain the pointer.
	entered []Handler
}

// Add registers h for events hitting area, in window coordinates.
// Adding a registered handler updates its area without changing
// its position in the routing order.
func (r *Router) Add(area f32.Rectangle, h Handler) {
	if i := r.index(h); i != -1 {
		r.regions[i].area = area
		return
	}
	r.regions = append(r.regions, region{area: area, handler: h})
}

// Remove detaches h and stops routing events to it.
func (r *Router) Remove(h Handler) {
	i := r.index(h)
	if i == -1 {
		return
	}
	r.regions = slices.Delete(r.regions, i, i+1)
	for j := range r.pointers {
		p := &r.pointers[j]
		p.handlers = without(p.handlers, h)
		p.entered = without(p.entered, h)
	}
	h.Detach()
}

// Clear detaches and removes every handler.
func (r *Router) Clear() {
	regions := r.regions
	r.regions = nil
	r.pointers = nil
	for _, reg := range regions {
		reg.handler.Detach()
	}
}

// Modifiers returns the most recently observed modifier set.
func (r *Router) Modifiers() key.Modifiers {
	return r.modifiers
}

// Queue routes events. Handler deadlines that expire no later than
// an event's timestamp fire before the event is delivered.
func (r *Router) Queue(events ...event.Event) {
	for _, e := range events {
		switch e := e.(type) {
		case pointer.Event:
			r.push(e)
		case key.ModifiersEvent:
			r.Tick(e.Time)
			r.modifiers = e.Modifiers
			for _, h := range r.handlers() {
				if r.index(h) != -1 {
					h.Event(e)
				}
			}
		}
	}
}

// Tick fires the handlers whose deadline is at or before t.
func (r *Router) Tick(t time.Duration) {
	for _, h := range r.handlers() {
		if r.index(h) == -1 {
			continue
		}
		if d, ok := h.Deadline(); ok && d <= t {
			h.Tick(t)
		}
	}
}

// WakeupTime returns the earliest pending handler deadline.
func (r *Router) WakeupTime() (time.Duration, bool) {
	var (
		min   time.Duration
		found bool
	)
	for _, reg := range r.regions {
		if d, ok := reg.handler.Deadline(); ok && (!found || d < min) {
			min, found = d, true
		}
	}
	return min, found
}

func (r *Router) push(e pointer.Event) {
	e = e.Track()
	r.Tick(e.Time)
	r.modifiers = e.Modifiers
	if e.Kind == pointer.Cancel {
		r.pointers = r.pointers[:0]
		for _, h := range r.handlers() {
			r.deliver(h, e)
		}
		return
	}
	if len(e.Changes) == 0 {
		return
	}
	c := e.Changes[0]
	pidx := slices.IndexFunc(r.pointers, func(p pointerInfo) bool {
		return p.id == c.ID
	})
	if pidx == -1 {
		r.pointers = append(r.pointers, pointerInfo{id: c.ID})
		pidx = len(r.pointers) - 1
	}
	p := &r.pointers[pidx]

	r.deliverEnterLeaveEvents(p, e)
	if e.Kind == pointer.Release {
		r.deliverEvent(p, e)
		p.pressed = false
	}
	if !p.pressed {
		if e.Kind == pointer.Press {
			p.pressed = true
		}
		p.handlers = r.hit(p.handlers[:0], c.Position)
		r.deliverEnterLeaveEvents(p, e)
	}
	if e.Kind != pointer.Release {
		r.deliverEvent(p, e)
	}
	if !p.pressed && len(p.entered) == 0 {
		// No longer need to track pointer.
		r.forget(c.ID)
	}
}

func (r *Router) forget(id pointer.ID) {
	i := slices.IndexFunc(r.pointers, func(p pointerInfo) bool {
		return p.id == id
	})
	if i != -1 {
		r.pointers = slices.Delete(r.pointers, i, i+1)
	}
}

func (r *Router) deliverEvent(p *pointerInfo, e pointer.Event) {
	for _, h := range append([]Handler(nil), p.handlers...) {
		r.deliver(h, e)
	}
}

func (r *Router) deliverEnterLeaveEvents(p *pointerInfo, e pointer.Event) {
	pos := e.Changes[0].Position
	for _, h := range append([]Handler(nil), p.handlers...) {
		i := r.index(h)
		if i == -1 {
			continue
		}
		// Consider non-mouse pointers leaving when they're released.
		hit := (e.Changes[0].Source == pointer.Mouse || p.pressed) && pos.In(r.regions[i].area)
		entered := slices.Index(p.entered, h)
		e := e
		switch {
		case !hit && entered != -1:
			p.entered = slices.Delete(p.entered, entered, entered+1)
			e.Kind = pointer.Leave
			r.deliver(h, e)
		case hit && entered == -1:
			p.entered = append(p.entered, h)
			e.Kind = pointer.Enter
			r.deliver(h, e)
		}
	}
}

// deliver sends e to h translated into the local coordinates of h's
// region.
func (r *Router) deliver(h Handler, e pointer.Event) {
	i := r.index(h)
	if i == -1 {
		return
	}
	h.Event(e.Translate(r.regions[i].area.Min.Mul(-1)))
}

// hit appends the handlers of the regions containing pos, in routing
// order.
func (r *Router) hit(handlers []Handler, pos f32.Point) []Handler {
	for _, reg := range r.regions {
		if pos.In(reg.area) {
			handlers = append(handlers, reg.handler)
		}
	}
	return handlers
}

// handlers returns a snapshot of the registered handlers. Handlers
// may add or remove regions while events are delivered.
func (r *Router) handlers() []Handler {
	hs := make([]Handler, len(r.regions))
	for i, reg := range r.regions {
		hs[i] = reg.handler
	}
	return hs
}

func (r *Router) index(h Handler) int {
	return slices.IndexFunc(r.regions, func(reg region) bool {
		return reg.handler == h
	})
}

func without(hs []Handler, h Handler) []Handler {
	if i := slices.Index(hs, h); i != -1 {
		return slices.Delete(hs, i, i+1)
	}
	return hs
}
