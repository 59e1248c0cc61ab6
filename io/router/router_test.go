// SPDX-License-Identifier: Unlicense OR MIT

package router

import (
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/key"
	"gioui.org/gesturekit/io/pointer"
)

type recorder struct {
	events []event.Event
	// consume makes the recorder consume every change it sees.
	consume  bool
	deadline time.Duration
	armed    bool
	ticks    []time.Duration
	detached bool
	// log records the order of deliveries across recorders.
	log  *[]string
	name string
}

func (r *recorder) Event(e event.Event) {
	r.events = append(r.events, e)
	if r.log != nil {
		*r.log = append(*r.log, r.name)
	}
	if pe, ok := e.(pointer.Event); ok && r.consume {
		for _, c := range pe.Changes {
			c.Consume()
		}
	}
}

func (r *recorder) Deadline() (time.Duration, bool) {
	return r.deadline, r.armed
}

func (r *recorder) Tick(t time.Duration) {
	r.ticks = append(r.ticks, t)
	r.armed = false
}

func (r *recorder) Detach() {
	r.detached = true
	r.armed = false
}

func (r *recorder) kinds() []pointer.Kind {
	var kinds []pointer.Kind
	for _, e := range r.events {
		if pe, ok := e.(pointer.Event); ok {
			kinds = append(kinds, pe.Kind)
		}
	}
	return kinds
}

func TestPointerDrag(t *testing.T) {
	h := new(recorder)
	var r Router
	r.Add(f32.Rect(0, 0, 100, 100), h)
	r.Queue(
		mouse(pointer.Press, 50, 50),
		// Move outside the area.
		mouse(pointer.Move, 150, 150),
		mouse(pointer.Release, 150, 150),
	)
	assertKinds(t, h, pointer.Enter, pointer.Press, pointer.Leave, pointer.Move, pointer.Release)
}

func TestPointerLocalCoordinates(t *testing.T) {
	h := new(recorder)
	var r Router
	r.Add(f32.Rect(20, 30, 100, 100), h)
	r.Queue(mouse(pointer.Press, 25, 40))
	e := h.events[len(h.events)-1].(pointer.Event)
	if got, want := e.Changes[0].Position, f32.Pt(5, 10); got != want {
		t.Errorf("local position %v, want %v", got, want)
	}
}

func TestPointerMove(t *testing.T) {
	h1, h2 := new(recorder), new(recorder)
	var r Router
	r.Add(f32.Rect(0, 0, 100, 100), h1)
	// Areas intersect.
	r.Add(f32.Rect(50, 50, 200, 200), h2)
	r.Queue(
		// Hit both handlers.
		mouse(pointer.Move, 50, 50),
		// Hit handler 1.
		mouse(pointer.Move, 49, 50),
		// Hit no handlers.
		mouse(pointer.Move, 300, 50),
		pointer.Event{Kind: pointer.Cancel},
	)
	assertKinds(t, h1, pointer.Enter, pointer.Move, pointer.Move, pointer.Leave, pointer.Cancel)
	assertKinds(t, h2, pointer.Enter, pointer.Move, pointer.Leave, pointer.Cancel)
}

func TestTouchLeavesOnRelease(t *testing.T) {
	h := new(recorder)
	var r Router
	r.Add(f32.Rect(0, 0, 100, 100), h)
	press := mouse(pointer.Press, 10, 10)
	press.Changes[0].Source = pointer.Touch
	release := press
	release.Kind = pointer.Release
	r.Queue(press, release)
	assertKinds(t, h, pointer.Enter, pointer.Press, pointer.Release, pointer.Leave)
	if len(r.pointers) != 0 {
		t.Errorf("released touch pointer still tracked: %v", spew.Sdump(r.pointers))
	}
}

func TestConsumptionOrder(t *testing.T) {
	var order []string
	ancestor := &recorder{consume: true, log: &order, name: "ancestor"}
	child := &recorder{log: &order, name: "child"}
	var r Router
	r.Add(f32.Rect(0, 0, 100, 100), ancestor)
	r.Add(f32.Rect(0, 0, 50, 50), child)
	r.Queue(mouse(pointer.Press, 10, 10))

	if want := []string{"ancestor", "child", "ancestor", "child"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("delivery order %v, want %v", order, want)
	}
	e := child.events[len(child.events)-1].(pointer.Event)
	if e.Kind != pointer.Press || !e.Changes[0].Consumed() {
		t.Errorf("child did not observe the ancestor's consumption:\n%s", spew.Sdump(e))
	}
}

func TestCapture(t *testing.T) {
	h1, h2 := new(recorder), new(recorder)
	var r Router
	r.Add(f32.Rect(0, 0, 100, 100), h1)
	r.Add(f32.Rect(100, 0, 200, 100), h2)
	r.Queue(
		mouse(pointer.Press, 50, 50),
		mouse(pointer.Move, 150, 50),
		mouse(pointer.Release, 150, 50),
		mouse(pointer.Move, 160, 50),
	)
	assertKinds(t, h1, pointer.Enter, pointer.Press, pointer.Leave, pointer.Move, pointer.Release)
	assertKinds(t, h2, pointer.Enter, pointer.Move)
}

func TestModifiersBroadcast(t *testing.T) {
	h1, h2 := new(recorder), new(recorder)
	var r Router
	r.Add(f32.Rect(0, 0, 10, 10), h1)
	r.Add(f32.Rect(100, 100, 110, 110), h2)
	r.Queue(key.ModifiersEvent{Modifiers: key.ModShift})
	for _, h := range []*recorder{h1, h2} {
		if len(h.events) != 1 {
			t.Fatalf("got %d events, want 1", len(h.events))
		}
	}
	if r.Modifiers() != key.ModShift {
		t.Errorf("Modifiers() = %v", r.Modifiers())
	}
}

func TestDeadlineRace(t *testing.T) {
	var order []string
	h := &recorder{deadline: 100 * time.Millisecond, armed: true, log: &order, name: "event"}
	var r Router
	r.Add(f32.Rect(0, 0, 100, 100), h)
	if d, ok := r.WakeupTime(); !ok || d != 100*time.Millisecond {
		t.Fatalf("WakeupTime() = %v, %v", d, ok)
	}
	e := mouse(pointer.Move, 10, 10)
	e.Time = 99 * time.Millisecond
	r.Queue(e)
	if len(h.ticks) != 0 {
		t.Fatalf("deadline fired before it expired")
	}
	// A deadline that expires at the event time fires first.
	e.Time = 100 * time.Millisecond
	r.Queue(e)
	if !reflect.DeepEqual(h.ticks, []time.Duration{100 * time.Millisecond}) {
		t.Fatalf("ticks %v", h.ticks)
	}
	if _, ok := r.WakeupTime(); ok {
		t.Error("WakeupTime reported a fired deadline")
	}
	r.Tick(time.Second)
	if len(h.ticks) != 1 {
		t.Error("Tick fired a handler without a deadline")
	}
}

func TestRemoveDetaches(t *testing.T) {
	h1, h2 := new(recorder), new(recorder)
	var r Router
	r.Add(f32.Rect(0, 0, 100, 100), h1)
	r.Add(f32.Rect(0, 0, 100, 100), h2)
	r.Queue(mouse(pointer.Press, 10, 10))
	r.Remove(h1)
	if !h1.detached {
		t.Fatal("Remove did not detach the handler")
	}
	n := len(h1.events)
	r.Queue(mouse(pointer.Release, 10, 10))
	if len(h1.events) != n {
		t.Error("removed handler received events")
	}
	assertKinds(t, h2, pointer.Enter, pointer.Press, pointer.Release)
	r.Clear()
	if !h2.detached {
		t.Error("Clear did not detach the handler")
	}
	if _, ok := r.WakeupTime(); ok {
		t.Error("cleared router has a wakeup time")
	}
}

func mouse(kind pointer.Kind, x, y float32) pointer.Event {
	return pointer.Event{
		Kind:    kind,
		Changes: []pointer.Change{{Source: pointer.Mouse, Position: f32.Pt(x, y)}},
		Button:  pointer.ButtonPrimary,
	}
}

func assertKinds(t *testing.T, h *recorder, expected ...pointer.Kind) {
	t.Helper()
	if got := h.kinds(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %v events, got %v\n%s", expected, got, spew.Sdump(h.events))
	}
}
