// SPDX-License-Identifier: Unlicense OR MIT

package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gioui.org/gesturekit/app"
	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/gesture"
	"gioui.org/gesturekit/io/key"
	"gioui.org/gesturekit/io/pointer"
	"gioui.org/gesturekit/io/router"
)

func TestLoopLongPress(t *testing.T) {
	long := make(chan struct{}, 1)
	d := &gesture.Detector{
		Config:      gesture.Config{LongPressTimeout: 20 * time.Millisecond},
		OnLongClick: func() { long <- struct{}{} },
	}
	var r router.Router
	r.Add(f32.Rect(0, 0, 10, 10), d)
	l := app.NewLoop(&r)
	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- l.Run(ctx) }()

	l.Queue(press(pointer.Press, l.Now()))
	select {
	case <-long:
	case <-time.After(5 * time.Second):
		t.Fatal("long press deadline never fired")
	}
	cancel()
	if err := <-errs; !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v", err)
	}
	if l.Queue(press(pointer.Release, l.Now())) {
		t.Error("Queue accepted an event after Run returned")
	}
}

func TestLoopDo(t *testing.T) {
	var r router.Router
	l := app.NewLoop(&r)
	frames := 0
	l.Frame = func() { frames++ }
	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- l.Run(ctx) }()

	clicks := 0
	d := &gesture.Detector{OnClick: func() { clicks++ }}
	l.Do(func(r *router.Router) {
		r.Add(f32.Rect(0, 0, 10, 10), d)
	})
	l.Queue(press(pointer.Press, l.Now()))
	l.Queue(press(pointer.Release, l.Now()))
	var got, gotFrames int
	// Do is processed after the queued events.
	for got == 0 {
		l.Do(func(*router.Router) { got, gotFrames = clicks, frames })
	}
	if got != 1 {
		t.Errorf("got %d clicks, want 1", got)
	}
	if gotFrames < 3 {
		t.Errorf("got %d frames, want at least 3", gotFrames)
	}
	cancel()
	<-errs
	if l.Do(func(*router.Router) {}) {
		t.Error("Do ran after Run returned")
	}
}

func TestLoopShutdownCancelsDrag(t *testing.T) {
	cancelled := make(chan struct{})
	d := &gesture.Detector{
		OnDragStart:  func(f32.Point, key.Modifiers) {},
		OnDragCancel: func() { close(cancelled) },
	}
	var r router.Router
	r.Add(f32.Rect(0, 0, 100, 100), d)
	l := app.NewLoop(&r)
	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- l.Run(ctx) }()

	l.Queue(press(pointer.Press, l.Now()))
	move := press(pointer.Move, l.Now())
	move.Changes[0].Position = f32.Pt(50, 5)
	l.Queue(move)
	for {
		var s gesture.State
		l.Do(func(*router.Router) { s = d.State() })
		if s == gesture.StateDragging {
			break
		}
	}
	cancel()
	<-errs
	select {
	case <-cancelled:
	default:
		t.Fatal("drag not cancelled on shutdown")
	}
}

func press(kind pointer.Kind, t time.Duration) pointer.Event {
	e := pointer.Event{
		Kind:    kind,
		Time:    t,
		Button:  pointer.ButtonPrimary,
		Changes: []pointer.Change{{Source: pointer.Mouse, Position: f32.Pt(5, 5)}},
	}
	if kind == pointer.Press {
		e.Buttons = pointer.ButtonPrimary
	}
	return e
}
