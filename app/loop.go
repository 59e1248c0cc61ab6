// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"context"
	"time"

	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/router"
)

// Loop delivers events and deadlines to a router from a single
// goroutine.
type Loop struct {
	// Frame, if set, is called on the loop goroutine after every
	// batch of routed events, scheduled functions and expired
	// deadlines. It is where a program redraws.
	Frame func()

	router *router.Router
	start  time.Time
	events chan event.Event
	funcs  chan func(r *router.Router)
	dead   chan struct{}
}

// NewLoop returns a loop for r. The router must not be used
// elsewhere while the loop is running.
func NewLoop(r *router.Router) *Loop {
	return &Loop{
		router: r,
		start:  time.Now(),
		// Drivers may deliver events in bursts.
		events: make(chan event.Event, 64),
		funcs:  make(chan func(r *router.Router)),
		dead:   make(chan struct{}),
	}
}

// Now returns the current time relative to the start of the loop.
// Drivers use it to timestamp events. Now is safe for concurrent
// use.
func (l *Loop) Now() time.Duration {
	return time.Since(l.start)
}

// Queue sends e to the router. It blocks until the loop accepts the
// event and reports false if the loop has stopped. Queue is safe for
// concurrent use.
func (l *Loop) Queue(e event.Event) bool {
	select {
	case <-l.dead:
		return false
	default:
	}
	select {
	case l.events <- e:
		return true
	case <-l.dead:
		return false
	}
}

// Do runs f on the loop goroutine and waits for it to complete. It
// reports false if the loop stopped before running f. Do is safe for
// concurrent use but must not be called from the loop goroutine.
func (l *Loop) Do(f func(r *router.Router)) bool {
	done := make(chan struct{})
	wrapped := func(r *router.Router) {
		defer close(done)
		f(r)
	}
	select {
	case l.funcs <- wrapped:
	case <-l.dead:
		return false
	}
	<-done
	return true
}

// Run processes events until ctx is done. Before returning it
// removes every handler from the router, which cancels the gestures
// in progress. Run returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.dead)
	var (
		timer  *time.Timer
		wakeup time.Duration
		armed  bool
	)
	stop := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
		}
	}
	defer stop()
	for {
		if t, ok := l.router.WakeupTime(); ok != armed || t != wakeup {
			stop()
			if ok {
				timer = time.NewTimer(t - l.Now())
			}
			wakeup, armed = t, ok
		}
		var timeC <-chan time.Time
		if timer != nil {
			timeC = timer.C
		}
		select {
		case <-ctx.Done():
			l.router.Clear()
			return ctx.Err()
		case e := <-l.events:
			l.router.Queue(e)
		case f := <-l.funcs:
			f(l.router)
		case <-timeC:
			timer = nil
			armed = false
			l.router.Tick(l.Now())
		}
		if l.Frame != nil {
			l.Frame()
		}
	}
}
