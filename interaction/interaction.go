// SPDX-License-Identifier: Unlicense OR MIT

/*
Package interaction describes the visual states driven by gestures,
such as pressed, dragged and hovered.

Gesture handlers emit Interaction records to a Sink. A Source collects
the records of any number of producers in insertion order and derives
the current state from the records that are not yet matched by their
terminal counterpart.
*/
package interaction

import (
	"sync"
	"time"

	"gioui.org/gesturekit/f32"
)

// Interaction is the marker interface for interaction records.
type Interaction interface {
	ImplementsInteraction()
}

// Sink receives interaction records.
type Sink interface {
	Emit(i Interaction)
}

// Press is emitted when a qualifying press starts.
type Press struct {
	Position f32.Point
	Time     time.Duration
}

// Release is emitted when a press resolves into a click.
type Release struct {
	Press Press
}

// Cancel is emitted when a press is abandoned without a click.
type Cancel struct {
	Press Press
}

// DragStart is emitted when a drag starts.
type DragStart struct {
	Position f32.Point
	Time     time.Duration
}

// DragStop is emitted when a drag ends with a release.
type DragStop struct {
	Start DragStart
}

// DragCancel is emitted when a drag is interrupted.
type DragCancel struct {
	Start DragStart
}

// HoverEnter is emitted when a mouse pointer enters a region.
type HoverEnter struct {
	Time time.Duration
}

// HoverExit is emitted when a mouse pointer leaves a region.
type HoverExit struct {
	Enter HoverEnter
}

// Source is a Sink that records interactions. It is safe for use
// by multiple goroutines.
type Source struct {
	// Invalidate, if set, is called after every emitted record.
	Invalidate func()

	mu      sync.Mutex
	pending []Interaction
	presses []Press
	drags   []DragStart
	hovers  []HoverEnter
}

// Emit records i.
func (s *Source) Emit(i Interaction) {
	s.mu.Lock()
	s.pending = append(s.pending, i)
	switch i := i.(type) {
	case Press:
		s.presses = append(s.presses, i)
	case Release:
		s.presses = remove(s.presses, i.Press)
	case Cancel:
		s.presses = remove(s.presses, i.Press)
	case DragStart:
		s.drags = append(s.drags, i)
	case DragStop:
		s.drags = remove(s.drags, i.Start)
	case DragCancel:
		s.drags = remove(s.drags, i.Start)
	case HoverEnter:
		s.hovers = append(s.hovers, i)
	case HoverExit:
		s.hovers = remove(s.hovers, i.Enter)
	}
	invalidate := s.Invalidate
	s.mu.Unlock()
	if invalidate != nil {
		invalidate()
	}
}

// Interactions returns and clears the records emitted since the
// last call, in emission order.
func (s *Source) Interactions() []Interaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pending
	s.pending = nil
	return p
}

// Pressed reports whether a press is in progress.
func (s *Source) Pressed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.presses) > 0
}

// Dragged reports whether a drag is in progress.
func (s *Source) Dragged() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drags) > 0
}

// Hovered reports whether a pointer hovers a region.
func (s *Source) Hovered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hovers) > 0
}

func remove[T comparable](s []T, v T) []T {
	for i, e := range s {
		if e == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}

func (Press) ImplementsInteraction()      {}
func (Release) ImplementsInteraction()    {}
func (Cancel) ImplementsInteraction()     {}
func (DragStart) ImplementsInteraction()  {}
func (DragStop) ImplementsInteraction()   {}
func (DragCancel) ImplementsInteraction() {}
func (HoverEnter) ImplementsInteraction() {}
func (HoverExit) ImplementsInteraction()  {}
