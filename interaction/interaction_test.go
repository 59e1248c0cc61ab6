// SPDX-License-Identifier: Unlicense OR MIT

package interaction

import (
	"reflect"
	"sync"
	"testing"

	"gioui.org/gesturekit/f32"
)

func TestSourceState(t *testing.T) {
	var s Source
	invalidated := 0
	s.Invalidate = func() { invalidated++ }

	p1 := Press{Position: f32.Pt(1, 1)}
	p2 := Press{Position: f32.Pt(2, 2), Time: 5}
	s.Emit(p1)
	s.Emit(p2)
	s.Emit(Release{Press: p1})
	if !s.Pressed() {
		t.Fatal("second press should still be active")
	}
	s.Emit(Cancel{Press: p2})
	if s.Pressed() {
		t.Fatal("all presses resolved, Pressed() = true")
	}

	d := DragStart{Position: f32.Pt(3, 3)}
	s.Emit(d)
	if !s.Dragged() {
		t.Fatal("Dragged() = false during drag")
	}
	s.Emit(DragStop{Start: d})
	if s.Dragged() {
		t.Fatal("Dragged() = true after stop")
	}

	h := HoverEnter{}
	s.Emit(h)
	if !s.Hovered() {
		t.Fatal("Hovered() = false")
	}
	s.Emit(HoverExit{Enter: h})

	want := []Interaction{p1, p2, Release{Press: p1}, Cancel{Press: p2}, d, DragStop{Start: d}, h, HoverExit{Enter: h}}
	if got := s.Interactions(); !reflect.DeepEqual(got, want) {
		t.Errorf("interactions %v, want %v", got, want)
	}
	if got := s.Interactions(); len(got) != 0 {
		t.Errorf("Interactions did not drain: %v", got)
	}
	if invalidated != len(want) {
		t.Errorf("Invalidate called %d times, want %d", invalidated, len(want))
	}
}

func TestSourceConcurrentProducers(t *testing.T) {
	var s Source
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := Press{Position: f32.Pt(float32(i), 0)}
			s.Emit(p)
			s.Emit(Release{Press: p})
		}(i)
	}
	wg.Wait()
	got := s.Interactions()
	if len(got) != 16 {
		t.Fatalf("got %d records, want 16", len(got))
	}
	// Every release follows its press.
	seen := make(map[Press]bool)
	for _, i := range got {
		switch i := i.(type) {
		case Press:
			seen[i] = true
		case Release:
			if !seen[i.Press] {
				t.Errorf("release of %v before its press", i.Press)
			}
		}
	}
	if s.Pressed() {
		t.Error("Pressed() = true after all releases")
	}
}
