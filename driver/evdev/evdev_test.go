// SPDX-License-Identifier: Unlicense OR MIT

package evdev

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/io/event"
	"gioui.org/gesturekit/io/key"
	"gioui.org/gesturekit/io/pointer"
)

func TestParseRecord(t *testing.T) {
	b := make([]byte, RecordSize)
	binary.LittleEndian.PutUint16(b[16:], evRel)
	binary.LittleEndian.PutUint16(b[18:], relY)
	binary.LittleEndian.PutUint32(b[20:], uint32(0xfffffffd)) // -3
	want := Record{Type: evRel, Code: relY, Value: -3}
	if got := ParseRecord(b); got != want {
		t.Errorf("ParseRecord = %+v, want %+v", got, want)
	}
}

func TestMouse(t *testing.T) {
	d := Decoder{Bounds: f32.Rect(0, 0, 100, 100)}
	got := decode(&d,
		Record{evRel, relX, 10},
		Record{evRel, relY, 5},
		syn,
		Record{evKey, btnLeft, 1},
		syn,
		Record{evRel, relX, -20},
		syn,
		Record{evKey, btnLeft, 0},
		Record{evRel, relWheel, 1},
		syn,
	)
	want := []pointer.Kind{pointer.Move, pointer.Press, pointer.Move, pointer.Release, pointer.Scroll}
	assertKinds(t, got, want)
	press := got[1].(pointer.Event)
	if press.Button != pointer.ButtonPrimary || press.Changes[0].Position != f32.Pt(10, 5) {
		t.Errorf("unexpected press %+v", press)
	}
	// Clamped to the bounds.
	if pos := got[2].(pointer.Event).Changes[0].Position; pos != f32.Pt(0, 5) {
		t.Errorf("move to %v, want (0,5)", pos)
	}
	if s := got[4].(pointer.Event).Scroll; s != f32.Pt(0, -1) {
		t.Errorf("scroll %v", s)
	}
}

func TestTouch(t *testing.T) {
	d := Decoder{Scale: f32.Pt(.5, .5)}
	got := decode(&d,
		Record{evKey, btnToolFinger, 1},
		Record{evKey, btnTouch, 1},
		Record{evAbs, absX, 100},
		Record{evAbs, absY, 40},
		syn,
		Record{evAbs, absX, 120},
		syn,
		Record{evKey, btnTouch, 0},
		Record{evKey, btnToolFinger, 0},
		syn,
	)
	assertKinds(t, got, []pointer.Kind{pointer.Press, pointer.Move, pointer.Release})
	for _, e := range got {
		pe := e.(pointer.Event)
		if !pe.Sources(pointer.Touch) || pe.Button != 0 {
			t.Errorf("unexpected touch event %+v", pe)
		}
	}
	if pos := got[0].(pointer.Event).Changes[0].Position; pos != f32.Pt(50, 20) {
		t.Errorf("press at %v, want (50,20)", pos)
	}
}

func TestPen(t *testing.T) {
	var d Decoder
	got := decode(&d,
		Record{evKey, btnToolRubber, 1},
		Record{evAbs, absX, 3},
		syn,
		Record{evKey, btnTouch, 1},
		syn,
	)
	assertKinds(t, got, []pointer.Kind{pointer.Move, pointer.Press})
	press := got[1].(pointer.Event)
	if !press.Sources(pointer.Eraser) || press.Button != pointer.ButtonPrimary {
		t.Errorf("unexpected pen press %+v", press)
	}
}

func TestModifierKeys(t *testing.T) {
	var d Decoder
	got := decode(&d,
		Record{evKey, keyLeftShift, 1},
		syn,
		Record{evKey, keyLeftCtrl, 1},
		syn,
		Record{evKey, keyLeftShift, 0},
		syn,
		Record{evKey, 30, 1}, // KEY_A
		syn,
	)
	want := []key.Modifiers{key.ModShift, key.ModShift | key.ModCtrl, key.ModCtrl}
	if len(got) != len(want) {
		t.Fatalf("events %s", spew.Sdump(got))
	}
	for i, e := range got {
		if me := e.(key.ModifiersEvent); me.Modifiers != want[i] {
			t.Errorf("event %d: %v, want %v", i, me.Modifiers, want[i])
		}
	}
}

var syn = Record{Type: evSyn, Code: synReport}

func decode(d *Decoder, records ...Record) []event.Event {
	var events []event.Event
	for i, r := range records {
		events = append(events, d.Decode(r, time.Duration(i)*time.Millisecond)...)
	}
	return events
}

func assertKinds(t *testing.T, events []event.Event, want []pointer.Kind) {
	t.Helper()
	if len(events) != len(want) {
		t.Fatalf("events %s, want kinds %v", spew.Sdump(events), want)
	}
	for i, e := range events {
		if k := e.(pointer.Event).Kind; k != want[i] {
			t.Errorf("event %d: kind %v, want %v", i, k, want[i])
		}
	}
}
