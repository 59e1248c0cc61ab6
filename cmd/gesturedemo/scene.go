// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/gesture"
	"gioui.org/gesturekit/interaction"
	"gioui.org/gesturekit/io/key"
	"gioui.org/gesturekit/io/pointer"
	"gioui.org/gesturekit/io/router"
)

const maxLogLines = 8

// scene is the mouse clicks sample: a toggle for all gestures, a box
// with combined clicks and two draggable boxes. Coordinates are in
// pixels; the layout is defined in terminal cells of size cell.
type scene struct {
	cell    f32.Point
	enabled bool
	lines   []string

	toggle   *gesture.Detector
	shift    *gesture.Detector
	alt      *gesture.Detector
	combined *gesture.Detector
	blue     *box
	gray     *box

	clicks interaction.Source
	// moved lists boxes whose regions must follow their offsets.
	moved []*box
}

// box is a draggable box. offset is committed when a drag
// terminates; live is the offset of the drag in progress.
type box struct {
	name     string
	label    string
	color    tcell.Color
	cells    [4]int
	offset   f32.Point
	live     f32.Point
	detector *gesture.Detector
}

func newScene(cell f32.Point) *scene {
	return &scene{
		cell:    cell,
		enabled: true,
		blue: &box{
			name:  "Blue",
			label: "Use Right Mouse",
			color: tcell.ColorBlue,
			cells: [4]int{34, 3, 50, 8},
		},
		gray: &box{
			name:  "Gray",
			label: "Use Left Mouse",
			color: tcell.ColorGray,
			cells: [4]int{34, 10, 50, 15},
		},
	}
}

// build replaces the regions of r with the scene's detectors.
// Gestures in progress are cancelled.
func (s *scene) build(r *router.Router, cfg gesture.Config) {
	r.Clear()
	s.toggle = &gesture.Detector{
		Config:  cfg,
		OnClick: func() { s.setEnabled(!s.enabled) },
	}
	// The modifier variants are registered before the plain
	// clickable, so that they win the release.
	s.shift = &gesture.Detector{
		Config: cfg,
		Filter: gesture.Filter{
			pointer.Mouse: {Button: pointer.ButtonPrimary, Modifiers: gesture.RequireModifiers(key.ModShift)},
		},
		OnClick: func() { s.logf("LClick + Shift") },
	}
	s.alt = &gesture.Detector{
		Config: cfg,
		Filter: gesture.Filter{
			pointer.Mouse: {Button: pointer.ButtonSecondary, Modifiers: gesture.RequireModifiers(key.ModAlt)},
		},
		OnClick: func() { s.logf("RClick + Alt") },
	}
	s.combined = &gesture.Detector{
		Config:        cfg,
		Interactions:  &s.clicks,
		OnClick:       func() { s.logf("Simple LClick click") },
		OnDoubleClick: func() { s.logf("Simple LClick DoubleClick") },
		OnLongClick:   func() { s.logf("Simple LClick LongPress") },
	}
	s.blue.detector = s.draggable(s.blue, cfg, gesture.Filter{
		pointer.Mouse: {Button: pointer.ButtonSecondary},
	})
	s.gray.detector = s.draggable(s.gray, cfg, nil)

	r.Add(s.rect(2, 0, 24, 1), s.toggle)
	combined := s.rect(2, 3, 28, 9)
	r.Add(combined, s.shift)
	r.Add(combined, s.alt)
	r.Add(combined, s.combined)
	r.Add(s.boxRect(s.blue), s.blue.detector)
	r.Add(s.boxRect(s.gray), s.gray.detector)
	for _, d := range s.detectors() {
		d.SetEnabled(s.enabled)
	}
}

func (s *scene) draggable(b *box, cfg gesture.Config, f gesture.Filter) *gesture.Detector {
	// Regions stay in place until the drag terminates; motion of a
	// drag is measured in one coordinate frame.
	commit := func() {
		b.offset = b.offset.Add(b.live)
		b.live = f32.Point{}
		s.moved = append(s.moved, b)
	}
	return &gesture.Detector{
		Config: cfg,
		Filter: f,
		OnDragStart: func(pos f32.Point, mods key.Modifiers) {
			s.logf("%s: Start, offset=%v, km=%v", b.name, pos, mods)
		},
		OnDrag: func(c gesture.DragChange) {
			scale := float32(1)
			if c.Current.Contain(key.ModCtrl) {
				scale = 2
			}
			b.live = b.live.Add(c.Offset.Mul(scale))
		},
		OnDragEnd: func() {
			s.logf("%s: End", b.name)
			commit()
		},
		OnDragCancel: func() {
			s.logf("%s: Cancel", b.name)
			commit()
		},
	}
}

// update applies pending region moves. It runs after every batch of
// events.
func (s *scene) update(r *router.Router) {
	for _, b := range s.moved {
		r.Add(s.boxRect(b), b.detector)
	}
	s.moved = s.moved[:0]
}

func (s *scene) detectors() []*gesture.Detector {
	return []*gesture.Detector{s.shift, s.alt, s.combined, s.blue.detector, s.gray.detector}
}

func (s *scene) setEnabled(enabled bool) {
	s.enabled = enabled
	for _, d := range s.detectors() {
		d.SetEnabled(enabled)
	}
	s.logf("enabled all: %v", enabled)
}

func (s *scene) logf(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	log.Print(line)
	s.lines = append(s.lines, line)
	if len(s.lines) > maxLogLines {
		s.lines = s.lines[len(s.lines)-maxLogLines:]
	}
}

func (s *scene) rect(x0, y0, x1, y1 int) f32.Rectangle {
	return f32.Rect(float32(x0)*s.cell.X, float32(y0)*s.cell.Y, float32(x1)*s.cell.X, float32(y1)*s.cell.Y)
}

func (s *scene) boxRect(b *box) f32.Rectangle {
	return s.rect(b.cells[0], b.cells[1], b.cells[2], b.cells[3]).Add(b.offset)
}

// draw renders the scene.
func (s *scene) draw(scr tcell.Screen) {
	scr.Clear()
	check := "[ ]"
	if s.enabled {
		check = "[x]"
	}
	drawText(scr, 2, 0, 22, tcell.StyleDefault.Bold(true), check+" enabled all")

	bg := tcell.ColorLightGray
	s.clicks.Interactions()
	if s.clicks.Pressed() {
		bg = tcell.ColorDarkGray
	}
	drawText(scr, 2, 2, 26, tcell.StyleDefault, "combinedMouseClickable")
	fill(scr, 2, 3, 28, 9, tcell.StyleDefault.Background(bg).Foreground(tcell.ColorBlack),
		"LClick + Shift", "RClick + Alt", "LClick, DoubleClick", "LongPress")

	drawText(scr, 34, 2, 16, tcell.StyleDefault, "mouseDraggable")
	for _, b := range []*box{s.blue, s.gray} {
		off := b.offset.Add(b.live)
		dx, dy := int(off.X/s.cell.X), int(off.Y/s.cell.Y)
		c := b.cells
		fill(scr, c[0]+dx, c[1]+dy, c[2]+dx, c[3]+dy, tcell.StyleDefault.Background(b.color).Foreground(tcell.ColorWhite), b.label)
	}

	_, h := scr.Size()
	for i, line := range s.lines {
		drawText(scr, 2, h-len(s.lines)+i-1, 76, tcell.StyleDefault.Dim(true), line)
	}
	scr.Show()
}

func fill(scr tcell.Screen, x0, y0, x1, y1 int, st tcell.Style, lines ...string) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			scr.SetContent(x, y, ' ', nil, st)
		}
	}
	for i, l := range lines {
		if y0+i+1 >= y1 {
			break
		}
		drawText(scr, x0+1, y0+i+1, x1-x0-2, st, l)
	}
}

// drawText draws s truncated to width columns.
func drawText(scr tcell.Screen, x, y, width int, st tcell.Style, s string) {
	s = runewidth.Truncate(s, width, "…")
	for _, r := range s {
		scr.SetContent(x, y, r, nil, st)
		x += runewidth.RuneWidth(r)
	}
}
