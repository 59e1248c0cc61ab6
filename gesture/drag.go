// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/interaction"
	"gioui.org/gesturekit/io/key"
	"gioui.org/gesturekit/io/pointer"
)

// DragChange is an incremental drag update. A change with a zero
// Offset reports a modifier change without motion.
type DragChange struct {
	Offset   f32.Point
	Previous key.Modifiers
	Current  key.Modifiers
}

// ModifiersChanged reports whether the held modifiers changed.
func (c DragChange) ModifiersChanged() bool {
	return c.Previous != c.Current
}

// dragSession is the state of an active drag.
type dragSession struct {
	id        pointer.ID
	last      f32.Point
	modifiers key.Modifiers
	record    interaction.DragStart
}

func (d *Detector) dragEnabled() bool {
	return d.OnDragStart != nil || d.OnDrag != nil || d.OnDragEnd != nil || d.OnDragCancel != nil
}

// startDrag hands the current press over to a drag session. c is the
// change that exceeded the slop by overflow.
func (d *Detector) startDrag(e pointer.Event, c pointer.Change, overflow f32.Point) {
	d.disarm()
	d.emit(interaction.Cancel{Press: d.press.record})
	start := interaction.DragStart{Position: d.press.position, Time: e.Time}
	d.drag = dragSession{
		id:        c.ID,
		last:      c.Position,
		modifiers: d.press.modifiers,
		record:    start,
	}
	d.state = StateDragging
	d.emit(start)
	if d.OnDragStart != nil {
		d.OnDragStart(d.press.position, e.Modifiers)
	}
	if d.state != StateDragging {
		return
	}
	// Report the motion beyond the slop and any modifier change
	// since the press right away.
	if overflow != (f32.Point{}) || e.Modifiers != d.drag.modifiers {
		d.dragChange(overflow, e.Modifiers)
	}
}

func (d *Detector) dragging(e pointer.Event) {
	switch e.Kind {
	case pointer.Cancel:
		d.cancelDrag()
	case pointer.Press:
		if len(e.Changes) > 0 && e.Changes[0].Source != d.press.source {
			d.cancelDrag()
		}
	case pointer.Move:
		c, ok := e.Change(d.drag.id)
		if !ok {
			return
		}
		if c.Consumed() {
			d.cancelDrag()
			return
		}
		c.Consume()
		delta := c.Position.Sub(d.drag.last)
		d.drag.last = c.Position
		if delta != (f32.Point{}) || e.Modifiers != d.drag.modifiers {
			d.dragChange(delta, e.Modifiers)
		}
	case pointer.Release:
		c, ok := e.Change(d.drag.id)
		if !ok || !d.press.releasedBy(e) {
			return
		}
		if c.Consumed() {
			d.cancelDrag()
			return
		}
		c.Consume()
		d.endDrag()
	}
}

// dragModifiers reports a modifier change without motion.
func (d *Detector) dragModifiers(m key.Modifiers) {
	if m != d.drag.modifiers {
		d.dragChange(f32.Point{}, m)
	}
}

func (d *Detector) dragChange(offset f32.Point, mods key.Modifiers) {
	change := DragChange{Offset: offset, Previous: d.drag.modifiers, Current: mods}
	d.drag.modifiers = mods
	if d.OnDrag != nil {
		d.OnDrag(change)
	}
}

func (d *Detector) endDrag() {
	start := d.drag.record
	d.reset()
	d.emit(interaction.DragStop{Start: start})
	if d.OnDragEnd != nil {
		d.OnDragEnd()
	}
}

func (d *Detector) cancelDrag() {
	start := d.drag.record
	d.reset()
	d.emit(interaction.DragCancel{Start: start})
	if d.OnDragCancel != nil {
		d.OnDragCancel()
	}
}
