// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"gioui.org/gesturekit/interaction"
	"gioui.org/gesturekit/io/pointer"
)

func (d *Detector) idle(e pointer.Event) {
	if e.Kind == pointer.Press && d.filter().Qualifies(e) {
		d.startPress(e)
	}
}

// startPress begins a new press lifecycle with the qualifying press e.
func (d *Detector) startPress(e pointer.Event) {
	d.press = newPress(e)
	d.state = StatePressed
	d.emit(d.press.record)
	if d.OnLongClick != nil {
		d.arm(e.Time + d.Config.withDefaults().LongPressTimeout)
	} else {
		d.disarm()
	}
}

func (d *Detector) pressed(e pointer.Event) {
	switch e.Kind {
	case pointer.Cancel:
		d.cancelPress()
	case pointer.Leave:
		if _, ok := e.Change(d.press.id); ok {
			d.cancelPress()
		}
	case pointer.Press:
		if len(e.Changes) > 0 && e.Changes[0].Source != d.press.source {
			d.cancelPress()
		}
	case pointer.Move:
		c, ok := e.Change(d.press.id)
		if !ok {
			return
		}
		if c.Consumed() {
			d.cancelPress()
			return
		}
		if !d.dragEnabled() {
			return
		}
		if overflow, ok := overSlop(d.press.position, c.Position, d.Config.Slop(d.press.source)); ok {
			c.Consume()
			d.startDrag(e, c, overflow)
		}
	case pointer.Release:
		c, ok := e.Change(d.press.id)
		if !ok || !d.press.releasedBy(e) {
			return
		}
		if c.Consumed() {
			d.cancelPress()
			return
		}
		c.Consume()
		d.emit(interaction.Release{Press: d.press.record})
		if d.OnDoubleClick == nil {
			d.reset()
			d.click()
			return
		}
		d.first = d.press
		d.press = pressState{}
		d.state = StateAwaitSecondPress
		d.arm(e.Time + d.Config.withDefaults().DoubleClickTimeout)
	}
}

func (d *Detector) awaitSecondPress(e pointer.Event) {
	switch e.Kind {
	case pointer.Cancel:
		d.reset()
		d.click()
	case pointer.Press:
		if !d.filter().Qualifies(e) {
			// Leave e to other handlers.
			d.reset()
			d.click()
			return
		}
		c := e.Changes[0]
		if c.Source != d.first.source || c.Position.Sub(d.first.position).Len() > d.Config.doubleClickSlop() {
			d.reset()
			d.click()
			if d.disabled || d.state != StateIdle {
				return
			}
			d.startPress(e)
			return
		}
		d.press = newPress(e)
		d.state = StateSecondPressed
		d.emit(d.press.record)
		// A second press held past the long press timeout completes
		// the first click and becomes a long click.
		if d.OnLongClick != nil {
			d.arm(e.Time + d.Config.withDefaults().LongPressTimeout)
		} else {
			d.disarm()
		}
	}
}

func (d *Detector) secondPressed(e pointer.Event) {
	switch e.Kind {
	case pointer.Cancel:
		d.cancelSecondPress()
	case pointer.Leave:
		if _, ok := e.Change(d.press.id); ok {
			d.cancelSecondPress()
		}
	case pointer.Press:
		if len(e.Changes) > 0 && e.Changes[0].Source != d.press.source {
			d.cancelSecondPress()
		}
	case pointer.Move:
		c, ok := e.Change(d.press.id)
		if !ok {
			return
		}
		if c.Consumed() {
			d.cancelSecondPress()
			return
		}
		if !d.dragEnabled() {
			return
		}
		overflow, ok := overSlop(d.press.position, c.Position, d.Config.Slop(d.press.source))
		if !ok {
			return
		}
		c.Consume()
		// The first click completes before the second press turns
		// into a drag.
		if d.OnClick != nil {
			d.OnClick()
		}
		if d.disabled || d.state != StateSecondPressed {
			return
		}
		d.first = pressState{}
		d.startDrag(e, c, overflow)
	case pointer.Release:
		c, ok := e.Change(d.press.id)
		if !ok || !d.press.releasedBy(e) {
			return
		}
		if c.Consumed() {
			d.cancelSecondPress()
			return
		}
		c.Consume()
		p := d.press.record
		d.reset()
		d.emit(interaction.Release{Press: p})
		if d.OnDoubleClick != nil {
			d.OnDoubleClick()
		}
	}
}

func (d *Detector) click() {
	if d.OnClick != nil {
		d.OnClick()
	}
}

func (d *Detector) longClick() {
	p := d.press.record
	d.reset()
	d.emit(interaction.Release{Press: p})
	if d.OnLongClick != nil {
		d.OnLongClick()
	}
}

// cancelPress abandons the press in flight without a callback.
func (d *Detector) cancelPress() {
	p := d.press.record
	d.reset()
	d.emit(interaction.Cancel{Press: p})
}

// cancelSecondPress abandons the second press. The first press still
// counts as a click.
func (d *Detector) cancelSecondPress() {
	d.cancelPress()
	d.click()
}
