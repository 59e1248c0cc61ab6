// SPDX-License-Identifier: Unlicense OR MIT

// Package x11 feeds the input of an X11 window to gesture detection.
package x11

import (
	"context"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
	"github.com/pkg/errors"

	"gioui.org/gesturekit/app"
	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/io/key"
	"gioui.org/gesturekit/io/pointer"
)

// Window is an X11 window whose pointer and modifier input is sent
// to a Loop.
type Window struct {
	xu   *xgbutil.XUtil
	win  *xwindow.Window
	loop *app.Loop
	mods key.Modifiers
}

// Open creates and maps a window.
func Open(title string, width, height int, l *app.Loop) (*Window, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "x11")
	}
	keybind.Initialize(xu)
	win, err := xwindow.Generate(xu)
	if err != nil {
		xu.Conn().Close()
		return nil, errors.Wrap(err, "x11")
	}
	win.Create(xu.RootWin(), 0, 0, width, height, xproto.CwBackPixel, 0xffffff)
	err = win.Listen(
		xproto.EventMaskButtonPress,
		xproto.EventMaskButtonRelease,
		xproto.EventMaskPointerMotion,
		xproto.EventMaskEnterWindow,
		xproto.EventMaskLeaveWindow,
		xproto.EventMaskKeyPress,
		xproto.EventMaskKeyRelease,
		xproto.EventMaskStructureNotify,
	)
	if err != nil {
		xu.Conn().Close()
		return nil, errors.Wrap(err, "x11")
	}
	if err := ewmh.WmNameSet(xu, win.Id, title); err != nil {
		xu.Conn().Close()
		return nil, errors.Wrap(err, "x11")
	}
	w := &Window{xu: xu, win: win, loop: l}
	w.connect()
	win.Map()
	return w, nil
}

func (w *Window) connect() {
	id := w.win.Id
	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		w.queue(buttonEvent(pointer.Press, ev.Detail, ev.State, ev.EventX, ev.EventY)...)
	}).Connect(w.xu, id)
	xevent.ButtonReleaseFun(func(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		w.queue(buttonEvent(pointer.Release, ev.Detail, ev.State, ev.EventX, ev.EventY)...)
	}).Connect(w.xu, id)
	xevent.MotionNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		w.queue(pointerEvent(pointer.Move, ev.State, ev.EventX, ev.EventY))
	}).Connect(w.xu, id)
	xevent.EnterNotifyFun(func(xu *xgbutil.XUtil, ev xevent.EnterNotifyEvent) {
		w.queue(pointerEvent(pointer.Move, ev.State, ev.EventX, ev.EventY))
	}).Connect(w.xu, id)
	xevent.LeaveNotifyFun(func(xu *xgbutil.XUtil, ev xevent.LeaveNotifyEvent) {
		w.queue(pointerEvent(pointer.Move, ev.State, ev.EventX, ev.EventY))
	}).Connect(w.xu, id)
	xevent.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		name := keybind.LookupString(xu, ev.State, ev.Detail)
		w.setModifiers(modifiers(ev.State) | keyModifier(name))
	}).Connect(w.xu, id)
	xevent.KeyReleaseFun(func(xu *xgbutil.XUtil, ev xevent.KeyReleaseEvent) {
		name := keybind.LookupString(xu, ev.State, ev.Detail)
		w.setModifiers(modifiers(ev.State) &^ keyModifier(name))
	}).Connect(w.xu, id)
	xevent.DestroyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.DestroyNotifyEvent) {
		xevent.Quit(xu)
	}).Connect(w.xu, id)
}

// Run processes X events until the window is destroyed or ctx is
// done. Cancellation takes effect with the next X event; Close stops
// Run right away.
func (w *Window) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			xevent.Quit(w.xu)
		case <-stop:
		}
	}()
	xevent.Main(w.xu)
	return ctx.Err()
}

// Close destroys the window and closes the connection.
func (w *Window) Close() {
	w.win.Destroy()
	w.xu.Conn().Close()
}

func (w *Window) setModifiers(m key.Modifiers) {
	if m == w.mods {
		return
	}
	w.mods = m
	w.loop.Queue(key.ModifiersEvent{Modifiers: m, Time: w.loop.Now()})
}

func (w *Window) queue(events ...pointer.Event) {
	now := w.loop.Now()
	for _, e := range events {
		e.Time = now
		w.mods = e.Modifiers
		w.loop.Queue(e)
	}
}

func pointerEvent(kind pointer.Kind, state uint16, x, y int16) pointer.Event {
	return pointer.Event{
		Kind:      kind,
		Buttons:   buttons(state),
		Modifiers: modifiers(state),
		Changes: []pointer.Change{
			{Source: pointer.Mouse, Position: f32.Pt(float32(x), float32(y))},
		},
	}
}

// buttonEvent translates a button press or release. The state
// describes the buttons before the event. Wheel buttons become
// scroll events on press and are dropped on release.
func buttonEvent(kind pointer.Kind, detail xproto.Button, state uint16, x, y int16) []pointer.Event {
	e := pointerEvent(kind, state, x, y)
	if s, ok := wheel(detail); ok {
		if kind != pointer.Press {
			return nil
		}
		e.Kind = pointer.Scroll
		e.Scroll = s
		return []pointer.Event{e}
	}
	b := button(detail)
	if b == 0 {
		return nil
	}
	e.Button = b
	if kind == pointer.Press {
		e.Buttons |= b
	} else {
		e.Buttons &^= b
	}
	return []pointer.Event{e}
}

// button maps X button numbers: 1 left, 2 middle, 3 right, 8 back
// and 9 forward.
func button(detail xproto.Button) pointer.Buttons {
	switch detail {
	case xproto.ButtonIndex1:
		return pointer.ButtonPrimary
	case xproto.ButtonIndex2:
		return pointer.ButtonTertiary
	case xproto.ButtonIndex3:
		return pointer.ButtonSecondary
	case 8:
		return pointer.ButtonBack
	case 9:
		return pointer.ButtonForward
	}
	return 0
}

// wheel maps the scroll buttons 4 to 7.
func wheel(detail xproto.Button) (f32.Point, bool) {
	switch detail {
	case xproto.ButtonIndex4:
		return f32.Pt(0, -1), true
	case xproto.ButtonIndex5:
		return f32.Pt(0, 1), true
	case 6:
		return f32.Pt(-1, 0), true
	case 7:
		return f32.Pt(1, 0), true
	}
	return f32.Point{}, false
}

// buttons converts the button bits of an X key and button mask.
func buttons(state uint16) pointer.Buttons {
	var b pointer.Buttons
	if state&xproto.KeyButMaskButton1 != 0 {
		b |= pointer.ButtonPrimary
	}
	if state&xproto.KeyButMaskButton2 != 0 {
		b |= pointer.ButtonTertiary
	}
	if state&xproto.KeyButMaskButton3 != 0 {
		b |= pointer.ButtonSecondary
	}
	return b
}

// modifiers converts the modifier bits of an X key and button mask.
// Mod1 is Alt, Mod2 Num Lock, Mod4 Super and Mod5 AltGr.
func modifiers(state uint16) key.Modifiers {
	var m key.Modifiers
	if state&xproto.KeyButMaskShift != 0 {
		m |= key.ModShift
	}
	if state&xproto.KeyButMaskLock != 0 {
		m |= key.ModCapsLock
	}
	if state&xproto.KeyButMaskControl != 0 {
		m |= key.ModCtrl
	}
	if state&xproto.KeyButMaskMod1 != 0 {
		m |= key.ModAlt
	}
	if state&xproto.KeyButMaskMod2 != 0 {
		m |= key.ModNumLock
	}
	if state&xproto.KeyButMaskMod4 != 0 {
		m |= key.ModSuper
	}
	if state&xproto.KeyButMaskMod5 != 0 {
		m |= key.ModAltGraph
	}
	return m
}

// keyModifier returns the modifier set by the key with the keysym
// name, if any. The state of key events does not yet include the
// key itself.
func keyModifier(name string) key.Modifiers {
	switch name {
	case "Shift_L", "Shift_R":
		return key.ModShift
	case "Control_L", "Control_R":
		return key.ModCtrl
	case "Alt_L", "Alt_R", "Meta_L", "Meta_R":
		return key.ModAlt
	case "Super_L", "Super_R":
		return key.ModSuper
	case "ISO_Level3_Shift":
		return key.ModAltGraph
	}
	return 0
}
