// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"io"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/gesture"
	"gioui.org/gesturekit/io/key"
	"gioui.org/gesturekit/io/pointer"
)

// script is a trace file: regions with their detectors, and the
// input events to replay against them.
type script struct {
	Regions []regionSpec `toml:"region"`
	Events  []eventSpec  `toml:"event"`
}

type regionSpec struct {
	Name string     `toml:"name"`
	Rect [4]float32 `toml:"rect"`
	// Gestures lists the callbacks to install: click, double_click,
	// long_click and drag.
	Gestures []string `toml:"gestures"`
	// Sources restricts the filter to the named device types. The
	// default filter applies if empty.
	Sources []string `toml:"sources"`
	// Button is the mouse button of the filter.
	Button string `toml:"button"`
	// Modifiers must be held for a press to qualify.
	Modifiers []string `toml:"modifiers"`
	// ExactModifiers requires exactly Modifiers.
	ExactModifiers bool `toml:"exact_modifiers"`
}

type eventSpec struct {
	T time.Duration `toml:"t"`
	// Kind is one of press, release, move, scroll, cancel, modifiers
	// and tick.
	Kind      string     `toml:"kind"`
	Source    string     `toml:"source"`
	ID        int        `toml:"id"`
	X         float32    `toml:"x"`
	Y         float32    `toml:"y"`
	Button    string     `toml:"button"`
	Modifiers []string   `toml:"modifiers"`
	Scroll    [2]float32 `toml:"scroll"`
}

var (
	kinds = map[string]pointer.Kind{
		"press":   pointer.Press,
		"release": pointer.Release,
		"move":    pointer.Move,
		"scroll":  pointer.Scroll,
		"cancel":  pointer.Cancel,
	}
	sources = map[string]pointer.Source{
		"mouse":  pointer.Mouse,
		"touch":  pointer.Touch,
		"stylus": pointer.Stylus,
		"eraser": pointer.Eraser,
	}
	buttons = map[string]pointer.Buttons{
		"primary":   pointer.ButtonPrimary,
		"secondary": pointer.ButtonSecondary,
		"tertiary":  pointer.ButtonTertiary,
		"back":      pointer.ButtonBack,
		"forward":   pointer.ButtonForward,
	}
	modifiers = map[string]key.Modifiers{
		"ctrl":    key.ModCtrl,
		"command": key.ModCommand,
		"shift":   key.ModShift,
		"alt":     key.ModAlt,
		"super":   key.ModSuper,
		"altgr":   key.ModAltGraph,
		"fn":      key.ModFunction,
	}
	gestureNames = []string{"click", "double_click", "long_click", "drag"}
)

func decodeScript(r io.Reader) (*script, error) {
	s := new(script)
	md, err := toml.NewDecoder(r).Decode(s)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("unknown keys: %v", undecoded)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *script) validate() error {
	for i, r := range s.Regions {
		if r.Name == "" {
			return errors.Errorf("region %d: missing name", i)
		}
		if _, err := r.filter(); err != nil {
			return errors.Wrapf(err, "region %s", r.Name)
		}
		for _, g := range r.Gestures {
			if !slices.Contains(gestureNames, g) {
				return errors.Errorf("region %s: unknown gesture %q", r.Name, g)
			}
		}
	}
	var last time.Duration
	for i, e := range s.Events {
		if e.T < last {
			return errors.Errorf("event %d: time %v before %v", i, e.T, last)
		}
		last = e.T
		if e.Kind == "modifiers" || e.Kind == "tick" {
			continue
		}
		if _, ok := kinds[e.Kind]; !ok {
			return errors.Errorf("event %d: unknown kind %q", i, e.Kind)
		}
		if _, err := e.source(); err != nil {
			return errors.Wrapf(err, "event %d", i)
		}
		if _, err := lookup(buttons, e.Button); err != nil {
			return errors.Wrapf(err, "event %d", i)
		}
	}
	return nil
}

func (r regionSpec) rect() f32.Rectangle {
	return f32.Rect(r.Rect[0], r.Rect[1], r.Rect[2], r.Rect[3])
}

func (r regionSpec) filter() (gesture.Filter, error) {
	btn, err := lookup(buttons, r.Button)
	if err != nil {
		return nil, err
	}
	mods, err := parseModifiers(r.Modifiers)
	if err != nil {
		return nil, err
	}
	if len(r.Sources) == 0 && btn == 0 && len(r.Modifiers) == 0 && !r.ExactModifiers {
		return nil, nil
	}
	var pred func(key.Modifiers) bool
	switch {
	case r.ExactModifiers:
		pred = gesture.ExactModifiers(mods)
	case mods != 0:
		pred = gesture.RequireModifiers(mods)
	}
	srcs := r.Sources
	if len(srcs) == 0 {
		srcs = []string{"mouse", "touch", "stylus", "eraser"}
	}
	f := make(gesture.Filter)
	for _, name := range srcs {
		src, ok := sources[name]
		if !ok {
			return nil, errors.Errorf("unknown source %q", name)
		}
		v := gesture.Variant{Modifiers: pred}
		if src == pointer.Mouse {
			v.Button = btn
			if v.Button == 0 {
				v.Button = pointer.ButtonPrimary
			}
		}
		f[src] = v
	}
	return f, nil
}

func (e eventSpec) source() (pointer.Source, error) {
	if e.Source == "" {
		return pointer.Mouse, nil
	}
	src, ok := sources[e.Source]
	if !ok {
		return 0, errors.Errorf("unknown source %q", e.Source)
	}
	return src, nil
}

func parseModifiers(names []string) (key.Modifiers, error) {
	var m key.Modifiers
	for _, n := range names {
		mod, ok := modifiers[strings.ToLower(n)]
		if !ok {
			return 0, errors.Errorf("unknown modifier %q", n)
		}
		m |= mod
	}
	return m, nil
}

// lookup returns the value for name, or the zero value for the empty
// name.
func lookup[T any](m map[string]T, name string) (T, error) {
	var zero T
	if name == "" {
		return zero, nil
	}
	v, ok := m[strings.ToLower(name)]
	if !ok {
		return zero, errors.Errorf("unknown name %q", name)
	}
	return v, nil
}
