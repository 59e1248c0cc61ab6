// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"gioui.org/gesturekit/io/key"
	"gioui.org/gesturekit/io/pointer"
)

// Filter decides which pointer events may start a gesture. It maps
// device types to their requirements; events from device types
// missing in the map never qualify.
//
// A Filter without any variant is valid and inert.
type Filter map[pointer.Source]Variant

// Variant holds the requirements for one device type.
type Variant struct {
	// Button is the required button. The zero value accepts any
	// button, including none.
	Button pointer.Buttons
	// Modifiers, if set, must report true for the modifiers of
	// the event.
	Modifiers func(key.Modifiers) bool
}

// DefaultFilter accepts the primary mouse button and any touch,
// stylus and eraser contact, regardless of modifiers.
func DefaultFilter() Filter {
	return Filter{
		pointer.Mouse:  {Button: pointer.ButtonPrimary},
		pointer.Touch:  {},
		pointer.Stylus: {},
		pointer.Eraser: {},
	}
}

// Qualifies reports whether e may take part in a gesture. Every
// change of e must come from the same device type.
func (f Filter) Qualifies(e pointer.Event) bool {
	if len(e.Changes) == 0 {
		return false
	}
	src := e.Changes[0].Source
	if !e.Sources(src) {
		return false
	}
	v, ok := f[src]
	if !ok {
		return false
	}
	if v.Button != 0 && e.Button != v.Button {
		return false
	}
	return v.Modifiers == nil || v.Modifiers(e.Modifiers)
}

// Sources returns the device types accepted by f, in ascending order.
func (f Filter) Sources() []pointer.Source {
	srcs := maps.Keys(f)
	slices.Sort(srcs)
	return srcs
}

func (f Filter) String() string {
	var b strings.Builder
	for i, s := range f.Sources() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s.String())
		v := f[s]
		if v.Button != 0 {
			fmt.Fprintf(&b, "(%v)", v.Button)
		}
		if v.Modifiers != nil {
			b.WriteString("+mods")
		}
	}
	return b.String()
}

// RequireModifiers returns a modifier predicate that holds when
// every modifier in m is held. Other modifiers are ignored.
func RequireModifiers(m key.Modifiers) func(key.Modifiers) bool {
	return func(mods key.Modifiers) bool {
		return mods.Contain(m)
	}
}

// ExactModifiers returns a modifier predicate that holds when exactly
// the modifiers in m are held, ignoring the lock modifiers.
func ExactModifiers(m key.Modifiers) func(key.Modifiers) bool {
	const locks = key.ModCapsLock | key.ModNumLock | key.ModScrollLock
	return func(mods key.Modifiers) bool {
		return mods&^locks == m&^locks
	}
}
