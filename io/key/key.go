// SPDX-License-Identifier: Unlicense OR MIT

// Package key implements keyboard modifier state and modifier events.
package key

import (
	"strings"
	"time"
)

// Modifiers is the set of keyboard modifiers held at one instant.
// Two snapshots are compared with ==.
type Modifiers uint32

// ModifiersEvent is generated when the set of held modifier keys
// changes without an accompanying pointer event.
type ModifiersEvent struct {
	Modifiers Modifiers
	// Time is when the event was received. The
	// timestamp is relative to an undefined base.
	Time time.Duration
}

const (
	// ModCtrl is the ctrl modifier key.
	ModCtrl Modifiers = 1 << iota
	// ModCommand is the command modifier key
	// found on Apple keyboards, or meta elsewhere.
	ModCommand
	// ModShift is the shift modifier key.
	ModShift
	// ModAlt is the alt modifier key, or the option
	// key on Apple keyboards.
	ModAlt
	// ModSuper is the "logo" modifier key, often
	// represented by a Windows logo.
	ModSuper
	// ModAltGraph is the AltGr key.
	ModAltGraph
	// ModCapsLock is set while caps lock is engaged.
	ModCapsLock
	// ModNumLock is set while num lock is engaged.
	ModNumLock
	// ModScrollLock is set while scroll lock is engaged.
	ModScrollLock
	// ModFunction is the Fn key.
	ModFunction
)

var modNames = [...]string{
	"Ctrl",
	"⌘",
	"Shift",
	"Alt",
	"Super",
	"AltGr",
	"CapsLock",
	"NumLock",
	"ScrollLock",
	"Fn",
}

// Contain reports whether m contains all modifiers
// in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

func (m Modifiers) String() string {
	var strs []string
	for i, name := range modNames {
		if m.Contain(1 << i) {
			strs = append(strs, name)
		}
	}
	return strings.Join(strs, "-")
}

func (ModifiersEvent) ImplementsEvent() {}
