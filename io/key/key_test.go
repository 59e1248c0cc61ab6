// SPDX-License-Identifier: Unlicense OR MIT

package key

import (
	"testing"
)

func TestModifiersString(t *testing.T) {
	for _, tc := range []struct {
		mods Modifiers
		res  string
	}{
		{0, ""},
		{ModShift, "Shift"},
		{ModCtrl | ModShift, "Ctrl-Shift"},
		{ModAlt | ModCapsLock | ModFunction, "Alt-CapsLock-Fn"},
		{ModCommand | ModSuper, "⌘-Super"},
	} {
		if got := tc.mods.String(); got != tc.res {
			t.Errorf("%#x.String() = %q, want %q", uint32(tc.mods), got, tc.res)
		}
	}
}

func TestModifiersContain(t *testing.T) {
	m := ModCtrl | ModShift
	if !m.Contain(ModCtrl) || !m.Contain(ModCtrl|ModShift) {
		t.Error("Contain missed held modifiers")
	}
	if m.Contain(ModCtrl | ModAlt) {
		t.Error("Contain reported a modifier that is not held")
	}
	if !m.Contain(0) {
		t.Error("every set contains the empty set")
	}
}
