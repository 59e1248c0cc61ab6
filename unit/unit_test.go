// SPDX-License-Identifier: Unlicense OR MIT

package unit_test

import (
	"testing"

	"gioui.org/gesturekit/unit"
)

func TestMetric_Dp(t *testing.T) {
	m := unit.Metric{PxPerDp: 2}
	if got, exp := m.Dp(18), float32(36); got != exp {
		t.Errorf("Dp conversion mismatch %v != %v", exp, got)
	}
	if got, exp := m.PxToDp(m.Dp(5)), unit.Dp(5); got != exp {
		t.Errorf("PxToDp round trip mismatch %v != %v", exp, got)
	}
}

func TestMetric_Zero(t *testing.T) {
	var m unit.Metric
	if got := m.Dp(3); got != 3 {
		t.Errorf("zero Metric converted 3dp to %vpx", got)
	}
}
