// SPDX-License-Identifier: Unlicense OR MIT

package f32

import (
	"math"
	"testing"
)

func TestLenNormalize(t *testing.T) {
	for _, tc := range []struct {
		p   Point
		len float32
	}{
		{Pt(3, 4), 5},
		{Pt(-6, 8), 10},
		{Pt(0, 0), 0},
	} {
		if got := tc.p.Len(); got != tc.len {
			t.Errorf("%v.Len() = %v, want %v", tc.p, got, tc.len)
		}
		n := tc.p.Normalize()
		if tc.len == 0 {
			if n != (Point{}) {
				t.Errorf("%v.Normalize() = %v, want zero", tc.p, n)
			}
			continue
		}
		if l := n.Len(); math.Abs(float64(l-1)) > 1e-6 {
			t.Errorf("%v.Normalize() has length %v", tc.p, l)
		}
	}
}

func TestRectIn(t *testing.T) {
	r := Rect(10, 10, 0, 0)
	if r.Min != Pt(0, 0) || r.Max != Pt(10, 10) {
		t.Fatalf("Rect did not canonicalize: %v", r)
	}
	if !Pt(0, 0).In(r) {
		t.Error("Min should be inside")
	}
	if Pt(10, 5).In(r) {
		t.Error("Max.X should be outside")
	}
	if !r.Add(Pt(5, 5)).Size().In(Rect(0, 0, 11, 11)) {
		t.Error("translated size mismatch")
	}
	if !(Rectangle{}).Empty() {
		t.Error("zero Rectangle should be empty")
	}
}
