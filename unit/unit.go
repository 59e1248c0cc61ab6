// SPDX-License-Identifier: Unlicense OR MIT

/*
Package unit implements device independent units.

Device independent pixel, or dp, is the unit for distances independent of
the underlying display device. Gesture thresholds such as touch slop are
specified in dp and converted to pixels with a Metric before they are
compared with pointer positions.

Pixels, or px, is the unit for display dependent pixels. Their
size vary between platforms and displays.
*/
package unit

import "fmt"

// Metric converts Dp values to pixels.
type Metric struct {
	// PxPerDp is the device-dependent density for dp.
	PxPerDp float32
}

// Dp represents device independent pixels. 1 dp will
// have the same apparent size across platforms and
// display resolutions.
type Dp float32

// Dp converts v to pixels. The zero Metric converts
// one dp to one pixel.
func (c Metric) Dp(v Dp) float32 {
	return float32(v) * nonZero(c.PxPerDp)
}

// PxToDp converts v px to dp.
func (c Metric) PxToDp(v float32) Dp {
	return Dp(v / nonZero(c.PxPerDp))
}

func (v Dp) String() string {
	return fmt.Sprintf("%gdp", float32(v))
}

func nonZero(v float32) float32 {
	if v == 0. {
		return 1
	}
	return v
}
