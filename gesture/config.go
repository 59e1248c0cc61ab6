// SPDX-License-Identifier: Unlicense OR MIT

package gesture

import (
	"time"

	"gioui.org/gesturekit/io/pointer"
	"gioui.org/gesturekit/unit"
)

// Config holds the timing and distance thresholds of gesture
// recognition. Zero fields take their default values.
type Config struct {
	// LongPressTimeout is how long a press must be held to become
	// a long click.
	LongPressTimeout time.Duration
	// DoubleClickTimeout is the longest time between a release and
	// the next press of a double click.
	DoubleClickTimeout time.Duration
	// TouchSlop is the distance a touch, stylus or eraser contact
	// may travel before the motion is taken as a drag.
	TouchSlop unit.Dp
	// MouseSlopRatio scales TouchSlop for mouse pointers.
	MouseSlopRatio float32
	// DoubleClickSlop is the largest distance between the two
	// presses of a double click.
	DoubleClickSlop unit.Dp
	// Metric converts dp thresholds to the pixels of pointer
	// positions.
	Metric unit.Metric
}

const (
	DefaultLongPressTimeout   = 500 * time.Millisecond
	DefaultDoubleClickTimeout = 300 * time.Millisecond
	DefaultTouchSlop          = unit.Dp(18)
	DefaultMouseSlopRatio     = 0.125
	DefaultDoubleClickSlop    = unit.Dp(100)
)

// DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

// Slop returns the touch slop in pixels for the device type s.
func (c Config) Slop(s pointer.Source) float32 {
	c = c.withDefaults()
	slop := c.Metric.Dp(c.TouchSlop)
	if s == pointer.Mouse {
		slop *= c.MouseSlopRatio
	}
	return slop
}

func (c Config) doubleClickSlop() float32 {
	c = c.withDefaults()
	return c.Metric.Dp(c.DoubleClickSlop)
}

func (c Config) withDefaults() Config {
	if c.LongPressTimeout == 0 {
		c.LongPressTimeout = DefaultLongPressTimeout
	}
	if c.DoubleClickTimeout == 0 {
		c.DoubleClickTimeout = DefaultDoubleClickTimeout
	}
	if c.TouchSlop == 0 {
		c.TouchSlop = DefaultTouchSlop
	}
	if c.MouseSlopRatio == 0 {
		c.MouseSlopRatio = DefaultMouseSlopRatio
	}
	if c.DoubleClickSlop == 0 {
		c.DoubleClickSlop = DefaultDoubleClickSlop
	}
	if c.Metric.PxPerDp == 0 {
		c.Metric.PxPerDp = 1
	}
	return c
}
