// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"log"

	"github.com/pkg/errors"

	"gioui.org/gesturekit/app"
	"gioui.org/gesturekit/driver/evdev"
	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/io/router"
)

func runEvdev(ctx context.Context, cancel context.CancelFunc, l *app.Loop, r *router.Router, sc *scene) error {
	if *device == "" {
		return errors.New("-device is required for the evdev driver")
	}
	dev, err := evdev.Open(*device, *grab)
	if err != nil {
		return err
	}
	defer dev.Close()
	// Relative motion stays within the layout.
	dev.Decoder.Bounds = f32.Rect(0, 0, windowWidth*cell.X, windowHeight*cell.Y)
	l.Frame = func() { sc.update(r) }
	go func() {
		if err := dev.Run(ctx, l); err != nil && ctx.Err() == nil {
			log.Print(err)
			cancel()
		}
	}()
	return wait(l.Run(ctx))
}
