// SPDX-License-Identifier: Unlicense OR MIT

//go:build !linux
// +build !linux

package main

import (
	"context"

	"github.com/pkg/errors"

	"gioui.org/gesturekit/app"
	"gioui.org/gesturekit/io/router"
)

func runEvdev(ctx context.Context, cancel context.CancelFunc, l *app.Loop, r *router.Router, sc *scene) error {
	return errors.New("the evdev driver is only available on Linux")
}
