// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app runs gesture detection for a program.

A Loop owns a router.Router and serializes everything that touches
it: events from input drivers, functions scheduled with Do and the
expiry of handler deadlines. Gesture callbacks therefore run on the
goroutine calling Run, one at a time.

For example:

	var r router.Router
	r.Add(f32.Rect(0, 0, 100, 100), &gesture.Detector{OnClick: click})
	l := app.NewLoop(&r)
	go driver.Run(ctx, l)
	if err := l.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal(err)
	}
*/
package app

import (
	"os"
	"path/filepath"
)

// ID is the application id. It names the configuration directory
// returned by DataDir.
//
// ID is set manually with the -X linker flag. For example,
//
//	go build -ldflags="-X 'gioui.org/gesturekit/app.ID=gesturedemo'" .
//
// The default value of ID is filepath.Base(os.Args[0]).
var ID = ""

// DataDir returns a path to use for application-specific
// configuration data, based on os.UserConfigDir and ID.
func DataDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ID), nil
}

func init() {
	if ID == "" {
		ID = filepath.Base(os.Args[0])
	}
}
