// SPDX-License-Identifier: Unlicense OR MIT

// Command gesturedemo is an interactive demonstration of gesture
// recognition. The term driver draws clickable and draggable boxes in
// the terminal; the x11 and evdev drivers log recognized gestures.
//
// The recognition thresholds are read from a TOML file, by default
// config.toml in the application data directory, and reloaded when it
// changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"gioui.org/gesturekit/app"
	"gioui.org/gesturekit/driver/term"
	"gioui.org/gesturekit/driver/x11"
	"gioui.org/gesturekit/f32"
	"gioui.org/gesturekit/gesture"
	"gioui.org/gesturekit/internal/config"
	"gioui.org/gesturekit/io/router"
)

var (
	configFile = flag.String("config", "", "configuration file (default: config.toml in the data directory)")
	driverName = flag.String("driver", "term", "input driver: term, x11 or evdev")
	device     = flag.String("device", "", "evdev device node, such as /dev/input/event3")
	grab       = flag.Bool("grab", false, "grab the evdev device")
	logFile    = flag.String("log", "", "log file (default: gesturedemo.log in the data directory for the term driver, stderr otherwise)")
)

// cell is the pixel size of a terminal cell. Layouts for the x11 and
// evdev drivers use the same scale.
var cell = f32.Pt(8, 16)

const (
	windowWidth  = 80
	windowHeight = 30
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gesturedemo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := setupLog(); err != nil {
		return err
	}
	path, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var r router.Router
	l := app.NewLoop(&r)
	sc := newScene(cell)
	sc.build(&r, cfg)

	w, err := config.NewWatcher(path)
	if err != nil {
		return err
	}
	defer w.Close()
	w.OnChange = func(cfg gesture.Config) {
		log.Printf("reloaded %s", path)
		l.Do(func(r *router.Router) { sc.build(r, cfg) })
	}
	w.OnError = func(err error) { log.Print(err) }
	go w.EventLoop()

	switch *driverName {
	case "term":
		return runTerm(ctx, cancel, l, &r, sc)
	case "x11":
		return runX11(ctx, cancel, l, &r, sc)
	case "evdev":
		return runEvdev(ctx, cancel, l, &r, sc)
	default:
		return fmt.Errorf("unknown driver %q", *driverName)
	}
}

func runTerm(ctx context.Context, cancel context.CancelFunc, l *app.Loop, r *router.Router, sc *scene) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := scr.Init(); err != nil {
		return err
	}
	defer scr.Fini()
	scr.EnableMouse()
	sc.draw(scr)
	l.Frame = func() {
		sc.update(r)
		sc.draw(scr)
	}
	go term.Poll(ctx, scr, l, &term.Translator{CellSize: cell}, func(ev tcell.Event) {
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				cancel()
			}
		case *tcell.EventResize:
			scr.Sync()
			l.Do(func(*router.Router) {})
		}
	})
	return wait(l.Run(ctx))
}

func runX11(ctx context.Context, cancel context.CancelFunc, l *app.Loop, r *router.Router, sc *scene) error {
	win, err := x11.Open("Desktop Mouse Clicks", int(windowWidth*cell.X), int(windowHeight*cell.Y), l)
	if err != nil {
		return err
	}
	defer win.Close()
	l.Frame = func() { sc.update(r) }
	go func() {
		win.Run(ctx)
		// The window was closed.
		cancel()
	}()
	return wait(l.Run(ctx))
}

// wait filters the expected cancellation error of a loop.
func wait(err error) error {
	if err == context.Canceled {
		return nil
	}
	return err
}

func setupLog() error {
	path := *logFile
	if path == "" && *driverName == "term" {
		// Log output would corrupt the terminal screen.
		dir, err := app.DataDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
		path = filepath.Join(dir, "gesturedemo.log")
	}
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	return nil
}

// loadConfig loads the configuration file, creating the default file
// when no path is given.
func loadConfig() (string, gesture.Config, error) {
	path := *configFile
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return "", gesture.Config{}, err
		}
		if err := config.WriteDefault(p); err != nil {
			return "", gesture.Config{}, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	return path, cfg, err
}
