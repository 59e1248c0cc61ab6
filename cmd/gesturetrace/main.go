// SPDX-License-Identifier: Unlicense OR MIT

// Command gesturetrace replays a recorded input sequence against
// gesture detectors and prints the recognized gestures.
//
// Usage:
//
//	gesturetrace [-config config.toml] [-png out.png] [-v] trace.toml
//
// A trace file declares regions and events:
//
//	[[region]]
//	name = "button"
//	rect = [0, 0, 100, 40]
//	gestures = ["click", "double_click", "long_click"]
//
//	[[event]]
//	t = "0s"
//	kind = "press"
//	x = 10
//	y = 10
//
// Events are replayed in order with their timestamps. An event of
// kind "tick" advances time without input, firing expired deadlines.
package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/muesli/ansi"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"

	"gioui.org/gesturekit/gesture"
	"gioui.org/gesturekit/internal/config"
)

var (
	configFile = flag.String("config", "", "recognition thresholds (default: built-in defaults)")
	pngFile    = flag.String("png", "", "write a plot of the pointer paths to this file")
	verbose    = flag.Bool("v", false, "print the interaction records of every region")
)

var gestureColors = map[string]string{
	"click":        "#5fafff",
	"double_click": "#af87ff",
	"long_click":   "#ffaf00",
	"drag_start":   "#87d787",
	"drag":         "#5f8787",
	"drag_end":     "#87d787",
	"drag_cancel":  "#ff5f5f",
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: gesturetrace [flags] trace.toml\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "gesturetrace: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	cfg := gesture.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			return err
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	s, err := decodeScript(f)
	if err != nil {
		return errors.Wrap(err, path)
	}
	res, err := replay(s, cfg)
	if err != nil {
		return errors.Wrap(err, path)
	}
	out := termenv.NewOutput(os.Stdout)
	printRecords(out, res)
	if *verbose {
		printInteractions(out, s, res)
	}
	if *pngFile != "" {
		return savePlot(*pngFile, plot(s, res))
	}
	return nil
}

// gestureWidth is the column width of gesture names, escape sequences
// excluded.
const gestureWidth = 13

func printRecords(out *termenv.Output, res *result) {
	for _, r := range res.Records {
		g := out.String(r.Gesture)
		if c, ok := gestureColors[r.Gesture]; ok {
			g = g.Foreground(out.Color(c))
		}
		line := fmt.Sprintf("%10v  %-12s %s", r.Time, r.Region, g)
		if r.Detail != "" {
			pad := gestureWidth - ansi.PrintableRuneWidth(g.String())
			if pad < 1 {
				pad = 1
			}
			line += strings.Repeat(" ", pad) + out.String(r.Detail).Faint().String()
		}
		fmt.Fprintln(out, line)
	}
}

func printInteractions(w io.Writer, s *script, res *result) {
	for _, r := range s.Regions {
		fmt.Fprintf(w, "%s:\n", r.Name)
		for _, i := range res.Interactions[r.Name] {
			fmt.Fprintf(w, "\t%T %+v\n", i, i)
		}
	}
}

func savePlot(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writePNG(f, img); err != nil {
		f.Close()
		return errors.Wrap(err, path)
	}
	return f.Close()
}
