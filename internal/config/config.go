// SPDX-License-Identifier: Unlicense OR MIT

// Package config reads and writes gesture thresholds as TOML.
//
// A configuration file holds any subset of these keys:
//
//	long_press_timeout = "500ms"
//	double_click_timeout = "300ms"
//	touch_slop = 18.0        # dp
//	mouse_slop_ratio = 0.125
//	double_click_slop = 100.0 # dp
//	px_per_dp = 1.0
//
// Missing keys take their defaults. Unknown keys are an error.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"gioui.org/gesturekit/app"
	"gioui.org/gesturekit/gesture"
	"gioui.org/gesturekit/unit"
)

// FileName is the name of the configuration file in the data
// directory.
const FileName = "config.toml"

type file struct {
	LongPressTimeout   duration `toml:"long_press_timeout"`
	DoubleClickTimeout duration `toml:"double_click_timeout"`
	TouchSlop          float64  `toml:"touch_slop"`
	MouseSlopRatio     float64  `toml:"mouse_slop_ratio"`
	DoubleClickSlop    float64  `toml:"double_click_slop"`
	PxPerDp            float64  `toml:"px_per_dp"`
}

// duration is a time.Duration written as a Go duration string.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Path returns the default configuration path, in the application
// data directory.
func Path() (string, error) {
	dir, err := app.DataDir()
	if err != nil {
		return "", errors.Wrap(err, "config")
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the configuration file at path.
func Load(path string) (gesture.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return gesture.Config{}, errors.Wrap(err, "config")
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return gesture.Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Decode reads a configuration from r.
func Decode(r io.Reader) (gesture.Config, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return gesture.Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return gesture.Config{}, errors.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := f.validate(); err != nil {
		return gesture.Config{}, err
	}
	return gesture.Config{
		LongPressTimeout:   time.Duration(f.LongPressTimeout),
		DoubleClickTimeout: time.Duration(f.DoubleClickTimeout),
		TouchSlop:          unit.Dp(f.TouchSlop),
		MouseSlopRatio:     float32(f.MouseSlopRatio),
		DoubleClickSlop:    unit.Dp(f.DoubleClickSlop),
		Metric:             unit.Metric{PxPerDp: float32(f.PxPerDp)},
	}, nil
}

// Encode writes cfg to w.
func Encode(w io.Writer, cfg gesture.Config) error {
	f := file{
		LongPressTimeout:   duration(cfg.LongPressTimeout),
		DoubleClickTimeout: duration(cfg.DoubleClickTimeout),
		TouchSlop:          float64(cfg.TouchSlop),
		MouseSlopRatio:     float64(cfg.MouseSlopRatio),
		DoubleClickSlop:    float64(cfg.DoubleClickSlop),
		PxPerDp:            float64(cfg.Metric.PxPerDp),
	}
	return errors.Wrap(toml.NewEncoder(w).Encode(f), "config")
}

// WriteDefault writes the default configuration to path unless a
// file already exists there.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, "config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrap(err, "config")
	}
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	if err := Encode(out, gesture.DefaultConfig()); err != nil {
		out.Close()
		return err
	}
	return errors.Wrap(out.Close(), "config")
}

func (f *file) validate() error {
	switch {
	case f.LongPressTimeout < 0:
		return errors.New("long_press_timeout is negative")
	case f.DoubleClickTimeout < 0:
		return errors.New("double_click_timeout is negative")
	case f.TouchSlop < 0:
		return errors.New("touch_slop is negative")
	case f.MouseSlopRatio < 0:
		return errors.New("mouse_slop_ratio is negative")
	case f.DoubleClickSlop < 0:
		return errors.New("double_click_slop is negative")
	case f.PxPerDp < 0:
		return errors.New("px_per_dp is negative")
	}
	return nil
}
