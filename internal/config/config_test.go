// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"

	"gioui.org/gesturekit/gesture"
	"gioui.org/gesturekit/unit"
)

func TestDecode(t *testing.T) {
	const src = `
long_press_timeout = "650ms"
double_click_timeout = "0.25s"
touch_slop = 12.0
px_per_dp = 2.0
`
	cfg, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	want := gesture.Config{
		LongPressTimeout:   650 * time.Millisecond,
		DoubleClickTimeout: 250 * time.Millisecond,
		TouchSlop:          12,
		Metric:             unit.Metric{PxPerDp: 2},
	}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, tc := range []struct {
		label string
		src   string
		msg   string
	}{
		{"unknown key", "touch_slop = 1.0\nslop = 3.0\n", "unknown keys: slop"},
		{"bad duration", `long_press_timeout = "soon"`, "soon"},
		{"negative", "double_click_slop = -1.0", "double_click_slop is negative"},
		{"syntax", "touch_slop = ", ""},
	} {
		t.Run(tc.label, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.src))
			if err == nil {
				t.Fatal("no error")
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("error %q does not mention %q", err, tc.msg)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	def := gesture.DefaultConfig()
	if err := Encode(&buf, def); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `long_press_timeout = "500ms"`) {
		t.Errorf("unexpected encoding:\n%s", buf.String())
	}
	cfg, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != def {
		t.Errorf("decoded %+v, want %+v", cfg, def)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", FileName)
	if _, err := Load(path); !os.IsNotExist(errors.Cause(err)) {
		t.Errorf("Load of a missing file: %v", err)
	}
	if err := WriteDefault(path); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != gesture.DefaultConfig() {
		t.Errorf("loaded %+v", cfg)
	}
	// Existing files are left alone.
	if err := os.WriteFile(path, []byte("touch_slop = 4.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := WriteDefault(path); err != nil {
		t.Fatal(err)
	}
	if cfg, err := Load(path); err != nil || cfg.TouchSlop != 4 {
		t.Errorf("WriteDefault replaced an existing file: %+v, %v", cfg, err)
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("touch_slop = 4.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatal(err)
	}
	changes := make(chan gesture.Config, 16)
	w.OnChange = func(cfg gesture.Config) { changes <- cfg }
	w.OnError = func(error) {}
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.EventLoop()
	}()
	defer func() {
		w.Close()
		<-done
	}()

	if err := os.WriteFile(path, []byte("touch_slop = 9.0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changes:
			if cfg.TouchSlop == 9 {
				return
			}
		case <-timeout:
			t.Fatal("no reload after write")
		}
	}
}
