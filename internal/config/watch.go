// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"gioui.org/gesturekit/gesture"
)

// Watcher reloads a configuration file when it changes.
type Watcher struct {
	// OnChange receives the reloaded configuration.
	OnChange func(cfg gesture.Config)
	// OnError receives load and watch errors.
	OnError func(err error)

	path string
	w    *fsnotify.Watcher
}

// NewWatcher watches the configuration file at path. The directory
// is watched rather than the file, to follow editors that replace
// files on save.
func NewWatcher(path string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "config watch")
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, errors.Wrap(err, "config watch")
	}
	return &Watcher{path: path, w: w}, nil
}

// Close stops the watcher. EventLoop returns after Close.
func (w *Watcher) Close() error {
	return w.w.Close() // will close w.w.{Events,Errors} chans
}

// EventLoop runs the callbacks until the watcher is closed.
func (w *Watcher) EventLoop() {
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				w.onError(err)
				continue
			}
			if w.OnChange != nil {
				w.OnChange(cfg)
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.onError(errors.Wrap(err, "config watch"))
		}
	}
}

func (w *Watcher) onError(err error) {
	if w.OnError != nil {
		w.OnError(err)
	}
}
