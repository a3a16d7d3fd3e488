// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/matt-FFFFFF/loadbtn/internal/ctxlog"
)

// ErrWatchConfigFile is returned when the configuration file cannot be watched.
var ErrWatchConfigFile = errors.New("failed to watch configuration file")

// Watcher reloads a local configuration file each time it is written.
type Watcher struct {
	fw       *fsnotify.Watcher
	file     string
	onChange func(*Config, error)
	done     chan struct{}
	once     sync.Once
}

// Watch calls onChange with the reloaded configuration, or the load error, whenever file is
// written or replaced. onChange runs on the watcher goroutine.
func Watch(ctx context.Context, file string, onChange func(*Config, error)) (*Watcher, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, errors.Join(ErrWatchConfigFile, err)
	}

	if _, err := os.Stat(abs); err != nil {
		return nil, errors.Join(ErrWatchConfigFile, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Join(ErrWatchConfigFile, err)
	}

	// Editors often replace the file, so watch its directory.
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close() //nolint:errcheck
		return nil, errors.Join(ErrWatchConfigFile, err)
	}

	w := &Watcher{
		fw:       fw,
		file:     abs,
		onChange: onChange,
		done:     make(chan struct{}),
	}

	go w.loop(ctx)

	return w, nil
}

// Close stops watching. No onChange call is made after Close returns.
func (w *Watcher) Close() error {
	var err error

	w.once.Do(func() {
		err = w.fw.Close()
		<-w.done
	})

	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.file {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			ctxlog.Debug(ctx, "configuration changed", "path", w.file, "op", event.Op.String())

			cfg, err := Load(w.file)
			w.onChange(cfg, err)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}

			ctxlog.Warn(ctx, "configuration watcher error", "error", err)
		}
	}
}
