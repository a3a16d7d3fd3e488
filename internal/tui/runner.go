// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/loadbtn/internal/config"
	"github.com/matt-FFFFFF/loadbtn/internal/task"
	"github.com/matt-FFFFFF/loadbtn/internal/transfer"
)

// TUIReporter implements task.Reporter and forwards events as EventMsg values. Report only
// buffers the event; a listener goroutine hands it to the program, so a busy program never
// holds up the task that reports.
type TUIReporter struct {
	*task.ChannelReporter
	once sync.Once
}

var _ task.Reporter = (*TUIReporter)(nil)

// NewTUIReporter creates a reporter delivering events through send. A nil send buffers
// events until one is attached.
func NewTUIReporter(ctx context.Context, send func(tea.Msg)) *TUIReporter {
	tr := &TUIReporter{
		ChannelReporter: task.NewChannelReporter(ctx, task.DefaultBufferSize),
	}

	if send != nil {
		tr.attach(send)
	}

	return tr
}

func (tr *TUIReporter) attach(send func(tea.Msg)) {
	tr.once.Do(func() {
		tr.Listen(task.ListenerFunc(func(e task.Event) {
			send(EventMsg{Event: e})
		}))
	})
}

// Runner owns the bubbletea program and wires the download source, the coordinator and the
// reporter to it.
type Runner struct {
	ctx      context.Context
	model    *Model
	program  *tea.Program
	reporter *TUIReporter
	watcher  *config.Watcher
	cancel   context.CancelFunc
	mutex    sync.Mutex
}

// NewRunner creates a runner for cfg. Results are also delivered to sinks.
// Downloads are started with a context derived from ctx that is cancelled when the program exits.
func NewRunner(ctx context.Context, cfg *config.Config, sinks []task.Sink, opts ...tea.ProgramOption) *Runner {
	ctx, cancel := context.WithCancel(ctx)
	reporter := NewTUIReporter(ctx, nil)
	source := transfer.NewSource(cfg.Destination, transfer.WithReporter(reporter))

	model := NewModel(ctx, cfg, source, WithSinks(sinks...), WithReporter(reporter))

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(model, opts...)

	model.SetSender(program.Send)
	reporter.attach(program.Send)

	return &Runner{
		ctx:      ctx,
		model:    model,
		program:  program,
		reporter: reporter,
		cancel:   cancel,
	}
}

// GetReporter returns the reporter feeding the program.
func (r *Runner) GetReporter() task.Reporter {
	return r.reporter
}

// Model returns the program model.
func (r *Runner) Model() *Model {
	return r.model
}

// WatchConfig reloads the choice list while the program runs whenever file changes.
// Call it before Run.
func (r *Runner) WatchConfig(file string) error {
	w, err := config.Watch(r.ctx, file, func(cfg *config.Config, err error) {
		r.program.Send(ConfigMsg{Config: cfg, Err: err})
	})
	if err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.watcher != nil {
		r.watcher.Close() //nolint:errcheck
	}

	r.watcher = w

	return nil
}

// Run runs the program until the user quits. A download still in flight is cancelled.
// The most recent result, if any, is returned.
func (r *Runner) Run() (*task.Result, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, err := r.program.Run()

	if r.watcher != nil {
		r.watcher.Close() //nolint:errcheck
		r.watcher = nil
	}

	r.reporter.Close()
	r.cancel()
	r.model.Coordinator().Wait()

	if res, ok := r.model.LastResult(); ok {
		return &res, err
	}

	return nil, err
}
