// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/loadbtn/internal/button"
	"github.com/matt-FFFFFF/loadbtn/internal/canvas"
	"github.com/matt-FFFFFF/loadbtn/internal/config"
	"github.com/matt-FFFFFF/loadbtn/internal/coordinator"
	"github.com/matt-FFFFFF/loadbtn/internal/task"
)

const (
	// EmptySelectionToast is shown when the button is pressed with nothing selected.
	EmptySelectionToast = "Please select the file to download"
	// ResultToast is shown when a download finishes.
	ResultToast = "The download has finished"
	// ReloadedToast is shown when the choices were reloaded from the configuration file.
	ReloadedToast = "Configuration reloaded"

	toastDuration  = 2 * time.Second
	maxButtonWidth = 60
	sideMargin     = 2
)

// Downloader creates download tasks for configured choices.
type Downloader interface {
	Factory(choice config.Choice) task.Factory
}

// EventMsg wraps a task event for the tea framework.
type EventMsg struct {
	Event task.Event
}

// ConfigMsg carries a reloaded configuration, or the reason it could not be loaded.
type ConfigMsg struct {
	Config *config.Config
	Err    error
}

type toastExpiredMsg struct {
	id int
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	cfg       *config.Config
	downloads Downloader
	button    *button.Model
	coord     *coordinator.Coordinator
	send      func(tea.Msg)

	cursor   int
	selected int
	toast    string
	toastID  int
	progress *task.EventData
	last     *task.Result

	width    int
	height   int
	quitting bool

	keys   keyMap
	help   help.Model
	styles *Styles
}

// ModelOption configures a Model.
type ModelOption func(*modelOptions)

type modelOptions struct {
	sinks     []task.Sink
	reporter  task.Reporter
	buttonOps []button.Option
}

// WithSinks adds sinks that receive every result in addition to the detail panel.
func WithSinks(sinks ...task.Sink) ModelOption {
	return func(o *modelOptions) {
		o.sinks = append(o.sinks, sinks...)
	}
}

// WithReporter sets the reporter that receives task lifecycle events.
func WithReporter(r task.Reporter) ModelOption {
	return func(o *modelOptions) {
		o.reporter = r
	}
}

// WithButtonOptions passes options to the progress button.
func WithButtonOptions(opts ...button.Option) ModelOption {
	return func(o *modelOptions) {
		o.buttonOps = append(o.buttonOps, opts...)
	}
}

// NewModel creates a new TUI model. Completions are delivered through the function set with
// SetSender, which must be set before the first download starts.
func NewModel(ctx context.Context, cfg *config.Config, downloads Downloader, opts ...ModelOption) *Model {
	o := &modelOptions{}
	for _, opt := range opts {
		opt(o)
	}

	m := &Model{
		ctx:       ctx,
		cfg:       cfg,
		downloads: downloads,
		selected:  -1,
		keys:      defaultKeyMap(),
		help:      help.New(),
		styles:    NewStyles(),
	}

	m.button = button.New(ctx, append(cfg.ButtonOptions(), o.buttonOps...)...)
	m.button.OnResize(m.button.IntrinsicSize(canvas.TerminalMeasurer{}))

	sinks := append(task.MultiSink{task.SinkFunc(m.showResult)}, o.sinks...)
	m.coord = coordinator.New(m.button, sinks, m.deliver, coordinator.WithReporter(o.reporter))

	return m
}

// SetSender sets the function used to hand completions back to the program.
func (m *Model) SetSender(send func(tea.Msg)) {
	m.send = send
}

func (m *Model) deliver(msg tea.Msg) {
	if m.send != nil {
		m.send(msg)
	}
}

// Button returns the progress button.
func (m *Model) Button() *button.Model {
	return m.button
}

// Coordinator returns the task coordinator.
func (m *Model) Coordinator() *coordinator.Coordinator {
	return m.coord
}

// Selected returns the selected choice, if any.
func (m *Model) Selected() (config.Choice, bool) {
	if m.selected < 0 || m.selected >= len(m.cfg.Choices) {
		return config.Choice{}, false
	}

	return m.cfg.Choices[m.selected], true
}

// LastResult returns the most recent result, if any.
func (m *Model) LastResult() (task.Result, bool) {
	if m.last == nil {
		return task.Result{}, false
	}

	return *m.last, true
}

// Toast returns the message currently shown in the status line.
func (m *Model) Toast() string {
	return m.toast
}

// applyConfig replaces the choice list. The selection follows the selected choice by name.
// Destination and button appearance keep their startup values.
func (m *Model) applyConfig(cfg *config.Config) {
	name := ""
	if ch, ok := m.Selected(); ok {
		name = ch.Name
	}

	next := *m.cfg
	next.Choices = cfg.Choices
	m.cfg = &next

	m.selected = -1

	for i, ch := range m.cfg.Choices {
		if ch.Name == name {
			m.selected = i
		}
	}

	m.cursor = max(min(m.cursor, len(m.cfg.Choices)-1), 0)
}

func (m *Model) showResult(r task.Result) {
	m.last = &r
	m.progress = nil
}

// resizeButton fits the button into the window: as wide as the window allows, between its
// intrinsic width and maxButtonWidth.
func (m *Model) resizeButton() {
	minW, h := m.button.IntrinsicSize(canvas.TerminalMeasurer{})
	w := min(m.width-2*sideMargin, maxButtonWidth) //nolint:mnd
	m.button.OnResize(max(w, minW), h)
}
