// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package coordinator

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/loadbtn/internal/button"
	"github.com/matt-FFFFFF/loadbtn/internal/ctxlog"
	"github.com/matt-FFFFFF/loadbtn/internal/task"
)

// ErrNoCompletion is the failure recorded when a task ends without reporting a completion.
var ErrNoCompletion = errors.New("task ended without reporting completion")

// ErrNoHandle is the failure recorded when a task factory returns neither a handle nor an error.
var ErrNoHandle = errors.New("task factory returned no handle")

// Button is the part of the progress button the coordinator drives.
type Button interface {
	HandlePrimaryInput() bool
	SetState(next button.State) tea.Cmd
}

var _ Button = (*button.Model)(nil)

// FinishedMsg carries a task completion to the owner goroutine.
type FinishedMsg struct {
	ID         uint64
	Completion task.Completion
}

// Coordinator runs at most one task and keeps the button state in step with it.
type Coordinator struct {
	button   Button
	sink     task.Sink
	send     func(tea.Msg)
	reporter task.Reporter
	now      func() time.Time

	lastID   uint64
	inflight uint64
	name     string
	wg       sync.WaitGroup
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithReporter sets the reporter that receives task lifecycle events.
func WithReporter(r task.Reporter) Option {
	return func(c *Coordinator) {
		if r != nil {
			c.reporter = r
		}
	}
}

// WithClock replaces the wall clock used to stamp results and events.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a coordinator. send must be safe to call from any goroutine and must deliver
// the message to the owner, which then passes it to Update.
func New(b Button, sink task.Sink, send func(tea.Msg), opts ...Option) *Coordinator {
	if sink == nil {
		sink = task.SinkFunc(func(task.Result) {})
	}

	c := &Coordinator{
		button:   b,
		sink:     sink,
		send:     send,
		reporter: task.NewNullReporter(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// InFlight reports whether a task is running.
func (c *Coordinator) InFlight() bool {
	return c.inflight != 0
}

// Start handles a primary input on the button by dispatching a task from factory.
//
// The input is ignored while a task is in flight or when the button refuses it. When the
// factory fails the button passes through loading straight back to idle within this call and
// a failure result named task.UnknownName is delivered. Otherwise the button enters loading and
// the returned command drives its animation.
func (c *Coordinator) Start(ctx context.Context, factory task.Factory) tea.Cmd {
	if c.InFlight() {
		ctxlog.Debug(ctx, "input ignored, task already in flight", "task", c.name)
		return nil
	}

	if !c.button.HandlePrimaryInput() {
		return nil
	}

	c.lastID++
	id := c.lastID

	h, err := factory(ctx)
	if err == nil && h == nil {
		err = ErrNoHandle
	}

	if err != nil {
		c.dispatchFailed(ctx, id, err)
		return nil
	}

	c.inflight = id
	c.name = h.Name()
	cmd := c.button.SetState(button.StateLoading)

	ctxlog.Info(ctx, "task started", "task", c.name, "id", id)
	c.report(id, c.name, task.EventStarted, "started", task.EventData{})

	c.wg.Add(1)

	go c.watch(ctx, id, h)

	return cmd
}

func (c *Coordinator) dispatchFailed(ctx context.Context, id uint64, err error) {
	ctxlog.Warn(ctx, "task dispatch failed", "id", id, "error", err)

	// Clicked may only leave to Loading, so the failure passes through it without a frame.
	c.button.SetState(button.StateLoading)
	c.button.SetState(button.StateIdle)

	c.report(id, task.UnknownName, task.EventFailed, err.Error(), task.EventData{Error: err})
	c.sink.Deliver(task.Result{
		DisplayName: task.UnknownName,
		Outcome:     task.Failure,
		Detail:      err.Error(),
		FinishedAt:  c.now(),
	})
}

// watch waits for the handle to complete and signals the owner.
// Cancellation of ctx is reported as a failed completion.
func (c *Coordinator) watch(ctx context.Context, id uint64, h task.Handle) {
	defer c.wg.Done()

	var comp task.Completion

	select {
	case got, ok := <-h.Done():
		comp = got
		if !ok {
			comp = task.Completion{Name: h.Name(), Err: ErrNoCompletion}
		}
	case <-ctx.Done():
		comp = task.Completion{Name: h.Name(), Err: ctx.Err()}
	}

	c.Signal(id, comp)
}

// Signal hands a completion to the owner goroutine. It is safe to call from any goroutine.
func (c *Coordinator) Signal(id uint64, comp task.Completion) {
	c.send(FinishedMsg{ID: id, Completion: comp})
}

// Update applies a FinishedMsg on the owner goroutine. Other messages are ignored.
// Only the first completion of the in-flight task has any effect.
func (c *Coordinator) Update(ctx context.Context, msg tea.Msg) tea.Cmd {
	fin, ok := msg.(FinishedMsg)
	if !ok {
		return nil
	}

	if fin.ID == 0 || fin.ID != c.inflight {
		ctxlog.Debug(ctx, "stale or duplicate completion ignored", "id", fin.ID, "inflight", c.inflight)
		return nil
	}

	name := fin.Completion.Name
	if name == "" {
		name = c.name
	}

	c.inflight = 0
	c.name = ""

	result := task.Result{
		DisplayName: name,
		Outcome:     task.OutcomeOf(fin.Completion),
		FinishedAt:  c.now(),
	}

	if fin.Completion.Err != nil {
		result.Detail = fin.Completion.Err.Error()
	}

	cmd := c.button.SetState(button.StateIdle)

	if result.Outcome == task.Success {
		ctxlog.Info(ctx, "task completed", "task", name, "id", fin.ID)
		c.report(fin.ID, name, task.EventCompleted, "completed", task.EventData{})
	} else {
		ctxlog.Warn(ctx, "task failed", "task", name, "id", fin.ID, "detail", result.Detail)
		c.report(fin.ID, name, task.EventFailed, result.Detail, task.EventData{Error: fin.Completion.Err})
	}

	c.sink.Deliver(result)

	return cmd
}

// Wait blocks until every task watcher has signalled.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

func (c *Coordinator) report(id uint64, name string, typ task.EventType, msg string, data task.EventData) {
	c.reporter.Report(task.Event{
		TaskID:    strconv.FormatUint(id, 10),
		Name:      name,
		Type:      typ,
		Message:   msg,
		Timestamp: c.now(),
		Data:      data,
	})
}
