// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// UnknownName is the display name used when a task never started and so has no name.
const UnknownName = "unknown"

// ErrUnknownOutcome is returned when an outcome cannot be parsed.
var ErrUnknownOutcome = errors.New("unknown outcome")

// Completion is the terminal report of a task.
// Anything other than Success, including cancellation, counts as a failure.
type Completion struct {
	Success bool
	Name    string
	Err     error
}

// Handle is a running task.
type Handle interface {
	// Name is the display name of the task.
	Name() string
	// Done yields exactly one Completion when the task ends.
	Done() <-chan Completion
}

// Factory starts a task. An error means the task could not be dispatched at all.
type Factory func(ctx context.Context) (Handle, error)

// Outcome is the terminal classification of a task.
type Outcome int

const (
	// Failure is any outcome that is not a success.
	Failure Outcome = iota
	// Success means the task completed as intended.
	Success
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	if o == Success {
		return "Success"
	}

	return "Fail"
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "success":
		*o = Success
	case "fail", "failure":
		*o = Failure
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutcome, string(b))
	}

	return nil
}

// OutcomeOf classifies a completion.
func OutcomeOf(c Completion) Outcome {
	if c.Success {
		return Success
	}

	return Failure
}

// Result is the record delivered once per finished task.
type Result struct {
	DisplayName string    `yaml:"name"`
	Outcome     Outcome   `yaml:"outcome"`
	Detail      string    `yaml:"detail,omitempty"`
	FinishedAt  time.Time `yaml:"finished_at"`
}

// Sink consumes results.
type Sink interface {
	Deliver(Result)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Result)

// Deliver implements Sink.
func (f SinkFunc) Deliver(r Result) { f(r) }

// MultiSink delivers every result to each of its sinks in order. Nil entries are skipped.
type MultiSink []Sink

// Deliver implements Sink.
func (ms MultiSink) Deliver(r Result) {
	for _, s := range ms {
		if s != nil {
			s.Deliver(r)
		}
	}
}

// funcHandle is a Handle backed by a goroutine running a function.
type funcHandle struct {
	name string
	done chan Completion
}

func (h *funcHandle) Name() string            { return h.name }
func (h *funcHandle) Done() <-chan Completion { return h.done }

// Go runs fn in a new goroutine and returns its Handle.
// A nil error from fn is a success; the context is passed through so fn can observe cancellation.
func Go(ctx context.Context, name string, fn func(ctx context.Context) error) Handle {
	h := &funcHandle{
		name: name,
		done: make(chan Completion, 1),
	}

	go func() {
		defer close(h.done)

		err := fn(ctx)
		h.done <- Completion{Success: err == nil, Name: name, Err: err}
	}()

	return h
}
