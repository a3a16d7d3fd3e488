// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package task

import (
	"time"
)

// Event is a real-time update about a task.
type Event struct {
	TaskID    string    // Identifier of the task within the process
	Name      string    // Display name of the task
	Type      EventType // What happened
	Message   string    // Human-readable status message
	Timestamp time.Time // When the event occurred
	Data      EventData // Type-specific data
}

// EventType represents the type of task event.
type EventType int

const (
	// EventStarted indicates a task has been dispatched.
	EventStarted EventType = iota
	// EventProgress indicates the task made progress.
	EventProgress
	// EventCompleted indicates successful completion.
	EventCompleted
	// EventFailed indicates the task failed or could not be dispatched.
	EventFailed
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventStarted:
		return "started"
	case EventProgress:
		return "progress"
	case EventCompleted:
		return "completed"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EventData contains type-specific information for events.
type EventData struct {
	// For EventProgress
	BytesDone  int64 // Bytes transferred so far
	BytesTotal int64 // Expected total, zero when unknown

	// For EventFailed
	Error error
}

// Fraction returns BytesDone/BytesTotal clamped to [0, 1], or -1 when the total is unknown.
func (d EventData) Fraction() float64 {
	if d.BytesTotal <= 0 {
		return -1
	}

	return min(max(float64(d.BytesDone)/float64(d.BytesTotal), 0), 1)
}

// Reporter is the interface for sending events.
type Reporter interface {
	// Report sends an event. Implementations must not block.
	Report(event Event)
	// Close signals that no more events will be sent.
	Close()
}

// Listener receives events.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(Event)

// OnEvent implements Listener.
func (f ListenerFunc) OnEvent(e Event) { f(e) }

// NullReporter is a no-op Reporter.
type NullReporter struct{}

// Report implements Reporter.
func (NullReporter) Report(Event) {}

// Close implements Reporter.
func (NullReporter) Close() {}

// NewNullReporter creates a new NullReporter.
func NewNullReporter() Reporter {
	return NullReporter{}
}
