// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package task

import (
	"context"
	"sync"
)

// DefaultBufferSize is the event buffer used when a non-positive size is requested.
const DefaultBufferSize = 64

// ChannelReporter implements Reporter using a channel.
// Reports never block: when the buffer is full or the reporter is closed the event is dropped.
type ChannelReporter struct {
	mu     sync.RWMutex
	ch     chan Event
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// NewChannelReporter creates a ChannelReporter with the given buffer size.
// Cancelling ctx stops any listener.
func NewChannelReporter(ctx context.Context, bufferSize int) *ChannelReporter {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	reporterCtx, cancel := context.WithCancel(ctx)

	return &ChannelReporter{
		ch:     make(chan Event, bufferSize),
		ctx:    reporterCtx,
		cancel: cancel,
	}
}

// Report implements Reporter.
func (cr *ChannelReporter) Report(event Event) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if cr.closed {
		return
	}

	select {
	case cr.ch <- event:
	default:
	}
}

// Close implements Reporter. It closes the event channel and waits for the listener to drain it.
func (cr *ChannelReporter) Close() {
	cr.once.Do(func() {
		cr.mu.Lock()
		cr.closed = true
		close(cr.ch)
		cr.mu.Unlock()

		cr.wg.Wait()
		cr.cancel()
	})
}

// Listen forwards events to listener on a new goroutine until the reporter is closed
// or its context is cancelled. Events buffered at Close are still delivered.
func (cr *ChannelReporter) Listen(listener Listener) {
	cr.wg.Add(1)

	go func() {
		defer cr.wg.Done()

		for {
			select {
			case event, ok := <-cr.ch:
				if !ok {
					return
				}

				listener.OnEvent(event)
			case <-cr.ctx.Done():
				return
			}
		}
	}()
}

// Events returns the channel of events, for callers that consume them directly.
func (cr *ChannelReporter) Events() <-chan Event {
	return cr.ch
}
