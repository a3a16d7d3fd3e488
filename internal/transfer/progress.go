// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package transfer

import (
	"errors"
	"io"
	"sync/atomic"
	"time"

	getter "github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/loadbtn/internal/task"
)

const defaultProgressInterval = 100 * time.Millisecond

var _ getter.ProgressTracker = (*progressTracker)(nil)

// progressTracker turns go-getter body reads into progress events.
type progressTracker struct {
	reporter task.Reporter
	id       string
	name     string
	interval time.Duration
	now      func() time.Time
	bytes    atomic.Int64
}

// TrackProgress implements getter.ProgressTracker.
func (t *progressTracker) TrackProgress(_ string, currentSize, totalSize int64, stream io.ReadCloser) io.ReadCloser {
	t.bytes.Store(currentSize)
	t.report(currentSize, totalSize)

	return &progressReader{
		ReadCloser: stream,
		tracker:    t,
		total:      totalSize,
		last:       t.now(),
	}
}

func (t *progressTracker) done() int64 {
	return t.bytes.Load()
}

func (t *progressTracker) report(done, total int64) {
	t.reporter.Report(task.Event{
		TaskID:    t.id,
		Name:      t.name,
		Type:      task.EventProgress,
		Message:   "downloading",
		Timestamp: t.now(),
		Data: task.EventData{
			BytesDone:  done,
			BytesTotal: max(total, 0),
		},
	})
}

type progressReader struct {
	io.ReadCloser
	tracker *progressTracker
	total   int64
	last    time.Time
}

// Read reports progress at most once per interval, and always at the end of the stream.
func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.ReadCloser.Read(p)
	done := r.tracker.bytes.Add(int64(n))

	now := r.tracker.now()
	if errors.Is(err, io.EOF) || now.Sub(r.last) >= r.tracker.interval {
		r.last = now
		r.tracker.report(done, r.total)
	}

	return n, err
}
