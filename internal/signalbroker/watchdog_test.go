// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/matt-FFFFFF/loadbtn/internal/ctxlog"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

var leakOpts = []goleak.Option{
	goleak.IgnoreTopFunction("os/signal.signal_recv"),
	goleak.IgnoreTopFunction("os/signal.loop"),
}

type exitRecorder struct {
	mu    sync.Mutex
	codes []int
}

func (r *exitRecorder) exit(code int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.codes = append(r.codes, code)
}

func (r *exitRecorder) get() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]int(nil), r.codes...)
}

func startWatch(t *testing.T, buf int) (context.Context, chan os.Signal, *exitRecorder, *sync.WaitGroup) {
	t.Helper()

	rec := &exitRecorder{}
	stubs := gostub.Stub(&exitFunc, rec.exit)
	t.Cleanup(stubs.Reset)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	sigCh := make(chan os.Signal, buf)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, sigCh, cancel)
	}()

	return ctx, sigCh, rec, &wg
}

func TestWatch_FirstSignalCancels(t *testing.T) {
	defer goleak.VerifyNone(t, leakOpts...)

	ctx, sigCh, rec, wg := startWatch(t, 1)

	sigCh <- os.Interrupt

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context should be cancelled after the first signal")
	}

	close(sigCh)
	wg.Wait()
	assert.Empty(t, rec.get())
}

func TestWatch_SecondSignalExits(t *testing.T) {
	defer goleak.VerifyNone(t, leakOpts...)

	_, sigCh, rec, wg := startWatch(t, 2)

	sigCh <- os.Interrupt
	sigCh <- os.Interrupt

	wg.Wait()
	assert.Equal(t, []int{ExitCodeInterrupted}, rec.get())
}

func TestWatch_DifferentSignalsDoNotExit(t *testing.T) {
	defer goleak.VerifyNone(t, leakOpts...)

	ctx, sigCh, rec, wg := startWatch(t, 2)

	sigCh <- os.Interrupt
	sigCh <- syscall.SIGTERM
	close(sigCh)

	wg.Wait()
	assert.Error(t, ctx.Err())
	assert.Empty(t, rec.get())
}

func TestNew(t *testing.T) {
	ch := New(context.Background())
	defer Stop(ch)

	assert.Equal(t, 1, cap(ch))
}
