// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/loadbtn/internal/ctxlog"
)

// ExitCodeInterrupted is the exit code used when the process is forced to stop.
const ExitCodeInterrupted = 130

// exitFunc ends the process. Replaced in tests.
var exitFunc = os.Exit

// Watch monitors the signal channel until it is closed.
// The first signal cancels the context. A second signal of a type already seen forces the
// process to exit with ExitCodeInterrupted.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := seen[sig]; ok {
			ctxlog.Warn(ctx, "watchdog", "detail", "received second signal of type, forcefully terminating", "signal", sig.String())
			exitFunc(ExitCodeInterrupted)

			return
		}

		if len(seen) == 0 {
			ctxlog.Info(ctx, "watchdog", "detail", "received signal, cancelling", "signal", sig.String())
			cancel()
		}

		seen[sig] = struct{}{}
	}
}
