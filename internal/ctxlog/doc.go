// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-aware logger for loadbtn.
// It uses the slog package for structured logging and supports different log levels.
//
// The default is a pretty console handler that writes to stderr, so that log lines never
// interleave with the frames the progress button draws on stdout.
// While the interactive TUI owns the terminal, use NewForTUI or NewFileLogger instead.
package ctxlog
