// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package task describes asynchronous units of work and how their outcome is reported.
// A Factory starts work and returns a Handle whose Done channel yields exactly one
// Completion. Results are handed to a Sink and progress is streamed as Events through a
// Reporter.
package task
