// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package coordinator links a progress button to one asynchronous task at a time.
//
// All methods except Signal must be called from the goroutine that owns the button.
// Completions observed on task goroutines travel back to the owner as FinishedMsg values
// through the send function given to New, typically tea.Program.Send.
package coordinator
