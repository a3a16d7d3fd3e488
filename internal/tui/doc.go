// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui provides the interactive terminal front end of loadbtn. The user picks one of
// the configured files and presses the progress button to download it; the outcome of the
// download is shown in a detail panel below the button.
//
// The bubbletea program goroutine owns the button and the coordinator. Downloads run on their
// own goroutines and reach the program through Program.Send, as do their progress events.
// RunHeadless drives the same components from a plain loop for terminals without a TUI.
package tui
