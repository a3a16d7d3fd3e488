// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package button implements the self-drawing progress button.
//
// The button holds one of three states (idle, clicked, loading) and, while loading, animates
// two layers: a background fill sweeping left to right and a pie wedge rotating next to the
// label. Both layers are driven by a single Driver so they stay phase locked.
//
// A Model is not safe for concurrent use. It is owned by one goroutine, normally the
// bubbletea Update loop, and state changes coming from other goroutines must be handed to
// that owner first (see the coordinator package).
package button
