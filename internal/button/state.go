// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package button

// State is the lifecycle state of the button.
type State int

const (
	// StateIdle means no task is in flight and the button accepts input.
	StateIdle State = iota
	// StateClicked is entered when input is accepted, before the task is dispatched.
	StateClicked
	// StateLoading means a task is in flight and the animation runs.
	StateLoading
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateClicked:
		return "clicked"
	case StateLoading:
		return "loading"
	default:
		return "unknown"
	}
}

var transitions = map[State]State{
	StateIdle:    StateClicked,
	StateClicked: StateLoading,
	StateLoading: StateIdle,
}

// CanTransition reports whether the button may move from one state to another.
// The only legal cycle is idle, clicked, loading and back to idle.
func CanTransition(from, to State) bool {
	next, ok := transitions[from]
	return ok && next == to
}
