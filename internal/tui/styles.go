// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/loadbtn/internal/task"
)

// Styles contains all the styling for the TUI.
type Styles struct {
	Title    lipgloss.Style
	Choice   lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Progress lipgloss.Style
	Toast    lipgloss.Style
	Success  lipgloss.Style
	Failed   lipgloss.Style
	Label    lipgloss.Style
	Detail   lipgloss.Style
	Panel    lipgloss.Style
}

// NewStyles creates the default styling for the TUI.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#07C2AA")).
			MarginBottom(1),
		Choice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9A825")),
		Progress: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true),
		Toast: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("7")).
			Padding(0, 1),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Detail: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Italic(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#004349")).
			Padding(0, 1),
	}
}

// RenderResult renders the detail panel content for a finished download.
func (s *Styles) RenderResult(r task.Result) string {
	status := s.Success.Render(r.Outcome.String())
	if r.Outcome != task.Success {
		status = s.Failed.Render(r.Outcome.String())
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", s.Label.Render("File name:"), r.DisplayName)
	fmt.Fprintf(&b, "%s %s", s.Label.Render("Status:   "), status)

	if r.Detail != "" {
		fmt.Fprintf(&b, "\n%s", s.Detail.Render(r.Detail))
	}

	return b.String()
}

// RenderProgress renders a one line summary of a progress event.
func RenderProgress(d task.EventData) string {
	if f := d.Fraction(); f >= 0 {
		return fmt.Sprintf("%3.0f%% (%s of %s)", f*100, humanBytes(d.BytesDone), humanBytes(d.BytesTotal)) //nolint:mnd
	}

	return humanBytes(d.BytesDone) + " received"
}

func humanBytes(n int64) string {
	const unit = 1024

	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
