// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/loadbtn/internal/button"
	"github.com/matt-FFFFFF/loadbtn/internal/coordinator"
	"github.com/matt-FFFFFF/loadbtn/internal/ctxlog"
	"github.com/matt-FFFFFF/loadbtn/internal/task"
)

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeButton()

		return m, nil

	case button.FrameMsg:
		return m, m.button.Update(msg)

	case coordinator.FinishedMsg:
		before := m.last
		cmd := m.coord.Update(m.ctx, msg)

		if m.last != before {
			return m, tea.Batch(cmd, m.showToast(ResultToast))
		}

		return m, cmd

	case EventMsg:
		m.processEvent(msg.Event)
		return m, nil

	case ConfigMsg:
		if msg.Err != nil {
			ctxlog.Warn(m.ctx, "configuration not reloaded", "error", msg.Err)
			return m, m.showToast("Configuration not reloaded: " + msg.Err.Error())
		}

		m.applyConfig(msg.Config)

		return m, m.showToast(ReloadedToast)

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}

		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.cfg.Choices)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.cfg.Choices) > 0 {
			m.selected = m.cursor
		}

	case key.Matches(msg, m.keys.Dismiss):
		m.last = nil

	case key.Matches(msg, m.keys.Download):
		return m.press()
	}

	return nil
}

// press handles the primary input on the button.
func (m *Model) press() tea.Cmd {
	choice, ok := m.Selected()
	if !ok {
		if m.button.Enabled() {
			return m.showToast(EmptySelectionToast)
		}

		return nil
	}

	ctxlog.Debug(m.ctx, "download requested", "choice", choice.Name)

	m.last = nil
	m.progress = nil

	cmd := m.coord.Start(m.ctx, m.downloads.Factory(choice))
	if m.last != nil {
		// The download could not be dispatched; its failure is already on screen.
		return m.showToast(ResultToast)
	}

	return cmd
}

func (m *Model) processEvent(e task.Event) {
	switch e.Type {
	case task.EventProgress:
		if m.coord.InFlight() {
			d := e.Data
			m.progress = &d
		}
	case task.EventStarted, task.EventCompleted, task.EventFailed:
		m.progress = nil
	}
}

func (m *Model) showToast(text string) tea.Cmd {
	m.toastID++
	m.toast = text
	id := m.toastID

	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var view strings.Builder

	view.WriteString(m.styles.Title.Render("loadbtn"))
	view.WriteString("\n")

	for i, ch := range m.cfg.Choices {
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("> ")
		}

		radio, style := "( )", m.styles.Choice
		if i == m.selected {
			radio, style = "(•)", m.styles.Selected
		}

		view.WriteString(cursor)
		view.WriteString(style.Render(radio + " " + ch.Title()))
		view.WriteString("\n")
	}

	view.WriteString("\n")
	view.WriteString(lipgloss.NewStyle().MarginLeft(sideMargin).Render(m.button.View()))
	view.WriteString("\n")

	if m.progress != nil {
		view.WriteString(m.styles.Progress.MarginLeft(sideMargin).Render(RenderProgress(*m.progress)))
		view.WriteString("\n")
	}

	if m.toast != "" {
		view.WriteString("\n")
		view.WriteString(m.styles.Toast.Render(m.toast))
		view.WriteString("\n")
	}

	if m.last != nil {
		view.WriteString("\n")
		view.WriteString(m.styles.Panel.Render(m.styles.RenderResult(*m.last)))
		view.WriteString("\n")
	}

	view.WriteString("\n")
	view.WriteString(m.help.View(m.keys))

	return view.String()
}
