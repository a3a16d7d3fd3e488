// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package button

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/loadbtn/internal/canvas"
	"github.com/matt-FFFFFF/loadbtn/internal/ctxlog"
)

const (
	// DefaultFrameInterval is the delay between animation frames.
	DefaultFrameInterval = time.Second / 20
	defaultPaddingX      = 2
	defaultPaddingY      = 1
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Labels are the captions shown on the button.
type Labels struct {
	Idle    string
	Loading string
}

// DefaultLabels returns the stock captions.
func DefaultLabels() Labels {
	return Labels{
		Idle:    "Download",
		Loading: "We are loading",
	}
}

// For returns the caption for a state. Clicked shows the idle caption.
func (l Labels) For(s State) string {
	if s == StateLoading {
		return l.Loading
	}

	return l.Idle
}

// Palette holds the colours the button draws with.
type Palette struct {
	Background lipgloss.Color
	Accent     lipgloss.Color
	Text       lipgloss.Color
	Arc        lipgloss.Color
}

// DefaultPalette returns the stock colours.
func DefaultPalette() Palette {
	return Palette{
		Background: lipgloss.Color("#07C2AA"),
		Accent:     lipgloss.Color("#004349"),
		Text:       lipgloss.Color("#FFFFFF"),
		Arc:        lipgloss.Color("#F9A825"),
	}
}

// FrameMsg advances the animation of the button with the matching ID.
type FrameMsg struct {
	ID   int
	Time time.Time
	tag  int
}

// Model is the progress button.
type Model struct {
	ctx           context.Context
	id            int
	tag           int
	state         State
	label         string
	labels        Labels
	palette       Palette
	width         int
	height        int
	paddingX      int
	paddingY      int
	cycle         time.Duration
	frameInterval time.Duration
	driver        *Driver
	lastFrame     time.Time
	dirty         bool
	now           func() time.Time
}

// Option configures a Model.
type Option func(*Model)

// WithLabels sets the captions.
func WithLabels(l Labels) Option {
	return func(m *Model) {
		if l.Idle != "" {
			m.labels.Idle = l.Idle
		}

		if l.Loading != "" {
			m.labels.Loading = l.Loading
		}
	}
}

// WithPalette sets the colours. Empty entries keep the default.
func WithPalette(p Palette) Option {
	return func(m *Model) {
		if p.Background != "" {
			m.palette.Background = p.Background
		}

		if p.Accent != "" {
			m.palette.Accent = p.Accent
		}

		if p.Text != "" {
			m.palette.Text = p.Text
		}

		if p.Arc != "" {
			m.palette.Arc = p.Arc
		}
	}
}

// WithCycle sets the duration of one animation cycle.
func WithCycle(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.cycle = d
		}
	}
}

// WithFrameInterval sets the delay between frames.
func WithFrameInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.frameInterval = d
		}
	}
}

// WithPadding sets the horizontal and vertical padding used by IntrinsicSize.
func WithPadding(x, y int) Option {
	return func(m *Model) {
		m.paddingX = max(x, 0)
		m.paddingY = max(y, 0)
	}
}

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates an idle button of zero size. Call OnResize before rendering.
func New(ctx context.Context, opts ...Option) *Model {
	m := &Model{
		ctx:           ctx,
		id:            nextID(),
		labels:        DefaultLabels(),
		palette:       DefaultPalette(),
		paddingX:      defaultPaddingX,
		paddingY:      defaultPaddingY,
		cycle:         DefaultCycle,
		frameInterval: DefaultFrameInterval,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.state = StateIdle
	m.label = m.labels.For(StateIdle)
	m.driver = NewDriver(0, m.cycle)

	return m
}

// ID returns the identifier carried by this button's frame messages.
func (m *Model) ID() int { return m.id }

// State returns the current state.
func (m *Model) State() State { return m.state }

// Label returns the caption currently shown.
func (m *Model) Label() string { return m.label }

// Size returns the current width and height.
func (m *Model) Size() (int, int) { return m.width, m.height }

// Driver exposes the animation driver for inspection.
func (m *Model) Driver() *Driver { return m.driver }

// Enabled reports whether the button accepts input.
func (m *Model) Enabled() bool { return m.state == StateIdle }

// SetState moves the button to next.
//
// Setting the current state is a no-op: nothing is invalidated and the clocks are left alone.
// Otherwise, for a legal transition, the state and caption are updated, the clock pair is
// started when entering loading or stopped when leaving it, and a redraw is scheduled.
// Entering loading returns the command producing the first animation frame.
// Illegal transitions are logged and ignored.
func (m *Model) SetState(next State) tea.Cmd {
	if next == m.state {
		return nil
	}

	prev := m.state
	if !CanTransition(prev, next) {
		ctxlog.Warn(m.ctx, "illegal button transition ignored",
			"button", m.id, "from", prev.String(), "to", next.String())

		return nil
	}

	m.state = next
	m.label = m.labels.For(next)

	var cmd tea.Cmd

	switch {
	case next == StateLoading:
		m.driver.Start()
		m.lastFrame = m.now()
		m.tag++
		cmd = m.frame()
	case prev == StateLoading:
		m.driver.Stop()
		m.tag++
	}

	m.invalidate()
	ctxlog.Debug(m.ctx, "button state changed",
		"button", m.id, "from", prev.String(), "to", next.String())

	return cmd
}

// HandlePrimaryInput is called when the user presses the button.
// Input is only accepted while idle, in which case the button becomes clicked and true is
// returned. Every other state rejects the input and returns false.
func (m *Model) HandlePrimaryInput() bool {
	if m.state != StateIdle {
		ctxlog.Debug(m.ctx, "button input rejected", "button", m.id, "state", m.state.String())
		return false
	}

	m.SetState(StateClicked)

	return true
}

// OnResize adopts a new size. The fill clock period follows the width and the driver is
// rebuilt; a running animation restarts from the beginning of its cycle.
func (m *Model) OnResize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)

	if width == m.width && height == m.height {
		return
	}

	m.width, m.height = width, height
	running := m.driver.Running()
	m.driver = NewDriver(float64(width), m.cycle)

	if running {
		m.driver.Start()
		m.lastFrame = m.now()
	}

	m.invalidate()
}

// IntrinsicSize returns the smallest size that fits the padding, the longest caption and,
// on both sides so the caption stays centred, the slot of the loading arc.
func (m *Model) IntrinsicSize(mz canvas.Measurer) (int, int) {
	idle := mz.TextBounds(m.labels.Idle)
	loading := mz.TextBounds(m.labels.Loading)
	lineHeight := mz.Metrics().LineHeight()

	width := max(idle.Width(), loading.Width()+2*arcSlot(lineHeight)) //nolint:mnd
	w := int(math.Ceil(width)) + 2*m.paddingX                         //nolint:mnd
	h := int(math.Ceil(lineHeight)) + 2*m.paddingY                    //nolint:mnd

	return w, h
}

// Update handles the button's own frame messages and returns the next frame command.
// Frames for other buttons, frames from a previous loading period and frames arriving
// after loading has ended are dropped.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	frame, ok := msg.(FrameMsg)
	if !ok || frame.ID != m.id || frame.tag != m.tag || m.state != StateLoading {
		return nil
	}

	m.Tick(frame.Time)

	return m.frame()
}

// Tick advances the clocks by the time elapsed since the previous frame.
func (m *Model) Tick(now time.Time) {
	if !m.driver.Running() {
		return
	}

	elapsed := now.Sub(m.lastFrame)
	m.lastFrame = now

	if elapsed <= 0 {
		return
	}

	m.driver.Advance(elapsed)
	m.invalidate()
}

// TakeDirty reports whether a redraw is pending and clears the flag.
func (m *Model) TakeDirty() bool {
	d := m.dirty
	m.dirty = false

	return d
}

func (m *Model) invalidate() {
	m.dirty = true
}

func (m *Model) frame() tea.Cmd {
	id, tag := m.id, m.tag

	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, Time: t, tag: tag}
	})
}

// View renders the button at its current size.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	g := canvas.New(m.width, m.height)
	m.Render(g)

	return g.String()
}
