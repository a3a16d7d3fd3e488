// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/loadbtn/internal/button"
	"github.com/matt-FFFFFF/loadbtn/internal/config"
	"github.com/matt-FFFFFF/loadbtn/internal/coordinator"
	"github.com/matt-FFFFFF/loadbtn/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeDownloads hands out handles the test completes by hand.
type fakeDownloads struct {
	handles map[string]chan task.Completion
	fail    error
	calls   []string
}

func newFakeDownloads() *fakeDownloads {
	return &fakeDownloads{handles: map[string]chan task.Completion{}}
}

type fakeHandle struct {
	name string
	done chan task.Completion
}

func (h fakeHandle) Name() string                 { return h.name }
func (h fakeHandle) Done() <-chan task.Completion { return h.done }

func (f *fakeDownloads) Factory(choice config.Choice) task.Factory {
	return func(context.Context) (task.Handle, error) {
		f.calls = append(f.calls, choice.Name)
		if f.fail != nil {
			return nil, f.fail
		}

		done := make(chan task.Completion, 1)
		f.handles[choice.Name] = done

		return fakeHandle{name: choice.Name, done: done}, nil
	}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type harness struct {
	model   *Model
	dl      *fakeDownloads
	msgs    chan tea.Msg
	results []task.Result
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{dl: newFakeDownloads(), msgs: make(chan tea.Msg, 8)}
	h.model = NewModel(context.Background(), config.Default(), h.dl,
		WithSinks(task.SinkFunc(func(r task.Result) { h.results = append(h.results, r) })))
	h.model.SetSender(func(m tea.Msg) { h.msgs <- m })
	h.model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	return h
}

func (h *harness) press(t *testing.T, keys ...string) tea.Cmd {
	t.Helper()

	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = h.model.Update(keyMsg(k))
	}

	return cmd
}

func (h *harness) pump(t *testing.T) {
	t.Helper()

	select {
	case m := <-h.msgs:
		h.model.Update(m)
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
}

func TestNewModel(t *testing.T) {
	h := newHarness(t)

	view := h.model.View()
	assert.Contains(t, view, "Glide - Image Loading Library by BumpTech")
	assert.Contains(t, view, "LoadApp - Current repository by Udacity")
	assert.Contains(t, view, "Download")
	assert.Contains(t, view, "enter download")

	_, ok := h.model.Selected()
	assert.False(t, ok)

	w, _ := h.model.Button().Size()
	assert.Equal(t, 60, w, "button takes the window width up to the maximum")
}

func TestResize_SmallWindow(t *testing.T) {
	h := newHarness(t)
	h.model.Update(tea.WindowSizeMsg{Width: 10, Height: 10})

	w, _ := h.model.Button().Size()
	assert.Equal(t, 22, w, "never narrower than the intrinsic width")
}

func TestPress_EmptySelection(t *testing.T) {
	h := newHarness(t)

	cmd := h.press(t, "enter")
	assert.NotNil(t, cmd, "toast expiry is scheduled")
	assert.Equal(t, EmptySelectionToast, h.model.Toast())
	assert.Equal(t, button.StateIdle, h.model.Button().State())
	assert.Empty(t, h.dl.calls)
	assert.Contains(t, h.model.View(), EmptySelectionToast)

	h.model.Update(toastExpiredMsg{id: h.model.toastID})
	assert.Empty(t, h.model.Toast())
}

func TestToastExpiry_IgnoresOlderToasts(t *testing.T) {
	h := newHarness(t)

	h.press(t, "enter")
	old := h.model.toastID
	h.press(t, "enter")

	h.model.Update(toastExpiredMsg{id: old})
	assert.Equal(t, EmptySelectionToast, h.model.Toast())
}

func TestSelection(t *testing.T) {
	h := newHarness(t)

	h.press(t, "down", "down", "down", "space")
	ch, ok := h.model.Selected()
	require.True(t, ok)
	assert.Equal(t, "Retrofit", ch.Name, "cursor stops at the last choice")

	h.press(t, "up", "k", "up", "x")
	ch, _ = h.model.Selected()
	assert.Equal(t, "Glide", ch.Name)
	assert.Contains(t, h.model.View(), "(•) Glide")
}

func TestConfigReload(t *testing.T) {
	h := newHarness(t)
	h.press(t, "down", "down", "space")

	cfg := &config.Config{Choices: []config.Choice{
		{Name: "Retrofit", URL: "https://example.com/retrofit.zip"},
		{Name: "Okio", URL: "https://example.com/okio.zip"},
	}}

	_, cmd := h.model.Update(ConfigMsg{Config: cfg})
	assert.NotNil(t, cmd)
	assert.Equal(t, ReloadedToast, h.model.Toast())

	ch, ok := h.model.Selected()
	require.True(t, ok)
	assert.Equal(t, "Retrofit", ch.Name, "selection follows the name")

	view := h.model.View()
	assert.Contains(t, view, "Okio")
	assert.NotContains(t, view, "Glide")

	_, cmd = h.model.Update(ConfigMsg{Config: &config.Config{Choices: []config.Choice{{Name: "Okio"}}}})
	assert.NotNil(t, cmd)

	_, ok = h.model.Selected()
	assert.False(t, ok, "the selected choice is gone")
	h.press(t, "down", "space")

	ch, ok = h.model.Selected()
	require.True(t, ok)
	assert.Equal(t, "Okio", ch.Name, "cursor is clamped to the shorter list")
}

func TestConfigReload_Error(t *testing.T) {
	h := newHarness(t)

	_, cmd := h.model.Update(ConfigMsg{Err: config.ErrNoChoices})
	assert.NotNil(t, cmd)
	assert.Contains(t, h.model.Toast(), "Configuration not reloaded")
	assert.Contains(t, h.model.View(), "Glide", "the previous choices stay")
}

func TestDownloadCycle(t *testing.T) {
	tests := []struct {
		name       string
		completion task.Completion
		want       task.Outcome
		wantView   string
	}{
		{
			name:       "success",
			completion: task.Completion{Success: true, Name: "LoadApp"},
			want:       task.Success,
			wantView:   "Success",
		},
		{
			name:       "failure",
			completion: task.Completion{Name: "LoadApp", Err: errors.New("bad response code: 404")},
			want:       task.Failure,
			wantView:   "Fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			cmd := h.press(t, "down", "space", "enter")
			require.NotNil(t, cmd, "the first animation frame is scheduled")
			assert.Equal(t, button.StateLoading, h.model.Button().State())
			assert.Equal(t, []string{"LoadApp"}, h.dl.calls)
			assert.Contains(t, h.model.View(), "We are loading")

			assert.Nil(t, h.press(t, "enter"), "input is ignored while loading")
			assert.Len(t, h.dl.calls, 1)

			h.dl.handles["LoadApp"] <- tt.completion
			h.pump(t)
			h.model.Coordinator().Wait()

			assert.Equal(t, button.StateIdle, h.model.Button().State())
			require.Len(t, h.results, 1)
			assert.Equal(t, tt.want, h.results[0].Outcome)

			res, ok := h.model.LastResult()
			require.True(t, ok)
			assert.Equal(t, "LoadApp", res.DisplayName)
			assert.Equal(t, ResultToast, h.model.Toast())

			view := h.model.View()
			assert.Contains(t, view, "File name: LoadApp")
			assert.Contains(t, view, tt.wantView)

			h.press(t, "esc")
			_, ok = h.model.LastResult()
			assert.False(t, ok)
		})
	}
}

func TestDownload_DispatchFailure(t *testing.T) {
	h := newHarness(t)
	h.dl.fail = errors.New("no url to download")

	h.press(t, "space", "enter")

	assert.Equal(t, button.StateIdle, h.model.Button().State())
	res, ok := h.model.LastResult()
	require.True(t, ok)
	assert.Equal(t, task.UnknownName, res.DisplayName)
	assert.Equal(t, task.Failure, res.Outcome)
	assert.Equal(t, ResultToast, h.model.Toast())
}

func TestFrames(t *testing.T) {
	h := newHarness(t)
	h.press(t, "space", "enter")

	msg := button.FrameMsg{ID: h.model.Button().ID() + 1, Time: time.Now()}
	_, cmd := h.model.Update(msg)
	assert.Nil(t, cmd, "frames of other buttons are dropped")
}

func TestProgressEvents(t *testing.T) {
	h := newHarness(t)

	h.model.Update(EventMsg{Event: task.Event{Type: task.EventProgress, Data: task.EventData{BytesDone: 1, BytesTotal: 2}}})
	assert.NotContains(t, h.model.View(), "50%", "progress outside a download is ignored")

	h.press(t, "space", "enter")
	h.model.Update(EventMsg{Event: task.Event{Type: task.EventProgress, Data: task.EventData{BytesDone: 512, BytesTotal: 1024}}})
	assert.Contains(t, h.model.View(), " 50% (512 B of 1.0 KiB)")

	h.model.Update(EventMsg{Event: task.Event{Type: task.EventFailed}})
	assert.NotContains(t, h.model.View(), "50%")
}

func TestStaleCompletionDoesNotToast(t *testing.T) {
	h := newHarness(t)

	h.model.Update(coordinator.FinishedMsg{ID: 42, Completion: task.Completion{Success: true}})
	assert.Empty(t, h.model.Toast())
	assert.Empty(t, h.results)
}

func TestQuit(t *testing.T) {
	h := newHarness(t)

	cmd := h.press(t, "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, h.model.View())
}

func TestTUIReporter(t *testing.T) {
	defer goleak.VerifyNone(t)

	var got []tea.Msg

	r := NewTUIReporter(context.Background(), func(m tea.Msg) { got = append(got, m) })
	r.Report(task.Event{Name: "a"})
	r.Close()
	r.Report(task.Event{Name: "b"})

	require.Len(t, got, 1, "buffered events are delivered before Close returns")
	assert.Equal(t, "a", got[0].(EventMsg).Event.Name)

	assert.NotPanics(t, func() {
		unattached := NewTUIReporter(context.Background(), nil)
		unattached.Report(task.Event{})
		unattached.Close()
	})
}

func TestTUIReporter_DoesNotBlockOnSlowProgram(t *testing.T) {
	defer goleak.VerifyNone(t)

	release := make(chan struct{})
	r := NewTUIReporter(context.Background(), func(tea.Msg) { <-release })

	done := make(chan struct{})

	go func() {
		defer close(done)

		for range task.DefaultBufferSize * 2 {
			r.Report(task.Event{Type: task.EventProgress})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Report blocked while the program was busy")
	}

	close(release)
	r.Close()
}

func TestRenderProgress(t *testing.T) {
	assert.Equal(t, "100% (2.0 MiB of 2.0 MiB)", RenderProgress(task.EventData{BytesDone: 2 << 20, BytesTotal: 2 << 20}))
	assert.Equal(t, "10 B received", RenderProgress(task.EventData{BytesDone: 10}))
}
