// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matt-FFFFFF/loadbtn/internal/button"
	"github.com/matt-FFFFFF/loadbtn/internal/canvas"
	"github.com/matt-FFFFFF/loadbtn/internal/config"
	"github.com/matt-FFFFFF/loadbtn/internal/coordinator"
	"github.com/matt-FFFFFF/loadbtn/internal/ctxlog"
	"github.com/matt-FFFFFF/loadbtn/internal/task"
	"github.com/matt-FFFFFF/loadbtn/internal/transfer"
	"github.com/peterh/liner"
)

const (
	// HeadlessFrameInterval is the redraw interval of the headless renderer.
	HeadlessFrameInterval = 100 * time.Millisecond
	headlessWidth         = 40
	headlessQueue         = 16
)

var (
	// ErrNoSelection is returned when no file was chosen.
	ErrNoSelection = errors.New(EmptySelectionToast)
	// ErrUnknownChoice is returned when the chosen file is not configured.
	ErrUnknownChoice = errors.New("unknown choice")
)

// Prompter asks the user to pick one of the choices and returns the raw answer.
type Prompter func(choices []config.Choice) (string, error)

// HeadlessOptions configures RunHeadless.
type HeadlessOptions struct {
	// Downloads creates the download task. Defaults to a transfer.Source for the configured
	// destination that reports progress to the renderer.
	Downloads Downloader
	// Choice is the name or 1-based index of the file to download. When empty Prompt is used.
	Choice string
	// Prompt asks for a choice. Defaults to a line prompt on the terminal.
	Prompt Prompter
	// Sinks receive the result in addition to the returned value.
	Sinks []task.Sink
	// FrameInterval overrides HeadlessFrameInterval.
	FrameInterval time.Duration
	// Colour renders the button with colours.
	Colour bool
}

// RunHeadless downloads one file without the TUI. The button is redrawn in place on a single
// line of w until the download finishes, then the result is printed below it.
func RunHeadless(ctx context.Context, cfg *config.Config, w io.Writer, opts HeadlessOptions) (task.Result, error) {
	if opts.Prompt == nil {
		opts.Prompt = LinePrompt
	}

	if opts.FrameInterval <= 0 {
		opts.FrameInterval = HeadlessFrameInterval
	}

	answer := opts.Choice
	if answer == "" {
		var err error
		if answer, err = opts.Prompt(cfg.Choices); err != nil {
			return task.Result{}, err
		}
	}

	choice, err := ResolveChoice(cfg, answer)
	if err != nil {
		return task.Result{}, err
	}

	// Completions must never be dropped; the reporter drops events when its buffer is full.
	msgs := make(chan tea.Msg, headlessQueue)
	send := func(msg tea.Msg) { msgs <- msg }

	reporter := task.NewChannelReporter(ctx, task.DefaultBufferSize)
	defer reporter.Close()

	events := reporter.Events()

	downloads := opts.Downloads
	if downloads == nil {
		downloads = transfer.NewSource(cfg.Destination, transfer.WithReporter(reporter))
	}

	btn := button.New(ctx, append(cfg.ButtonOptions(), button.WithPadding(2, 0))...) //nolint:mnd
	bw, bh := btn.IntrinsicSize(canvas.TerminalMeasurer{})
	btn.OnResize(max(bw, headlessWidth), bh)

	var (
		result   task.Result
		progress string
	)

	sinks := append(task.MultiSink{task.SinkFunc(func(r task.Result) { result = r })}, opts.Sinks...)
	coord := coordinator.New(btn, sinks, send, coordinator.WithReporter(reporter))

	draw := func() {
		g := canvas.New(btn.Size())
		btn.Render(g)

		line := g.Plain()
		if opts.Colour {
			line = g.String()
		}

		fmt.Fprintf(w, "\r%s %-28s", line, progress) //nolint:errcheck
	}

	ctxlog.Info(ctx, "headless download", "choice", choice.Name)

	coord.Start(ctx, downloads.Factory(choice))
	btn.TakeDirty()
	draw()

	ticker := time.NewTicker(opts.FrameInterval)
	defer ticker.Stop()

	for coord.InFlight() {
		select {
		case msg := <-msgs:
			coord.Update(ctx, msg)
			progress = ""
		case e := <-events:
			if e.Type == task.EventProgress {
				progress = RenderProgress(e.Data)
			}
		case now := <-ticker.C:
			btn.Tick(now)
		}

		if btn.TakeDirty() {
			draw()
		}
	}

	coord.Wait()
	draw()

	fmt.Fprintf(w, "\n%s\n", NewStyles().RenderResult(result)) //nolint:errcheck

	return result, nil
}

// ResolveChoice finds the choice named by answer, which may also be its 1-based index.
func ResolveChoice(cfg *config.Config, answer string) (config.Choice, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return config.Choice{}, ErrNoSelection
	}

	if ch, ok := cfg.Choice(answer); ok {
		return ch, nil
	}

	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(cfg.Choices) {
		return cfg.Choices[n-1], nil
	}

	for _, ch := range cfg.Choices {
		if strings.EqualFold(ch.Name, answer) {
			return ch, nil
		}
	}

	return config.Choice{}, fmt.Errorf("%w: %s", ErrUnknownChoice, answer)
}

// LinePrompt lists the choices on stdout and reads the answer with a line editor.
func LinePrompt(choices []config.Choice) (string, error) {
	for i, ch := range choices {
		fmt.Printf("%d) %s\n", i+1, ch.Title()) //nolint:forbidigo
	}

	line := liner.NewLiner()
	defer line.Close() //nolint:errcheck

	line.SetCtrlCAborts(true)

	names := make([]string, len(choices))
	for i, ch := range choices {
		names[i] = ch.Name
	}

	line.SetCompleter(func(prefix string) []string {
		var out []string

		for _, n := range names {
			if strings.HasPrefix(strings.ToLower(n), strings.ToLower(prefix)) {
				out = append(out, n)
			}
		}

		return out
	})

	answer, err := line.Prompt(fmt.Sprintf("Select the file to download [1-%d]: ", len(choices)))
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return "", ErrNoSelection
	}

	return answer, err
}
