// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package fetch implements the command that downloads one of the configured files.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matt-FFFFFF/loadbtn/internal/config"
	"github.com/matt-FFFFFF/loadbtn/internal/ctxlog"
	"github.com/matt-FFFFFF/loadbtn/internal/history"
	"github.com/matt-FFFFFF/loadbtn/internal/task"
	"github.com/matt-FFFFFF/loadbtn/internal/tui"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const (
	configFlag   = "config"
	choiceFlag   = "choice"
	destFlag     = "dest"
	headlessFlag = "headless"
	journalFlag  = "journal"
	logFileFlag  = "log-file"
	cliExitStr   = ""
)

var (
	// ErrDownloadFailed is returned when the download finished with a failure.
	ErrDownloadFailed = errors.New("download failed")
	// ErrNoResult is returned when the TUI was closed before any download finished.
	ErrNoResult = errors.New("no download finished")
)

// FetchCmd is the command that shows the download button.
var FetchCmd = NewCommand()

// NewCommand returns a fresh fetch command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Pick a file and download it with the progress button",
		Description: `Show the list of configured files and a download button.
Select a file and press the button to download it into the destination directory.
The button fills and its arc sweeps while the download runs.

The configuration can be a local YAML or HCL file, or any source supported by
Hashicorp's go-getter. See https://github.com/hashicorp/go-getter.
Without a configuration the built-in list of files is used. A local configuration
file is watched while the interface runs and the list is reloaded when it changes.

Use --headless to download without the full screen interface.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     configFlag,
				Aliases:  []string{"c"},
				Usage:    "Load the list of files from this YAML or HCL configuration. Supports go-getter URLs.",
				OnlyOnce: true,
			},
			&cli.StringFlag{
				Name:     choiceFlag,
				Usage:    "Name or 1-based index of the file to download in headless mode",
				OnlyOnce: true,
			},
			&cli.StringFlag{
				Name:      destFlag,
				Aliases:   []string{"d"},
				Usage:     "Directory to save downloads to, overriding the configuration",
				TakesFile: true,
				OnlyOnce:  true,
			},
			&cli.BoolFlag{
				Name:        headlessFlag,
				Usage:       "Download a single file without the full screen interface",
				Value:       false,
				DefaultText: "false",
				OnlyOnce:    true,
			},
			&cli.StringFlag{
				Name:      journalFlag,
				Aliases:   []string{"j"},
				Usage:     "Append every result to this YAML journal",
				TakesFile: true,
				OnlyOnce:  true,
			},
			&cli.StringFlag{
				Name:      logFileFlag,
				Usage:     "Write logs to this file while the interface is running",
				TakesFile: true,
				OnlyOnce:  true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("Running fetch command")

	cfg, err := config.LoadFrom(ctx, cmd.String(configFlag))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load configuration: %s", err.Error()))
		return cli.Exit(cliExitStr, 1)
	}

	if dest := cmd.String(destFlag); dest != "" {
		cfg.Destination = dest
	}

	var sinks []task.Sink
	if path := cmd.String(journalFlag); path != "" {
		sinks = append(sinks, history.NewJournal(ctx, path))
	}

	var res *task.Result

	if cmd.Bool(headlessFlag) {
		r, err := tui.RunHeadless(ctx, cfg, cmd.Writer, tui.HeadlessOptions{
			Choice: cmd.String(choiceFlag),
			Sinks:  sinks,
			Colour: isTerminal(cmd.Writer),
		})
		if err != nil {
			logger.Error(fmt.Sprintf("Download not started: %s", err.Error()))
			return cli.Exit(cliExitStr, 1)
		}

		res = &r
	} else {
		if res, err = runTUI(ctx, cmd, cfg, sinks); err != nil {
			logger.Error(fmt.Sprintf("TUI execution error: %s", err.Error()), "error", err.Error())
			return cli.Exit(cliExitStr, 1)
		}

		if res == nil {
			logger.Info(ErrNoResult.Error())
			return nil
		}

		fmt.Fprintln(cmd.Writer, tui.NewStyles().RenderResult(*res)) //nolint:errcheck
	}

	if res.Outcome != task.Success {
		logger.Error(ErrDownloadFailed.Error(), "file", res.DisplayName, "detail", res.Detail)
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

// runTUI runs the full screen interface. Log records are held back until the terminal is
// released, or written to the log file when one is given.
func runTUI(ctx context.Context, cmd *cli.Command, cfg *config.Config, sinks []task.Sink) (*task.Result, error) {
	var buf *bytes.Buffer

	if path := cmd.String(logFileFlag); path != "" {
		logger, closer, err := ctxlog.NewFileLogger(path)
		if err != nil {
			return nil, err
		}

		defer closer.Close() //nolint:errcheck

		ctx = ctxlog.New(ctx, logger)
	} else {
		buf = new(bytes.Buffer)
		ctx = ctxlog.NewForTUI(ctx, buf)
	}

	runner := tui.NewRunner(ctx, cfg, sinks)

	if file := cmd.String(configFlag); file != "" {
		if ok, _ := afero.Exists(config.FsFactory(), file); ok {
			if err := runner.WatchConfig(file); err != nil {
				ctxlog.Warn(ctx, "configuration changes will not be picked up", "error", err)
			}
		}
	}

	res, err := runner.Run()

	if buf != nil {
		buf.WriteTo(cmd.Writer) //nolint:errcheck
	}

	return res, err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}
