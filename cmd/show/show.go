// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show implements the command that prints a download journal.
package show

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matt-FFFFFF/loadbtn/internal/history"
	"github.com/matt-FFFFFF/loadbtn/internal/task"
	"github.com/matt-FFFFFF/loadbtn/internal/tui"
	"github.com/urfave/cli/v3"
)

const (
	fileArg    = "file"
	failedFlag = "failed"
)

var (
	// ErrNoFile is returned when no journal file is given.
	ErrNoFile = errors.New("please provide the journal file to show")
	// ErrWriteResults is returned when the results cannot be written.
	ErrWriteResults = errors.New("failed to write results")
)

// ShowCmd is the command that shows the results recorded in a journal.
var ShowCmd = NewCommand()

// NewCommand returns a fresh show command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:        "show",
		Usage:       "Show the results recorded in a journal",
		Description: "Show previously saved download results, oldest first.",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      fileArg,
				UsageText: "journal file written by fetch --journal",
				Config:    cli.StringConfig{TrimSpace: true},
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        failedFlag,
				Aliases:     []string{"f"},
				Usage:       "Only show failed downloads",
				Value:       false,
				DefaultText: "false",
				OnlyOnce:    true,
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			file := cmd.StringArg(fileArg)
			if file == "" {
				return cli.Exit(ErrNoFile.Error(), 1)
			}

			entries, err := history.Read(history.FsFactory(), file)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			styles := tui.NewStyles()
			shown := 0

			for _, e := range entries {
				if cmd.Bool(failedFlag) && e.Outcome == task.Success {
					continue
				}

				if _, err := fmt.Fprintf(cmd.Writer, "%s  %s\n%s\n\n",
					e.FinishedAt.Local().Format(time.DateTime), e.ID, styles.RenderResult(e.Result)); err != nil {
					return cli.Exit(errors.Join(ErrWriteResults, err).Error(), 1)
				}

				shown++
			}

			if shown == 0 {
				fmt.Fprintln(cmd.Writer, "No results recorded.") //nolint:errcheck
			}

			return nil
		},
	}
}
