// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/matt-FFFFFF/loadbtn/cmd/choices"
	"github.com/matt-FFFFFF/loadbtn/cmd/fetch"
	"github.com/matt-FFFFFF/loadbtn/cmd/show"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		fetch.FetchCmd,
		choices.ChoicesCmd,
		show.ShowCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "loadbtn",
	Description: `Loadbtn downloads files behind an animated progress button.
Pick one of the configured files and press the button. While the download runs
the button fills from left to right and a small arc sweeps next to its caption,
then the result is shown in a detail panel.`,
	Usage:     "loadbtn fetch --config files.yaml",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
