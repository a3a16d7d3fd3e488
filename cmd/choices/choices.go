// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package choices implements the command that lists the files that can be downloaded.
package choices

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/matt-FFFFFF/loadbtn/internal/config"
	"github.com/urfave/cli/v3"
)

const configFlag = "config"

// ChoicesCmd lists the configured files.
var ChoicesCmd = NewCommand()

// NewCommand returns a fresh choices command.
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:        "choices",
		Usage:       "List the files that can be downloaded",
		Description: "List the configured files with their index, name and source URL.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     configFlag,
				Aliases:  []string{"c"},
				Usage:    "Load the list of files from this YAML or HCL configuration. Supports go-getter URLs.",
				OnlyOnce: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.LoadFrom(ctx, cmd.String(configFlag))
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			tw := tabwriter.NewWriter(cmd.Writer, 0, 4, 2, ' ', 0) //nolint:mnd
			for i, ch := range cfg.Choices {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, ch.Title(), ch.URL) //nolint:errcheck
			}

			fmt.Fprintf(tw, "\nDestination:\t%s\n", cfg.Destination) //nolint:errcheck

			return tw.Flush()
		},
	}
}
