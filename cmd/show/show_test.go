// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package show

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/matt-FFFFFF/loadbtn/internal/history"
	"github.com/matt-FFFFFF/loadbtn/internal/task"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

const journalPath = "/var/loadbtn/journal.yaml"

func seed(t *testing.T, results ...task.Result) {
	t.Helper()

	fs := afero.NewMemMapFs()
	stubs := gostub.Stub(&history.FsFactory, func() afero.Fs { return fs })
	t.Cleanup(stubs.Reset)

	j := history.NewJournal(context.Background(), journalPath)
	for _, r := range results {
		require.NoError(t, j.Append(r))
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	c := NewCommand()
	c.Writer = &out
	c.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	err := c.Run(context.Background(), append([]string{"show"}, args...))

	return out.String(), err
}

func TestShow(t *testing.T) {
	finished := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seed(t,
		task.Result{DisplayName: "Glide", Outcome: task.Success, FinishedAt: finished},
		task.Result{DisplayName: "Retrofit", Outcome: task.Failure, Detail: "404 Not Found", FinishedAt: finished},
	)

	out, err := run(t, journalPath)
	require.NoError(t, err)

	assert.Contains(t, out, "File name: Glide")
	assert.Contains(t, out, "File name: Retrofit")
	assert.Contains(t, out, "Fail")
	assert.Contains(t, out, "404 Not Found")
	assert.Less(t, bytes.Index([]byte(out), []byte("Glide")), bytes.Index([]byte(out), []byte("Retrofit")))
}

func TestShow_FailedOnly(t *testing.T) {
	seed(t,
		task.Result{DisplayName: "Glide", Outcome: task.Success, FinishedAt: time.Now()},
		task.Result{DisplayName: "Retrofit", Outcome: task.Failure, FinishedAt: time.Now()},
	)

	out, err := run(t, "--failed", journalPath)
	require.NoError(t, err)

	assert.NotContains(t, out, "Glide")
	assert.Contains(t, out, "Retrofit")
}

func TestShow_EmptyJournal(t *testing.T) {
	seed(t)

	out, err := run(t, journalPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No results recorded.")
}

func TestShow_NoFile(t *testing.T) {
	_, err := run(t)

	var exit cli.ExitCoder
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 1, exit.ExitCode())
	assert.ErrorContains(t, err, ErrNoFile.Error())
}

func TestShow_CorruptJournal(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, journalPath, []byte("---\nid: [unterminated\n"), 0o600))

	stubs := gostub.Stub(&history.FsFactory, func() afero.Fs { return fs })
	t.Cleanup(stubs.Reset)

	_, err := run(t, journalPath)
	assert.ErrorContains(t, err, history.ErrReadJournal.Error())
}
