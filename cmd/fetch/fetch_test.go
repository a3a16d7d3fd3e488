// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matt-FFFFFF/loadbtn/internal/history"
	"github.com/matt-FFFFFF/loadbtn/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

var payload = bytes.Repeat([]byte("archive"), 1024)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/glide.zip", func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "glide.zip", time.Time{}, bytes.NewReader(payload))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func writeConfig(t *testing.T, dir, url string) string {
	t.Helper()

	file := filepath.Join(dir, "files.yaml")
	cfg := "choices:\n" +
		"  - name: Glide\n    url: " + url + "/glide.zip\n" +
		"  - name: Missing\n    url: " + url + "/missing.zip\n"
	require.NoError(t, os.WriteFile(file, []byte(cfg), 0o600))

	return file
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	c := NewCommand()
	c.Writer = &out
	c.ExitErrHandler = func(context.Context, *cli.Command, error) {}

	err := c.Run(context.Background(), append([]string{"fetch"}, args...))

	return out.String(), err
}

func TestFetch_Headless(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()
	dest := filepath.Join(dir, "out")
	journal := filepath.Join(dir, "journal.yaml")

	out, err := run(t,
		"--headless",
		"--choice", "Glide",
		"--config", writeConfig(t, dir, srv.URL),
		"--dest", dest,
		"--journal", journal,
	)
	require.NoError(t, err)

	assert.Contains(t, out, "File name: Glide")
	assert.Contains(t, out, "Success")

	got, err := os.ReadFile(filepath.Join(dest, "glide.zip"))
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	entries, err := history.Read(history.FsFactory(), journal)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, task.Success, entries[0].Outcome)
}

func TestFetch_HeadlessFailure(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()

	out, err := run(t,
		"--headless",
		"--choice", "2",
		"-c", writeConfig(t, dir, srv.URL),
		"-d", filepath.Join(dir, "out"),
	)

	var exit cli.ExitCoder
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 1, exit.ExitCode())
	assert.Contains(t, out, "File name: Missing")
	assert.Contains(t, out, "Fail")
}

func TestFetch_UnknownChoice(t *testing.T) {
	srv := newServer(t)
	dir := t.TempDir()

	out, err := run(t, "--headless", "--choice", "nope", "-c", writeConfig(t, dir, srv.URL))

	var exit cli.ExitCoder
	require.ErrorAs(t, err, &exit)
	assert.NotContains(t, out, "File name:")
}

func TestFetch_BadConfig(t *testing.T) {
	_, err := run(t, "--headless", "--choice", "Glide", "-c", filepath.Join(t.TempDir(), "missing.yaml"))

	var exit cli.ExitCoder
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 1, exit.ExitCode())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
