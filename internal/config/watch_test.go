// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type reload struct {
	cfg *Config
	err error
}

func watchFile(t *testing.T, content string) (string, <-chan reload, *Watcher) {
	t.Helper()

	file := filepath.Join(t.TempDir(), "loadbtn.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	ch := make(chan reload, 8)
	w, err := Watch(context.Background(), file, func(cfg *Config, err error) {
		ch <- reload{cfg: cfg, err: err}
	})
	require.NoError(t, err)

	return file, ch, w
}

func next(t *testing.T, ch <-chan reload) reload {
	t.Helper()

	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("configuration was not reloaded")
	}

	return reload{}
}

func TestWatch_Reload(t *testing.T) {
	defer goleak.VerifyNone(t)

	file, ch, w := watchFile(t, yamlConfig)

	updated := "choices:\n  - name: Alpha\n    url: https://example.com/alpha.zip\n"
	require.NoError(t, os.WriteFile(file, []byte(updated), 0o600))

	// The truncation may be seen before the new content.
	r := next(t, ch)
	for r.err != nil || len(r.cfg.Choices) != 1 {
		r = next(t, ch)
	}

	assert.Equal(t, "Alpha", r.cfg.Choices[0].Name)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "closing twice is harmless")
}

func TestWatch_InvalidUpdate(t *testing.T) {
	defer goleak.VerifyNone(t)

	file, ch, w := watchFile(t, yamlConfig)
	defer w.Close() //nolint:errcheck

	require.NoError(t, os.WriteFile(file, []byte("choices: []\n"), 0o600))

	r := next(t, ch)
	assert.ErrorIs(t, r.err, ErrNoChoices)
	assert.Nil(t, r.cfg)
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	file, ch, w := watchFile(t, yamlConfig)
	defer w.Close() //nolint:errcheck

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(file), "other.yaml"), []byte("x"), 0o600))

	select {
	case r := <-ch:
		t.Fatalf("unexpected reload: %+v", r)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatch_MissingFile(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), func(*Config, error) {})
	assert.ErrorIs(t, err, ErrWatchConfigFile)
}
