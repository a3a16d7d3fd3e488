// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package history

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/matt-FFFFFF/loadbtn/internal/ctxlog"
	"github.com/matt-FFFFFF/loadbtn/internal/task"
	"github.com/spf13/afero"
)

const (
	filePerm = 0o644
	dirPerm  = 0o755
)

var (
	// ErrWriteJournal is returned when an entry cannot be appended.
	ErrWriteJournal = errors.New("failed to write journal entry")
	// ErrReadJournal is returned when the journal cannot be read or decoded.
	ErrReadJournal = errors.New("failed to read journal")
)

// FsFactory is a function that returns an afero filesystem.
var FsFactory = func() afero.Fs {
	return afero.NewOsFs()
}

// Entry is one journal record.
type Entry struct {
	ID          string `yaml:"id"`
	task.Result `yaml:",inline"`
}

// Journal is a task.Sink that appends every result to a file.
type Journal struct {
	ctx  context.Context
	fs   afero.Fs
	path string
	mu   sync.Mutex
}

var _ task.Sink = (*Journal)(nil)

// NewJournal returns a journal writing to path. The file is created on first use.
func NewJournal(ctx context.Context, path string) *Journal {
	return &Journal{
		ctx:  ctx,
		fs:   FsFactory(),
		path: path,
	}
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return j.path
}

// Deliver implements task.Sink. Failures are logged and otherwise ignored.
func (j *Journal) Deliver(r task.Result) {
	if err := j.Append(r); err != nil {
		ctxlog.Error(j.ctx, "journal write failed", "path", j.path, "error", err)
	}
}

// Append writes r as a new document at the end of the journal.
func (j *Journal) Append(r task.Result) error {
	entry := Entry{ID: uuid.NewString(), Result: r}

	doc, err := yaml.Marshal(entry)
	if err != nil {
		return errors.Join(ErrWriteJournal, err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	if dir := filepath.Dir(j.path); dir != "." {
		if err := j.fs.MkdirAll(dir, dirPerm); err != nil {
			return errors.Join(ErrWriteJournal, err)
		}
	}

	f, err := j.fs.OpenFile(j.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, filePerm)
	if err != nil {
		return errors.Join(ErrWriteJournal, err)
	}

	var buf bytes.Buffer

	buf.WriteString("---\n")
	buf.Write(doc)

	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close() //nolint:errcheck
		return errors.Join(ErrWriteJournal, err)
	}

	if err := f.Close(); err != nil {
		return errors.Join(ErrWriteJournal, err)
	}

	ctxlog.Debug(j.ctx, "journal entry written", "id", entry.ID, "name", r.DisplayName)

	return nil
}

// Read returns every entry of the journal at path in the order written.
// A missing journal has no entries.
func Read(fs afero.Fs, path string) ([]Entry, error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, errors.Join(ErrReadJournal, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))

	var entries []Entry

	for {
		var e Entry

		err := dec.Decode(&e)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return entries, errors.Join(ErrReadJournal, err)
		}

		if e.ID == "" && e.DisplayName == "" {
			continue
		}

		entries = append(entries, e)
	}

	return entries, nil
}
