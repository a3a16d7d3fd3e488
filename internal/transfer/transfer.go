// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	getter "github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/loadbtn/internal/config"
	"github.com/matt-FFFFFF/loadbtn/internal/ctxlog"
	"github.com/matt-FFFFFF/loadbtn/internal/task"
)

const dirPerm = 0o755

var (
	// ErrNoURL is returned at dispatch when the choice has no URL.
	ErrNoURL = errors.New("no url to download")
	// ErrDestination is returned when the destination directory cannot be prepared.
	ErrDestination = errors.New("failed to prepare download destination")
	// ErrDownload is returned when the transfer itself fails.
	ErrDownload = errors.New("download failed")
)

// Source starts downloads into a destination directory.
type Source struct {
	dest     string
	client   *getter.Client
	reporter task.Reporter
	interval time.Duration
}

// Option configures a Source.
type Option func(*Source)

// WithClient replaces the go-getter client.
func WithClient(c *getter.Client) Option {
	return func(s *Source) {
		if c != nil {
			s.client = c
		}
	}
}

// WithReporter sets where progress events are sent.
func WithReporter(r task.Reporter) Option {
	return func(s *Source) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithProgressInterval sets the minimum time between two progress events.
func WithProgressInterval(d time.Duration) Option {
	return func(s *Source) {
		s.interval = d
	}
}

// NewSource creates a Source writing into dest.
// The default client never unpacks archives, so a .zip is stored as downloaded.
func NewSource(dest string, opts ...Option) *Source {
	s := &Source{
		dest: dest,
		client: &getter.Client{
			DisableSymlinks: true,
			Decompressors:   map[string]getter.Decompressor{},
		},
		reporter: task.NewNullReporter(),
		interval: defaultProgressInterval,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Dest returns the destination directory.
func (s *Source) Dest() string {
	return s.dest
}

// Target returns the path the choice is downloaded to.
func (s *Source) Target(choice config.Choice) string {
	return filepath.Join(s.dest, fileName(choice))
}

// Factory returns a task factory downloading choice.
// A choice without a URL fails at dispatch; anything else fails through the task completion.
func (s *Source) Factory(choice config.Choice) task.Factory {
	return func(ctx context.Context) (task.Handle, error) {
		if choice.URL == "" {
			return nil, fmt.Errorf("%w: %s", ErrNoURL, choice.Name)
		}

		id := uuid.NewString()
		dst := s.Target(choice)

		ctx = ctxlog.With(ctx, "download", id, "choice", choice.Name)

		return task.Go(ctx, choice.Name, func(ctx context.Context) error {
			return s.download(ctx, id, choice, dst)
		}), nil
	}
}

func (s *Source) download(ctx context.Context, id string, choice config.Choice, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), dirPerm); err != nil {
		return errors.Join(ErrDestination, err)
	}

	// A previous download of the same choice is replaced, never resumed.
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Join(ErrDestination, err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return errors.Join(ErrDestination, err)
	}

	ctxlog.Debug(ctx, "download starting", "url", choice.URL, "dst", dst)

	tracker := &progressTracker{
		reporter: s.reporter,
		id:       id,
		name:     choice.Name,
		interval: s.interval,
		now:      time.Now,
	}

	_, err = s.client.Get(ctx, &getter.Request{
		Src:              choice.URL,
		Dst:              dst,
		Pwd:              wd,
		GetMode:          getter.ModeFile,
		Copy:             true,
		ProgressListener: tracker,
	})
	if err != nil {
		ctxlog.Debug(ctx, "download failed", "error", err)
		return errors.Join(ErrDownload, err)
	}

	ctxlog.Debug(ctx, "download finished", "dst", dst, "bytes", tracker.done())

	return nil
}

// fileName derives a stable file name for the choice: the choice name made safe for the
// filesystem, with the extension of the URL path.
func fileName(choice config.Choice) string {
	base := path.Base(urlPath(choice.URL))
	ext := path.Ext(base)

	slug := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '-'
		}
	}, strings.TrimSpace(choice.Name))

	slug = strings.Trim(slug, "-.")
	if slug == "" {
		if base == "." || base == "/" || base == "" {
			return "download"
		}

		return base
	}

	return slug + ext
}

func urlPath(raw string) string {
	if i := strings.Index(raw, "::"); i >= 0 {
		raw = raw[i+2:]
	}

	if i := strings.IndexAny(raw, "?#"); i >= 0 {
		raw = raw[:i]
	}

	if i := strings.Index(raw, "://"); i >= 0 {
		raw = raw[i+3:]
		if j := strings.IndexByte(raw, '/'); j >= 0 {
			return raw[j:]
		}

		return "/"
	}

	return raw
}
