// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	getter "github.com/hashicorp/go-getter/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/matt-FFFFFF/loadbtn/internal/ctxlog"
	"github.com/spf13/afero"
)

var (
	// ErrReadConfigFile is returned when the configuration file cannot be read.
	ErrReadConfigFile = errors.New("failed to read configuration file")
	// ErrParseConfigFile is returned when the configuration file cannot be decoded.
	ErrParseConfigFile = errors.New("failed to parse configuration file")
	// ErrUnsupportedFormat is returned for files that are neither YAML nor HCL.
	ErrUnsupportedFormat = errors.New("unsupported configuration format, use .yaml, .yml or .hcl")
	// ErrGetConfigFile is returned when a remote configuration file cannot be fetched.
	ErrGetConfigFile = errors.New("failed to get configuration file")
)

// LoadFrom returns the built-in configuration when src is empty, reads src when it names a
// local file and otherwise fetches it with go-getter.
func LoadFrom(ctx context.Context, src string) (*Config, error) {
	if src == "" {
		ctxlog.Debug(ctx, "using built-in configuration")
		return Default(), nil
	}

	if ok, _ := afero.Exists(FsFactory(), src); ok {
		ctxlog.Debug(ctx, "loading configuration file", "path", src)
		return Load(src)
	}

	ctxlog.Debug(ctx, "fetching configuration", "src", src)

	data, name, err := Fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	return Parse(name, data)
}

// Load reads and validates the configuration file at file.
func Load(file string) (*Config, error) {
	data, err := afero.ReadFile(FsFactory(), file)
	if err != nil {
		return nil, errors.Join(ErrReadConfigFile, err)
	}

	return Parse(file, data)
}

// Parse decodes data as the format implied by the extension of name, then validates it.
func Parse(name string, data []byte) (*Config, error) {
	cfg := &Config{}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Join(ErrParseConfigFile, err)
		}
	case ".hcl":
		if err := hclsimple.Decode(filepath.Base(name), data, hclEvalContext(), cfg); err != nil {
			return nil, errors.Join(ErrParseConfigFile, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Fetch retrieves a single file with go-getter and returns its content and file name.
func Fetch(ctx context.Context, src string) ([]byte, string, error) {
	if src == "" {
		return nil, "", ErrGetConfigFile
	}

	name := sourceFileName(src)
	if name == "" {
		return nil, "", fmt.Errorf("%w: cannot determine file name of %s", ErrGetConfigFile, src)
	}

	tmpDir, err := os.MkdirTemp("", "loadbtn-config-*")
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	client := &getter.Client{
		DisableSymlinks: true,
		Decompressors:   map[string]getter.Decompressor{},
	}

	dst := filepath.Join(tmpDir, name)

	if _, err := client.Get(ctx, &getter.Request{
		Src:     src,
		Dst:     dst,
		Pwd:     wd,
		GetMode: getter.ModeFile,
		Copy:    true,
	}); err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, "", errors.Join(ErrGetConfigFile, err)
	}

	return data, name, nil
}

// sourceFileName returns the last path element of a go-getter source, ignoring any query.
func sourceFileName(src string) string {
	if i := strings.Index(src, "::"); i >= 0 {
		src = src[i+2:]
	}

	p := src
	if u, err := url.Parse(src); err == nil && u.Path != "" {
		p = u.Path
	} else if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}

	base := path.Base(filepath.ToSlash(p))
	if base == "." || base == "/" {
		return ""
	}

	return base
}
