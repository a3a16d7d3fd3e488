// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrInvalidConfig is returned when the configuration fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrNoChoices is returned when no choices are configured.
	ErrNoChoices = errors.New("no choices configured")
	// ErrEmptyName is returned when a choice has no name.
	ErrEmptyName = errors.New("choice has no name")
	// ErrDuplicateName is returned when two choices share a name.
	ErrDuplicateName = errors.New("duplicate choice name")
	// ErrEmptyURL is returned when a choice has no URL.
	ErrEmptyURL = errors.New("choice has no url")
	// ErrInvalidURL is returned when a choice URL cannot be parsed or has no scheme.
	ErrInvalidURL = errors.New("choice url is invalid")
)

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var result error

	if len(c.Choices) == 0 {
		result = multierror.Append(result, ErrNoChoices)
	}

	seen := make(map[string]struct{}, len(c.Choices))

	for i, ch := range c.Choices {
		if ch.Name == "" {
			result = multierror.Append(result, fmt.Errorf("%w: choice %d", ErrEmptyName, i))
		} else {
			if _, dup := seen[ch.Name]; dup {
				result = multierror.Append(result, fmt.Errorf("%w: %s", ErrDuplicateName, ch.Name))
			}

			seen[ch.Name] = struct{}{}
		}

		if ch.URL == "" {
			result = multierror.Append(result, fmt.Errorf("%w: choice %d (%s)", ErrEmptyURL, i, ch.Name))
			continue
		}

		if u, err := url.Parse(ch.URL); err != nil || u.Scheme == "" {
			result = multierror.Append(result, fmt.Errorf("%w: %s", ErrInvalidURL, ch.URL))
		}
	}

	if result != nil {
		return errors.Join(ErrInvalidConfig, result)
	}

	return nil
}
