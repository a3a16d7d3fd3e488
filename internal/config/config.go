// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/matt-FFFFFF/loadbtn/internal/button"
)

// DefaultDestination is the download directory used when none is configured.
const DefaultDestination = "downloads"

// Config is the top level configuration.
type Config struct {
	Destination string   `yaml:"destination,omitempty" hcl:"destination,optional"`
	Labels      *Labels  `yaml:"labels,omitempty" hcl:"labels,block"`
	Palette     *Palette `yaml:"palette,omitempty" hcl:"palette,block"`
	Choices     []Choice `yaml:"choices" hcl:"choice,block"`
}

// Choice is one file the user can download.
type Choice struct {
	Name        string `yaml:"name" hcl:"name,label"`
	Description string `yaml:"description,omitempty" hcl:"description,optional"`
	URL         string `yaml:"url" hcl:"url,optional"`
}

// Title is the text shown for the choice in lists.
func (c Choice) Title() string {
	if c.Description == "" {
		return c.Name
	}

	return c.Name + " - " + c.Description
}

// Labels overrides the button captions.
type Labels struct {
	Idle    string `yaml:"idle,omitempty" hcl:"idle,optional"`
	Loading string `yaml:"loading,omitempty" hcl:"loading,optional"`
}

// Palette overrides the button colours. Values are anything lipgloss accepts as a colour.
type Palette struct {
	Background string `yaml:"background,omitempty" hcl:"background,optional"`
	Accent     string `yaml:"accent,omitempty" hcl:"accent,optional"`
	Text       string `yaml:"text,omitempty" hcl:"text,optional"`
	Arc        string `yaml:"arc,omitempty" hcl:"arc,optional"`
}

// Default returns the built-in choices.
func Default() *Config {
	return &Config{
		Destination: DefaultDestination,
		Choices: []Choice{
			{
				Name:        "Glide",
				Description: "Image Loading Library by BumpTech",
				URL:         "https://github.com/bumptech/glide/archive/master.zip",
			},
			{
				Name:        "LoadApp",
				Description: "Current repository by Udacity",
				URL:         "https://github.com/udacity/nd940-c3-advanced-android-programming-project-starter/archive/master.zip",
			},
			{
				Name:        "Retrofit",
				Description: "Type-safe HTTP client for Android and Java by Square, Inc",
				URL:         "https://github.com/square/retrofit/archive/master.zip",
			},
		},
	}
}

// Choice returns the choice with the given name.
func (c *Config) Choice(name string) (Choice, bool) {
	for _, ch := range c.Choices {
		if ch.Name == name {
			return ch, true
		}
	}

	return Choice{}, false
}

// ButtonOptions converts the caption and colour overrides into button options.
func (c *Config) ButtonOptions() []button.Option {
	var opts []button.Option

	if c.Labels != nil {
		opts = append(opts, button.WithLabels(button.Labels{
			Idle:    c.Labels.Idle,
			Loading: c.Labels.Loading,
		}))
	}

	if c.Palette != nil {
		opts = append(opts, button.WithPalette(button.Palette{
			Background: lipgloss.Color(c.Palette.Background),
			Accent:     lipgloss.Color(c.Palette.Accent),
			Text:       lipgloss.Color(c.Palette.Text),
			Arc:        lipgloss.Color(c.Palette.Arc),
		}))
	}

	return opts
}

func (c *Config) applyDefaults() {
	if c.Destination == "" {
		c.Destination = DefaultDestination
	}
}
