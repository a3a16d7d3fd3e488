// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package button

import (
	"math"
	"time"
)

const (
	// DefaultCycle is the time one animation cycle takes.
	DefaultCycle = time.Second
	// ArcPeriod is the period of the arc clock in degrees.
	ArcPeriod = 360.0
)

// Clock is a value in [0, Period) that restarts from zero every cycle.
// A clock with a non-positive period always reads zero.
type Clock struct {
	period float64
	value  float64
}

// Value returns the current value of the clock.
func (c Clock) Value() float64 { return c.value }

// Period returns the bound of the clock.
func (c Clock) Period() float64 { return c.period }

func (c *Clock) setPhase(phase float64) {
	if c.period <= 0 {
		c.value = 0
		return
	}

	v := phase * c.period
	if v >= c.period || v < 0 {
		v = 0
	}

	c.value = v
}

// Driver is the single timing source of the button animation. It keeps one phase in [0, 1)
// and derives the fill and arc clocks from it, so the two can never drift apart.
type Driver struct {
	cycle   time.Duration
	phase   float64
	running bool
	fill    Clock
	arc     Clock
}

// NewDriver creates a stopped driver whose fill clock spans width.
// A non-positive cycle falls back to DefaultCycle.
func NewDriver(width float64, cycle time.Duration) *Driver {
	if cycle <= 0 {
		cycle = DefaultCycle
	}

	return &Driver{
		cycle: cycle,
		fill:  Clock{period: math.Max(width, 0)},
		arc:   Clock{period: ArcPeriod},
	}
}

// Start runs both clocks from zero.
func (d *Driver) Start() {
	d.running = true
	d.setPhase(0)
}

// Stop halts both clocks and resets them to zero.
func (d *Driver) Stop() {
	d.running = false
	d.setPhase(0)
}

// Running reports whether the clocks are advancing.
func (d *Driver) Running() bool { return d.running }

// Advance moves both clocks forward by elapsed time, wrapping at the end of each cycle.
// It does nothing while the driver is stopped.
func (d *Driver) Advance(elapsed time.Duration) {
	if !d.running || elapsed <= 0 {
		return
	}

	p := d.phase + float64(elapsed)/float64(d.cycle)
	d.setPhase(p - math.Floor(p))
}

func (d *Driver) setPhase(p float64) {
	d.phase = p
	d.fill.setPhase(p)
	d.arc.setPhase(p)
}

// Phase returns the shared position in the current cycle, in [0, 1).
func (d *Driver) Phase() float64 { return d.phase }

// Cycle returns the duration of one cycle.
func (d *Driver) Cycle() time.Duration { return d.cycle }

// Fill returns the background fill clock.
func (d *Driver) Fill() Clock { return d.fill }

// Arc returns the indicator arc clock.
func (d *Driver) Arc() Clock { return d.arc }
