// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package button

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDriver_StoppedByDefault(t *testing.T) {
	d := NewDriver(40, time.Second)

	assert.False(t, d.Running())
	d.Advance(300 * time.Millisecond)
	assert.Zero(t, d.Fill().Value())
	assert.Zero(t, d.Arc().Value())
}

func TestDriver_DefaultCycle(t *testing.T) {
	assert.Equal(t, DefaultCycle, NewDriver(10, 0).Cycle())
	assert.Equal(t, DefaultCycle, NewDriver(10, -time.Second).Cycle())
}

func TestDriver_Advance(t *testing.T) {
	tests := []struct {
		name     string
		steps    []time.Duration
		wantFill float64
		wantArc  float64
	}{
		{"quarter", []time.Duration{250 * time.Millisecond}, 10, 90},
		{"half in two steps", []time.Duration{200 * time.Millisecond, 300 * time.Millisecond}, 20, 180},
		{"exactly one cycle wraps to zero", []time.Duration{250 * time.Millisecond, 750 * time.Millisecond}, 0, 0},
		{"one and a half cycles", []time.Duration{1500 * time.Millisecond}, 20, 180},
		{"negative elapsed ignored", []time.Duration{100 * time.Millisecond, -time.Second}, 4, 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDriver(40, time.Second)
			d.Start()

			for _, s := range tt.steps {
				d.Advance(s)
			}

			assert.InDelta(t, tt.wantFill, d.Fill().Value(), 1e-9)
			assert.InDelta(t, tt.wantArc, d.Arc().Value(), 1e-9)
		})
	}
}

func TestDriver_BoundsAndPhaseLock(t *testing.T) {
	const width = 37.0

	d := NewDriver(width, time.Second)
	d.Start()

	r := rand.New(rand.NewPCG(1, 2)) //nolint:gosec

	for range 2000 {
		d.Advance(time.Duration(r.Int64N(int64(700 * time.Millisecond))))

		fill, arc := d.Fill().Value(), d.Arc().Value()
		assert.GreaterOrEqual(t, fill, 0.0)
		assert.Less(t, fill, width)
		assert.GreaterOrEqual(t, arc, 0.0)
		assert.Less(t, arc, ArcPeriod)
		assert.InDelta(t, fill/width, arc/ArcPeriod, 1e-9, "clocks are phase locked")
	}
}

func TestDriver_StartStopReset(t *testing.T) {
	d := NewDriver(40, time.Second)

	d.Start()
	d.Advance(400 * time.Millisecond)
	assert.Positive(t, d.Phase())

	d.Stop()
	assert.False(t, d.Running())
	assert.Zero(t, d.Phase())
	assert.Zero(t, d.Fill().Value())
	assert.Zero(t, d.Arc().Value())

	d.Start()
	assert.True(t, d.Running())
	assert.Zero(t, d.Phase(), "a restart begins a fresh cycle")
}

func TestDriver_ZeroWidth(t *testing.T) {
	d := NewDriver(0, time.Second)
	d.Start()
	d.Advance(600 * time.Millisecond)

	assert.Zero(t, d.Fill().Value())
	assert.InDelta(t, 216, d.Arc().Value(), 1e-9)
}

func TestClock_ZeroPeriod(t *testing.T) {
	var c Clock

	c.setPhase(0.5)
	assert.Zero(t, c.Value())
	assert.Zero(t, c.Period())
}
