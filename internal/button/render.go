// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package button

import "github.com/matt-FFFFFF/loadbtn/internal/canvas"

const (
	// arcSizeScale is the arc diameter relative to the caption line height.
	arcSizeScale = 1.0
	// arcGapScale is the gap between caption and arc relative to the line height.
	arcGapScale = 1.0
)

// arcSlot is the horizontal room the arc takes next to the caption.
func arcSlot(lineHeight float64) float64 {
	return lineHeight * (arcGapScale + arcSizeScale)
}

// Render draws the button onto s. It only reads the model, so it may be called as often as
// the host wants.
//
// Drawing order: background, caption, then the loading arc.
func (m *Model) Render(s canvas.Surface) {
	w, h := s.Size()
	bounds := canvas.Rect{Right: float64(w), Bottom: float64(h)}
	loading := m.state == StateLoading

	if loading {
		split := min(m.driver.Fill().Value(), bounds.Right)
		s.FillRect(canvas.Rect{Right: split, Bottom: bounds.Bottom}, m.palette.Accent)
		s.FillRect(canvas.Rect{Left: split, Right: bounds.Right, Bottom: bounds.Bottom}, m.palette.Background)
	} else {
		s.FillRect(bounds, m.palette.Background)
	}

	// The baseline sits half a line below the centre, less the descent, so the glyphs
	// rather than the baseline are centred.
	mt := s.Metrics()
	baseline := bounds.CenterY() + mt.LineHeight()/2 - mt.Descent //nolint:mnd
	s.DrawText(m.label, bounds.CenterX(), baseline, m.palette.Text)

	if !loading {
		return
	}

	text := s.TextBounds(m.label)
	size := text.Height() * arcSizeScale
	left := bounds.CenterX() + text.Width()/2 + text.Height()*arcGapScale //nolint:mnd
	arc := canvas.Rect{
		Left:   left,
		Top:    bounds.CenterY() - size/2, //nolint:mnd
		Right:  left + size,
		Bottom: bounds.CenterY() + size/2, //nolint:mnd
	}

	s.FillArc(arc, 0, m.driver.Arc().Value(), m.palette.Arc)
}
