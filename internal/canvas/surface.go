// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package canvas

import "github.com/charmbracelet/lipgloss"

// Rect is an axis aligned rectangle. Right and Bottom are exclusive.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// CenterX returns the horizontal centre.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 } //nolint:mnd

// CenterY returns the vertical centre.
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 } //nolint:mnd

// Empty reports whether the rectangle encloses no area.
func (r Rect) Empty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

// Metrics describes the font the surface draws text with.
// Ascent and Descent are both positive distances from the baseline.
type Metrics struct {
	Ascent  float64
	Descent float64
}

// LineHeight is the distance from the top of the tallest glyph to the bottom of the lowest.
func (m Metrics) LineHeight() float64 { return m.Ascent + m.Descent }

// Measurer answers text layout questions without drawing anything.
type Measurer interface {
	// Metrics returns the font metrics of the surface.
	Metrics() Metrics
	// TextBounds returns the bounding box of text relative to its origin on the baseline:
	// Left is 0, Right is the advance width, Top is -Ascent and Bottom is Descent.
	TextBounds(text string) Rect
}

// Surface is the drawing target of the progress button.
type Surface interface {
	Measurer

	// Size returns the drawable width and height.
	Size() (width, height int)
	// FillRect paints r with a solid colour.
	FillRect(r Rect, c lipgloss.Color)
	// FillArc paints the pie slice of the ellipse inscribed in r that starts at startAngle
	// and sweeps clockwise by sweepAngle degrees.
	FillArc(r Rect, startAngle, sweepAngle float64, c lipgloss.Color)
	// DrawText draws text horizontally centred on centerX with its baseline at baseline.
	DrawText(text string, centerX, baseline float64, c lipgloss.Color)
}
