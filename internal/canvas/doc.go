// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package canvas provides the 2D drawing surface the progress button renders onto.
//
// Coordinates are floating point and measured in terminal cells, with the origin in the
// top-left corner and y growing downwards. Angles are in degrees, clockwise from three
// o'clock. Grid is the terminal implementation: it rasterises rectangles, pie slices and
// text into a fixed grid of cells and renders the result with lipgloss.
package canvas
