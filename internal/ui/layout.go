package ui

import (
	"chatwidget/internal/config"
	"chatwidget/internal/widget"
)

// The widget core measures in the pixel units of the host integration
// contract; the terminal host maps one cell onto a fixed pixel box.
const (
	CellWidthPx  = 8
	CellHeightPx = 16
)

// CellRect is a region in terminal cells.
type CellRect struct {
	X    int
	Y    int
	Cols int
	Rows int
}

// Contains reports whether the cell (x, y) falls inside r.
func (r CellRect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Cols && y >= r.Y && y < r.Y+r.Rows
}

// Layout converts between terminal cells and the widget's pixel geometry.
type Layout struct {
	termWidth  int
	termHeight int
}

// NewLayout creates a layout for the current terminal size.
func NewLayout(termWidth, termHeight int) Layout {
	return Layout{termWidth: termWidth, termHeight: termHeight}
}

// Viewport returns the terminal as a pixel viewport for the widget core.
func (l Layout) Viewport() widget.Viewport {
	return widget.Viewport{
		Width:  l.termWidth * CellWidthPx,
		Height: l.termHeight * CellHeightPx,
	}
}

// PointerPx maps a cell coordinate to the pixel at the cell's center.
func (l Layout) PointerPx(x, y int) widget.Point {
	return widget.Point{
		X: x*CellWidthPx + CellWidthPx/2,
		Y: y*CellHeightPx + CellHeightPx/2,
	}
}

// PanelRect returns the panel's cell region for the current widget size,
// derived from the same bounds the pointer protocol uses so drawing and
// hit-testing stay aligned.
func (l Layout) PanelRect(s widget.Size, anchor config.Position) CellRect {
	bounds := widget.Bounds(s, l.Viewport(), anchor)
	r := CellRect{
		X:    bounds.X / CellWidthPx,
		Y:    bounds.Y / CellHeightPx,
		Cols: bounds.Width / CellWidthPx,
		Rows: bounds.Height / CellHeightPx,
	}
	if r.Cols > l.termWidth {
		r.Cols = l.termWidth
	}
	if r.Rows > l.termHeight-1 {
		r.Rows = l.termHeight - 1
	}
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	return r
}

// LauncherRect returns the launcher's cell region: below the panel on the
// anchor side, one row tall.
func (l Layout) LauncherRect(anchor config.Position, buttonCols int) CellRect {
	x := widget.EdgeOffset / CellWidthPx
	if anchor == config.PositionRight {
		x = l.termWidth - x - buttonCols
	}
	y := l.termHeight - 2
	if y < 0 {
		y = 0
	}
	return CellRect{X: x, Y: y, Cols: buttonCols, Rows: 1}
}
