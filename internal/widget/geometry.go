package widget

import "chatwidget/internal/config"

// Geometry is measured in the same pixel units the host integration contract
// uses for width/height. The terminal host maps cells onto these units.
const (
	// SafeMargin keeps the widget clear of the opposite viewport edges
	// while resizing.
	SafeMargin = 40
	// EdgeOffset is the widget's fixed horizontal distance from its
	// anchor edge.
	EdgeOffset = 20
	// BottomOffset leaves room for the launcher below the panel.
	BottomOffset = 90
	// HandleSize is the side length of the square drag-handle region in
	// the panel's top corner opposite the anchor.
	HandleSize = 16
)

// Point is a pointer position in viewport coordinates.
type Point struct {
	X int
	Y int
}

// Size is a widget dimension pair.
type Size struct {
	Width  int
	Height int
}

// Viewport is the visible host area the widget floats in.
type Viewport struct {
	Width  int
	Height int
}

// Rect is an axis-aligned region in viewport coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether p falls inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// MaxSize computes the largest dimensions the widget may take in vp: the
// viewport minus the safe margin and the widget's fixed anchor offsets.
func MaxSize(vp Viewport) Size {
	return Size{
		Width:  vp.Width - SafeMargin - EdgeOffset,
		Height: vp.Height - SafeMargin - BottomOffset,
	}
}

// ClampSize constrains s to the closed interval between the dimension floor
// and the viewport-derived maximum. A zero viewport (not yet measured)
// imposes no maximum. The floor wins when the viewport is too small to fit
// it: a drag can never collapse the widget.
func ClampSize(s Size, vp Viewport) Size {
	maxSize := MaxSize(vp)

	if vp.Width > 0 && s.Width > maxSize.Width {
		s.Width = maxSize.Width
	}
	if vp.Height > 0 && s.Height > maxSize.Height {
		s.Height = maxSize.Height
	}
	if s.Width < config.MinWidth {
		s.Width = config.MinWidth
	}
	if s.Height < config.MinHeight {
		s.Height = config.MinHeight
	}
	return s
}

// Bounds returns the panel's region for the given size, viewport and anchor
// side. The panel is pinned to its anchor edge at EdgeOffset and sits
// BottomOffset above the viewport's bottom.
func Bounds(s Size, vp Viewport, anchor config.Position) Rect {
	x := EdgeOffset
	if anchor == config.PositionRight {
		x = vp.Width - EdgeOffset - s.Width
	}
	return Rect{
		X:      x,
		Y:      vp.Height - BottomOffset - s.Height,
		Width:  s.Width,
		Height: s.Height,
	}
}

// HandleRegion returns the drag-handle rect: the panel's top corner opposite
// the anchor edge, so dragging it away from the anchor grows the widget.
func HandleRegion(s Size, vp Viewport, anchor config.Position) Rect {
	bounds := Bounds(s, vp, anchor)
	x := bounds.X
	if anchor == config.PositionLeft {
		x = bounds.X + bounds.Width - HandleSize
	}
	return Rect{
		X:      x,
		Y:      bounds.Y,
		Width:  HandleSize,
		Height: HandleSize,
	}
}
