package widget

import (
	"strconv"

	"chatwidget/internal/config"
	"chatwidget/internal/prefs"
)

// ResizeController implements the pointer-drag resize interaction. It is a
// two-state machine, Idle and Dragging: pointer-down inside the handle region
// snapshots the pointer and the current dimensions, every pointer-move while
// dragging recomputes a clamped candidate size and persists it, and
// pointer-up returns to Idle. The drag snapshot is the only transient state;
// it exists solely between the down/up pair.
type ResizeController struct {
	anchor config.Position
	store  prefs.Store

	size     Size
	viewport Viewport

	dragging     bool
	startPointer Point
	startSize    Size

	// onApply is invoked with the new size on every applied move, the
	// hook the host uses to restyle its panel.
	onApply func(Size)
}

// NewResizeController creates a controller at the given initial size.
func NewResizeController(anchor config.Position, initial Size, store prefs.Store) *ResizeController {
	return &ResizeController{
		anchor: anchor,
		store:  store,
		size:   initial,
	}
}

// OnApply registers the host callback for applied size changes.
func (r *ResizeController) OnApply(fn func(Size)) {
	r.onApply = fn
}

// SetViewport records the current viewport. The viewport-derived maximum is
// recomputed from it on every move, so a shrinking host window tightens the
// clamp mid-drag.
func (r *ResizeController) SetViewport(vp Viewport) {
	r.viewport = vp
}

// Size returns the current widget dimensions.
func (r *ResizeController) Size() Size {
	return r.size
}

// Dragging reports whether a drag is in progress.
func (r *ResizeController) Dragging() bool {
	return r.dragging
}

// PointerDown enters Dragging if p falls inside the handle region. It
// reports whether the drag started.
func (r *ResizeController) PointerDown(p Point) bool {
	if r.dragging {
		return false
	}
	if !HandleRegion(r.size, r.viewport, r.anchor).Contains(p) {
		return false
	}
	r.dragging = true
	r.startPointer = p
	r.startSize = r.size
	return true
}

// PointerMove applies one drag step. The horizontal delta's sign depends on
// the anchor side: a right-anchored widget grows as the pointer moves left, a
// left-anchored one as it moves right. The handle sits at the top, so moving
// up always grows the height. The clamped result is applied and persisted on
// every move, not only at drag end, so the last size survives an ungraceful
// session end.
func (r *ResizeController) PointerMove(p Point) {
	if !r.dragging {
		return
	}

	dx := p.X - r.startPointer.X
	if r.anchor == config.PositionRight {
		dx = -dx
	}
	dy := r.startPointer.Y - p.Y

	candidate := Size{
		Width:  r.startSize.Width + dx,
		Height: r.startSize.Height + dy,
	}
	r.apply(ClampSize(candidate, r.viewport))
}

// PointerUp leaves Dragging. The move/up handling is inert outside a drag,
// the equivalent of detaching the transient listeners.
func (r *ResizeController) PointerUp() {
	r.dragging = false
}

// Restore applies a size without a drag, clamped the same way. Boot uses it
// to put the resolved dimensions into effect.
func (r *ResizeController) Restore(s Size) {
	r.apply(ClampSize(s, r.viewport))
}

func (r *ResizeController) apply(s Size) {
	r.size = s
	if r.onApply != nil {
		r.onApply(s)
	}
	r.store.Set(prefs.KeyWidth, strconv.Itoa(s.Width))
	r.store.Set(prefs.KeyHeight, strconv.Itoa(s.Height))
}
