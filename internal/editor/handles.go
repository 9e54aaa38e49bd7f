package editor

import (
	"image"
	"math"
)

// HandlePoint names one of the interactive resize handles around a shape.
type HandlePoint int

const (
	HandleTL HandlePoint = iota
	HandleT
	HandleTR
	HandleR
	HandleBR
	HandleB
	HandleBL
	HandleL
)

// AllHandles lists every handle in clockwise order from the top-left.
var AllHandles = []HandlePoint{HandleTL, HandleT, HandleTR, HandleR, HandleBR, HandleB, HandleBL, HandleL}

// CanvasHandles are the handles offered on the canvas edge.
var CanvasHandles = []HandlePoint{HandleBR, HandleR, HandleB}

// Constraint limits what the handle widget lets the user do.
type Constraint struct {
	// Bounds clamps resizing when non-empty.
	Bounds image.Rectangle
	// KeepAspect preserves the width/height ratio while resizing.
	KeepAspect bool
	// Draggable allows the whole shape to be moved.
	Draggable bool
}

// Handles is the interactive handle widget attached to one shape. The editor
// only enables, disables and repositions it; the widget reports user
// gestures through the registered callbacks.
type Handles interface {
	Enable(rect image.Rectangle, points []HandlePoint, c Constraint)
	Disable()
	Enabled() bool
	// Track moves the handles after the editor changed the shape geometry.
	Track(rect image.Rectangle)
	OnDragMove(fn func(topLeft image.Point))
	OnResizeDone(fn func(rect image.Rectangle))
}

// HeadlessHandles is a Handles implementation without any rendering. It
// remembers its configuration and lets callers replay gestures, which is how
// the command session and tests drive the editor.
type HeadlessHandles struct {
	enabled    bool
	rect       image.Rectangle
	points     []HandlePoint
	constraint Constraint
	dragMove   func(image.Point)
	resizeDone func(image.Rectangle)
}

var _ Handles = (*HeadlessHandles)(nil)

func (h *HeadlessHandles) Enable(rect image.Rectangle, points []HandlePoint, c Constraint) {
	h.enabled = true
	h.rect = rect
	h.points = append([]HandlePoint(nil), points...)
	h.constraint = c
}

func (h *HeadlessHandles) Disable() {
	h.enabled = false
	h.points = nil
}

func (h *HeadlessHandles) Enabled() bool { return h.enabled }

func (h *HeadlessHandles) Track(rect image.Rectangle) { h.rect = rect }

func (h *HeadlessHandles) OnDragMove(fn func(image.Point)) { h.dragMove = fn }

func (h *HeadlessHandles) OnResizeDone(fn func(image.Rectangle)) { h.resizeDone = fn }

// Rect returns the last geometry the editor reported.
func (h *HeadlessHandles) Rect() image.Rectangle { return h.rect }

// Points returns the handles that were enabled.
func (h *HeadlessHandles) Points() []HandlePoint { return append([]HandlePoint(nil), h.points...) }

// Constraint returns the constraint passed to Enable.
func (h *HeadlessHandles) Constraint() Constraint { return h.constraint }

// Drag replays a drag of the whole shape to topLeft. It does nothing while
// the widget is disabled or not draggable.
func (h *HeadlessHandles) Drag(topLeft image.Point) bool {
	if !h.enabled || !h.constraint.Draggable || h.dragMove == nil {
		return false
	}
	h.dragMove(topLeft)
	return true
}

// Resize replays a completed resize gesture made with the grab handle,
// applying the constraint the same way an interactive widget would.
func (h *HeadlessHandles) Resize(grab HandlePoint, rect image.Rectangle) bool {
	if !h.enabled || h.resizeDone == nil {
		return false
	}
	h.resizeDone(ConstrainRect(h.rect, rect.Canon(), grab, h.constraint))
	return true
}

// ConstrainRect applies c to next, the rectangle proposed by dragging the
// grab handle of prev. With KeepAspect the edges the handle does not move stay
// put and both sides scale by the same factor: the height drives the top and
// bottom handles, the width every other handle. Bounds only limit shapes that
// started inside them.
func ConstrainRect(prev, next image.Rectangle, grab HandlePoint, c Constraint) image.Rectangle {
	bounded := !c.Bounds.Empty() && prev.In(c.Bounds)
	if !c.KeepAspect || prev.Empty() || next.Empty() {
		if bounded {
			next = next.Intersect(c.Bounds)
		}
		return next
	}

	pw, ph := float64(prev.Dx()), float64(prev.Dy())
	scale := float64(next.Dx()) / pw
	if grab == HandleT || grab == HandleB {
		scale = float64(next.Dy()) / ph
	}
	fromLeft := grab == HandleTL || grab == HandleL || grab == HandleBL
	fromTop := grab == HandleTL || grab == HandleT || grab == HandleTR

	availW, availH := math.MaxInt, math.MaxInt
	if bounded {
		availW = c.Bounds.Max.X - prev.Min.X
		if fromLeft {
			availW = prev.Max.X - c.Bounds.Min.X
		}
		availH = c.Bounds.Max.Y - prev.Min.Y
		if fromTop {
			availH = prev.Max.Y - c.Bounds.Min.Y
		}
		scale = min(scale, float64(availW)/pw, float64(availH)/ph)
	}
	w := min(max(int(math.Round(pw*scale)), 1), availW)
	h := min(max(int(math.Round(ph*scale)), 1), availH)

	var r image.Rectangle
	if fromLeft {
		r.Min.X, r.Max.X = prev.Max.X-w, prev.Max.X
	} else {
		r.Min.X, r.Max.X = prev.Min.X, prev.Min.X+w
	}
	if fromTop {
		r.Min.Y, r.Max.Y = prev.Max.Y-h, prev.Max.Y
	} else {
		r.Min.Y, r.Max.Y = prev.Min.Y, prev.Min.Y+h
	}
	return r
}
