package ui

import (
	"image"

	"github.com/example/clippaint/internal/editor"
	"github.com/example/clippaint/internal/render"
)

type gesture int

const (
	gestureNone gesture = iota
	gestureDrag
	gestureResize
)

// HandleWidget is the interactive editor.Handles implementation used by the
// window. It works in canvas coordinates and is fed raw pointer positions by
// the event loop.
type HandleWidget struct {
	enabled    bool
	rect       image.Rectangle
	points     []editor.HandlePoint
	constraint editor.Constraint
	dragMove   func(image.Point)
	resizeDone func(image.Rectangle)

	active    gesture
	grab      editor.HandlePoint
	start     image.Point
	startRect image.Rectangle
	preview   image.Rectangle
}

var _ editor.Handles = (*HandleWidget)(nil)

func (h *HandleWidget) Enable(rect image.Rectangle, points []editor.HandlePoint, c editor.Constraint) {
	h.enabled = true
	h.rect = rect
	h.points = append(h.points[:0], points...)
	h.constraint = c
	h.active = gestureNone
}

func (h *HandleWidget) Disable() {
	h.enabled = false
	h.points = h.points[:0]
	h.active = gestureNone
}

func (h *HandleWidget) Enabled() bool { return h.enabled }

func (h *HandleWidget) Track(rect image.Rectangle) { h.rect = rect }

func (h *HandleWidget) OnDragMove(fn func(image.Point)) { h.dragMove = fn }

func (h *HandleWidget) OnResizeDone(fn func(image.Rectangle)) { h.resizeDone = fn }

// Rect returns the geometry the handles surround.
func (h *HandleWidget) Rect() image.Rectangle { return h.rect }

// Points returns the enabled handles.
func (h *HandleWidget) Points() []editor.HandlePoint { return h.points }

// Active reports whether a gesture is in progress.
func (h *HandleWidget) Active() bool { return h.active != gestureNone }

// Preview returns the outline of a resize in progress.
func (h *HandleWidget) Preview() (image.Rectangle, bool) {
	return h.preview, h.active == gestureResize
}

// HitHandle returns the handle under p, if any.
func (h *HandleWidget) HitHandle(p image.Point) (editor.HandlePoint, bool) {
	if !h.enabled {
		return 0, false
	}
	for _, pt := range h.points {
		if p.In(render.HandleRect(h.rect, pt)) {
			return pt, true
		}
	}
	return 0, false
}

// Press starts a resize when p is on a handle or a drag when p is inside a
// draggable shape. It reports whether the press was consumed.
func (h *HandleWidget) Press(p image.Point) bool {
	if !h.enabled {
		return false
	}
	if pt, ok := h.HitHandle(p); ok {
		h.active = gestureResize
		h.grab = pt
	} else if h.constraint.Draggable && p.In(h.rect) {
		h.active = gestureDrag
	} else {
		return false
	}
	h.start = p
	h.startRect = h.rect
	h.preview = h.rect
	return true
}

// Move updates the gesture in progress and reports whether anything changed.
func (h *HandleWidget) Move(p image.Point) bool {
	d := p.Sub(h.start)
	switch h.active {
	case gestureDrag:
		if h.dragMove != nil {
			h.dragMove(h.startRect.Min.Add(d))
		}
		return true
	case gestureResize:
		next := editor.ConstrainRect(h.startRect, resizeRect(h.startRect, h.grab, d), h.grab, h.constraint)
		if next == h.preview {
			return false
		}
		h.preview = next
		return true
	}
	return false
}

// Release finishes the gesture. A resize reports its final rectangle through
// the resize callback.
func (h *HandleWidget) Release(p image.Point) bool {
	if h.active == gestureNone {
		return false
	}
	h.Move(p)
	g := h.active
	h.active = gestureNone
	if g == gestureResize && h.resizeDone != nil && !h.preview.Empty() && h.preview != h.startRect {
		h.resizeDone(h.preview)
	}
	return true
}

// resizeRect moves the edges of r that handle p controls by d.
func resizeRect(r image.Rectangle, p editor.HandlePoint, d image.Point) image.Rectangle {
	switch p {
	case editor.HandleTL:
		r.Min = r.Min.Add(d)
	case editor.HandleT:
		r.Min.Y += d.Y
	case editor.HandleTR:
		r.Min.Y += d.Y
		r.Max.X += d.X
	case editor.HandleR:
		r.Max.X += d.X
	case editor.HandleBR:
		r.Max = r.Max.Add(d)
	case editor.HandleB:
		r.Max.Y += d.Y
	case editor.HandleBL:
		r.Min.X += d.X
		r.Max.Y += d.Y
	case editor.HandleL:
		r.Min.X += d.X
	}
	r = r.Canon()
	r.Max.X = max(r.Max.X, r.Min.X+1)
	r.Max.Y = max(r.Max.Y, r.Min.Y+1)
	return r
}
