package editor

import (
	"fmt"
	"image"

	"github.com/example/clippaint/internal/history"
	"github.com/example/clippaint/internal/surface"
)

// SelectionState is the lifecycle stage of the selection.
type SelectionState int

const (
	SelectionIdle SelectionState = iota
	SelectionDrafting
	SelectionCommitted
)

func (s SelectionState) String() string {
	switch s {
	case SelectionIdle:
		return "idle"
	case SelectionDrafting:
		return "drafting"
	case SelectionCommitted:
		return "committed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Selection drives the selection rectangle and its floating fragment.
type Selection struct {
	state    SelectionState
	anchor   image.Point
	rect     image.Rectangle
	fragment *Fragment
	// lifted is set while the fragment holds pixels cut from the canvas by
	// the Clip on top of the history.
	lifted bool

	surface *surface.Surface
	log     *history.Log
	canvas  *CanvasResizer
	handles Handles
}

func newSelection(s *surface.Surface, log *history.Log, canvas *CanvasResizer, h Handles) *Selection {
	sel := &Selection{surface: s, log: log, canvas: canvas, handles: h}
	h.OnDragMove(sel.MoveFragmentTo)
	h.OnResizeDone(sel.resizeDone)
	return sel
}

func (s *Selection) State() SelectionState { return s.state }

// Rect returns the selection rectangle. It is empty while idle.
func (s *Selection) Rect() image.Rectangle { return s.rect }

// Fragment returns the floating fragment or nil.
func (s *Selection) Fragment() *Fragment { return s.fragment }

// Contains reports whether p lies inside an existing selection rectangle.
func (s *Selection) Contains(p image.Point) bool {
	return s.state != SelectionIdle && p.In(s.rect)
}

// BeginDraft anchors a new draft at p clamped to the canvas. It does nothing
// unless the selection is idle.
func (s *Selection) BeginDraft(p image.Point) bool {
	if s.state != SelectionIdle {
		return false
	}
	s.anchor = s.surface.Clamp(p)
	s.rect = image.Rectangle{Min: s.anchor, Max: s.anchor}
	s.state = SelectionDrafting
	s.canvas.DisableInteractive()
	return true
}

// UpdateDraft stretches the draft from the anchor to p clamped to the canvas.
func (s *Selection) UpdateDraft(p image.Point) bool {
	if s.state != SelectionDrafting {
		return false
	}
	s.rect = image.Rectangle{Min: s.anchor, Max: s.surface.Clamp(p)}.Canon()
	return true
}

// CommitDraft lifts the drafted pixels into a fragment. A draft with zero
// width or height is discarded and false is returned.
func (s *Selection) CommitDraft() bool {
	if s.state != SelectionDrafting {
		return false
	}
	if s.rect.Empty() {
		s.reset()
		return false
	}
	s.lift(s.rect)
	return true
}

// SelectAll drops any current selection then lifts the whole canvas.
func (s *Selection) SelectAll() bool {
	s.CommitOrCancel(false)
	b := s.surface.Bounds()
	if b.Empty() {
		return false
	}
	s.canvas.DisableInteractive()
	s.lift(b)
	return true
}

func (s *Selection) lift(r image.Rectangle) {
	s.log.Record(history.NewClip(s.surface, r))
	s.fragment = newFragment(s.surface.Region(r), r.Min)
	s.surface.Clear(r)
	s.lifted = true
	s.commit(r)
}

// CreateFromImage makes a committed selection at r holding src without
// touching the canvas pixels. The canvas grows first when r extends past it.
// An existing selection is dropped before the new one is created.
func (s *Selection) CreateFromImage(r image.Rectangle, src *image.RGBA) bool {
	r = r.Canon()
	if src == nil || r.Empty() {
		return false
	}
	s.CommitOrCancel(false)
	if size := s.surface.Size(); r.Max.X > size.X || r.Max.Y > size.Y {
		s.canvas.SetSize(max(size.X, r.Max.X), max(size.Y, r.Max.Y))
	}
	s.canvas.DisableInteractive()
	s.fragment = newFragment(src, r.Min)
	s.lifted = false
	if s.fragment.pixels.Bounds().Size() != r.Size() {
		s.fragment.resize(r.Dx(), r.Dy())
	}
	s.commit(r)
	return true
}

func (s *Selection) commit(r image.Rectangle) {
	s.rect = r
	s.state = SelectionCommitted
	s.handles.Enable(r, AllHandles, Constraint{Bounds: s.surface.Bounds(), KeepAspect: true, Draggable: true})
}

// ResizeFragment resamples the fragment to w x h from its original pixels.
// Fragment resizes are not recorded in history.
func (s *Selection) ResizeFragment(w, h int) bool {
	if s.state != SelectionCommitted || w <= 0 || h <= 0 {
		return false
	}
	s.fragment.resize(w, h)
	s.rect = s.fragment.Rect()
	s.handles.Track(s.rect)
	return true
}

func (s *Selection) resizeDone(r image.Rectangle) {
	if s.state != SelectionCommitted || r.Empty() {
		return
	}
	s.fragment.pos = r.Min
	s.ResizeFragment(r.Dx(), r.Dy())
}

// MoveFragment shifts the fragment by d.
func (s *Selection) MoveFragment(d image.Point) bool {
	if s.state != SelectionCommitted {
		return false
	}
	s.MoveFragmentTo(s.fragment.pos.Add(d))
	return true
}

// MoveFragmentTo places the fragment's top-left corner at p. The fragment may
// leave the canvas; whatever is off the canvas is clipped on drop.
func (s *Selection) MoveFragmentTo(p image.Point) {
	if s.state != SelectionCommitted {
		return
	}
	s.fragment.pos = p
	s.rect = s.fragment.Rect()
	s.handles.Track(s.rect)
}

// CommitOrCancel ends the current selection. Unless preventDrop is set, a
// floating fragment is composited onto the canvas and a Drop is recorded.
func (s *Selection) CommitOrCancel(preventDrop bool) {
	switch s.state {
	case SelectionIdle:
		return
	case SelectionCommitted:
		s.handles.Disable()
		if !preventDrop && s.fragment != nil {
			r := s.fragment.Rect()
			drop := history.NewDrop(s.surface, r)
			if s.lifted && s.fragment.unchanged() {
				s.log.Return(drop)
			} else {
				s.log.Record(drop)
			}
			s.surface.Composite(r.Min, s.fragment.pixels)
		}
	}
	s.reset()
}

func (s *Selection) reset() {
	s.state = SelectionIdle
	s.rect = image.Rectangle{}
	s.anchor = image.Point{}
	s.fragment = nil
	s.lifted = false
	s.canvas.EnableInteractive()
}
