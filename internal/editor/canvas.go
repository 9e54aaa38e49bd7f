package editor

import (
	"image"

	"github.com/example/clippaint/internal/history"
	"github.com/example/clippaint/internal/surface"
)

// CanvasResizer changes the canvas dimensions and owns the canvas edge
// handles. The handles are only offered while no selection exists.
type CanvasResizer struct {
	surface *surface.Surface
	log     *history.Log
	handles Handles
}

func newCanvasResizer(s *surface.Surface, log *history.Log, h Handles) *CanvasResizer {
	c := &CanvasResizer{surface: s, log: log, handles: h}
	h.OnResizeDone(c.ResizeDone)
	return c
}

// SetSize resizes the canvas and records the change. Negative dimensions are
// rejected; a size equal to the current one records nothing.
func (c *CanvasResizer) SetSize(w, h int) bool {
	return c.setSize(w, h, false)
}

func (c *CanvasResizer) setSize(w, h int, ignoreHistory bool) bool {
	if w < 0 || h < 0 {
		return false
	}
	if c.surface.Size() == image.Pt(w, h) {
		return false
	}
	if !ignoreHistory {
		c.log.Record(history.NewCanvasResize(c.surface, w, h))
	}
	c.surface.Resize(w, h)
	c.handles.Track(c.surface.Bounds())
	return true
}

// ResizeDone applies the result of a canvas handle gesture.
func (c *CanvasResizer) ResizeDone(r image.Rectangle) {
	c.SetSize(r.Dx(), r.Dy())
}

// EnableInteractive offers the right, bottom and corner handles.
func (c *CanvasResizer) EnableInteractive() {
	if c.handles.Enabled() {
		return
	}
	c.handles.Enable(c.surface.Bounds(), CanvasHandles, Constraint{})
}

// DisableInteractive hides the canvas handles.
func (c *CanvasResizer) DisableInteractive() {
	if c.handles.Enabled() {
		c.handles.Disable()
	}
}

// Interactive reports whether the canvas handles are enabled.
func (c *CanvasResizer) Interactive() bool { return c.handles.Enabled() }

// replayCanvas lets history reversal resize through the controller without
// recording new operations.
type replayCanvas struct {
	*surface.Surface
	c *CanvasResizer
}

func (r replayCanvas) Resize(w, h int) { r.c.setSize(w, h, true) }
