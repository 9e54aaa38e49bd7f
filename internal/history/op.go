// Package history records reversible pixel operations and replays them for
// undo and redo.
package history

import (
	"fmt"
	"image"
)

// Canvas is the pixel store operations are recorded against and reverted on.
// *surface.Surface satisfies it.
type Canvas interface {
	Size() image.Point
	Region(r image.Rectangle) *image.RGBA
	Put(p image.Point, px image.Image)
	Resize(width, height int)
}

// Kind identifies an operation variant.
type Kind int

const (
	KindClip Kind = iota
	KindDrop
	KindCanvasResize
)

func (k Kind) String() string {
	switch k {
	case KindClip:
		return "clip"
	case KindDrop:
		return "drop"
	case KindCanvasResize:
		return "canvas-resize"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Op is a recorded pixel mutation. The set of implementations is closed:
// Clip, Drop and CanvasResize.
type Op interface {
	Kind() Kind
	// Invert captures, against the current canvas, the record that will
	// reapply this operation once Revert has run.
	Invert(c Canvas) Op
	// Revert restores the canvas pixels this operation replaced.
	Revert(c Canvas)
	op()
}

// Clip records the pixels that were lifted out of Rect into a floating
// fragment.
type Clip struct {
	Rect  image.Rectangle
	Prior *image.RGBA
}

// NewClip captures the pixels currently under r.
func NewClip(c Canvas, r image.Rectangle) Clip {
	return Clip{Rect: r, Prior: c.Region(r)}
}

func (Clip) Kind() Kind { return KindClip }
func (Clip) op()        {}

func (o Clip) Invert(c Canvas) Op { return NewDrop(c, o.Rect) }

func (o Clip) Revert(c Canvas) { c.Put(o.Rect.Min, o.Prior) }

// Drop records the pixels that were under Rect before a fragment was drawn
// back onto the canvas.
type Drop struct {
	Rect  image.Rectangle
	Prior *image.RGBA
}

// NewDrop captures the pixels currently under r.
func NewDrop(c Canvas, r image.Rectangle) Drop {
	return Drop{Rect: r, Prior: c.Region(r)}
}

func (Drop) Kind() Kind { return KindDrop }
func (Drop) op()        {}

func (o Drop) Invert(c Canvas) Op { return NewClip(c, o.Rect) }

func (o Drop) Revert(c Canvas) { c.Put(o.Rect.Min, o.Prior) }

// Snapshot is a block of pixels and the canvas position it was read from.
type Snapshot struct {
	At     image.Point
	Pixels *image.RGBA
}

// CanvasResize records a change of canvas dimensions and the strips of
// pixels that the change discarded.
type CanvasResize struct {
	Old, New image.Point
	// Displaced holds at most three snapshots: the vertical strip right of
	// the new width, the horizontal strip below the new height and the
	// corner beyond both.
	Displaced []Snapshot
}

// NewCanvasResize captures what resizing c to width x height would discard.
func NewCanvasResize(c Canvas, width, height int) CanvasResize {
	old := c.Size()
	op := CanvasResize{Old: old, New: image.Pt(width, height)}
	if width < old.X {
		r := image.Rect(width, 0, old.X, min(old.Y, height))
		op.Displaced = append(op.Displaced, Snapshot{At: r.Min, Pixels: c.Region(r)})
	}
	if height < old.Y {
		r := image.Rect(0, height, min(old.X, width), old.Y)
		op.Displaced = append(op.Displaced, Snapshot{At: r.Min, Pixels: c.Region(r)})
	}
	if width < old.X && height < old.Y {
		r := image.Rect(width, height, old.X, old.Y)
		op.Displaced = append(op.Displaced, Snapshot{At: r.Min, Pixels: c.Region(r)})
	}
	return op
}

func (CanvasResize) Kind() Kind { return KindCanvasResize }
func (CanvasResize) op()        {}

// Invert records the resize back to the new dimensions, capturing the
// pixels that reverting to Old is about to discard.
func (o CanvasResize) Invert(c Canvas) Op { return NewCanvasResize(c, o.Old.X, o.Old.Y) }

func (o CanvasResize) Revert(c Canvas) {
	c.Resize(o.Old.X, o.Old.Y)
	for _, d := range o.Displaced {
		c.Put(d.At, d.Pixels)
	}
}
