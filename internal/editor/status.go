package editor

import (
	"fmt"
	"image"
	"time"
)

const (
	MsgIntro    = "Copy your screen by pressing on the Print Screen key. Then paste (Ctrl+v) as an image."
	MsgIdle     = "Paste (Ctrl+v) your image"
	MsgLoading  = "Loading image..."
	MsgCopying  = "Copying to canvas..."
	MsgPasted   = "Image pasted. Cut, copy and paste some more."
	MsgNoImage  = "No image found on your Clipboard!"
	MsgTooLarge = "Oh crap the image is too big to clone..."
)

// StatusRevert is how long a transient message stays up.
const StatusRevert = 2 * time.Second

// Status is the one-line message shown under the canvas. A transient message
// falls back to MsgIdle once Until has passed.
type Status struct {
	Text  string
	Until time.Time
}

// At returns the text to display at t.
func (s Status) At(t time.Time) string {
	if !s.Until.IsZero() && !t.Before(s.Until) {
		return MsgIdle
	}
	return s.Text
}

// CanvasInfo formats a canvas size for the status bar.
func CanvasInfo(size image.Point) string {
	return fmt.Sprintf("%d x %d", size.X, size.Y)
}

// PointerInfo formats the pointer position.
func PointerInfo(p image.Point) string {
	return fmt.Sprintf("%d, %d", p.X, p.Y)
}

// SelectionInfo formats a selection rectangle, or returns "" when r is empty.
func SelectionInfo(r image.Rectangle) string {
	if r.Empty() {
		return ""
	}
	return fmt.Sprintf("%d, %d : %d x %d", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
}
