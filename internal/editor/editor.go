// Package editor holds the clip-paint session: the selection state machine,
// the canvas resize controller and the history they record into.
package editor

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"time"

	"github.com/example/clippaint/internal/history"
	"github.com/example/clippaint/internal/imagesrc"
	"github.com/example/clippaint/internal/session"
	"github.com/example/clippaint/internal/surface"
)

// ErrNoClipboard is returned by Copy when no TextWriter was configured.
var ErrNoClipboard = errors.New("no clipboard available")

// TextWriter receives copied data URLs.
type TextWriter interface {
	WriteText(text string) error
}

// Option configures an Editor.
type Option func(*Editor)

// WithSelectionHandles sets the widget used for the selection handles.
func WithSelectionHandles(h Handles) Option { return func(e *Editor) { e.selHandles = h } }

// WithCanvasHandles sets the widget used for the canvas edge handles.
func WithCanvasHandles(h Handles) Option { return func(e *Editor) { e.canvasHandles = h } }

// WithClipboard sets the destination of Copy and Cut.
func WithClipboard(w TextWriter) Option { return func(e *Editor) { e.clipboard = w } }

// WithClock overrides the time source used for status expiry and file names.
func WithClock(now func() time.Time) Option { return func(e *Editor) { e.now = now } }

// LoadTicket identifies one asynchronous image load.
type LoadTicket struct {
	id uint64
}

// Editor is one editing session.
type Editor struct {
	surface *surface.Surface
	log     history.Log
	sel     *Selection
	canvas  *CanvasResizer

	selHandles    Handles
	canvasHandles Handles
	clipboard     TextWriter
	now           func() time.Time

	status   Status
	lastLoad uint64
	pending  uint64
}

// New returns an editor with a transparent width x height canvas.
func New(width, height int, opts ...Option) *Editor {
	e := &Editor{
		surface: surface.New(width, height),
		now:     time.Now,
		status:  Status{Text: MsgIntro},
	}
	for _, o := range opts {
		o(e)
	}
	if e.selHandles == nil {
		e.selHandles = &HeadlessHandles{}
	}
	if e.canvasHandles == nil {
		e.canvasHandles = &HeadlessHandles{}
	}
	e.canvas = newCanvasResizer(e.surface, &e.log, e.canvasHandles)
	e.sel = newSelection(e.surface, &e.log, e.canvas, e.selHandles)
	e.canvas.EnableInteractive()
	return e
}

// NewFromClone starts a session holding the cloned canvas, with no
// selection and no history.
func NewFromClone(c session.Clone, opts ...Option) (*Editor, error) {
	img, err := imagesrc.Decode(imagesrc.FromText(c.ImageDataURL))
	if err != nil {
		return nil, fmt.Errorf("restore clone: %w", err)
	}
	e := New(0, 0, opts...)
	e.canvas.setSize(c.Width, c.Height, true)
	e.surface.Load(img)
	e.status = Status{Text: MsgPasted}
	return e, nil
}

func (e *Editor) Surface() *surface.Surface { return e.surface }

func (e *Editor) Selection() *Selection { return e.sel }

func (e *Editor) Canvas() *CanvasResizer { return e.canvas }

// History exposes the log for inspection. Mutate it only through the editor.
func (e *Editor) History() *history.Log { return &e.log }

// Status returns the current status line.
func (e *Editor) Status() string { return e.status.At(e.now()) }

// SetStatus shows msg, reverting to MsgIdle after StatusRevert if transient.
func (e *Editor) SetStatus(msg string, transient bool) {
	e.status = Status{Text: msg}
	if transient {
		e.status.Until = e.now().Add(StatusRevert)
	}
}

// Undo cancels any selection without dropping it, then reverts the last
// operation.
func (e *Editor) Undo() bool {
	if !e.log.CanUndo() {
		return false
	}
	e.sel.CommitOrCancel(true)
	return e.log.Undo(e.replay())
}

// Redo cancels any selection without dropping it, then reapplies the last
// undone operation.
func (e *Editor) Redo() bool {
	if !e.log.CanRedo() {
		return false
	}
	e.sel.CommitOrCancel(true)
	return e.log.Redo(e.replay())
}

func (e *Editor) replay() history.Canvas {
	return replayCanvas{Surface: e.surface, c: e.canvas}
}

// Copy writes the fragment as a PNG data URL to the clipboard. Without a
// fragment it copies the whole canvas when all is set.
func (e *Editor) Copy(all bool) error {
	var src *image.RGBA
	switch f := e.sel.Fragment(); {
	case f != nil:
		src = f.Pixels()
	case all:
		src = e.surface.Snapshot()
	default:
		return nil
	}
	if e.clipboard == nil {
		return ErrNoClipboard
	}
	url, err := imagesrc.DataURL(src)
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	if err := e.clipboard.WriteText(url); err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	return nil
}

// Cut copies the fragment and discards it.
func (e *Editor) Cut() error {
	if e.sel.Fragment() == nil {
		return nil
	}
	if err := e.Copy(false); err != nil {
		return err
	}
	e.sel.CommitOrCancel(true)
	return nil
}

// Delete discards the fragment without drawing it back.
func (e *Editor) Delete() bool {
	if e.sel.Fragment() == nil {
		return false
	}
	e.sel.CommitOrCancel(true)
	return true
}

// SelectAll lifts the whole canvas into a selection.
func (e *Editor) SelectAll() bool { return e.sel.SelectAll() }

// BeginLoad validates p and opens a new pending load, superseding any
// earlier one. The current selection is dropped.
func (e *Editor) BeginLoad(p imagesrc.Payload) (LoadTicket, error) {
	if err := p.Accept(); err != nil {
		e.SetStatus(MsgNoImage, true)
		return LoadTicket{}, err
	}
	return e.BeginImageLoad(), nil
}

// BeginImageLoad opens a pending load for an image that is produced
// elsewhere, such as a screen capture, superseding any earlier load.
func (e *Editor) BeginImageLoad() LoadTicket {
	e.sel.CommitOrCancel(false)
	e.lastLoad++
	e.pending = e.lastLoad
	e.SetStatus(MsgLoading, false)
	return LoadTicket{id: e.pending}
}

// FinishLoad completes the load identified by t. Results for a superseded
// ticket are ignored and false is returned.
func (e *Editor) FinishLoad(t LoadTicket, img *image.RGBA, err error) bool {
	if t.id == 0 || t.id != e.pending {
		return false
	}
	e.pending = 0
	if err != nil || img == nil {
		e.SetStatus(MsgNoImage, true)
		return false
	}
	e.SetStatus(MsgCopying, false)
	if !e.sel.CreateFromImage(img.Bounds().Sub(img.Bounds().Min), img) {
		e.SetStatus(MsgNoImage, true)
		return false
	}
	e.SetStatus(MsgPasted, false)
	return true
}

// Pending reports whether a load is outstanding.
func (e *Editor) Pending() bool { return e.pending != 0 }

// Paste decodes p synchronously and places it as a floating selection at
// the origin.
func (e *Editor) Paste(p imagesrc.Payload) error {
	t, err := e.BeginLoad(p)
	if err != nil {
		return err
	}
	img, err := imagesrc.Decode(p)
	if !e.FinishLoad(t, img, err) {
		if err == nil {
			err = imagesrc.ErrNoImage
		}
		return err
	}
	return nil
}

// ExportName is the download file name for a canvas saved at t.
func ExportName(t time.Time) string {
	t = t.UTC()
	return "clippaint_" + t.Format("2006-01-02") + "_" + t.Format("15h04") + ".png"
}

// Export writes the canvas as PNG and returns the suggested file name. A
// floating fragment is not part of the canvas until dropped.
func (e *Editor) Export(w io.Writer) (string, error) {
	if err := png.Encode(w, e.surface.Snapshot()); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return ExportName(e.now()), nil
}

// Clone serialises the canvas and stores it for a new session.
func (e *Editor) Clone(store *session.Store) (string, error) {
	url, err := imagesrc.DataURL(e.surface.Snapshot())
	if err != nil {
		return "", fmt.Errorf("clone: %w", err)
	}
	size := e.surface.Size()
	id, err := store.Put(session.Clone{Width: size.X, Height: size.Y, ImageDataURL: url})
	if errors.Is(err, session.ErrTooLarge) {
		e.SetStatus(MsgTooLarge, true)
	}
	return id, err
}
