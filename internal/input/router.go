// Package input maps pointer and keyboard events onto editor operations.
package input

import (
	"image"
	"unicode"

	"github.com/example/clippaint/internal/editor"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

// Action names a keyboard-triggered command.
type Action string

const (
	ActionCommit    Action = "commit"
	ActionDelete    Action = "delete"
	ActionCopy      Action = "copy"
	ActionCut       Action = "cut"
	ActionSelectAll Action = "selectall"
	ActionUndo      Action = "undo"
	ActionRedo      Action = "redo"
	ActionPaste     Action = "paste"
	ActionDownload  Action = "download"
	ActionClone     Action = "clone"
	ActionCapture   Action = "capture"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// DefaultBindings is the stock key map.
func DefaultBindings() map[KeyShortcut]Action {
	b := map[KeyShortcut]Action{}
	bind := func(a Action, keys ...KeyShortcut) {
		for _, k := range keys {
			b[k] = a
		}
	}
	ctrl := func(r rune) KeyShortcut { return KeyShortcut{Rune: r, Modifiers: key.ModControl} }

	bind(ActionCommit, KeyShortcut{Code: key.CodeEscape})
	bind(ActionDelete, KeyShortcut{Code: key.CodeDeleteForward}, KeyShortcut{Code: key.CodeDeleteBackspace})
	bind(ActionCopy, ctrl('c'))
	bind(ActionCut, ctrl('x'))
	bind(ActionSelectAll, ctrl('a'))
	bind(ActionUndo, ctrl('z'))
	bind(ActionRedo, ctrl('y'), KeyShortcut{Rune: 'z', Modifiers: key.ModControl | key.ModShift})
	bind(ActionPaste, ctrl('v'))
	bind(ActionDownload, ctrl('s'))
	bind(ActionClone, ctrl('n'))
	bind(ActionCapture, ctrl('p'))
	return b
}

// Host carries out the actions that reach outside the editor.
type Host interface {
	RequestPaste()
	RequestCapture()
	Download()
	Clone()
	Report(op string, err error)
}

// Router turns window events into editor calls. Coordinates are translated
// from window space by subtracting the canvas origin.
type Router struct {
	ed       *editor.Editor
	host     Host
	bindings map[KeyShortcut]Action
	origin   image.Point
	chrome   []image.Rectangle
	pointer  image.Point
}

// Option configures a Router.
type Option func(*Router)

// WithBindings replaces the default key map.
func WithBindings(b map[KeyShortcut]Action) Option { return func(r *Router) { r.bindings = b } }

// New returns a router driving ed.
func New(ed *editor.Editor, host Host, opts ...Option) *Router {
	r := &Router{ed: ed, host: host, bindings: DefaultBindings()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// SetLayout records where the canvas is drawn and which window areas are
// reserved for toolbar and status bar.
func (r *Router) SetLayout(origin image.Point, chrome ...image.Rectangle) {
	r.origin = origin
	r.chrome = append(r.chrome[:0], chrome...)
}

// Pointer returns the last pointer position in canvas coordinates.
func (r *Router) Pointer() image.Point { return r.pointer }

// ToCanvas converts a window position to canvas coordinates.
func (r *Router) ToCanvas(p image.Point) image.Point { return p.Sub(r.origin) }

func (r *Router) onChrome(p image.Point) bool {
	for _, c := range r.chrome {
		if p.In(c) {
			return true
		}
	}
	return false
}

// Mouse handles a pointer event and reports whether a repaint is needed.
func (r *Router) Mouse(e mouse.Event) bool {
	win := image.Pt(int(e.X), int(e.Y))
	p := r.ToCanvas(win)
	moved := p != r.pointer
	r.pointer = p
	sel := r.ed.Selection()

	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft || r.onChrome(win) {
			return false
		}
		if sel.Contains(p) {
			return false
		}
		sel.CommitOrCancel(false)
		sel.BeginDraft(p)
		return true
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft || sel.State() != editor.SelectionDrafting {
			return false
		}
		sel.UpdateDraft(p)
		sel.CommitDraft()
		return true
	case mouse.DirNone:
		if sel.State() == editor.SelectionDrafting {
			return sel.UpdateDraft(p)
		}
	}
	return moved
}

// Lookup returns the action bound to e, if any.
func (r *Router) Lookup(e key.Event) (Action, bool) {
	mods := e.Modifiers
	ru := unicode.ToLower(e.Rune)
	for _, ks := range []KeyShortcut{
		{Rune: ru, Code: e.Code, Modifiers: mods},
		{Rune: ru, Modifiers: mods},
		{Code: e.Code, Modifiers: mods},
	} {
		if a, ok := r.bindings[ks]; ok {
			return a, true
		}
	}
	return "", false
}

// Key handles a keyboard event and reports whether a repaint is needed.
func (r *Router) Key(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	a, ok := r.Lookup(e)
	if !ok {
		return false
	}
	return r.Do(a)
}

// Do runs a, as triggered by a key or a toolbar button.
func (r *Router) Do(a Action) bool {
	sel := r.ed.Selection()
	switch a {
	case ActionCommit:
		if sel.State() == editor.SelectionIdle {
			return false
		}
		sel.CommitOrCancel(false)
	case ActionDelete:
		return r.ed.Delete()
	case ActionCopy:
		if sel.Fragment() == nil {
			return false
		}
		if err := r.ed.Copy(false); err != nil {
			r.host.Report("copy", err)
		}
		return false
	case ActionCut:
		if sel.Fragment() == nil {
			return false
		}
		if err := r.ed.Cut(); err != nil {
			r.host.Report("cut", err)
			return false
		}
	case ActionSelectAll:
		return r.ed.SelectAll()
	case ActionUndo:
		return r.ed.Undo()
	case ActionRedo:
		return r.ed.Redo()
	case ActionPaste:
		r.host.RequestPaste()
	case ActionDownload:
		r.host.Download()
		return false
	case ActionClone:
		r.host.Clone()
		return false
	case ActionCapture:
		r.host.RequestCapture()
	default:
		return false
	}
	return true
}
