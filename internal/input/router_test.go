package input

import (
	"errors"
	"image"
	"testing"

	"github.com/example/clippaint/internal/editor"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
)

type fakeHost struct {
	calls   []string
	reports []string
}

func (h *fakeHost) RequestPaste()   { h.calls = append(h.calls, "paste") }
func (h *fakeHost) RequestCapture() { h.calls = append(h.calls, "capture") }
func (h *fakeHost) Download()       { h.calls = append(h.calls, "download") }
func (h *fakeHost) Clone()          { h.calls = append(h.calls, "clone") }
func (h *fakeHost) Report(op string, err error) {
	h.reports = append(h.reports, op+": "+err.Error())
}

type failingClipboard struct{}

func (failingClipboard) WriteText(string) error { return errors.New("no display") }

func press(x, y float32) mouse.Event {
	return mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirPress}
}

func move(x, y float32) mouse.Event {
	return mouse.Event{X: x, Y: y, Direction: mouse.DirNone}
}

func release(x, y float32) mouse.Event {
	return mouse.Event{X: x, Y: y, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}
}

func ctrlKey(r rune) key.Event {
	return key.Event{Rune: r, Modifiers: key.ModControl, Direction: key.DirPress}
}

func TestDragCreatesSelection(t *testing.T) {
	ed := editor.New(100, 80)
	r := New(ed, &fakeHost{})
	r.SetLayout(image.Pt(10, 30), image.Rect(0, 0, 400, 30))

	if !r.Mouse(press(20, 40)) {
		t.Fatal("press on canvas should start a draft")
	}
	r.Mouse(move(40, 60))
	if got := r.Pointer(); got != image.Pt(30, 30) {
		t.Fatalf("pointer = %v", got)
	}
	r.Mouse(release(50, 70))
	sel := ed.Selection()
	if sel.State() != editor.SelectionCommitted {
		t.Fatalf("state = %v", sel.State())
	}
	if got, want := sel.Rect(), image.Rect(10, 10, 40, 40); got != want {
		t.Fatalf("rect = %v want %v", got, want)
	}
}

func TestPressOnChromeIgnored(t *testing.T) {
	ed := editor.New(100, 80)
	r := New(ed, &fakeHost{})
	r.SetLayout(image.Pt(0, 30), image.Rect(0, 0, 400, 30))
	if r.Mouse(press(5, 5)) {
		t.Fatal("press on toolbar must be ignored")
	}
	if ed.Selection().State() != editor.SelectionIdle {
		t.Fatal("toolbar press started a selection")
	}
}

func TestPressInsideSelectionLeftToHandles(t *testing.T) {
	ed := editor.New(100, 80)
	r := New(ed, &fakeHost{})
	r.Mouse(press(10, 10))
	r.Mouse(release(50, 50))
	if r.Mouse(press(20, 20)) {
		t.Fatal("press inside the selection must not be routed to the core")
	}
	if ed.Selection().Rect() != image.Rect(10, 10, 50, 50) {
		t.Fatalf("selection changed to %v", ed.Selection().Rect())
	}

	r.Mouse(press(70, 70))
	if ed.Selection().State() != editor.SelectionDrafting {
		t.Fatal("press outside should commit and start a new draft")
	}
	if _, undone := ed.History().Len(); undone != 0 {
		t.Fatal("unexpected redo entries")
	}
	r.Mouse(release(70, 70))
	if ed.Selection().State() != editor.SelectionIdle {
		t.Fatal("click without drag must leave no selection")
	}
}

func TestKeyBindings(t *testing.T) {
	tests := []struct {
		name string
		ev   key.Event
		want Action
	}{
		{"escape", key.Event{Code: key.CodeEscape, Rune: -1}, ActionCommit},
		{"delete", key.Event{Code: key.CodeDeleteForward}, ActionDelete},
		{"backspace", key.Event{Code: key.CodeDeleteBackspace}, ActionDelete},
		{"copy", ctrlKey('c'), ActionCopy},
		{"cut upper", ctrlKey('X'), ActionCut},
		{"select all", ctrlKey('a'), ActionSelectAll},
		{"undo", ctrlKey('z'), ActionUndo},
		{"redo y", ctrlKey('y'), ActionRedo},
		{"redo shift z", key.Event{Rune: 'Z', Modifiers: key.ModControl | key.ModShift}, ActionRedo},
		{"paste", key.Event{Rune: 'v', Code: key.CodeV, Modifiers: key.ModControl}, ActionPaste},
		{"download", ctrlKey('s'), ActionDownload},
		{"clone", ctrlKey('n'), ActionClone},
		{"capture", ctrlKey('p'), ActionCapture},
	}
	r := New(editor.New(1, 1), &fakeHost{})
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := r.Lookup(tc.ev)
			if !ok || got != tc.want {
				t.Fatalf("Lookup = %q, %v want %q", got, ok, tc.want)
			}
		})
	}
	if _, ok := r.Lookup(key.Event{Rune: 'c'}); ok {
		t.Fatal("plain c must not be bound")
	}
}

func TestKeysDriveEditor(t *testing.T) {
	host := &fakeHost{}
	ed := editor.New(20, 20, editor.WithClipboard(failingClipboard{}))
	r := New(ed, host)

	if r.Key(ctrlKey('c')) {
		t.Fatal("copy without selection must do nothing")
	}
	if len(host.reports) != 0 {
		t.Fatal("copy without selection reported an error")
	}
	r.Key(ctrlKey('a'))
	if ed.Selection().State() != editor.SelectionCommitted {
		t.Fatal("ctrl+a did not select all")
	}
	r.Key(ctrlKey('c'))
	if len(host.reports) != 1 {
		t.Fatalf("expected copy failure report, got %v", host.reports)
	}
	r.Key(key.Event{Code: key.CodeDeleteBackspace, Direction: key.DirPress})
	if ed.Selection().State() != editor.SelectionIdle {
		t.Fatal("backspace did not delete the selection")
	}
	if !r.Key(ctrlKey('z')) {
		t.Fatal("undo after delete should apply")
	}
	if !r.Key(ctrlKey('y')) {
		t.Fatal("redo should apply")
	}
	if r.Key(key.Event{Rune: 'z', Modifiers: key.ModControl, Direction: key.DirRelease}) {
		t.Fatal("key release must be ignored")
	}

	for _, c := range []rune{'v', 's', 'n', 'p'} {
		r.Key(ctrlKey(c))
	}
	want := []string{"paste", "download", "clone", "capture"}
	if len(host.calls) != len(want) {
		t.Fatalf("host calls = %v", host.calls)
	}
	for i := range want {
		if host.calls[i] != want[i] {
			t.Fatalf("host calls = %v want %v", host.calls, want)
		}
	}
}

func TestEscapeCommitsSelection(t *testing.T) {
	ed := editor.New(30, 30)
	r := New(ed, &fakeHost{})
	r.Mouse(press(0, 0))
	r.Mouse(release(10, 10))
	ed.Selection().MoveFragment(image.Pt(5, 5))
	r.Key(key.Event{Code: key.CodeEscape, Direction: key.DirPress})
	if ed.Selection().State() != editor.SelectionIdle {
		t.Fatal("escape did not commit")
	}
	if n, _ := ed.History().Len(); n != 2 {
		t.Fatalf("expected clip and drop, got %d", n)
	}
	if r.Key(key.Event{Code: key.CodeEscape, Direction: key.DirPress}) {
		t.Fatal("escape while idle must be a no-op")
	}
}
