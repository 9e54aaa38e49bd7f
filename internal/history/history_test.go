package history

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/example/clippaint/internal/surface"
)

func patterned(w, h int) *surface.Surface {
	s := surface.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.Image().SetRGBA(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 11), B: uint8(x ^ y), A: 255})
		}
	}
	return s
}

func samePixels(a, b *image.RGBA) bool {
	return a.Bounds() == b.Bounds() && bytes.Equal(a.Pix, b.Pix)
}

func TestClipRevertRestoresPixels(t *testing.T) {
	s := patterned(20, 10)
	before := s.Snapshot()
	r := image.Rect(3, 2, 9, 7)

	var l Log
	l.Record(NewClip(s, r))
	s.Put(r.Min, image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy())))

	if !l.Undo(s) {
		t.Fatal("expected undo to apply")
	}
	if !samePixels(s.Snapshot(), before) {
		t.Fatal("undo did not restore the clipped pixels")
	}
	undone := l.Undone()
	if len(undone) != 1 || undone[0].Kind() != KindDrop {
		t.Fatalf("expected drop-shaped inverse, got %v", undone)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := patterned(12, 12)
	r := image.Rect(0, 0, 4, 4)
	var l Log
	l.Record(NewClip(s, r))
	s.Put(r.Min, image.NewRGBA(image.Rect(0, 0, 4, 4)))
	after := s.Snapshot()

	l.Undo(s)
	if !l.Redo(s) {
		t.Fatal("expected redo to apply")
	}
	if !samePixels(s.Snapshot(), after) {
		t.Fatal("redo did not reproduce the state before undo")
	}
	if !l.CanUndo() || l.CanRedo() {
		t.Fatalf("unexpected stacks done=%d undone=%d", len(l.Done()), len(l.Undone()))
	}
}

func TestCanvasResizeRoundTrip(t *testing.T) {
	sizes := []image.Point{
		image.Pt(5, 4),   // shrink both
		image.Pt(30, 25), // grow both
		image.Pt(5, 25),  // shrink width grow height
		image.Pt(30, 4),  // grow width shrink height
		image.Pt(0, 0),
		image.Pt(16, 12), // unchanged height
	}
	for _, sz := range sizes {
		s := patterned(16, 10)
		before := s.Snapshot()
		var l Log
		l.Record(NewCanvasResize(s, sz.X, sz.Y))
		s.Resize(sz.X, sz.Y)
		resized := s.Snapshot()

		l.Undo(s)
		if !samePixels(s.Snapshot(), before) {
			t.Fatalf("%v: undo did not restore the canvas", sz)
		}
		l.Redo(s)
		if !samePixels(s.Snapshot(), resized) {
			t.Fatalf("%v: redo did not reproduce the resized canvas", sz)
		}
		l.Undo(s)
		if !samePixels(s.Snapshot(), before) {
			t.Fatalf("%v: second undo did not restore the canvas", sz)
		}
	}
}

func TestCanvasResizeDisplacedRegions(t *testing.T) {
	s := patterned(10, 8)
	op := NewCanvasResize(s, 6, 5)
	want := []image.Rectangle{
		image.Rect(6, 0, 10, 5),
		image.Rect(0, 5, 6, 8),
		image.Rect(6, 5, 10, 8),
	}
	if len(op.Displaced) != len(want) {
		t.Fatalf("got %d displaced regions want %d", len(op.Displaced), len(want))
	}
	for i, d := range op.Displaced {
		got := d.Pixels.Bounds().Add(d.At)
		if got != want[i] {
			t.Errorf("region %d = %v want %v", i, got, want[i])
		}
	}
	if grow := NewCanvasResize(s, 20, 20); len(grow.Displaced) != 0 {
		t.Fatalf("growing must not displace pixels, got %d", len(grow.Displaced))
	}
}

func TestReturnOnClipIsElided(t *testing.T) {
	s := patterned(8, 8)
	r := image.Rect(1, 1, 5, 5)
	var l Log
	l.Record(NewCanvasResize(s, 8, 9))
	l.Record(NewClip(s, r))
	if !l.Return(NewDrop(s, r)) {
		t.Fatal("expected the pair to cancel")
	}
	done := l.Done()
	if len(done) != 1 || done[0].Kind() != KindCanvasResize {
		t.Fatalf("expected only the resize to remain, got %v", done)
	}

	l.Record(NewClip(s, r))
	if l.Return(NewDrop(s, r.Add(image.Pt(1, 0)))) {
		t.Fatal("moved drop must not cancel the clip")
	}
	if got := len(l.Done()); got != 3 {
		t.Fatalf("moved drop must be recorded, got %d ops", got)
	}
}

func TestRecordNeverElides(t *testing.T) {
	s := patterned(8, 8)
	r := image.Rect(0, 0, 4, 4)
	var l Log
	l.Record(NewClip(s, r))
	l.Record(NewDrop(s, r))
	if got := len(l.Done()); got != 2 {
		t.Fatalf("a plain drop on the clip rectangle must be kept, got %d ops", got)
	}
}

func TestRecordClearsRedo(t *testing.T) {
	s := patterned(8, 8)
	var l Log
	l.Record(NewClip(s, image.Rect(0, 0, 2, 2)))
	l.Undo(s)
	if !l.CanRedo() {
		t.Fatal("expected redo to be available")
	}
	l.Record(NewClip(s, image.Rect(2, 2, 4, 4)))
	if l.CanRedo() {
		t.Fatal("new action must clear redo")
	}
	if l.Redo(s) {
		t.Fatal("redo after new action must be a no-op")
	}
}

func TestEmptyStacksAreNoOps(t *testing.T) {
	s := patterned(3, 3)
	before := s.Snapshot()
	var l Log
	if l.Undo(s) || l.Redo(s) {
		t.Fatal("expected no-op on empty stacks")
	}
	if !samePixels(before, s.Snapshot()) {
		t.Fatal("empty undo touched the canvas")
	}
}

func TestRedoDoesNotElide(t *testing.T) {
	s := patterned(6, 6)
	r := image.Rect(0, 0, 3, 3)
	var l Log
	l.Record(NewClip(s, r))
	s.Put(r.Min, image.NewRGBA(image.Rect(0, 0, 3, 3)))
	l.Record(NewDrop(s, image.Rect(2, 2, 5, 5)))
	l.Undo(s)
	l.Undo(s)
	l.Redo(s)
	l.Redo(s)
	if got := len(l.Done()); got != 2 {
		t.Fatalf("expected both operations back on done, got %d", got)
	}
}
