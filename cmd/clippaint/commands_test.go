package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/clippaint/internal/capture"
	"github.com/example/clippaint/internal/config"
	"github.com/example/clippaint/internal/editor"
	"github.com/example/clippaint/internal/history"
	"github.com/example/clippaint/internal/imagesrc"
	"github.com/example/clippaint/internal/session"
)

type fakeClipboard struct{ texts []string }

func (f *fakeClipboard) WriteText(s string) error {
	f.texts = append(f.texts, s)
	return nil
}

func testRoot(t *testing.T) (*root, *bytes.Buffer) {
	t.Helper()
	cfg := config.New()
	cfg.SaveDir = t.TempDir()
	cfg.CloneDir = t.TempDir()
	r := newRootWithConfig(cfg)
	out := &bytes.Buffer{}
	r.stdout = out
	r.stderr = out
	return r, out
}

func testSession(t *testing.T, w, h int) (*cmdSession, *fakeClipboard, *bytes.Buffer) {
	t.Helper()
	r, out := testRoot(t)
	s := newCmdSession(r, out, w, h)
	cb := &fakeClipboard{}
	s.clipboard = cb
	s.reset(w, h)
	return s, cb, out
}

func run(t *testing.T, s *cmdSession, lines ...string) {
	t.Helper()
	for _, l := range lines {
		if _, err := s.executeLine(l); err != nil {
			t.Fatalf("%q: %v", l, err)
		}
	}
}

func tempPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func kinds(l *history.Log) []history.Kind {
	var out []history.Kind
	for _, op := range l.Done() {
		out = append(out, op.Kind())
	}
	return out
}

func TestSessionSelectMoveDropUndo(t *testing.T) {
	s, _, out := testSession(t, 40, 30)
	run(t, s, "select 0 0 10 10", "move 20 5")
	if got := s.ed.Selection().Rect(); got != image.Rect(20, 5, 30, 15) {
		t.Fatalf("fragment at %v", got)
	}
	if s.canvas.Enabled() {
		t.Fatal("canvas handles must be disabled while selecting")
	}
	run(t, s, "drop", "status")
	if !strings.Contains(out.String(), "2 done, 0 undone") {
		t.Fatalf("unexpected status output:\n%s", out.String())
	}
	run(t, s, "undo", "undo", "redo")
	if got := kinds(s.ed.History()); len(got) != 1 || got[0] != history.KindClip {
		t.Fatalf("unexpected history %v", got)
	}
	if _, err := s.executeLine("redo"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.executeLine("redo"); err == nil {
		t.Fatal("expected nothing to redo")
	}
}

func TestSessionDropInPlaceLeavesNoHistory(t *testing.T) {
	s, _, _ := testSession(t, 20, 20)
	run(t, s, "select 2 2 8 8", "drop")
	if s.ed.History().CanUndo() {
		t.Fatalf("a selection dropped where it was lifted must not be recorded: %v", kinds(s.ed.History()))
	}
}

func TestSessionScaleAndStretch(t *testing.T) {
	s, _, _ := testSession(t, 100, 100)
	run(t, s, "select 0 0 10 5", "scale 20")
	if got := s.ed.Selection().Rect(); got != image.Rect(0, 0, 20, 10) {
		t.Fatalf("scale gave %v", got)
	}
	run(t, s, "stretch 7 30")
	if got := s.ed.Selection().Rect(); got != image.Rect(0, 0, 7, 30) {
		t.Fatalf("stretch gave %v", got)
	}
	run(t, s, "drag 50 50")
	if got := s.ed.Selection().Rect(); got != image.Rect(50, 50, 57, 80) {
		t.Fatalf("drag gave %v", got)
	}
}

func TestSessionPasteGrowsCanvas(t *testing.T) {
	s, _, _ := testSession(t, 10, 10)
	path := tempPNG(t, 30, 20)
	run(t, s, "paste "+path)
	if got := s.ed.Surface().Size(); got != image.Pt(30, 20) {
		t.Fatalf("canvas is %v", got)
	}
	if s.ed.Selection().State() != editor.SelectionCommitted {
		t.Fatal("pasted image should float")
	}

	prev := readClipboard
	readClipboard = func() (imagesrc.Payload, error) { return imagesrc.FromText("not an image"), nil }
	t.Cleanup(func() { readClipboard = prev })
	_, err := s.executeLine("paste")
	if !errors.Is(err, imagesrc.ErrNoImage) || !strings.Contains(err.Error(), editor.MsgNoImage) {
		t.Fatalf("unexpected paste error %v", err)
	}
}

func TestSessionCapture(t *testing.T) {
	s, _, _ := testSession(t, 10, 10)
	var got capture.Options
	prev := screenshot
	screenshot = func(ctx context.Context, o capture.Options) (*image.RGBA, error) {
		got = o
		return image.NewRGBA(image.Rect(0, 0, 12, 8)), nil
	}
	t.Cleanup(func() { screenshot = prev })
	run(t, s, "capture primary")
	if got.Monitor != "primary" {
		t.Fatalf("monitor selector %q", got.Monitor)
	}
	if s.ed.Selection().Rect() != image.Rect(0, 0, 12, 8) {
		t.Fatalf("capture not pasted: %v", s.ed.Selection().Rect())
	}
}

func TestSessionClipboardCommands(t *testing.T) {
	s, cb, _ := testSession(t, 16, 16)
	if _, err := s.executeLine("copy"); err == nil {
		t.Fatal("copy without selection should fail")
	}
	run(t, s, "copy all")
	run(t, s, "select 0 0 4 4", "copy", "cut")
	if len(cb.texts) != 3 {
		t.Fatalf("expected three clipboard writes, got %d", len(cb.texts))
	}
	for _, txt := range cb.texts {
		if !strings.HasPrefix(txt, imagesrc.DataURLPrefix) {
			t.Fatalf("clipboard text is not a data url: %.30s", txt)
		}
	}
	if s.ed.Selection().State() != editor.SelectionIdle {
		t.Fatal("cut must discard the selection")
	}
}

func TestSessionExportAndClone(t *testing.T) {
	s, _, out := testSession(t, 16, 12)
	path := filepath.Join(t.TempDir(), "sub", "out.png")
	run(t, s, "export "+path, "clone")
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil || cfg.Width != 16 || cfg.Height != 12 {
		t.Fatalf("exported %+v, %v", cfg, err)
	}
	if !strings.Contains(out.String(), "cloned ") {
		t.Fatalf("missing clone id in %q", out.String())
	}
	c, err := s.r.store().Take()
	if err != nil || c.Width != 16 {
		t.Fatalf("clone slot %+v, %v", c, err)
	}

	s.r.config.CloneMaxBytes = 8
	_, err = s.executeLine("clone")
	if !errors.Is(err, session.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
}

func TestSessionErrors(t *testing.T) {
	s, _, _ := testSession(t, 10, 10)
	for _, line := range []string{"bogus", "select 1 2", "move a b", "new -1 4", "undo", "delete"} {
		if _, err := s.executeLine(line); err == nil {
			t.Errorf("%q: expected error", line)
		}
	}
	run(t, s, "select 0 0 5 5")
	if _, err := s.executeLine("canvas 20 20"); err == nil {
		t.Fatal("canvas resize must wait for the selection to drop")
	}
	done, err := s.executeLine("exit")
	if err != nil || !done {
		t.Fatalf("exit gave %v %v", done, err)
	}
}

func TestSessionHelpListsCommands(t *testing.T) {
	s, _, out := testSession(t, 1, 1)
	run(t, s, "help")
	for name := range sessionCommands {
		if !strings.Contains(out.String(), name) {
			t.Errorf("help does not mention %s", name)
		}
	}
}
