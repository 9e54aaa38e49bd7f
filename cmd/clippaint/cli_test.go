package main

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/clippaint/internal/capture"
	"github.com/example/clippaint/internal/imagesrc"
)

func TestRootUsage(t *testing.T) {
	for _, args := range [][]string{nil, {"frobnicate"}} {
		r, _ := testRoot(t)
		err := r.Run(args)
		var uerr *UsageError
		if !errors.As(err, &uerr) {
			t.Fatalf("%v: expected usage error, got %v", args, err)
		}
		if !strings.Contains(uerr.Error(), "Commands:") {
			t.Fatalf("help not rendered:\n%s", uerr.Error())
		}
	}
}

func TestSubcommandUsage(t *testing.T) {
	r, _ := testRoot(t)
	err := r.Run([]string{"run"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected usage error, got %v", err)
	}
	help := uerr.Error()
	if !strings.Contains(help, "clippaint run") || !strings.Contains(help, "-width") {
		t.Fatalf("unexpected run help:\n%s", help)
	}
}

func TestRunScript(t *testing.T) {
	r, _ := testRoot(t)
	dir := t.TempDir()
	script := filepath.Join(dir, "edit.txt")
	body := "# grow and move\ncanvas 50 40\nselect 0 0 10 10\nmove 30 20\n"
	if err := os.WriteFile(script, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.png")
	if err := r.Run([]string{"run", "-width", "20", "-height", "20", "-o", out, script}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := pngSize(t, out); got != image.Pt(50, 40) {
		t.Fatalf("output is %v", got)
	}

	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("select 0 0 1 1\nnope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := r.Run([]string{"run", bad})
	if err == nil || !strings.Contains(err.Error(), "bad.txt:2") {
		t.Fatalf("expected line number in error, got %v", err)
	}
}

func TestInteractiveExec(t *testing.T) {
	r, _ := testRoot(t)
	out := filepath.Join(t.TempDir(), "i.png")
	err := r.Run([]string{"interactive", "-width", "8", "-height", "8", "-o", out, "-e", "canvas 12 9", "-e", "selectall"})
	if err != nil {
		t.Fatal(err)
	}
	if got := pngSize(t, out); got != image.Pt(12, 9) {
		t.Fatalf("output is %v", got)
	}
}

func TestInteractivePrompt(t *testing.T) {
	r, buf := testRoot(t)
	r.stdin = strings.NewReader("new 5 5\nbogus\nstatus\nexit\nstatus\n")
	if err := r.Run([]string{"interactive"}); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, "unknown command") || strings.Count(got, "5 x 5") != 1 {
		t.Fatalf("unexpected transcript:\n%s", got)
	}
}

func TestResizeCommand(t *testing.T) {
	r, _ := testRoot(t)
	in := tempPNG(t, 30, 20)
	if err := r.Run([]string{"resize", "-width", "10", in}); err != nil {
		t.Fatal(err)
	}
	out := strings.TrimSuffix(in, ".png") + "-resized.png"
	if got := pngSize(t, out); got != image.Pt(10, 20) {
		t.Fatalf("output is %v", got)
	}
}

func TestConfigPrintAndVersion(t *testing.T) {
	r, buf := testRoot(t)
	r.config.Theme = "dark"
	if err := r.Run([]string{"config", "print"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "theme = dark") || !strings.Contains(buf.String(), "[notify]") {
		t.Fatalf("unexpected config output:\n%s", buf.String())
	}
	buf.Reset()
	if err := r.Run([]string{"version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "clippaint version ") {
		t.Fatalf("unexpected version output %q", buf.String())
	}
}

func TestThemePrecedence(t *testing.T) {
	r, _ := testRoot(t)
	r.config.Theme = "dark"
	t.Setenv("CLIPPAINT_THEME", "")
	if got := r.loadTheme(); !strings.EqualFold(got.Name, "dark") {
		t.Fatalf("config theme ignored, got %q", got.Name)
	}
	r.themeName = "no-such-theme"
	if got := r.loadTheme(); got.Name != "Default" {
		t.Fatalf("unknown theme should fall back to default, got %q", got.Name)
	}
}

func stubScreenshot(t *testing.T, w, h int) *capture.Options {
	t.Helper()
	var got capture.Options
	prev := screenshot
	screenshot = func(ctx context.Context, o capture.Options) (*image.RGBA, error) {
		got = o
		return image.NewRGBA(image.Rect(0, 0, w, h)), nil
	}
	t.Cleanup(func() { screenshot = prev })
	return &got
}

func TestSnapshotToFile(t *testing.T) {
	opts := stubScreenshot(t, 40, 30)
	r, buf := testRoot(t)
	out := filepath.Join(t.TempDir(), "shot.png")
	if err := r.Run([]string{"snapshot", "-monitor", "1", "-o", out}); err != nil {
		t.Fatal(err)
	}
	if opts.Monitor != "1" {
		t.Fatalf("monitor selector %q", opts.Monitor)
	}
	if got := pngSize(t, out); got != image.Pt(40, 30) {
		t.Fatalf("output is %v", got)
	}
	if !strings.Contains(buf.String(), "saved ") {
		t.Fatalf("unexpected output %q", buf.String())
	}

	shadowed := filepath.Join(t.TempDir(), "shadow.png")
	if err := r.Run([]string{"snapshot", "-shadow", "-o", shadowed}); err != nil {
		t.Fatal(err)
	}
	if got := pngSize(t, shadowed); got.X <= 40 || got.Y <= 30 {
		t.Fatalf("shadow should enlarge the capture, got %v", got)
	}
}

func TestSnapshotToClipboard(t *testing.T) {
	stubScreenshot(t, 4, 4)
	cb := &fakeClipboard{}
	prev := writeClipboard
	writeClipboard = cb
	t.Cleanup(func() { writeClipboard = prev })

	r, _ := testRoot(t)
	if err := r.Run([]string{"snapshot", "-to-clipboard"}); err != nil {
		t.Fatal(err)
	}
	if len(cb.texts) != 1 || !strings.HasPrefix(cb.texts[0], imagesrc.DataURLPrefix) {
		t.Fatalf("unexpected clipboard writes %d", len(cb.texts))
	}
	if err := r.Run([]string{"snapshot", "-to-clipboard", "-stdout"}); err == nil {
		t.Fatal("expected conflicting flags to fail")
	}
}

func TestMonitorsList(t *testing.T) {
	prev := listMonitors
	listMonitors = func() ([]capture.Monitor, error) {
		return []capture.Monitor{
			{Index: 0, Name: "eDP-1", Rect: image.Rect(0, 0, 1920, 1080), Primary: true},
			{Index: 1, Name: "HDMI-1", Rect: image.Rect(1920, 0, 4480, 1440)},
		}, nil
	}
	t.Cleanup(func() { listMonitors = prev })

	r, buf := testRoot(t)
	if err := r.Run([]string{"monitors"}); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, "1920x1080+0+0") || !strings.Contains(got, "2560x1440+1920+0") {
		t.Fatalf("unexpected listing:\n%s", got)
	}
}

func pngSize(t *testing.T, path string) image.Point {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	return image.Pt(cfg.Width, cfg.Height)
}
