package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"time"

	"github.com/example/clippaint/internal/capture"
	"github.com/example/clippaint/internal/clipboard"
	"github.com/example/clippaint/internal/editor"
	"github.com/example/clippaint/internal/imagesrc"
	"github.com/example/clippaint/internal/render"
)

var writeClipboard editor.TextWriter = clipboard.Writer{}

// snapshotCmd captures the screen straight to a file, stdout or the
// clipboard without opening the editor.
type snapshotCmd struct {
	*root
	fs *flag.FlagSet

	output        string
	stdout        bool
	toClipboard   bool
	monitor       string
	interactive   bool
	includeCursor bool
	shadow        bool
	shadowRadius  int
	timeout       time.Duration
}

func (s *snapshotCmd) FlagSet() *flag.FlagSet { return s.fs }

func parseSnapshotCmd(args []string, r *root) (*snapshotCmd, error) {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	s := &snapshotCmd{root: r.subcommand("snapshot"), fs: fs}
	fs.Usage = usageFunc(s)
	fs.StringVar(&s.output, "o", "", "write the capture to this file (default save_dir/clippaint_DATE_TIME.png)")
	fs.BoolVar(&s.stdout, "stdout", false, "write PNG data to stdout")
	fs.BoolVar(&s.toClipboard, "to-clipboard", false, "copy the capture to the clipboard as a PNG data URL")
	fs.StringVar(&s.monitor, "monitor", "", "capture one monitor: index, primary or part of its name")
	fs.BoolVar(&s.interactive, "interactive", false, "let the desktop portal ask for the area")
	fs.BoolVar(&s.includeCursor, "include-cursor", false, "embed the pointer when supported")
	fs.BoolVar(&s.shadow, "shadow", false, "add a drop shadow around the capture")
	fs.IntVar(&s.shadowRadius, "shadow-radius", render.DefaultShadowOptions().Radius, "drop shadow blur radius in pixels")
	fs.DurationVar(&s.timeout, "timeout", time.Minute, "give up waiting for the capture after this long")
	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{of: s}
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: s}
	}
	if s.stdout && s.toClipboard {
		return nil, fmt.Errorf("-stdout cannot be used with -to-clipboard")
	}
	return s, nil
}

func (s *snapshotCmd) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	img, err := screenshot(ctx, capture.Options{
		Monitor:       s.monitor,
		Interactive:   s.interactive,
		IncludeCursor: s.includeCursor,
	})
	if err != nil {
		return err
	}
	if s.shadow {
		opts := render.DefaultShadowOptions()
		opts.Radius = max(s.shadowRadius, 0)
		img = render.ApplyShadow(img, opts).Image
	}

	if s.toClipboard {
		url, err := imagesrc.DataURL(img)
		if err != nil {
			return err
		}
		if err := writeClipboard.WriteText(url); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		detail := editor.CanvasInfo(img.Bounds().Size())
		fmt.Fprintf(s.stderr, "copied %s to clipboard\n", detail)
		s.notifier.Copy(detail, img)
		return nil
	}
	if s.stdout {
		if err := png.Encode(s.root.stdout, img); err != nil {
			return fmt.Errorf("write PNG to stdout: %w", err)
		}
		return nil
	}

	path := s.output
	if path == "" {
		dir := s.config.SaveDir
		if dir == "" {
			dir = "."
		}
		path = filepath.Join(dir, editor.ExportName(time.Now()))
	}
	if err := writePNG(path, img); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	fmt.Fprintf(s.stderr, "saved %s\n", path)
	s.notifier.Save(path)
	return nil
}

func writePNG(path string, img image.Image) error {
	return createFile(path, func(w io.Writer) error { return png.Encode(w, img) })
}
