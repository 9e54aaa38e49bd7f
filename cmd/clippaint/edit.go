package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/example/clippaint/internal/capture"
	"github.com/example/clippaint/internal/imagesrc"
	"github.com/example/clippaint/internal/session"
	"github.com/example/clippaint/internal/ui"
)

// editCmd opens the editor window.
type editCmd struct {
	*root
	fs *flag.FlagSet

	width, height int
	windowW       int
	windowH       int
	file          string
	saveDir       string
	monitor       string
	interactive   bool
	noClone       bool
}

func (e *editCmd) FlagSet() *flag.FlagSet { return e.fs }

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	e := &editCmd{root: r.subcommand("edit"), fs: fs}
	fs.Usage = usageFunc(e)
	fs.IntVar(&e.width, "width", r.config.CanvasWidth, "canvas width in pixels (0 fits the window)")
	fs.IntVar(&e.height, "height", r.config.CanvasHeight, "canvas height in pixels (0 fits the window)")
	fs.IntVar(&e.windowW, "window-width", 1024, "window width in pixels")
	fs.IntVar(&e.windowH, "window-height", 768, "window height in pixels")
	fs.StringVar(&e.file, "file", "", "image file to paste when the window opens")
	fs.StringVar(&e.saveDir, "save-dir", r.config.SaveDir, "directory for downloaded images")
	fs.StringVar(&e.monitor, "monitor", "", "monitor captured by the capture action")
	fs.BoolVar(&e.interactive, "interactive-capture", false, "let the desktop choose the capture region")
	fs.BoolVar(&e.noClone, "no-clone", false, "ignore a canvas cloned from another window")
	if err := fs.Parse(args); err != nil {
		return nil, &UsageError{of: e}
	}
	if e.width < 0 || e.height < 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", e.width, e.height)
	}
	return e, nil
}

func (e *editCmd) options() []ui.Option {
	opts := []ui.Option{
		ui.WithTheme(e.activeTheme),
		ui.WithWindowSize(e.windowW, e.windowH),
		ui.WithCanvasSize(e.width, e.height),
		ui.WithSaveDir(e.saveDir),
		ui.WithStore(e.store()),
		ui.WithNotifier(e.notifier),
		ui.WithCapture(capture.Options{Monitor: e.monitor, Interactive: e.interactive}),
	}
	if e.noClone {
		return opts
	}
	c, err := e.store().Take()
	switch {
	case errors.Is(err, session.ErrNoClone):
	case err != nil:
		log.Printf("clone: %v", err)
	default:
		opts = append(opts, ui.WithClone(c))
	}
	return opts
}

func (e *editCmd) Run() error {
	app, err := ui.New(e.options()...)
	if err != nil {
		return fmt.Errorf("open editor: %w", err)
	}
	if e.file != "" {
		p, err := imagesrc.FromFile(e.file)
		if err != nil {
			return err
		}
		if err := app.Editor().Paste(p); err != nil {
			return fmt.Errorf("paste %s: %w", e.file, err)
		}
	}
	app.Run()
	return nil
}
