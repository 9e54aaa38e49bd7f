package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/example/clippaint/internal/capture"
	"github.com/example/clippaint/internal/clipboard"
	"github.com/example/clippaint/internal/editor"
	"github.com/example/clippaint/internal/history"
	"github.com/example/clippaint/internal/imagesrc"
	"github.com/example/clippaint/internal/session"
)

var (
	readClipboard = clipboard.ReadPayload
	screenshot    = capture.Screenshot
)

// cmdSession drives an editor from text commands. The handle widgets are
// headless so gestures are replayed exactly as the window would report them.
type cmdSession struct {
	r         *root
	ed        *editor.Editor
	selection *editor.HeadlessHandles
	canvas    *editor.HeadlessHandles
	out       io.Writer
	clipboard editor.TextWriter
}

type sessionCommand struct {
	usage string
	help  string
	args  int // minimum argument count
	run   func(s *cmdSession, args []string) error
}

var sessionCommands map[string]sessionCommand

func init() {
	sessionCommands = map[string]sessionCommand{}
	add := func(name, usage, help string, args int, run func(*cmdSession, []string) error) {
		sessionCommands[name] = sessionCommand{usage: usage, help: help, args: args, run: run}
	}
	add("new", "new W H", "start over with an empty W x H canvas", 2, (*cmdSession).cmdNew)
	add("canvas", "canvas W H", "resize the canvas, anchored top-left", 2, (*cmdSession).cmdCanvas)
	add("select", "select X0 Y0 X1 Y1", "lift the pixels of a rectangle", 4, (*cmdSession).cmdSelect)
	add("selectall", "selectall", "lift the whole canvas", 0, (*cmdSession).cmdSelectAll)
	add("move", "move DX DY", "shift the floating selection", 2, (*cmdSession).cmdMove)
	add("drag", "drag X Y", "drag the floating selection so its corner is at X Y", 2, (*cmdSession).cmdDrag)
	add("scale", "scale W", "resize the selection to width W keeping its aspect", 1, (*cmdSession).cmdScale)
	add("stretch", "stretch W H", "resample the selection to W x H", 2, (*cmdSession).cmdStretch)
	add("drop", "drop", "drop the floating selection", 0, (*cmdSession).cmdDrop)
	add("delete", "delete", "discard the floating selection", 0, (*cmdSession).cmdDelete)
	add("undo", "undo", "undo the last change", 0, (*cmdSession).cmdUndo)
	add("redo", "redo", "redo the last undone change", 0, (*cmdSession).cmdRedo)
	add("paste", "paste [FILE]", "paste an image file or the clipboard", 0, (*cmdSession).cmdPaste)
	add("capture", "capture [MONITOR]", "paste a screenshot", 0, (*cmdSession).cmdCapture)
	add("copy", "copy [all]", "copy the selection (or the canvas) to the clipboard", 0, (*cmdSession).cmdCopy)
	add("cut", "cut", "copy the selection and discard it", 0, (*cmdSession).cmdCut)
	add("export", "export [FILE]", "write the canvas as PNG", 0, (*cmdSession).cmdExport)
	add("clone", "clone", "store the canvas for a new window", 0, (*cmdSession).cmdClone)
	add("status", "status", "show the canvas, selection and history", 0, (*cmdSession).cmdStatus)
	add("help", "help", "list commands", 0, (*cmdSession).cmdHelp)
}

func newCmdSession(r *root, out io.Writer, w, h int) *cmdSession {
	s := &cmdSession{r: r, out: out, clipboard: clipboard.Writer{}}
	s.reset(w, h)
	return s
}

func (s *cmdSession) reset(w, h int) {
	s.selection = &editor.HeadlessHandles{}
	s.canvas = &editor.HeadlessHandles{}
	s.ed = editor.New(w, h,
		editor.WithSelectionHandles(s.selection),
		editor.WithCanvasHandles(s.canvas),
		editor.WithClipboard(s.clipboard),
	)
}

// executeLine runs one command line. It reports done when the line asked to
// leave the session.
func (s *cmdSession) executeLine(line string) (done bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	fields := strings.Fields(line)
	name := strings.ToLower(fields[0])
	if name == "exit" || name == "quit" {
		return true, nil
	}
	cmd, ok := sessionCommands[name]
	if !ok {
		return false, fmt.Errorf("unknown command %q (try 'help')", fields[0])
	}
	if len(fields)-1 < cmd.args {
		return false, fmt.Errorf("usage: %s", cmd.usage)
	}
	if err := cmd.run(s, fields[1:]); err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return false, nil
}

func ints(args []string, n int) ([]int, error) {
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", args[i])
		}
		out[i] = v
	}
	return out, nil
}

func (s *cmdSession) cmdNew(args []string) error {
	v, err := ints(args, 2)
	if err != nil {
		return err
	}
	if v[0] < 0 || v[1] < 0 {
		return fmt.Errorf("invalid size %dx%d", v[0], v[1])
	}
	s.reset(v[0], v[1])
	return nil
}

func (s *cmdSession) cmdCanvas(args []string) error {
	v, err := ints(args, 2)
	if err != nil {
		return err
	}
	if !s.canvas.Enabled() {
		return errors.New("drop the selection first")
	}
	s.ed.Canvas().SetSize(v[0], v[1])
	return nil
}

func (s *cmdSession) cmdSelect(args []string) error {
	v, err := ints(args, 4)
	if err != nil {
		return err
	}
	sel := s.ed.Selection()
	sel.CommitOrCancel(false)
	sel.BeginDraft(image.Pt(v[0], v[1]))
	sel.UpdateDraft(image.Pt(v[2], v[3]))
	if !sel.CommitDraft() {
		return errors.New("empty selection")
	}
	return nil
}

func (s *cmdSession) cmdSelectAll([]string) error {
	if !s.ed.SelectAll() {
		return errors.New("canvas is empty")
	}
	return nil
}

func (s *cmdSession) requireFragment() error {
	if s.ed.Selection().Fragment() == nil {
		return errors.New("nothing selected")
	}
	return nil
}

func (s *cmdSession) cmdMove(args []string) error {
	v, err := ints(args, 2)
	if err != nil {
		return err
	}
	if err := s.requireFragment(); err != nil {
		return err
	}
	s.ed.Selection().MoveFragment(image.Pt(v[0], v[1]))
	return nil
}

func (s *cmdSession) cmdDrag(args []string) error {
	v, err := ints(args, 2)
	if err != nil {
		return err
	}
	if !s.selection.Drag(image.Pt(v[0], v[1])) {
		return errors.New("nothing selected")
	}
	return nil
}

func (s *cmdSession) cmdScale(args []string) error {
	v, err := ints(args, 1)
	if err != nil {
		return err
	}
	r := s.selection.Rect()
	if !s.selection.Resize(editor.HandleR, image.Rect(r.Min.X, r.Min.Y, r.Min.X+v[0], r.Max.Y)) {
		return errors.New("nothing selected")
	}
	return nil
}

func (s *cmdSession) cmdStretch(args []string) error {
	v, err := ints(args, 2)
	if err != nil {
		return err
	}
	if err := s.requireFragment(); err != nil {
		return err
	}
	if !s.ed.Selection().ResizeFragment(v[0], v[1]) {
		return fmt.Errorf("invalid size %dx%d", v[0], v[1])
	}
	return nil
}

func (s *cmdSession) cmdDrop([]string) error {
	s.ed.Selection().CommitOrCancel(false)
	return nil
}

func (s *cmdSession) cmdDelete([]string) error {
	if !s.ed.Delete() {
		return errors.New("nothing selected")
	}
	return nil
}

func (s *cmdSession) cmdUndo([]string) error {
	if !s.ed.Undo() {
		return errors.New("nothing to undo")
	}
	return nil
}

func (s *cmdSession) cmdRedo([]string) error {
	if !s.ed.Redo() {
		return errors.New("nothing to redo")
	}
	return nil
}

func (s *cmdSession) cmdPaste(args []string) error {
	var (
		p   imagesrc.Payload
		err error
	)
	if len(args) > 0 {
		p, err = imagesrc.FromFile(args[0])
	} else {
		p, err = readClipboard()
	}
	if err != nil && !errors.Is(err, clipboard.ErrEmpty) {
		return err
	}
	if err := s.ed.Paste(p); err != nil {
		return fmt.Errorf("%s: %w", s.ed.Status(), err)
	}
	return nil
}

func (s *cmdSession) cmdCapture(args []string) error {
	opts := capture.Options{}
	if len(args) > 0 {
		opts.Monitor = args[0]
	}
	t := s.ed.BeginImageLoad()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	img, err := screenshot(ctx, opts)
	s.ed.FinishLoad(t, img, err)
	return err
}

func (s *cmdSession) cmdCopy(args []string) error {
	all := len(args) > 0 && args[0] == "all"
	if !all {
		if err := s.requireFragment(); err != nil {
			return err
		}
	}
	return s.ed.Copy(all)
}

func (s *cmdSession) cmdCut([]string) error {
	if err := s.requireFragment(); err != nil {
		return err
	}
	return s.ed.Cut()
}

func (s *cmdSession) cmdExport(args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		dir := s.r.config.SaveDir
		if dir == "" {
			dir = "."
		}
		path = filepath.Join(dir, editor.ExportName(time.Now()))
	}
	if err := s.export(path); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "saved %s\n", path)
	s.r.notifier.Save(path)
	return nil
}

func (s *cmdSession) export(path string) error {
	return createFile(path, func(w io.Writer) error {
		_, err := s.ed.Export(w)
		return err
	})
}

// createFile creates path, including missing parent directories, and hands
// it to write. A failed close is reported when write succeeded.
func createFile(path string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func (s *cmdSession) cmdClone([]string) error {
	id, err := s.ed.Clone(s.r.store())
	if errors.Is(err, session.ErrTooLarge) {
		return fmt.Errorf("%s: %w", editor.MsgTooLarge, err)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "cloned %s\n", id)
	s.r.notifier.Clone(id)
	return nil
}

func (s *cmdSession) cmdStatus([]string) error {
	sel := s.ed.Selection()
	done, undone := s.ed.History().Len()
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "canvas\t%s\n", editor.CanvasInfo(s.ed.Surface().Size()))
	fmt.Fprintf(tw, "selection\t%s %s\n", sel.State(), editor.SelectionInfo(sel.Rect()))
	fmt.Fprintf(tw, "history\t%d done, %d undone %v\n", done, undone, ops(s.ed.History()))
	fmt.Fprintf(tw, "status\t%s\n", s.ed.Status())
	return tw.Flush()
}

func (s *cmdSession) cmdHelp([]string) error {
	names := make([]string, 0, len(sessionCommands))
	for name := range sessionCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	for _, name := range names {
		c := sessionCommands[name]
		fmt.Fprintf(tw, "%s\t%s\n", c.usage, c.help)
	}
	fmt.Fprintf(tw, "exit\tleave the session\n")
	return tw.Flush()
}

// ops lists the history for diagnostics.
func ops(l *history.Log) []string {
	var out []string
	for _, op := range l.Done() {
		out = append(out, op.Kind().String())
	}
	return out
}
