package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/example/clippaint/internal/capture"
	"github.com/example/clippaint/internal/clipboard"
	"github.com/example/clippaint/internal/editor"
	"github.com/example/clippaint/internal/imagesrc"
	"github.com/example/clippaint/internal/input"
	"github.com/example/clippaint/internal/notify"
	"github.com/example/clippaint/internal/session"
)

// payloadEvent carries a clipboard read back to the event loop.
type payloadEvent struct {
	payload imagesrc.Payload
	err     error
}

// loadDone carries a decoded image back to the event loop.
type loadDone struct {
	ticket editor.LoadTicket
	img    *image.RGBA
	err    error
}

// captureTimeout bounds an interactive portal screenshot.
const captureTimeout = 2 * time.Minute

var (
	readPayload = clipboard.ReadPayload
	screenshot  = capture.Screenshot
	spawnClone  = func() error {
		exe, err := os.Executable()
		if err != nil {
			return err
		}
		return exec.Command(exe, "edit").Start()
	}
)

// host performs the actions that leave the editor: clipboard reads, screen
// capture, file downloads and clones. Results produced on other goroutines
// are handed back through send so the editor is only touched by the loop.
type host struct {
	ed       *editor.Editor
	send     func(event any)
	saveDir  string
	store    *session.Store
	notifier *notify.Notifier
	capture  capture.Options
	now      func() time.Time
}

var _ input.Host = (*host)(nil)

func (h *host) RequestPaste() {
	go func() {
		p, err := readPayload()
		h.send(payloadEvent{payload: p, err: err})
	}()
}

// pasted starts decoding a payload read from the clipboard.
func (h *host) pasted(e payloadEvent) {
	if e.err != nil && !errors.Is(e.err, clipboard.ErrEmpty) {
		log.Printf("paste: %v", e.err)
	}
	t, err := h.ed.BeginLoad(e.payload)
	if err != nil {
		return
	}
	go func() {
		img, err := imagesrc.Decode(e.payload)
		h.send(loadDone{ticket: t, img: img, err: err})
	}()
}

func (h *host) RequestCapture() {
	t := h.ed.BeginImageLoad()
	opts := h.capture
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), captureTimeout)
		defer cancel()
		img, err := screenshot(ctx, opts)
		h.send(loadDone{ticket: t, img: img, err: err})
	}()
}

// loaded finishes a pending load on the event loop.
func (h *host) loaded(e loadDone) {
	if e.err != nil {
		log.Printf("load image: %v", e.err)
	}
	h.ed.FinishLoad(e.ticket, e.img, e.err)
}

func (h *host) Download() {
	path, err := h.download()
	if err != nil {
		h.Report("download", err)
		return
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", path)
	h.notifier.Save(path)
	h.ed.SetStatus("Saved "+filepath.Base(path), true)
}

func (h *host) download() (path string, err error) {
	dir := h.saveDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path = filepath.Join(dir, editor.ExportName(h.now()))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if _, err := h.ed.Export(f); err != nil {
		return "", err
	}
	return path, nil
}

func (h *host) Clone() {
	if h.store == nil {
		h.Report("clone", errors.New("no session store"))
		return
	}
	id, err := h.ed.Clone(h.store)
	if errors.Is(err, session.ErrTooLarge) {
		log.Printf("clone: %v", err)
		return
	}
	if err != nil {
		h.Report("clone", err)
		return
	}
	h.notifier.Clone(id)
	if err := spawnClone(); err != nil {
		h.Report("clone", err)
	}
}

func (h *host) Report(op string, err error) {
	log.Printf("%s: %v", op, err)
	h.ed.SetStatus(fmt.Sprintf("%s failed: %v", op, err), true)
}

// notifyingWriter reports successful clipboard writes.
type notifyingWriter struct {
	w editor.TextWriter
	n *notify.Notifier
}

func (nw notifyingWriter) WriteText(text string) error {
	if err := nw.w.WriteText(text); err != nil {
		return err
	}
	if img, err := imagesrc.Decode(imagesrc.FromText(text)); err == nil {
		nw.n.Copy(fmt.Sprintf("%dx%d image", img.Bounds().Dx(), img.Bounds().Dy()), img)
		return nil
	}
	nw.n.Copy("", nil)
	return nil
}
