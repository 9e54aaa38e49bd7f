// Package ui is the desktop front end: a shiny window with a toolbar, the
// canvas with its selection and resize handles, and a status bar.
package ui

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/clippaint/internal/capture"
	"github.com/example/clippaint/internal/clipboard"
	"github.com/example/clippaint/internal/editor"
	"github.com/example/clippaint/internal/input"
	"github.com/example/clippaint/internal/notify"
	"github.com/example/clippaint/internal/session"
	"github.com/example/clippaint/internal/theme"
)

// tickInterval paces the marching ants and status message expiry.
const tickInterval = 150 * time.Millisecond

type tickEvent struct{}

// App is one editor window.
type App struct {
	ed            *editor.Editor
	router        *input.Router
	host          *host
	toolbar       *Toolbar
	theme         *theme.Theme
	selHandles    *HandleWidget
	canvasHandles *HandleWidget

	title      string
	windowSize image.Point
	canvasSize image.Point
	clone      *session.Clone
	clipboard  editor.TextWriter
	now        func() time.Time

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an App during creation.
type Option func(*App)

// WithTheme sets the colours used for drawing.
func WithTheme(t *theme.Theme) Option { return func(a *App) { a.theme = t } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *App) { a.title = title } }

// WithWindowSize sets the initial window size in pixels.
func WithWindowSize(w, h int) Option { return func(a *App) { a.windowSize = image.Pt(w, h) } }

// WithCanvasSize sets the initial canvas size. Zero fits the window.
func WithCanvasSize(w, h int) Option { return func(a *App) { a.canvasSize = image.Pt(w, h) } }

// WithClone starts the window from a cloned canvas.
func WithClone(c session.Clone) Option { return func(a *App) { a.clone = &c } }

// WithSaveDir sets where downloads are written.
func WithSaveDir(dir string) Option { return func(a *App) { a.host.saveDir = dir } }

// WithStore sets the clone slot.
func WithStore(s *session.Store) Option { return func(a *App) { a.host.store = s } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(a *App) { a.host.notifier = n } }

// WithCapture sets the screen capture options used by the capture action.
func WithCapture(o capture.Options) Option { return func(a *App) { a.host.capture = o } }

// WithClipboard replaces the system clipboard writer.
func WithClipboard(w editor.TextWriter) Option { return func(a *App) { a.clipboard = w } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates the window state and its editor.
func New(opts ...Option) (*App, error) {
	a := &App{
		title:         "ClipPaint",
		windowSize:    image.Pt(1024, 768),
		theme:         theme.Default(),
		selHandles:    &HandleWidget{},
		canvasHandles: &HandleWidget{},
		clipboard:     clipboard.Writer{},
		now:           time.Now,
		host:          &host{now: time.Now},
	}
	for _, o := range opts {
		o(a)
	}

	edOpts := []editor.Option{
		editor.WithSelectionHandles(a.selHandles),
		editor.WithCanvasHandles(a.canvasHandles),
		editor.WithClipboard(notifyingWriter{w: a.clipboard, n: a.host.notifier}),
		editor.WithClock(a.now),
	}
	if a.clone != nil {
		ed, err := editor.NewFromClone(*a.clone, edOpts...)
		if err != nil {
			return nil, err
		}
		a.ed = ed
	} else {
		sz := a.canvasSize
		if sz.X <= 0 || sz.Y <= 0 {
			def := DefaultCanvasSize(a.windowSize)
			sz.X = cmpOr(sz.X, def.X)
			sz.Y = cmpOr(sz.Y, def.Y)
		}
		a.ed = editor.New(sz.X, sz.Y, edOpts...)
	}

	a.host.ed = a.ed
	a.host.now = a.now
	a.router = input.New(a.ed, a.host)
	a.toolbar = NewToolbar(a.theme, func(act input.Action) { a.router.Do(act) })
	a.layout()
	return a, nil
}

func cmpOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// Editor returns the session shown by the window.
func (a *App) Editor() *editor.Editor { return a.ed }

func (a *App) layout() {
	w := a.windowSize.X
	a.toolbar.Layout(w)
	status := image.Rect(0, a.windowSize.Y-statusHeight, w, a.windowSize.Y)
	a.router.SetLayout(canvasOrigin(), a.toolbar.Rect(), status)
}

// reflect updates the toolbar from the editor state.
func (a *App) reflect() {
	frag := a.ed.Selection().Fragment() != nil
	a.toolbar.SetEnabled(input.ActionCut, frag)
	a.toolbar.SetEnabled(input.ActionCopy, frag)
	a.toolbar.SetEnabled(input.ActionUndo, a.ed.History().CanUndo())
	a.toolbar.SetEnabled(input.ActionRedo, a.ed.History().CanRedo())
}

// snapshot copies what the next frame needs.
func (a *App) snapshot(phase int) paintState {
	a.reflect()
	sel := a.ed.Selection()
	st := paintState{
		width:      a.windowSize.X,
		height:     a.windowSize.Y,
		origin:     canvasOrigin(),
		canvas:     a.ed.Surface().Snapshot(),
		canvasRect: a.ed.Surface().Bounds(),
		selRect:    sel.Rect(),
		selState:   sel.State(),
		phase:      phase,
		status:     a.ed.Status(),
		buttons:    a.toolbar.snapshot(),
	}
	st.warning = st.status == editor.MsgNoImage || st.status == editor.MsgTooLarge
	if f := sel.Fragment(); f != nil {
		st.fragment = f.Pixels()
	}
	if a.selHandles.Enabled() {
		st.selHandles = append([]editor.HandlePoint(nil), a.selHandles.Points()...)
		st.selPreview, st.resizingSel = a.selHandles.Preview()
	}
	if a.canvasHandles.Enabled() {
		st.canvasHandles = append([]editor.HandlePoint(nil), a.canvasHandles.Points()...)
		st.canvasPreview, st.resizingCanvas = a.canvasHandles.Preview()
	}
	st.info = []string{
		editor.CanvasInfo(a.ed.Surface().Size()),
		editor.PointerInfo(a.router.Pointer()),
		editor.SelectionInfo(sel.Rect()),
	}
	return st
}

// mouse routes a pointer event to the handle widgets, the toolbar or the
// router and reports whether a repaint is needed.
func (a *App) mouse(e mouse.Event) bool {
	win := image.Pt(int(e.X), int(e.Y))
	p := a.router.ToCanvas(win)
	for _, h := range []*HandleWidget{a.selHandles, a.canvasHandles} {
		if !h.Active() {
			continue
		}
		switch e.Direction {
		case mouse.DirRelease:
			return h.Release(p)
		case mouse.DirNone:
			h.Move(p)
			a.router.Mouse(e)
			return true
		}
	}

	if win.In(a.toolbar.Rect()) {
		switch e.Direction {
		case mouse.DirPress:
			if e.Button == mouse.ButtonLeft {
				return a.toolbar.Press(win)
			}
		case mouse.DirRelease:
			a.toolbar.Release()
			return true
		case mouse.DirNone:
			return a.toolbar.Hover(win)
		}
		return false
	}
	redraw := a.toolbar.Hover(win)

	if e.Direction == mouse.DirPress && e.Button == mouse.ButtonLeft {
		if a.selHandles.Press(p) || a.canvasHandles.Press(p) {
			return true
		}
	}
	if e.Direction == mouse.DirRelease {
		a.toolbar.Release()
	}
	return a.router.Mouse(e) || redraw
}

// Run executes the UI loop using shiny's driver.
func (a *App) Run() { driver.Main(a.Main) }

func (a *App) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

func (a *App) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.windowSize.X, Height: a.windowSize.Y, Title: a.title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	a.host.send = w.Send

	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(tickInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				w.Send(tickEvent{})
			case <-done:
				return
			}
		}
	}()

	p := newPainter(a.theme, a.toolbar)
	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			p.drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	phase := 0
	lastStatus := a.ed.Status()
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			a.windowSize = image.Pt(e.WidthPx, e.HeightPx)
			a.layout()
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := a.snapshot(phase)
			lastStatus = st.status
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case tickEvent:
			moving := a.ed.Selection().State() != editor.SelectionIdle
			if moving {
				phase++
			}
			if moving || a.ed.Status() != lastStatus {
				w.Send(paint.Event{})
			}
		case payloadEvent:
			a.host.pasted(e)
			w.Send(paint.Event{})
		case loadDone:
			a.host.loaded(e)
			w.Send(paint.Event{})
		case mouse.Event:
			if a.mouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if a.router.Key(e) {
				w.Send(paint.Event{})
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}
