package ui

import (
	"context"
	"image"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/clippaint/internal/editor"
	"github.com/example/clippaint/internal/render"
	"github.com/example/clippaint/internal/theme"
)

const (
	toolbarHeight = 44
	statusHeight  = 32
	margin        = 15
)

// frameDropThreshold caps how many in-flight frames may be cancelled in a row
// before one is allowed to finish.
const frameDropThreshold = 10

var statusFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	statusFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 13, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// DefaultCanvasSize is the canvas that fits a window of the given size with
// the toolbar, status bar and margins around it.
func DefaultCanvasSize(window image.Point) image.Point {
	return image.Pt(
		max(window.X-2*margin, 1),
		max(window.Y-toolbarHeight-statusHeight-2*margin, 1),
	)
}

// canvasOrigin is where canvas pixel (0,0) is drawn in the window.
func canvasOrigin() image.Point { return image.Pt(margin, toolbarHeight+margin) }

// paintState is an immutable copy of everything a frame shows, so the paint
// goroutine never reads editor state.
type paintState struct {
	width, height int
	origin        image.Point

	canvas   *image.RGBA
	fragment *image.RGBA
	selRect  image.Rectangle
	selState editor.SelectionState
	phase    int

	selHandles     []editor.HandlePoint
	selPreview     image.Rectangle
	canvasHandles  []editor.HandlePoint
	canvasRect     image.Rectangle
	canvasPreview  image.Rectangle
	resizingSel    bool
	resizingCanvas bool

	status  string
	warning bool
	info    []string
	buttons []ButtonState
}

// painter owns the drawing resources used by the paint goroutine.
type painter struct {
	theme    *theme.Theme
	toolbar  *Toolbar
	backdrop *render.Backdrop
}

func newPainter(th *theme.Theme, tb *Toolbar) *painter {
	return &painter{
		theme:    th,
		toolbar:  tb,
		backdrop: &render.Backdrop{Size: 8, Light: th.CheckerLight, Dark: th.CheckerDark},
	}
}

// compose renders st into dst. It returns false when ctx was cancelled
// before the frame was complete.
func (p *painter) compose(ctx context.Context, dst *image.RGBA, st paintState) bool {
	th := p.theme
	draw.Draw(dst, dst.Bounds(), image.NewUniform(th.Background), image.Point{}, draw.Src)

	content := image.Rect(0, toolbarHeight, st.width, st.height-statusHeight).Intersect(dst.Bounds())
	area, ok := dst.SubImage(content).(*image.RGBA)
	if !ok {
		return false
	}

	canvasRect := st.canvasRect.Add(st.origin)
	if !canvasRect.Empty() {
		p.backdrop.Draw(area, canvasRect)
		draw.Draw(area, canvasRect, st.canvas, image.Point{}, draw.Over)
	}
	render.Outline(area, canvasRect.Inset(-1), th.CanvasBorder, 1)
	if ctx.Err() != nil {
		return false
	}

	sel := st.selRect.Add(st.origin)
	if st.fragment != nil {
		shadow := render.DefaultShadowOptions()
		shadow.Color = th.FragmentShadow
		render.DropShadow(area, sel, shadow)
		draw.Draw(area, sel, st.fragment, image.Point{}, draw.Over)
	}
	if st.selState != editor.SelectionIdle {
		render.DashedRect(area, sel.Inset(-1), 4, st.phase, th.SelectionDash, th.SelectionGap)
	}
	render.Handles(area, sel, st.selHandles, th.HandleFill, th.HandleBorder)
	if st.resizingSel {
		render.DashedRect(area, st.selPreview.Add(st.origin), 2, 0, th.HandleBorder, th.SelectionGap)
	}
	render.Handles(area, canvasRect, st.canvasHandles, th.HandleFill, th.HandleBorder)
	if st.resizingCanvas {
		render.DashedRect(area, st.canvasPreview.Add(st.origin), 2, 0, th.HandleBorder, th.SelectionGap)
	}
	if ctx.Err() != nil {
		return false
	}

	p.toolbar.Draw(dst, st.buttons)
	p.drawStatus(dst, st)
	return ctx.Err() == nil
}

// drawStatus paints the message on the left and the size, pointer and
// selection readouts on the right.
func (p *painter) drawStatus(dst *image.RGBA, st paintState) {
	th := p.theme
	bar := image.Rect(0, st.height-statusHeight, st.width, st.height)
	draw.Draw(dst, bar, image.NewUniform(th.StatusBackground), image.Point{}, draw.Src)
	baseline := bar.Min.Y + (statusHeight+statusFace.Metrics().Ascent.Ceil())/2 - 1

	msgColor := th.StatusText
	if st.warning {
		msgColor = th.WarningText
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(msgColor), Face: statusFace, Dot: fixed.P(margin, baseline)}
	d.DrawString(st.status)

	d.Src = image.NewUniform(th.StatusText)
	x := st.width - margin
	for i := len(st.info) - 1; i >= 0; i-- {
		if st.info[i] == "" {
			continue
		}
		x -= d.MeasureString(st.info[i]).Ceil()
		d.Dot = fixed.P(x, baseline)
		d.DrawString(st.info[i])
		x -= 2 * margin
	}
}

func (p *painter) drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if !p.compose(ctx, b.RGBA(), st) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
