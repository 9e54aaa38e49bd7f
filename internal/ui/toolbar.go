package ui

import (
	"image"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/clippaint/internal/input"
	"github.com/example/clippaint/internal/render"
	"github.com/example/clippaint/internal/theme"
)

type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	StateDisabled
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [4]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [4]*image.RGBA{}
	}
}

// ActionButton triggers one router action from the toolbar.
type ActionButton struct {
	label  string
	action input.Action
	rect   image.Rectangle
	theme  *theme.Theme
	run    func(input.Action)
}

func (b *ActionButton) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := b.theme.ButtonBackground, b.theme.ButtonText
	switch state {
	case StateHover:
		bg = b.theme.ButtonBackgroundHover
	case StatePressed:
		bg = b.theme.ButtonBackgroundPress
	case StateDisabled:
		fg = b.theme.ButtonTextDisabled
	}
	draw.Draw(dst, b.rect, image.NewUniform(bg), image.Point{}, draw.Src)
	render.Outline(dst, b.rect, b.theme.ButtonBorder, 1)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
		Dot: fixed.P(b.rect.Min.X+buttonPad, b.rect.Min.Y+(b.rect.Dy()+10)/2)}
	d.DrawString(b.label)
}

func (b *ActionButton) Rect() image.Rectangle { return b.rect }

func (b *ActionButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *ActionButton) Activate() {
	if b.run != nil {
		b.run(b.action)
	}
}

const (
	buttonPad    = 8
	buttonHeight = 26
	buttonGap    = 4
)

var toolbarActions = []struct {
	label  string
	action input.Action
}{
	{"Paste", input.ActionPaste},
	{"Capture", input.ActionCapture},
	{"Cut", input.ActionCut},
	{"Copy", input.ActionCopy},
	{"Select all", input.ActionSelectAll},
	{"Undo", input.ActionUndo},
	{"Redo", input.ActionRedo},
	{"Download", input.ActionDownload},
	{"Clone", input.ActionClone},
}

// Toolbar is the row of action buttons along the top of the window.
type Toolbar struct {
	mu      sync.Mutex // guards button rects and caches shared with painting
	buttons []*CacheButton
	actions []input.Action
	enabled map[input.Action]bool
	hover   int
	pressed int
	rect    image.Rectangle
	theme   *theme.Theme
}

// NewToolbar creates the toolbar; run is called with the action of a clicked
// button.
func NewToolbar(th *theme.Theme, run func(input.Action)) *Toolbar {
	t := &Toolbar{hover: -1, pressed: -1, theme: th, enabled: map[input.Action]bool{}}
	for _, a := range toolbarActions {
		t.buttons = append(t.buttons, &CacheButton{Button: &ActionButton{label: a.label, action: a.action, theme: th, run: run}})
		t.actions = append(t.actions, a.action)
		t.enabled[a.action] = true
	}
	return t
}

// Layout places the buttons left to right inside a bar of the given width.
func (t *Toolbar) Layout(width int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rect = image.Rect(0, 0, width, toolbarHeight)
	meas := &font.Drawer{Face: basicfont.Face7x13}
	x := margin
	y := (toolbarHeight - buttonHeight) / 2
	for i, cb := range t.buttons {
		w := meas.MeasureString(toolbarActions[i].label).Ceil() + 2*buttonPad
		cb.SetRect(image.Rect(x, y, x+w, y+buttonHeight))
		x += w + buttonGap
	}
}

// Rect returns the area covered by the toolbar.
func (t *Toolbar) Rect() image.Rectangle { return t.rect }

// SetEnabled records which actions are currently available.
func (t *Toolbar) SetEnabled(a input.Action, on bool) { t.enabled[a] = on }

// Enabled reports whether a is available.
func (t *Toolbar) Enabled(a input.Action) bool { return t.enabled[a] }

// Hit returns the index of the button under p or -1.
func (t *Toolbar) Hit(p image.Point) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, cb := range t.buttons {
		if p.In(cb.Rect()) {
			return i
		}
	}
	return -1
}

// Hover tracks the pointer and reports whether the highlighted button changed.
func (t *Toolbar) Hover(p image.Point) bool {
	i := t.Hit(p)
	if i == t.hover {
		return false
	}
	t.hover = i
	return true
}

// Press activates the enabled button under p and reports whether one was hit.
func (t *Toolbar) Press(p image.Point) bool {
	i := t.Hit(p)
	if i < 0 || !t.enabled[t.actions[i]] {
		return i >= 0
	}
	t.pressed = i
	t.buttons[i].Activate()
	return true
}

// Release clears the pressed state.
func (t *Toolbar) Release() { t.pressed = -1 }

func (t *Toolbar) state(i int) ButtonState {
	switch {
	case !t.enabled[t.actions[i]]:
		return StateDisabled
	case i == t.pressed:
		return StatePressed
	case i == t.hover:
		return StateHover
	}
	return StateDefault
}

// snapshot returns the per-button states for the paint goroutine.
func (t *Toolbar) snapshot() []ButtonState {
	out := make([]ButtonState, len(t.buttons))
	for i := range t.buttons {
		out[i] = t.state(i)
	}
	return out
}

// Draw paints the bar with the given button states.
func (t *Toolbar) Draw(dst *image.RGBA, states []ButtonState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	draw.Draw(dst, t.rect, image.NewUniform(t.theme.ToolbarBackground), image.Point{}, draw.Src)
	for i, cb := range t.buttons {
		if i < len(states) {
			cb.Draw(dst, states[i])
		}
	}
}
