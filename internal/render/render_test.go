package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/clippaint/internal/editor"
)

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{255, 255, 255, 255}
)

func TestCheckerboardAlignsToRect(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	Checkerboard(dst, image.Rect(3, 3, 19, 19), 4, white, black)
	if dst.RGBAAt(3, 3) != white || dst.RGBAAt(7, 3) != black || dst.RGBAAt(7, 7) != white {
		t.Fatal("checker cells do not start at the rectangle origin")
	}
	if dst.RGBAAt(2, 2).A != 0 {
		t.Fatal("painted outside the rectangle")
	}
}

func TestBackdropReusesCache(t *testing.T) {
	b := &Backdrop{Size: 2, Light: white, Dark: black}
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	b.Draw(dst, image.Rect(2, 2, 6, 6))
	first := b.cache
	b.Draw(dst, image.Rect(4, 4, 8, 8))
	if b.cache != first {
		t.Fatal("same size must reuse the cached pattern")
	}
	if dst.RGBAAt(4, 4) != white || dst.RGBAAt(6, 4) != black {
		t.Fatal("unexpected backdrop pixels")
	}
}

func TestDashedRectMarches(t *testing.T) {
	r := image.Rect(0, 0, 8, 4)
	a := image.NewRGBA(r)
	b := image.NewRGBA(r)
	DashedRect(a, r, 2, 0, white, black)
	DashedRect(b, r, 2, 1, white, black)
	if a.RGBAAt(0, 0) != white || a.RGBAAt(2, 0) != black {
		t.Fatalf("unexpected dash pattern %v %v", a.RGBAAt(0, 0), a.RGBAAt(2, 0))
	}
	if b.RGBAAt(1, 0) != black || b.RGBAAt(0, 0) != white {
		t.Fatal("phase did not shift the pattern")
	}
	if a.RGBAAt(3, 2).A != 0 {
		t.Fatal("interior must stay untouched")
	}
	for _, p := range []image.Point{{7, 2}, {4, 3}, {0, 2}} {
		if a.RGBAAt(p.X, p.Y).A == 0 {
			t.Fatalf("border pixel %v not drawn", p)
		}
	}
}

func TestPerimeterVisitsEveryBorderPixelOnce(t *testing.T) {
	r := image.Rect(5, 5, 10, 9)
	seen := map[image.Point]bool{}
	n := 2*(r.Dx()+r.Dy()) - 4
	for i := 0; i < n; i++ {
		p := perimeterPoint(r, i)
		if seen[p] {
			t.Fatalf("visited %v twice", p)
		}
		onEdge := p.X == r.Min.X || p.X == r.Max.X-1 || p.Y == r.Min.Y || p.Y == r.Max.Y-1
		if !p.In(r) || !onEdge {
			t.Fatalf("%v is not on the border of %v", p, r)
		}
		seen[p] = true
	}
}

func TestHandleRects(t *testing.T) {
	r := image.Rect(10, 20, 50, 60)
	tests := []struct {
		p      editor.HandlePoint
		center image.Point
	}{
		{editor.HandleTL, image.Pt(10, 20)},
		{editor.HandleT, image.Pt(30, 20)},
		{editor.HandleR, image.Pt(50, 40)},
		{editor.HandleBR, image.Pt(50, 60)},
		{editor.HandleL, image.Pt(10, 40)},
	}
	for _, tc := range tests {
		hr := HandleRect(r, tc.p)
		if hr.Dx() != HandleSize || !tc.center.In(hr) {
			t.Errorf("handle %d: %v does not surround %v", tc.p, hr, tc.center)
		}
	}
}

func TestOutlineThickness(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	Outline(img, image.Rect(1, 1, 9, 9), black, 2)
	if img.RGBAAt(2, 2) != black || img.RGBAAt(3, 3).A != 0 || img.RGBAAt(0, 0).A != 0 {
		t.Fatal("unexpected outline pixels")
	}
}
