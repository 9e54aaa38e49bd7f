package render

import (
	"image"
	"image/color"
	"testing"
)

func TestApplyShadowExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	subject := image.Pt(5, 5)
	img.Set(subject.X, subject.Y, color.RGBA{R: 255, A: 255})

	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Color: color.RGBA{A: 128}}
	out := ApplyShadow(img, opts).Image
	if out == nil {
		t.Fatal("expected output image")
	}
	expected := image.Rect(0, 0, 22, 20)
	if !out.Bounds().Eq(expected) {
		t.Fatalf("unexpected bounds %v, want %v", out.Bounds(), expected)
	}
	// Spot check that the shadow alpha was written near the offset pixel.
	shadowOrigin := subject.Add(opts.Offset)
	shadowPt := shadowOrigin
	if out.RGBAAt(shadowPt.X, shadowPt.Y).A == 0 {
		t.Fatalf("expected shadow alpha at %v", shadowPt)
	}
}

func TestApplyShadowNoShadowWhenTransparent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, fill)
		}
	}
	out := ApplyShadow(img, ShadowOptions{Radius: 12, Offset: image.Pt(20, 10)}).Image
	if out == nil {
		t.Fatal("expected output image")
	}
	if !out.Bounds().Eq(img.Bounds()) {
		t.Fatalf("bounds changed unexpectedly: %v vs %v", out.Bounds(), img.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := out.RGBAAt(x, y); got != fill {
				t.Fatalf("pixel mismatch at (%d,%d): got %+v want %+v", x, y, got, fill)
			}
		}
	}
}

func TestApplyShadowBlurredAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{A: 255})
	opts := ShadowOptions{Radius: 2, Offset: image.Pt(3, 0), Color: color.RGBA{A: 255}}

	out := ApplyShadow(img, opts).Image
	if out == nil {
		t.Fatal("expected output image")
	}
	if out.Bounds().Dx() <= img.Bounds().Dx() {
		t.Fatalf("expected wider output bounds")
	}
	// Check that blur spreads alpha beyond the exact offset location.
	base := img.Bounds().Min.Add(opts.Offset)
	baseAlpha := out.RGBAAt(base.X, base.Y).A
	if baseAlpha == 0 {
		t.Fatal("expected alpha at base shadow location")
	}
	// Neighbor pixel should also have alpha because of blur.
	neighbor := out.RGBAAt(base.X+1, base.Y)
	if neighbor.A == 0 {
		t.Fatalf("expected blurred alpha to reach neighbor, base alpha=%d", baseAlpha)
	}
}

func TestDropShadowLeavesFragmentArea(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	frag := image.Rect(10, 10, 20, 20)
	DropShadow(dst, frag, ShadowOptions{Radius: 2, Offset: image.Pt(3, 3), Color: color.RGBA{A: 200}})
	for y := frag.Min.Y; y < frag.Max.Y; y++ {
		for x := frag.Min.X; x < frag.Max.X; x++ {
			if dst.RGBAAt(x, y).A != 0 {
				t.Fatalf("shadow painted under the fragment at (%d,%d)", x, y)
			}
		}
	}
	if dst.RGBAAt(21, 21).A == 0 {
		t.Fatal("expected shadow beyond the bottom-right corner")
	}
	if dst.RGBAAt(5, 5).A != 0 {
		t.Fatal("shadow leaked to the top-left")
	}
}
