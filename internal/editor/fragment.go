package editor

import (
	"bytes"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Fragment is the floating raster carried by a committed selection. It keeps
// the pixels it was created from so repeated resizes never compound
// resampling loss.
type Fragment struct {
	pixels   *image.RGBA
	original *image.RGBA
	pos      image.Point
}

func newFragment(src *image.RGBA, at image.Point) *Fragment {
	orig := copyRGBA(src)
	return &Fragment{pixels: copyRGBA(orig), original: orig, pos: at}
}

// Pixels returns the current, possibly resampled, fragment raster.
func (f *Fragment) Pixels() *image.RGBA { return f.pixels }

// Original returns the raster the fragment was created from.
func (f *Fragment) Original() *image.RGBA { return f.original }

// Position returns the top-left corner of the fragment in canvas coordinates.
func (f *Fragment) Position() image.Point { return f.pos }

// Rect returns the canvas rectangle the fragment currently covers.
func (f *Fragment) Rect() image.Rectangle {
	return image.Rectangle{Min: f.pos, Max: f.pos.Add(f.pixels.Bounds().Size())}
}

// unchanged reports whether the current pixels are still the original ones.
func (f *Fragment) unchanged() bool {
	return f.pixels.Bounds() == f.original.Bounds() && bytes.Equal(f.pixels.Pix, f.original.Pix)
}

func (f *Fragment) resize(w, h int) {
	if w == f.original.Bounds().Dx() && h == f.original.Bounds().Dy() {
		f.pixels = copyRGBA(f.original)
		return
	}
	f.pixels = resample(f.original, w, h)
}

func resample(src *image.RGBA, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func copyRGBA(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(dst, image.Point{}, src, b, xdraw.Src, nil)
	return dst
}
