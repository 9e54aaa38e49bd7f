// Package surface holds the pixel buffer that backs the drawing canvas.
package surface

import (
	"image"
	"image/draw"
)

// Surface is the persistent raster canvas. Its origin is always (0,0) and its
// bounds always match Width() x Height().
type Surface struct {
	img *image.RGBA
}

// New returns a transparent surface of the given size. Negative sizes are
// treated as zero.
func New(width, height int) *Surface {
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))}
}

// FromImage returns a surface seeded with a copy of img, rebased to (0,0).
func FromImage(img image.Image) *Surface {
	b := img.Bounds()
	s := New(b.Dx(), b.Dy())
	draw.Draw(s.img, s.img.Bounds(), img, b.Min, draw.Src)
	return s
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.img.Bounds().Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.img.Bounds().Dy() }

// Size returns the surface dimensions as a point.
func (s *Surface) Size() image.Point { return s.img.Bounds().Size() }

// Bounds returns the surface rectangle.
func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// Image exposes the backing buffer for rendering. Callers must not retain it
// across a Resize.
func (s *Surface) Image() *image.RGBA { return s.img }

// Region returns a copy of rect with zero-based bounds. Parts of rect that
// fall outside the surface are transparent in the result.
func (s *Surface) Region(rect image.Rectangle) *image.RGBA {
	rect = rect.Canon()
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	src := rect.Intersect(s.img.Bounds())
	if !src.Empty() {
		draw.Draw(out, src.Sub(rect.Min), s.img, src.Min, draw.Src)
	}
	return out
}

// Put writes px at p replacing the existing pixels. Anything that lands off
// the surface is dropped.
func (s *Surface) Put(p image.Point, px image.Image) {
	s.write(p, px, draw.Src)
}

// Composite draws px over the existing pixels at p using source-over.
func (s *Surface) Composite(p image.Point, px image.Image) {
	s.write(p, px, draw.Over)
}

func (s *Surface) write(p image.Point, px image.Image, op draw.Op) {
	if px == nil {
		return
	}
	b := px.Bounds()
	dst := image.Rectangle{Min: p, Max: p.Add(b.Size())}
	clipped := dst.Intersect(s.img.Bounds())
	if clipped.Empty() {
		return
	}
	draw.Draw(s.img, clipped, px, b.Min.Add(clipped.Min.Sub(p)), op)
}

// Clear resets rect to transparent.
func (s *Surface) Clear(rect image.Rectangle) {
	rect = rect.Canon().Intersect(s.img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(s.img, rect, image.Transparent, image.Point{}, draw.Src)
}

// Resize changes the surface dimensions keeping the pixels in the overlap of
// the old and new bounds. Newly exposed pixels are transparent.
func (s *Surface) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.Width() && height == s.Height() {
		return
	}
	next := image.NewRGBA(image.Rect(0, 0, width, height))
	keep := next.Bounds().Intersect(s.img.Bounds())
	if !keep.Empty() {
		draw.Draw(next, keep, s.img, keep.Min, draw.Src)
	}
	s.img = next
}

// Load draws img at the origin. The caller is responsible for growing the
// surface first when img is larger.
func (s *Surface) Load(img image.Image) {
	s.Put(image.Point{}, img)
}

// Snapshot returns a full copy of the surface.
func (s *Surface) Snapshot() *image.RGBA {
	return s.Region(s.img.Bounds())
}

// Clamp limits p to the closed surface bounds [0,W] x [0,H].
func (s *Surface) Clamp(p image.Point) image.Point {
	return image.Pt(min(max(p.X, 0), s.Width()), min(max(p.Y, 0), s.Height()))
}
