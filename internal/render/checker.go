// Package render draws the editor chrome onto RGBA buffers: the transparency
// backdrop, selection outlines, resize handles and the fragment shadow.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Checkerboard fills rect of dst with squares of the given size, aligned to
// the rectangle origin so the pattern moves with the canvas.
func Checkerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	if size <= 0 {
		size = 8
	}
	rect = rect.Intersect(dst.Bounds())
	l, d := image.NewUniform(light), image.NewUniform(dark)
	for y := rect.Min.Y; y < rect.Max.Y; y += size {
		for x := rect.Min.X; x < rect.Max.X; x += size {
			cell := image.Rect(x, y, x+size, y+size).Intersect(rect)
			src := l
			if ((x-rect.Min.X)/size+(y-rect.Min.Y)/size)%2 != 0 {
				src = d
			}
			draw.Draw(dst, cell, src, image.Point{}, draw.Src)
		}
	}
}

// Backdrop caches a checkerboard of one size and blits it on demand.
type Backdrop struct {
	Size        int
	Light, Dark color.Color
	cache       *image.RGBA
}

// Draw copies the checkerboard into rect of dst.
func (b *Backdrop) Draw(dst *image.RGBA, rect image.Rectangle) {
	want := image.Rect(0, 0, rect.Dx(), rect.Dy())
	if b.cache == nil || !b.cache.Bounds().Eq(want) {
		b.cache = image.NewRGBA(want)
		Checkerboard(b.cache, want, b.Size, b.Light, b.Dark)
	}
	draw.Draw(dst, rect, b.cache, image.Point{}, draw.Src)
}
