package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/clippaint/internal/editor"
)

// HandleSize is the edge length of a resize handle square in pixels.
const HandleSize = 8

// Outline draws a solid rectangle border of the given thickness inside rect.
func Outline(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	if rect.Empty() || thick <= 0 {
		return
	}
	src := image.NewUniform(col)
	t := min(thick, rect.Dx(), rect.Dy())
	for _, edge := range []image.Rectangle{
		image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+t),
		image.Rect(rect.Min.X, rect.Max.Y-t, rect.Max.X, rect.Max.Y),
		image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+t, rect.Max.Y),
		image.Rect(rect.Max.X-t, rect.Min.Y, rect.Max.X, rect.Max.Y),
	} {
		draw.Draw(img, edge, src, image.Point{}, draw.Src)
	}
}

// DashedRect draws a one pixel dashed border just inside rect, alternating
// c1 and c2 every dash pixels. The pattern runs clockwise around the border
// and is shifted by phase, so advancing phase makes the dashes march.
func DashedRect(img *image.RGBA, rect image.Rectangle, dash, phase int, c1, c2 color.Color) {
	if rect.Empty() {
		return
	}
	if dash <= 0 {
		dash = 4
	}
	w, h := rect.Dx(), rect.Dy()
	perimeter := 2*(w+h) - 4
	if w == 1 || h == 1 {
		perimeter = w * h
	}
	bounds := img.Bounds()
	for i := 0; i < perimeter; i++ {
		p := perimeterPoint(rect, i)
		if !p.In(bounds) {
			continue
		}
		col := c1
		if ((i+phase)%(2*dash)+2*dash)%(2*dash) >= dash {
			col = c2
		}
		img.Set(p.X, p.Y, col)
	}
}

// perimeterPoint walks the border of r clockwise from its top-left pixel.
func perimeterPoint(r image.Rectangle, i int) image.Point {
	w, h := r.Dx(), r.Dy()
	if h == 1 {
		return image.Pt(r.Min.X+i, r.Min.Y)
	}
	if w == 1 {
		return image.Pt(r.Min.X, r.Min.Y+i)
	}
	switch {
	case i < w:
		return image.Pt(r.Min.X+i, r.Min.Y)
	case i < w+h-1:
		return image.Pt(r.Max.X-1, r.Min.Y+i-w+1)
	case i < 2*w+h-2:
		return image.Pt(r.Max.X-1-(i-w-h+2), r.Max.Y-1)
	default:
		return image.Pt(r.Min.X, r.Max.Y-1-(i-2*w-h+3))
	}
}

// HandleRect returns the square for handle p on the border of rect.
func HandleRect(rect image.Rectangle, p editor.HandlePoint) image.Rectangle {
	hs := HandleSize / 2
	cx := (rect.Min.X + rect.Max.X) / 2
	cy := (rect.Min.Y + rect.Max.Y) / 2
	var c image.Point
	switch p {
	case editor.HandleTL:
		c = rect.Min
	case editor.HandleT:
		c = image.Pt(cx, rect.Min.Y)
	case editor.HandleTR:
		c = image.Pt(rect.Max.X, rect.Min.Y)
	case editor.HandleR:
		c = image.Pt(rect.Max.X, cy)
	case editor.HandleBR:
		c = rect.Max
	case editor.HandleB:
		c = image.Pt(cx, rect.Max.Y)
	case editor.HandleBL:
		c = image.Pt(rect.Min.X, rect.Max.Y)
	case editor.HandleL:
		c = image.Pt(rect.Min.X, cy)
	}
	return image.Rect(c.X-hs, c.Y-hs, c.X+hs, c.Y+hs)
}

// Handles draws the squares for points around rect.
func Handles(img *image.RGBA, rect image.Rectangle, points []editor.HandlePoint, fill, border color.Color) {
	for _, p := range points {
		hr := HandleRect(rect, p)
		draw.Draw(img, hr, image.NewUniform(fill), image.Point{}, draw.Src)
		Outline(img, hr, border, 1)
	}
}
