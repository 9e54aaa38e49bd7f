package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow cast by a floating fragment.
// The alpha of Color is the shadow opacity.
type ShadowOptions struct {
	Radius int
	Offset image.Point
	Color  color.RGBA
}

// ShadowResult captures the output of ApplyShadow.
type ShadowResult struct {
	// Image is the composited image that includes the blurred shadow.
	Image *image.RGBA
	// Offset reports how far the original image content was translated when
	// rebasing onto the expanded canvas. It can be used by callers to adjust
	// viewport offsets so the on-screen location of the content remains
	// stable.
	Offset image.Point
}

// DefaultShadowOptions returns the small offset shadow drawn under a lifted
// selection.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius: 4,
		Offset: image.Pt(3, 3),
		Color:  color.RGBA{A: 0x60},
	}
}

// DropShadow paints a blurred shadow of rect onto dst, offset by opts.Offset.
// Nothing is drawn inside rect itself.
func DropShadow(dst *image.RGBA, rect image.Rectangle, opts ShadowOptions) {
	if rect.Empty() || opts.Color.A == 0 {
		return
	}
	radius := max(opts.Radius, 0)
	padded := rect.Inset(-radius)
	mask := image.NewGray(padded.Sub(padded.Min))
	inner := rect.Sub(padded.Min)
	draw.Draw(mask, inner, image.NewUniform(color.Gray{Y: 0xff}), image.Point{}, draw.Src)
	blurred := blurGray(mask, radius)
	// the fragment covers its own rectangle, leave it untouched
	draw.Draw(blurred, inner.Sub(opts.Offset), image.NewUniform(color.Gray{}), image.Point{}, draw.Src)
	target := padded.Add(opts.Offset)
	draw.DrawMask(dst, target, image.NewUniform(opts.Color), image.Point{}, blurred, image.Point{}, draw.Over)
}

// ApplyShadow returns img composited over its own blurred shadow on an
// expanded zero-based canvas. The returned Offset is where the top-left corner
// of img ended up.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	if img.Bounds().Empty() {
		return ShadowResult{Image: img}
	}
	if opts.Color.A == 0 {
		return ShadowResult{Image: img}
	}
	radius := max(opts.Radius, 0)

	srcBounds := img.Bounds()
	paddedBounds := srcBounds
	if radius > 0 {
		paddedBounds = paddedBounds.Inset(-radius)
	}

	shadowBounds := paddedBounds.Add(opts.Offset)
	compositeBounds := srcBounds.Union(shadowBounds)
	dstRect := compositeBounds.Sub(compositeBounds.Min)
	width := dstRect.Dx()
	height := dstRect.Dy()
	if width <= 0 || height <= 0 {
		return ShadowResult{Image: img}
	}

	shift := srcBounds.Min.Sub(compositeBounds.Min)
	shadowOrigin := shadowBounds.Min.Sub(compositeBounds.Min)

	mask := image.NewGray(paddedBounds.Sub(paddedBounds.Min))
	for y := srcBounds.Min.Y; y < srcBounds.Max.Y; y++ {
		for x := srcBounds.Min.X; x < srcBounds.Max.X; x++ {
			a := img.RGBAAt(x, y).A
			if a == 0 {
				continue
			}
			mx := x - paddedBounds.Min.X
			my := y - paddedBounds.Min.Y
			mask.SetGray(mx, my, color.Gray{Y: a})
		}
	}

	blurred := blurGray(mask, radius)

	dst := image.NewRGBA(dstRect)
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	draw.DrawMask(dst, blurred.Bounds().Add(shadowOrigin), image.NewUniform(opts.Color), image.Point{}, blurred, blurred.Bounds().Min, draw.Over)
	draw.Draw(dst, srcBounds.Sub(compositeBounds.Min), img, srcBounds.Min, draw.Over)

	return ShadowResult{Image: dst, Offset: shift}
}

func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	for y := 0; y < h; y++ {
		rowStart := y * src.Stride
		tmpStart := y * tmp.Stride
		prefix := make([]int, w+1)
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[rowStart+x])
		}
		for x := 0; x < w; x++ {
			x0 := max(x-radius, 0)
			x1 := min(x+radius, w-1)
			sum := prefix[x1+1] - prefix[x0]
			count := x1 - x0 + 1
			tmp.Pix[tmpStart+x] = uint8(sum / count)
		}
	}

	for x := 0; x < w; x++ {
		prefix := make([]int, h+1)
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0 := max(y-radius, 0)
			y1 := min(y+radius, h-1)
			sum := prefix[y1+1] - prefix[y0]
			count := y1 - y0 + 1
			dst.Pix[y*dst.Stride+x] = uint8(sum / count)
		}
	}

	return dst
}
