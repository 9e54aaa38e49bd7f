// Package capture grabs the screen so it can be pasted onto the canvas.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// Options control a screenshot.
type Options struct {
	// Monitor selects a single monitor: an index, "primary" or part of the
	// output name. Empty captures the whole desktop.
	Monitor string
	// Interactive lets the desktop portal ask the user for a region.
	Interactive bool
	// IncludeCursor embeds the pointer when the portal supports it.
	IncludeCursor bool
}

type backend interface {
	RootImage() (*image.RGBA, error)
	Monitors() ([]Monitor, error)
}

var (
	platform      = newBackend()
	portalCapture = portalScreenshot
	onWayland     = runningOnWayland
)

// ErrUnsupported reports a platform without any capture method.
var ErrUnsupported = errors.New("screen capture is not supported on this platform")

// Screenshot captures the desktop. On X11 the root window is read directly;
// on Wayland, or when the direct read fails, the desktop portal is asked
// instead. Interactive captures always go through the portal.
func Screenshot(ctx context.Context, opts Options) (*image.RGBA, error) {
	var (
		img *image.RGBA
		err error
	)
	if !opts.Interactive && !onWayland() {
		img, err = platform.RootImage()
	}
	if img == nil {
		direct := err
		img, err = portalCapture(ctx, opts)
		if err != nil {
			if direct != nil {
				return nil, fmt.Errorf("screenshot: %v; portal fallback: %w", direct, err)
			}
			return nil, fmt.Errorf("screenshot: %w", err)
		}
	}
	if opts.Monitor == "" || opts.Interactive {
		return img, nil
	}
	monitors, err := platform.Monitors()
	if err != nil {
		return nil, fmt.Errorf("list monitors: %w", err)
	}
	mon, err := FindMonitor(monitors, opts.Monitor)
	if err != nil {
		return nil, err
	}
	return cropToRect(img, mon.Rect)
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
