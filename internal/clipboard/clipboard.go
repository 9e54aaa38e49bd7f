// Package clipboard moves images between the system clipboard and the
// editor. The native library is tried first; when it is unavailable the
// usual command line helpers are used.
package clipboard

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/clippaint/internal/imagesrc"
)

var (
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	// ErrEmpty reports a clipboard holding neither an image nor text.
	ErrEmpty = errors.New("clipboard is empty")
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// Writer publishes text to the system clipboard. It satisfies the editor's
// text sink.
type Writer struct{}

func (Writer) WriteText(text string) error { return WriteText(text) }

// WriteText places text on the clipboard.
func WriteText(text string) error {
	libErr := libWriteText(text)
	if libErr == nil {
		return nil
	}
	if err := commandWriteText(text); err != nil {
		return fmt.Errorf("write clipboard: %v; fallback: %w", libErr, err)
	}
	return nil
}

// ReadPayload returns what a paste would deliver: PNG data when the
// clipboard holds an image, otherwise its text.
func ReadPayload() (imagesrc.Payload, error) {
	if data, err := libReadImage(); err == nil && len(data) > 0 {
		return imagesrc.FromBytes(data, "image/png"), nil
	}
	if text, err := libReadText(); err == nil && text != "" {
		return imagesrc.FromText(text), nil
	}
	if data, mt, err := commandReadImage(); err == nil && len(data) > 0 {
		return imagesrc.FromBytes(data, mt), nil
	}
	if text, err := commandReadText(); err == nil && text != "" {
		return imagesrc.FromText(text), nil
	}
	return imagesrc.Payload{}, ErrEmpty
}
