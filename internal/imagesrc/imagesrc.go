// Package imagesrc validates and decodes image payloads handed to the editor
// by the clipboard, files or screen capture.
package imagesrc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DataURLPrefix is the only text payload prefix accepted as an image.
const DataURLPrefix = "data:image/png;base64,"

// ErrNoImage reports a payload that does not carry a supported image.
var ErrNoImage = errors.New("no image found")

var imageMIME = regexp.MustCompile(`(?i)^image/(p?jpeg|gif|png)$`)

// Payload is what an image source provider delivers: either binary image
// data with its MIME type or a text payload.
type Payload struct {
	Data []byte
	MIME string
	Text string
}

// FromBytes wraps binary image data.
func FromBytes(data []byte, mimeType string) Payload {
	return Payload{Data: data, MIME: mimeType}
}

// FromText wraps a text payload such as a data URL.
func FromText(text string) Payload {
	return Payload{MIME: "text/plain", Text: text}
}

// FromFile reads path and guesses its MIME type from the extension.
func FromFile(path string) (Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Payload{}, err
	}
	mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return FromBytes(data, mt), nil
}

// IsBinary reports whether p carries image bytes rather than text.
func (p Payload) IsBinary() bool { return len(p.Data) > 0 }

// Accept checks that p holds a supported image without decoding it.
func (p Payload) Accept() error {
	if p.IsBinary() {
		if !imageMIME.MatchString(strings.TrimSpace(p.MIME)) {
			return fmt.Errorf("%w: unsupported type %q", ErrNoImage, p.MIME)
		}
		return nil
	}
	if !strings.HasPrefix(p.Text, DataURLPrefix) {
		return ErrNoImage
	}
	return nil
}

// Decode validates p and decodes it into an RGBA image with zero-based bounds.
func Decode(p Payload) (*image.RGBA, error) {
	if err := p.Accept(); err != nil {
		return nil, err
	}
	data := p.Data
	if !p.IsBinary() {
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(strings.TrimPrefix(p.Text, DataURLPrefix)))
		if err != nil {
			return nil, fmt.Errorf("decode data url: %w", err)
		}
		data = raw
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return ToRGBA(img), nil
}

// ToRGBA copies img into a new RGBA image rebased to the origin.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// EncodePNG returns img encoded as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURL encodes img as a PNG data URL.
func DataURL(img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return DataURLPrefix + base64.StdEncoding.EncodeToString(data), nil
}
