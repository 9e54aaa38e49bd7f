//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/example/clippaint/internal/imagesrc"
	"github.com/godbus/dbus/v5"
)

func TestPortalScreenshotOptions(t *testing.T) {
	prevToken := portalHandleToken
	portalHandleToken = func() string { return "test_token" }
	t.Cleanup(func() { portalHandleToken = prevToken })

	tests := []struct {
		name       string
		opts       Options
		wantCursor string
	}{
		{"defaults", Options{}, "hidden"},
		{"interactive with cursor", Options{Interactive: true, IncludeCursor: true}, "embedded"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values := portalScreenshotOptions(tc.opts)
			if got := values["interactive"].Value().(bool); got != tc.opts.Interactive {
				t.Fatalf("interactive = %v", got)
			}
			if got := values["modal"].Value().(bool); got != tc.opts.Interactive {
				t.Fatalf("modal = %v", got)
			}
			if got := values["cursor_mode"].Value().(string); got != tc.wantCursor {
				t.Fatalf("cursor_mode = %q want %q", got, tc.wantCursor)
			}
			if got := values["handle_token"].Value().(string); got != "test_token" {
				t.Fatalf("handle_token = %q", got)
			}
		})
	}
}

func TestPortalHandleTokenIsPathSafe(t *testing.T) {
	valid := regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	a, b := newPortalHandleToken(), newPortalHandleToken()
	if !valid.MatchString(a) {
		t.Fatalf("token %q is not a valid object path element", a)
	}
	if a == b {
		t.Fatal("tokens must be unique")
	}
}

func TestPortalResult(t *testing.T) {
	data, err := imagesrc.EncodePNG(image.NewRGBA(image.Rect(0, 0, 4, 3)))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	body := []interface{}{uint32(0), map[string]dbus.Variant{"uri": dbus.MakeVariant("file://" + path)}}
	img, err := portalResult(body)
	if err != nil {
		t.Fatalf("portalResult: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("portal file should be removed after reading")
	}

	if _, err := portalResult([]interface{}{uint32(1), map[string]dbus.Variant{}}); err == nil {
		t.Fatal("cancelled request must fail")
	}
}
