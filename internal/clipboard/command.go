package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// helper is an external clipboard program and the arguments for each
// direction. An empty argument list means the direction is unsupported.
type helper struct {
	name      string
	wayland   bool
	write     []string
	readImage []string
	readText  []string
}

var helpers = []helper{
	{
		name:    "wl-copy",
		wayland: true,
		write:   []string{},
	},
	{
		name:      "wl-paste",
		wayland:   true,
		readImage: []string{"--no-newline", "--type", "image/png"},
		readText:  []string{"--no-newline"},
	},
	{
		name:      "xclip",
		write:     []string{"-selection", "clipboard", "-in"},
		readImage: []string{"-selection", "clipboard", "-target", "image/png", "-out"},
		readText:  []string{"-selection", "clipboard", "-out"},
	},
	{
		name:     "xsel",
		write:    []string{"--clipboard", "--input"},
		readText: []string{"--clipboard", "--output"},
	},
}

var (
	lookPath   = exec.LookPath
	runCommand = func(name string, args []string, stdin []byte) ([]byte, error) {
		cmd := exec.Command(name, args...)
		if stdin != nil {
			cmd.Stdin = bytes.NewReader(stdin)
		}
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		out, err := cmd.Output()
		if err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
			}
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return out, nil
	}
)

var errNoHelper = errors.New("no clipboard helper found (install wl-clipboard, xclip or xsel)")

func usable(h helper) bool {
	if h.wayland && os.Getenv("WAYLAND_DISPLAY") == "" {
		return false
	}
	_, err := lookPath(h.name)
	return err == nil
}

func commandWriteText(text string) error {
	var errs []error
	for _, h := range helpers {
		if h.write == nil || !usable(h) {
			continue
		}
		if _, err := runCommand(h.name, h.write, []byte(text)); err != nil {
			errs = append(errs, err)
			continue
		}
		return nil
	}
	if len(errs) == 0 {
		return errNoHelper
	}
	return errors.Join(errs...)
}

func commandReadImage() ([]byte, string, error) {
	for _, h := range helpers {
		if h.readImage == nil || !usable(h) {
			continue
		}
		if out, err := runCommand(h.name, h.readImage, nil); err == nil && len(out) > 0 {
			return out, "image/png", nil
		}
	}
	return nil, "", errNoHelper
}

func commandReadText() (string, error) {
	for _, h := range helpers {
		if h.readText == nil || !usable(h) {
			continue
		}
		if out, err := runCommand(h.name, h.readText, nil); err == nil && len(out) > 0 {
			return string(out), nil
		}
	}
	return "", errNoHelper
}
