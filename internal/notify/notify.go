// Package notify raises desktop notifications after a download, a copy to
// the clipboard or a clone, when the user enabled them.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/clippaint/internal/config"
	"github.com/example/clippaint/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when the canvas was written to disk.
	EventSave Event = "save"
	// EventCopy fires when an image was placed on the clipboard.
	EventCopy Event = "copy"
	// EventClone fires when the canvas was stored for a new window.
	EventClone Event = "clone"
)

// Preferences describes notification wording.
type Preferences struct {
	Title     string
	Templates map[Event]string
	Expire    time.Duration
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title:  platform.AppName,
		Expire: 4 * time.Second,
		Templates: map[Event]string{
			EventSave:  "Saved %s",
			EventCopy:  "Copied %s to clipboard",
			EventClone: "Cloned canvas as %s",
		},
	}
}

// LoadPreferences applies CLIPPAINT_NOTIFY_* environment overrides to the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("CLIPPAINT_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for _, ev := range []Event{EventSave, EventCopy, EventClone} {
		key := "CLIPPAINT_NOTIFY_" + strings.ToUpper(string(ev)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[ev] = v
		}
	}
	return prefs
}

// send is swapped in tests.
var send = platform.Notify

// Notifier sends notifications for the events that are enabled.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	templates := make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		templates[k] = v
	}
	prefs.Templates = templates
	return &Notifier{prefs: prefs, enabled: make(map[Event]bool)}
}

// FromConfig creates a Notifier with the events enabled in cfg.
func FromConfig(prefs Preferences, cfg config.Notify) *Notifier {
	n := New(prefs)
	n.Enable(EventSave, cfg.Save)
	n.Enable(EventCopy, cfg.Copy)
	n.Enable(EventClone, cfg.Clone)
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Save reports a written file, using it as the notification icon.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy reports a clipboard write with an optional preview of what was copied.
func (n *Notifier) Copy(detail string, img image.Image) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	opts := platform.Options{}
	if img != nil {
		path, cleanup, err := createPreview(img)
		if err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCopy, detail, opts)
}

// Clone reports a stored clone by id.
func (n *Notifier) Clone(id string) {
	if !n.enabledFor(EventClone) {
		return
	}
	n.dispatch(EventClone, id, platform.Options{})
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	opts.Expire = n.prefs.Expire
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "clippaint-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
