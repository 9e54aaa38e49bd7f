package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/clippaint/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save  bool
	Copy  bool
	Clone bool
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	// CanvasWidth and CanvasHeight size a new canvas; zero fits the window.
	CanvasWidth   int
	CanvasHeight  int
	CloneDir      string
	CloneMaxBytes int64
	Notify        Notify
	Themes        map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:  "", // Default to empty to allow fallback to Env/Default
		Themes: make(map[string]*theme.Theme),
	}
}

// ThemeLoader returns a theme loader that also knows the inline themes.
func (c *Config) ThemeLoader() *theme.Loader {
	l := theme.NewLoader()
	l.Extra = c.Themes
	return l
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.CanvasWidth > 0 {
		fmt.Fprintf(&sb, "canvas_width = %d\n", c.CanvasWidth)
	}
	if c.CanvasHeight > 0 {
		fmt.Fprintf(&sb, "canvas_height = %d\n", c.CanvasHeight)
	}
	if c.CloneDir != "" {
		fmt.Fprintf(&sb, "clone_dir = %s\n", c.CloneDir)
	}
	if c.CloneMaxBytes > 0 {
		fmt.Fprintf(&sb, "clone_max_bytes = %d\n", c.CloneMaxBytes)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "clone = %v\n", c.Notify.Clone)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
