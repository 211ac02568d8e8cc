package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/example/designboard/internal/scene"
	"github.com/example/designboard/internal/theme"
)

// Canvas holds the initial board settings.
type Canvas struct {
	Width      int
	Height     int
	Background string
	Color      string
}

// Notify holds notification settings.
type Notify struct {
	Export bool
	Copy   bool
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Canvas  Canvas
	Notify  Notify
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Canvas: Canvas{
			Width:      scene.DefaultWidth,
			Height:     scene.DefaultHeight,
			Background: scene.DefaultBackground.Hex(),
			Color:      scene.DefaultInk.Hex(),
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// ApplyEnv overrides file settings with DESIGNBOARD_* environment variables.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("DESIGNBOARD_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("DESIGNBOARD_SAVE_DIR")); v != "" {
		c.SaveDir = v
	}
}

// Background parses the configured canvas background.
func (c *Config) Background() (scene.Color, error) {
	return scene.ParseColor(c.Canvas.Background)
}

// Ink parses the configured initial drawing colour.
func (c *Config) Ink() (scene.Color, error) {
	return scene.ParseColor(c.Canvas.Color)
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
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	fmt.Fprintf(&sb, "background = %s\n", c.Canvas.Background)
	fmt.Fprintf(&sb, "color = %s\n", c.Canvas.Color)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, kv := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", kv[0], kv[1])
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
