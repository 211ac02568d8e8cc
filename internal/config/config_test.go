package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/boards

[canvas]
width = 1600
height = 900
background = "#f8fafc"
color = navy

[notify]
export = true
copy = false

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/boards" {
		t.Errorf("Expected save_dir '/tmp/boards', got '%s'", cfg.SaveDir)
	}
	if cfg.Canvas.Width != 1600 || cfg.Canvas.Height != 900 {
		t.Errorf("Unexpected canvas size %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	bg, err := cfg.Background()
	if err != nil || bg.Hex() != "#f8fafc" {
		t.Errorf("Unexpected background %v (%v)", bg, err)
	}
	ink, err := cfg.Ink()
	if err != nil || ink.Hex() != "#000080" {
		t.Errorf("Unexpected ink %v (%v)", ink, err)
	}
	if !cfg.Notify.Export {
		t.Error("Expected notify.export to be true")
	}
	if cfg.Notify.Copy {
		t.Error("Expected notify.copy to be false")
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("# nothing here\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Canvas.Width != 1200 || cfg.Canvas.Height != 800 {
		t.Errorf("Unexpected default canvas %dx%d", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Canvas.Background != "#ffffff" || cfg.Canvas.Color != "#000000" {
		t.Errorf("Unexpected default colours %q %q", cfg.Canvas.Background, cfg.Canvas.Color)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"[canvas]\nwidth = -4\n",
		"[canvas]\nbackground = blurple\n",
		"[notify]\nexport = sometimes\n",
		"[theme.x]\nBackground = #12\n",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/boards

[canvas]
width = 640
height = 480
background = #fefefe
color = #ff0000

[notify]
export = true
copy = true

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Canvas != cfg2.Canvas {
		t.Errorf("Canvas mismatch: %+v vs %+v", cfg.Canvas, cfg2.Canvas)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DESIGNBOARD_THEME", "dark")
	t.Setenv("DESIGNBOARD_SAVE_DIR", "/srv/boards")
	cfg := New()
	cfg.Theme = "default"
	cfg.ApplyEnv()
	if cfg.Theme != "dark" || cfg.SaveDir != "/srv/boards" {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestLoaderPrefersOverrideAndSaves(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "board.rc")
	cfg := New()
	cfg.SaveDir = "/tmp/out"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	l := NewLoader("1.0.0", path)
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("GetConfigPath = %q, want %q", got, path)
	}
	loaded, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.SaveDir != "/tmp/out" {
		t.Errorf("SaveDir = %q", loaded.SaveDir)
	}
	if sp, err := l.SavePath(); err != nil || sp != path {
		t.Errorf("SavePath = %q, %v", sp, err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config not written: %v", err)
	}
}
