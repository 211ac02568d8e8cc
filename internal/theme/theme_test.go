package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	th, err := Parse(strings.NewReader(`
Name: midnight
// comment
background: #000000
Selection: orange
Unknown: #123456
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "midnight" {
		t.Errorf("name = %q", th.Name)
	}
	if th.Background != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("background = %+v", th.Background)
	}
	if th.Selection != (color.RGBA{255, 165, 0, 255}) {
		t.Errorf("selection = %+v", th.Selection)
	}
	if th.Foreground != Default().Foreground {
		t.Errorf("unset fields should keep defaults")
	}
}

func TestParseBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Background: #zz\n")); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sepia.theme"), []byte("Background: #704214\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir}

	th, err := l.Load("sepia")
	if err != nil {
		t.Fatalf("load sepia: %v", err)
	}
	if th.Background != (color.RGBA{0x70, 0x42, 0x14, 255}) {
		t.Errorf("background = %+v", th.Background)
	}
	if th, err = l.Load("dark"); err != nil || th.Name != "dark" {
		t.Errorf("builtin dark: %v %v", th, err)
	}
	if th, err = l.Load(""); err != nil || th.Name != "default" {
		t.Errorf("empty name: %v %v", th, err)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Error("expected error for missing theme")
	}
}

func TestFieldsRoundTrip(t *testing.T) {
	var sb strings.Builder
	for _, kv := range Dark().Fields() {
		sb.WriteString(kv[0] + ": " + kv[1] + "\n")
	}
	th, err := Parse(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatal(err)
	}
	th.Name = "dark"
	if *th != *Dark() {
		t.Errorf("round trip mismatch:\n%+v\n%+v", th, Dark())
	}
}
