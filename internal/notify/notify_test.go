package notify

import (
	"errors"
	"testing"

	"github.com/example/designboard/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func recording(n *Notifier) *[]sent {
	var out []sent
	n.WithSender(func(title, body string, opts platform.Options) error {
		out = append(out, sent{title, body, opts})
		return nil
	})
	return &out
}

func TestDisabledEventsAreSilent(t *testing.T) {
	n := New(DefaultPreferences())
	got := recording(n)
	n.Exported("board.png")
	n.ExportFailed(errors.New("disk full"))
	n.Copy("")
	if len(*got) != 0 {
		t.Fatalf("expected no notifications, got %v", *got)
	}
}

func TestEnabledEvents(t *testing.T) {
	n := New(DefaultPreferences())
	got := recording(n)
	n.Enable(EventExportFailed, true)
	n.Enable(EventCopy, true)
	n.ExportFailed(errors.New("disk full"))
	n.Copy("")
	if len(*got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(*got))
	}
	if (*got)[0].body != "Export failed: disk full" {
		t.Errorf("unexpected body %q", (*got)[0].body)
	}
	if (*got)[1].body != "Copied board to clipboard" {
		t.Errorf("unexpected body %q", (*got)[1].body)
	}
	if (*got)[0].title != "Designboard" {
		t.Errorf("unexpected title %q", (*got)[0].title)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("DESIGNBOARD_NOTIFY_TITLE", "Boards")
	t.Setenv("DESIGNBOARD_NOTIFY_EXPORT_TEXT", "Wrote %s")
	prefs := LoadPreferences()
	if prefs.Title != "Boards" {
		t.Fatalf("title = %q", prefs.Title)
	}
	if prefs.Events[EventExport].Template != "Wrote %s" {
		t.Fatalf("template = %q", prefs.Events[EventExport].Template)
	}
}

func TestNilNotifier(t *testing.T) {
	var n *Notifier
	n.Enable(EventCopy, true)
	n.Copy("x")
	n.Exported("x")
}
