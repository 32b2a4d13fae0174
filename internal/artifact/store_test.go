package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteAndList(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore error: %v", err)
	}

	art, err := store.Write("artifacts/case1/letter.txt", []byte("Dear Sir"))
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if art.Name != "letter.txt" {
		t.Errorf("name = %q, want letter.txt", art.Name)
	}
	if art.Type != "txt" {
		t.Errorf("type = %q, want txt", art.Type)
	}
	if art.Path != "artifacts/case1/letter.txt" {
		t.Errorf("path = %q", art.Path)
	}

	data, err := os.ReadFile(filepath.Join(store.Root(), "artifacts", "case1", "letter.txt"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "Dear Sir" {
		t.Errorf("content = %q, want Dear Sir", data)
	}

	if _, err := store.Write("deadlines.ics", []byte("cal")); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	arts, err := store.List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(arts) != 2 {
		t.Fatalf("len(arts) = %d, want 2", len(arts))
	}
}

func TestWriteRejectsTraversal(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore error: %v", err)
	}

	for _, p := range []string{"../escape.txt", "a/../../escape.txt", "/etc/passwd", "."} {
		if _, err := store.Write(p, []byte("x")); err == nil {
			t.Errorf("Write(%q) should fail", p)
		}
	}
}

func TestListEmpty(t *testing.T) {
	store, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore error: %v", err)
	}
	arts, err := store.List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(arts) != 0 {
		t.Errorf("len(arts) = %d, want 0", len(arts))
	}
}

func TestRenderICS(t *testing.T) {
	deadlines := []Deadline{
		{Title: "File Response", Date: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), Priority: "high"},
		{Title: "Discovery; phase 1", Date: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC), Priority: "medium"},
	}

	ics := RenderICS(deadlines)

	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n") {
		t.Error("missing VCALENDAR header")
	}
	if !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Error("missing VCALENDAR footer")
	}
	if strings.Count(ics, "BEGIN:VEVENT") != 2 {
		t.Errorf("events = %d, want 2", strings.Count(ics, "BEGIN:VEVENT"))
	}
	if !strings.Contains(ics, "SUMMARY:File Response\r\n") {
		t.Error("missing File Response summary")
	}
	if !strings.Contains(ics, "DTSTART:20260401T090000Z") {
		t.Error("missing DTSTART")
	}
	if !strings.Contains(ics, "PRIORITY:1") {
		t.Error("high priority should map to 1")
	}
	if !strings.Contains(ics, "PRIORITY:5") {
		t.Error("medium priority should map to 5")
	}
	// Semicolons in titles are escaped.
	if !strings.Contains(ics, "SUMMARY:Discovery\\; phase 1") {
		t.Error("semicolon not escaped in summary")
	}
}

func TestRenderICSEmpty(t *testing.T) {
	ics := RenderICS(nil)
	if strings.Contains(ics, "VEVENT") {
		t.Error("empty deadline list should produce no events")
	}
}
