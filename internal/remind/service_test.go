package remind

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stellarlinkco/lawclerk/internal/bus"
)

func TestAddPersists(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "reminders.json")
	s := NewService(storePath, bus.NewMessageBus(10))

	r, err := s.Add("u1", "File Response", time.Now().Add(24*time.Hour), "telegram", "100")
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if r.ID == "" {
		t.Error("reminder ID should not be empty")
	}
	if r.Delivered {
		t.Error("new reminder should not be delivered")
	}

	data, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	var stored []Reminder
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(stored) != 1 || stored[0].Title != "File Response" {
		t.Errorf("stored = %+v", stored)
	}
}

func TestSweepDeliversDueReminders(t *testing.T) {
	b := bus.NewMessageBus(10)
	s := NewService(filepath.Join(t.TempDir(), "reminders.json"), b)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if _, err := s.Add("u1", "File Response", now.Add(-time.Minute), "web", "c1"); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if _, err := s.Add("u1", "Discovery Deadline", now.Add(time.Hour), "web", "c1"); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	s.sweep()

	select {
	case msg := <-b.Outbound:
		if msg.Channel != "web" || msg.ChatID != "c1" {
			t.Errorf("delivered to %s/%s, want web/c1", msg.Channel, msg.ChatID)
		}
		if !strings.Contains(msg.Content, "File Response") {
			t.Errorf("content = %q, want mention of File Response", msg.Content)
		}
	default:
		t.Fatal("due reminder not delivered")
	}

	select {
	case msg := <-b.Outbound:
		t.Fatalf("future reminder delivered early: %+v", msg)
	default:
	}

	// A second sweep must not redeliver.
	s.sweep()
	select {
	case msg := <-b.Outbound:
		t.Fatalf("reminder redelivered: %+v", msg)
	default:
	}

	var delivered, pending int
	for _, r := range s.List() {
		if r.Delivered {
			delivered++
		} else {
			pending++
		}
	}
	if delivered != 1 || pending != 1 {
		t.Errorf("delivered/pending = %d/%d, want 1/1", delivered, pending)
	}
}

func TestLoadSurvivesRestart(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "reminders.json")
	b := bus.NewMessageBus(10)

	s1 := NewService(storePath, b)
	if _, err := s1.Add("u1", "Hearing", time.Now().Add(time.Hour), "web", "c1"); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	s2 := NewService(storePath, b)
	if err := s2.load(); err != nil {
		t.Fatalf("load error: %v", err)
	}
	if len(s2.List()) != 1 {
		t.Errorf("reloaded reminders = %d, want 1", len(s2.List()))
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := NewService(filepath.Join(t.TempDir(), "nope.json"), bus.NewMessageBus(1))
	if err := s.load(); err != nil {
		t.Errorf("load of missing file should be nil, got %v", err)
	}
}
