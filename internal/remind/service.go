package remind

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	rcron "github.com/robfig/cron/v3"

	"github.com/stellarlinkco/lawclerk/internal/bus"
)

// Reminder is a one-shot deadline notification. Delivered reminders are
// kept in the store for the status report until pruned.
type Reminder struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	AtMs      int64  `json:"at_ms"`
	Channel   string `json:"channel"`
	ChatID    string `json:"chat_id"`
	Delivered bool   `json:"delivered"`
}

// Service delivers case deadline reminders onto the message bus. Reminders
// survive restarts through a JSON file next to the rest of the storage.
type Service struct {
	storePath string
	bus       *bus.MessageBus
	mu        sync.Mutex
	reminders []Reminder
	cron      *rcron.Cron
	now       func() time.Time
}

func NewService(storePath string, b *bus.MessageBus) *Service {
	return &Service{
		storePath: storePath,
		bus:       b,
		now:       time.Now,
	}
}

func (s *Service) Start(ctx context.Context) error {
	if err := s.load(); err != nil {
		log.Printf("[remind] warning: failed to load reminders: %v", err)
	}

	s.cron = rcron.New()
	if _, err := s.cron.AddFunc("@every 1m", s.sweep); err != nil {
		return fmt.Errorf("register reminder sweep: %w", err)
	}
	s.cron.Start()
	log.Printf("[remind] started with %d pending reminders", len(s.pending()))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Service) Stop() {
	if s.cron != nil {
		stopCtx := s.cron.Stop()
		select {
		case <-stopCtx.Done():
		case <-time.After(5 * time.Second):
			log.Printf("[remind] stop timeout waiting for sweep")
		}
	}
	log.Printf("[remind] stopped")
}

// Add registers a reminder to be delivered at the given time over the
// channel and chat the case came in on.
func (s *Service) Add(userID, title string, at time.Time, channel, chatID string) (Reminder, error) {
	r := Reminder{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   title,
		AtMs:    at.UnixMilli(),
		Channel: channel,
		ChatID:  chatID,
	}

	s.mu.Lock()
	s.reminders = append(s.reminders, r)
	err := s.save()
	s.mu.Unlock()

	if err != nil {
		return Reminder{}, fmt.Errorf("save reminders: %w", err)
	}
	return r, nil
}

// List returns a copy of all reminders, delivered ones included.
func (s *Service) List() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

func (s *Service) pending() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Reminder
	for _, r := range s.reminders {
		if !r.Delivered {
			out = append(out, r)
		}
	}
	return out
}

func (s *Service) sweep() {
	now := s.now().UnixMilli()

	s.mu.Lock()
	var due []Reminder
	for i := range s.reminders {
		r := &s.reminders[i]
		if !r.Delivered && r.AtMs <= now {
			r.Delivered = true
			due = append(due, *r)
		}
	}
	if len(due) > 0 {
		_ = s.save()
	}
	s.mu.Unlock()

	for _, r := range due {
		log.Printf("[remind] delivering %q to %s/%s", r.Title, r.Channel, r.ChatID)
		s.bus.Outbound <- bus.OutboundMessage{
			Channel: r.Channel,
			ChatID:  r.ChatID,
			Content: fmt.Sprintf("Deadline reminder: %s is due %s.", r.Title,
				time.UnixMilli(r.AtMs).Format("Jan 2, 2006")),
		}
	}
}

func (s *Service) load() error {
	data, err := os.ReadFile(s.storePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &s.reminders)
}

func (s *Service) save() error {
	dir := filepath.Dir(s.storePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.reminders, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.storePath, data, 0644)
}
