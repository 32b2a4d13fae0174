package casefile

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists one Memory record per user as a JSON blob in SQLite.
// Load never fails from the caller's point of view: any problem degrades
// to a fresh default record. Save overwrites the whole record.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	s := &Store{db: db}
	if err := s.configure(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("sqlite pragma %q: %w", p, err)
		}
	}
	return nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS case_files (
		user_id TEXT PRIMARY KEY,
		record TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the user's record, or a fresh default when none exists or
// the stored blob cannot be read.
func (s *Store) Load(userID string) Memory {
	s.mu.Lock()
	defer s.mu.Unlock()

	var blob string
	err := s.db.QueryRow(`SELECT record FROM case_files WHERE user_id = ?`, userID).Scan(&blob)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("[casefile] load %s failed, using default: %v", userID, err)
		}
		return Default()
	}

	var m Memory
	if err := json.Unmarshal([]byte(blob), &m); err != nil {
		log.Printf("[casefile] corrupt record for %s, using default: %v", userID, err)
		return Default()
	}
	if m.Preferences.Jurisdiction == "" {
		m.Preferences.Jurisdiction = DefaultJurisdiction
	}
	if m.Preferences.Language == "" {
		m.Preferences.Language = DefaultLanguage
	}
	return m
}

// Save overwrites the user's whole record.
func (s *Store) Save(userID string, m Memory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	_, err = s.db.Exec(`INSERT INTO case_files (user_id, record, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		userID, string(blob), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

// CaseHistory returns the user's past cases, optionally filtered by type.
func (s *Store) CaseHistory(userID, caseType string) []CaseRecord {
	m := s.Load(userID)
	if caseType == "" {
		return m.PastCases
	}
	var out []CaseRecord
	for _, c := range m.PastCases {
		if c.Type == caseType {
			out = append(out, c)
		}
	}
	return out
}

// AddCase appends a closed case to the user's history.
func (s *Store) AddCase(userID string, rec CaseRecord) error {
	m := s.Load(userID)
	m.AppendCase(rec)
	return s.Save(userID, m)
}
