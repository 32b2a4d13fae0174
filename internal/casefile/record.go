package casefile

import (
	"time"

	"github.com/stellarlinkco/lawclerk/internal/task"
)

const (
	DefaultJurisdiction = "CA"
	DefaultLanguage     = "plain_english"
)

// Conversation is one intake turn: the user's prompt plus references to
// any files they attached.
type Conversation struct {
	Prompt    string    `json:"prompt"`
	Files     []string  `json:"files,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CaseRecord is the outcome of a past case, kept for similarity matching.
type CaseRecord struct {
	Type           string    `json:"type"`
	Description    string    `json:"description"`
	Outcome        string    `json:"outcome,omitempty"`
	WinProbability int       `json:"win_probability,omitempty"`
	ClosedAt       time.Time `json:"closed_at,omitempty"`
}

// SavedPlan caches a plan that ran to completion so future planning can
// reference it.
type SavedPlan struct {
	CaseType string      `json:"case_type"`
	Tasks    []task.Task `json:"tasks"`
	SavedAt  time.Time   `json:"saved_at"`
}

type Preferences struct {
	Jurisdiction string `json:"jurisdiction"`
	Language     string `json:"language"`
}

// Memory is the whole per-user record. The store owns it; the pipeline
// receives a copy for one request and hands back a possibly-mutated copy
// for persistence.
type Memory struct {
	Conversations []Conversation `json:"conversations"`
	PastCases     []CaseRecord   `json:"past_cases"`
	BestPlans     []SavedPlan    `json:"best_plans"`
	Preferences   Preferences    `json:"preferences"`
}

// Default returns a fresh record with empty histories and the stock
// preferences.
func Default() Memory {
	return Memory{
		Conversations: []Conversation{},
		PastCases:     []CaseRecord{},
		BestPlans:     []SavedPlan{},
		Preferences: Preferences{
			Jurisdiction: DefaultJurisdiction,
			Language:     DefaultLanguage,
		},
	}
}

// Jurisdiction returns the preference, falling back to the default when
// the record carries none.
func (m Memory) Jurisdiction() string {
	if m.Preferences.Jurisdiction == "" {
		return DefaultJurisdiction
	}
	return m.Preferences.Jurisdiction
}

// LatestPrompt returns the most recent conversation prompt, or "" when the
// record has no conversations yet.
func (m Memory) LatestPrompt() string {
	if len(m.Conversations) == 0 {
		return ""
	}
	return m.Conversations[len(m.Conversations)-1].Prompt
}

// AppendConversation records an intake turn.
func (m *Memory) AppendConversation(prompt string, files []string, at time.Time) {
	m.Conversations = append(m.Conversations, Conversation{
		Prompt:    prompt,
		Files:     files,
		Timestamp: at,
	})
}

// AppendCase records a closed case outcome.
func (m *Memory) AppendCase(rec CaseRecord) {
	m.PastCases = append(m.PastCases, rec)
}
