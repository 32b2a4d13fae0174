package task

import "strings"

// Type is the closed set of work the executor knows how to dispatch.
type Type string

const (
	TypeAnalyzeCase       Type = "analyze_case"
	TypeDeployAgent       Type = "deploy_agent"
	TypeExtractDocuments  Type = "extract_documents"
	TypeResearchPrecedent Type = "research_precedent"
	TypeDraftDocuments    Type = "draft_documents"
	TypeSimulateOutcome   Type = "simulate_outcome"
	TypeScheduleDeadlines Type = "schedule_deadlines"
)

// AllTypes lists every dispatchable task type, in planning-prompt order.
func AllTypes() []Type {
	return []Type{
		TypeAnalyzeCase,
		TypeDeployAgent,
		TypeExtractDocuments,
		TypeResearchPrecedent,
		TypeDraftDocuments,
		TypeSimulateOutcome,
		TypeScheduleDeadlines,
	}
}

// ParseType normalizes a free-form type tag. The bool reports whether the
// tag is a known type; unknown tags are returned as-is so the executor can
// record them in its skipped result.
func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllTypes() {
		if t == known {
			return t, true
		}
	}
	return t, false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Task is one planned unit of work. The planner creates it; the executor
// stamps Status/Output/Progress/Error in place. Tasks live for a single
// request and are never persisted.
type Task struct {
	ID                string   `json:"id"`
	Type              Type     `json:"type"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Priority          int      `json:"priority"`
	EstimatedDuration int      `json:"estimated_duration"`
	Dependencies      []string `json:"dependencies"`

	// deploy_agent fields.
	AgentType      string `json:"agent_type,omitempty"`
	AgentName      string `json:"agent_name,omitempty"`
	WinPercentage  int    `json:"win_percentage,omitempty"`
	FormsCompleted int    `json:"forms_completed,omitempty"`
	ContactsNeeded int    `json:"contacts_needed,omitempty"`
	StepsRemaining int    `json:"steps_remaining,omitempty"`

	// Execution state, written by the executor.
	Status   Status         `json:"status,omitempty"`
	Progress int            `json:"progress"`
	Output   map[string]any `json:"output,omitempty"`
	Error    string         `json:"error,omitempty"`
}
