package executor

import (
	"github.com/stellarlinkco/lawclerk/internal/agent"
	"github.com/stellarlinkco/lawclerk/internal/artifact"
)

// NextStep is one item of an agent's follow-up checklist.
type NextStep struct {
	Title       string `json:"title"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
}

// FormField describes an input the user still needs to fill.
type FormField struct {
	Label       string `json:"label"`
	Type        string `json:"type"`
	Value       string `json:"value"`
	Placeholder string `json:"placeholder"`
}

// AgentResult is the structured outcome of a deploy_agent task.
type AgentResult struct {
	AgentID   string              `json:"agent_id"`
	AgentType string              `json:"agent_type"`
	AgentName string              `json:"agent_name"`
	Plan      []agent.PlanStep    `json:"plan,omitempty"`
	Results   *agent.ResultBundle `json:"results,omitempty"`
	Summary   string              `json:"summary"`
	Artifacts []artifact.Artifact `json:"artifacts"`
	Status    string              `json:"status"`
	Progress  int                 `json:"progress"`
	NextSteps []NextStep          `json:"next_steps"`
	Fields    []FormField         `json:"form_fields,omitempty"`
}

func (r AgentResult) toOutput() map[string]any {
	return map[string]any{
		"agent_id":    r.AgentID,
		"agent_type":  r.AgentType,
		"agent_name":  r.AgentName,
		"plan":        r.Plan,
		"results":     r.Results,
		"summary":     r.Summary,
		"artifacts":   r.Artifacts,
		"status":      r.Status,
		"progress":    r.Progress,
		"next_steps":  r.NextSteps,
		"form_fields": r.Fields,
	}
}

func defaultNextSteps() []NextStep {
	return []NextStep{
		{Title: "Review generated documents", Description: "Check draft documents for accuracy"},
		{Title: "Gather additional evidence", Description: "Collect supporting documentation"},
		{Title: "Prepare for deadlines", Description: "Schedule important dates"},
	}
}

func defaultFormFields() []FormField {
	return []FormField{
		{Label: "Full Name", Type: "text", Placeholder: "Enter your full legal name"},
		{Label: "Case Details", Type: "textarea", Placeholder: "Additional case information"},
	}
}
