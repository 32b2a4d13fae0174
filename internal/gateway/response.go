package gateway

import (
	"fmt"
	"strings"

	"github.com/stellarlinkco/lawclerk/internal/artifact"
	"github.com/stellarlinkco/lawclerk/internal/executor"
	"github.com/stellarlinkco/lawclerk/internal/task"
)

const responseSummary = "I've analyzed your legal case and deployed specialized agents to assist you. Review the agent results and timeline for detailed progress."

// AgentView is the client-facing shape of one deployed agent.
type AgentView struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Type           string               `json:"type"`
	Status         string               `json:"status"`
	Progress       int                  `json:"progress"`
	WinPercentage  int                  `json:"winPercentage"`
	StepsRemaining int                  `json:"stepsRemaining"`
	FormsCompleted int                  `json:"formsCompleted"`
	ContactsNeeded int                  `json:"contactsNeeded"`
	Summary        string               `json:"summary"`
	LastUpdate     string               `json:"lastUpdate"`
	Artifacts      []artifact.Artifact  `json:"artifacts"`
	FormFields     []executor.FormField `json:"formFields"`
	NextSteps      []executor.NextStep  `json:"nextSteps"`
}

// TimelineStep is one pipeline task as shown to the client.
type TimelineStep struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        string         `json:"type"`
	Status      string         `json:"status"`
	Agent       string         `json:"agent"`
	Progress    int            `json:"progress"`
	Output      map[string]any `json:"output"`
	Error       string         `json:"error,omitempty"`
}

// Response is the full result of one case run.
type Response struct {
	Agents    []AgentView         `json:"agents"`
	Timeline  []TimelineStep      `json:"timeline"`
	Artifacts []artifact.Artifact `json:"artifacts"`
	Summary   string              `json:"summary"`
}

// Text renders the response as a chat reply for conversational channels.
func (r *Response) Text() string {
	var sb strings.Builder
	sb.WriteString(r.Summary)
	for _, a := range r.Agents {
		sb.WriteString(fmt.Sprintf("\n\n**%s**\n%s", a.Name, a.Summary))
	}
	if len(r.Artifacts) > 0 {
		sb.WriteString("\n\nDocuments prepared:")
		for _, art := range r.Artifacts {
			sb.WriteString("\n- " + art.Name)
		}
	}
	return sb.String()
}

// buildResponse shapes the executed tasks and report into the API payload.
func (g *Gateway) buildResponse(tasks []task.Task, rep executor.Report) *Response {
	resp := &Response{
		Agents:   []AgentView{},
		Timeline: []TimelineStep{},
		Summary:  responseSummary,
	}

	deployed := make(map[string]executor.AgentResult, len(rep.DeployedAgents))
	for _, ar := range rep.DeployedAgents {
		deployed[ar.AgentID] = ar
	}

	for _, t := range tasks {
		if t.Type != task.TypeDeployAgent {
			continue
		}

		view := AgentView{
			ID:             t.ID,
			Name:           t.AgentName,
			Type:           t.AgentType,
			Status:         "running",
			Progress:       25,
			WinPercentage:  t.WinPercentage,
			StepsRemaining: t.StepsRemaining,
			FormsCompleted: t.FormsCompleted,
			ContactsNeeded: t.ContactsNeeded,
			Summary:        "Analyzing your case and preparing documents...",
			LastUpdate:     "Working on document analysis...",
			Artifacts:      []artifact.Artifact{},
		}
		if view.Name == "" {
			view.Name = "Legal Agent"
		}
		if view.Type == "" {
			view.Type = "general"
		}
		if view.WinPercentage == 0 {
			view.WinPercentage = 65
		}
		if view.StepsRemaining == 0 {
			view.StepsRemaining = 3
		}
		if view.FormsCompleted == 0 {
			view.FormsCompleted = 1
		}
		if view.ContactsNeeded == 0 {
			view.ContactsNeeded = 2
		}

		if ar, ok := deployed[t.ID]; ok {
			view.Name = ar.AgentName
			view.Type = ar.AgentType
			view.Status = ar.Status
			view.Progress = ar.Progress
			view.Summary = ar.Summary
			view.Artifacts = ar.Artifacts
			view.FormFields = ar.Fields
			view.NextSteps = ar.NextSteps
		}

		resp.Agents = append(resp.Agents, view)
	}

	for i, t := range tasks {
		step := TimelineStep{
			ID:          fmt.Sprintf("step_%d", i),
			Title:       t.Title,
			Description: t.Description,
			Type:        string(t.Type),
			Status:      string(t.Status),
			Agent:       "Master Agent",
			Progress:    t.Progress,
			Output:      t.Output,
			Error:       t.Error,
		}
		if step.Title == "" {
			step.Title = fmt.Sprintf("Step %d", i+1)
		}
		if step.Description == "" {
			step.Description = "Processing..."
		}
		resp.Timeline = append(resp.Timeline, step)
	}

	arts, err := g.artifacts.List()
	if err != nil {
		arts = rep.GeneratedArtifacts
	}
	if arts == nil {
		arts = []artifact.Artifact{}
	}
	resp.Artifacts = arts

	return resp
}
