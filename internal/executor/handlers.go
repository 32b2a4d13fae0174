package executor

import (
	"context"
	"fmt"
	"path"

	"github.com/stellarlinkco/lawclerk/internal/agent"
	"github.com/stellarlinkco/lawclerk/internal/artifact"
	"github.com/stellarlinkco/lawclerk/internal/casefile"
	"github.com/stellarlinkco/lawclerk/internal/simulator"
	"github.com/stellarlinkco/lawclerk/internal/task"
)

func (e *Executor) analyzeCase(ctx context.Context, t *task.Task, mem casefile.Memory, rep *Report) (map[string]any, error) {
	prompt := fmt.Sprintf(`Perform a detailed legal case analysis:

Case Description: %s
Jurisdiction: %s

Provide analysis including:
1. Legal issues identified
2. Potential claims or defenses
3. Required evidence
4. Estimated timeline
5. Success probability`, mem.LatestPrompt(), mem.Jurisdiction())

	analysis, err := e.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("case analysis: %w", err)
	}

	return map[string]any{
		"analysis":            analysis,
		"legal_issues":        []string{"Issue 1", "Issue 2"},
		"success_probability": 70,
		"timeline_estimate":   "2-4 weeks",
	}, nil
}

func (e *Executor) deployAgent(ctx context.Context, t *task.Task, mem casefile.Memory, rep *Report) (map[string]any, error) {
	ag, ok := agent.New(t.AgentType, e.client)
	if !ok {
		result := e.genericAgentResult(t)
		rep.DeployedAgents = append(rep.DeployedAgents, result)
		return result.toOutput(), nil
	}

	caseContext := mem.LatestPrompt()

	plan := ag.Plan(ctx, caseContext, mem)
	results := ag.Execute(ctx, plan, mem)
	summary := ag.Summarize(results)

	artifacts, err := e.generateAgentArtifacts(ctx, t.ID, t.AgentType, caseContext)
	if err != nil {
		return nil, err
	}
	rep.GeneratedArtifacts = append(rep.GeneratedArtifacts, artifacts...)

	agentName := t.AgentName
	if agentName == "" {
		agentName = ag.Name()
	}

	result := AgentResult{
		AgentID:   t.ID,
		AgentType: t.AgentType,
		AgentName: agentName,
		Plan:      plan,
		Results:   &results,
		Summary:   summary,
		Artifacts: artifacts,
		Status:    "deployed",
		Progress:  25,
		NextSteps: defaultNextSteps(),
		Fields:    defaultFormFields(),
	}
	rep.DeployedAgents = append(rep.DeployedAgents, result)
	return result.toOutput(), nil
}

// genericAgentResult covers agent types with no registered variant.
func (e *Executor) genericAgentResult(t *task.Task) AgentResult {
	agentType := t.AgentType
	if agentType == "" {
		agentType = "general"
	}
	agentName := t.AgentName
	if agentName == "" {
		agentName = "Legal Assistant"
	}
	return AgentResult{
		AgentID:   t.ID,
		AgentType: agentType,
		AgentName: agentName,
		Summary:   "I'm analyzing your case and preparing recommendations. This may take a few minutes.",
		Status:    "running",
		Progress:  25,
		Artifacts: []artifact.Artifact{},
		NextSteps: []NextStep{
			{Title: "Complete case analysis", Description: "Analyzing legal documents and case details"},
			{Title: "Research precedents", Description: "Finding similar cases and outcomes"},
			{Title: "Draft initial documents", Description: "Preparing legal forms and letters"},
		},
	}
}

func (e *Executor) generateAgentArtifacts(ctx context.Context, taskID, agentType, caseContext string) ([]artifact.Artifact, error) {
	prompt := fmt.Sprintf(`Create a brief legal document template for a %s case:

Case Context: %s

Make it professional but concise (under 500 words).`, agentType, caseContext)

	content, err := e.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate agent document: %w", err)
	}

	name := fmt.Sprintf("%s_document.txt", agentType)
	art, err := e.store.Write(path.Join("artifacts", taskID, name), []byte(content))
	if err != nil {
		return nil, err
	}
	art.Description = fmt.Sprintf("Generated legal document for %s case", agentType)
	return []artifact.Artifact{art}, nil
}

func (e *Executor) extractDocuments(ctx context.Context, t *task.Task, mem casefile.Memory, rep *Report) (map[string]any, error) {
	stored, err := e.store.List()
	if err != nil {
		return nil, fmt.Errorf("enumerate documents: %w", err)
	}

	processed := make([]map[string]any, 0, len(stored))
	for _, a := range stored {
		processed = append(processed, map[string]any{
			"name": a.Name,
			"type": a.Type,
			"path": a.Path,
		})
	}

	return map[string]any{
		"processed_files":    processed,
		"extracted_entities": []string{"Date: 2024-01-01", "Amount: $500"},
		"key_information":    "Important case details extracted from documents",
	}, nil
}

func (e *Executor) researchPrecedent(ctx context.Context, t *task.Task, mem casefile.Memory, rep *Report) (map[string]any, error) {
	stats := simulator.OutcomeStatistics(t.AgentType, mem.Jurisdiction())

	return map[string]any{
		"precedents_found": []map[string]any{
			{"case": "Smith v. Jones", "relevance": 0.85, "outcome": "favorable"},
			{"case": "Doe v. Company", "relevance": 0.72, "outcome": "mixed"},
		},
		"legal_principles":   []string{"Principle 1", "Principle 2"},
		"outcome_statistics": stats,
		"recommendations":    "Based on precedent research, consider these strategies...",
	}, nil
}

func (e *Executor) draftDocuments(ctx context.Context, t *task.Task, mem casefile.Memory, rep *Report) (map[string]any, error) {
	prompt := fmt.Sprintf(`Draft a legal document for this case:

Case: %s
Document Type: General Legal Letter
Jurisdiction: %s

Create a professional legal document with proper formatting.`, mem.LatestPrompt(), mem.Jurisdiction())

	content, err := e.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("draft document: %w", err)
	}

	docName := fmt.Sprintf("draft_%s.txt", t.ID)
	art, err := e.store.Write(path.Join("artifacts", docName), []byte(content))
	if err != nil {
		return nil, err
	}
	rep.GeneratedArtifacts = append(rep.GeneratedArtifacts, art)

	preview := content
	if len(preview) > 200 {
		preview = preview[:200] + "..."
	}

	return map[string]any{
		"document_name":   docName,
		"document_path":   art.Path,
		"content_preview": preview,
	}, nil
}

func (e *Executor) simulateOutcome(ctx context.Context, t *task.Task, mem casefile.Memory, rep *Report) (map[string]any, error) {
	outcome := simulator.Simulate(mem.LatestPrompt(), mem)

	return map[string]any{
		"win_probability":    outcome.WinProbability,
		"best_strategy":      outcome.BestStrategy,
		"risk_factors":       outcome.RiskFactors,
		"estimated_duration": outcome.EstimatedDuration,
		"confidence_level":   outcome.ConfidenceLevel,
		"similar_cases":      outcome.SimilarCases,
	}, nil
}

func (e *Executor) scheduleDeadlines(ctx context.Context, t *task.Task, mem casefile.Memory, rep *Report) (map[string]any, error) {
	now := e.now()
	deadlines := []artifact.Deadline{
		{Title: "File Response", Date: now.AddDate(0, 0, 30), Priority: "high"},
		{Title: "Discovery Deadline", Date: now.AddDate(0, 0, 60), Priority: "medium"},
	}

	art, err := e.store.Write(path.Join("artifacts", "case_deadlines.ics"), []byte(artifact.RenderICS(deadlines)))
	if err != nil {
		return nil, err
	}
	rep.GeneratedArtifacts = append(rep.GeneratedArtifacts, art)

	if e.scheduler != nil {
		for _, d := range deadlines {
			e.scheduler.ScheduleDeadline(e.userID, d.Title, d.Date)
		}
	}

	return map[string]any{
		"deadlines":     deadlines,
		"calendar_file": art.Path,
		"reminders_set": len(deadlines),
	}, nil
}
