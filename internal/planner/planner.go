package planner

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/stellarlinkco/lawclerk/internal/casefile"
	"github.com/stellarlinkco/lawclerk/internal/casetype"
	"github.com/stellarlinkco/lawclerk/internal/llm"
	"github.com/stellarlinkco/lawclerk/internal/task"
)

const taskListSchema = `{
  "tasks": [
    {
      "id": "string",
      "type": "string",
      "title": "string",
      "description": "string",
      "agent_type": "string",
      "agent_name": "string",
      "priority": 1,
      "estimated_duration": 1,
      "dependencies": ["string"],
      "win_percentage": 1,
      "forms_completed": 1,
      "contacts_needed": 1,
      "steps_remaining": 1
    }
  ]
}`

type taskList struct {
	Tasks []task.Task `json:"tasks"`
}

// Plan classifies the case and produces an ordered task list. Planning
// never fails outright: when generation yields nothing usable the static
// default plan for the classified case type is substituted.
func Plan(ctx context.Context, client llm.Client, prompt string, mem casefile.Memory) ([]task.Task, casetype.CaseType) {
	ct := casetype.Classify(ctx, client, prompt)

	var sb strings.Builder
	sb.WriteString("Analyze this legal case and create a detailed execution plan:\n\n")
	fmt.Fprintf(&sb, "User Request: %s\n", prompt)
	fmt.Fprintf(&sb, "Case Type: %s\n", ct)
	fmt.Fprintf(&sb, "Past Cases: %d\n", len(mem.PastCases))
	fmt.Fprintf(&sb, "User Jurisdiction: %s\n\n", mem.Jurisdiction())
	sb.WriteString("Create a plan with these task types:\n")
	for i, tt := range task.AllTypes() {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, tt)
	}
	sb.WriteString(`
For each deploy_agent task, specify:
- agent_type: traffic_ticket, small_claims, landlord_tenant, etc.
- agent_name: Human readable name
- win_percentage: Estimated success rate
- forms_completed: Forms already done
- contacts_needed: People/entities to contact
- steps_remaining: Steps left after deployment`)

	var resp taskList
	if err := client.GenerateStructured(ctx, sb.String(), taskListSchema, &resp); err != nil {
		log.Printf("[planner] structured generation failed, using default plan: %v", err)
		return DefaultPlan(ct), ct
	}

	tasks := normalize(resp.Tasks)
	if len(tasks) == 0 {
		return DefaultPlan(ct), ct
	}
	return tasks, ct
}

// normalize fills in ids and dependency slices the model omitted and
// drops entries with no type at all.
func normalize(tasks []task.Task) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.TrimSpace(string(t.Type)) == "" {
			continue
		}
		if strings.TrimSpace(t.ID) == "" {
			t.ID = uuid.NewString()
		}
		if t.Dependencies == nil {
			t.Dependencies = []string{}
		}
		out = append(out, t)
	}
	return out
}

// DefaultPlan is the known-good static plan for a case type. Two canonical
// plans exist; every other case type gets the small_claims plan.
func DefaultPlan(ct casetype.CaseType) []task.Task {
	switch ct {
	case casetype.TrafficTicket:
		return []task.Task{
			{
				ID:                "analyze_ticket",
				Type:              task.TypeAnalyzeCase,
				Title:             "Analyze Traffic Ticket",
				Description:       "Review ticket details and identify potential defenses",
				Priority:          1,
				EstimatedDuration: 300,
				Dependencies:      []string{},
			},
			{
				ID:                "deploy_traffic_agent",
				Type:              task.TypeDeployAgent,
				Title:             "Deploy Traffic Ticket Agent",
				Description:       "Specialized agent for traffic violations",
				AgentType:         "traffic_ticket",
				AgentName:         "Traffic Defense Agent",
				Priority:          2,
				EstimatedDuration: 1800,
				Dependencies:      []string{"analyze_ticket"},
				WinPercentage:     75,
				FormsCompleted:    0,
				ContactsNeeded:    2,
				StepsRemaining:    4,
			},
		}
	default:
		return []task.Task{
			{
				ID:                "analyze_claim",
				Type:              task.TypeAnalyzeCase,
				Title:             "Analyze Small Claims Case",
				Description:       "Review claim details and evidence",
				Priority:          1,
				EstimatedDuration: 600,
				Dependencies:      []string{},
			},
			{
				ID:                "deploy_claims_agent",
				Type:              task.TypeDeployAgent,
				Title:             "Deploy Small Claims Agent",
				Description:       "Specialized agent for small claims court",
				AgentType:         "small_claims",
				AgentName:         "Small Claims Specialist",
				Priority:          2,
				EstimatedDuration: 2400,
				Dependencies:      []string{"analyze_claim"},
				WinPercentage:     65,
				FormsCompleted:    1,
				ContactsNeeded:    3,
				StepsRemaining:    5,
			},
		}
	}
}
