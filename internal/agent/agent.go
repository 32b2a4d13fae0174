package agent

import (
	"context"

	"github.com/stellarlinkco/lawclerk/internal/casefile"
	"github.com/stellarlinkco/lawclerk/internal/llm"
)

// Base success-rate constants for the agent sub-analyses. These are
// illustrative reference numbers, kept as overridable configuration rather
// than derived from any model.
var (
	TrafficBaseSuccessRate        = 65
	SmallClaimsBaseSuccessRate    = 55
	LandlordTenantBaseSuccessRate = 45
)

// PlanStep is one entry in an agent's fixed action sequence.
type PlanStep struct {
	Step          int    `json:"step"`
	Action        string `json:"action"`
	Description   string `json:"description"`
	EstimatedTime string `json:"estimated_time"`
}

// ResultBundle is the structured output of an agent's Execute: one typed
// analysis payload per category plus the overall success estimate. The
// structured fields never depend on LLM output, so the bundle is
// reproducible for a given memory record.
type ResultBundle struct {
	SuccessProbability int            `json:"success_probability"`
	Analyses           map[string]any `json:"analyses"`
}

// CaseAgent is the contract every specialized agent implements. Plan may
// consult the LLM for advisory narrative, but the returned step sequence
// is fixed per variant. Execute is a pure function of the memory record
// and the reference tables. Summarize renders the bundle for the user.
type CaseAgent interface {
	Type() string
	Name() string
	Plan(ctx context.Context, caseContext string, mem casefile.Memory) []PlanStep
	Execute(ctx context.Context, plan []PlanStep, mem casefile.Memory) ResultBundle
	Summarize(results ResultBundle) string
}

// New returns the specialized agent registered for agentType. The bool is
// false when no variant exists, in which case the caller falls back to a
// generic result.
func New(agentType string, client llm.Client) (CaseAgent, bool) {
	tk := NewToolkit(client)
	switch agentType {
	case "traffic_ticket":
		return &TrafficTicketAgent{tk: tk}, true
	case "small_claims":
		return &SmallClaimsAgent{tk: tk}, true
	case "landlord_tenant":
		return &LandlordTenantAgent{tk: tk}, true
	default:
		return nil, false
	}
}
