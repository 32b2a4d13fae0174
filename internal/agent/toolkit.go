package agent

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/stellarlinkco/lawclerk/internal/casefile"
	"github.com/stellarlinkco/lawclerk/internal/llm"
)

//go:embed tables.yaml
var tablesYAML []byte

const fallbackJurisdictionInfo = "General US legal principles apply."

// Form is one court form from the reference tables.
type Form struct {
	Name         string `yaml:"name" json:"name"`
	Required     bool   `yaml:"required" json:"required"`
	DeadlineDays int    `yaml:"deadline_days" json:"deadline_days"`
}

// TimelineEstimate is the expected case duration for a complexity level.
type TimelineEstimate struct {
	TotalDays  int      `yaml:"total_days" json:"total_days"`
	Milestones []string `yaml:"milestones" json:"milestones"`
}

type referenceTables struct {
	Jurisdictions map[string]string           `yaml:"jurisdictions"`
	Strategies    map[string][]string         `yaml:"strategies"`
	Timelines     map[string]TimelineEstimate `yaml:"timelines"`
	Forms         map[string][]Form           `yaml:"forms"`
}

var tables referenceTables

func init() {
	if err := yaml.Unmarshal(tablesYAML, &tables); err != nil {
		panic(fmt.Sprintf("agent: parse embedded tables.yaml: %v", err))
	}
}

// Toolkit is the shared helper every specialized agent composes: the
// jurisdiction/strategy/timeline/forms reference lookups plus LLM-backed
// fact extraction. Lookups are pure functions of the embedded tables.
type Toolkit struct {
	client llm.Client
}

func NewToolkit(client llm.Client) *Toolkit {
	return &Toolkit{client: client}
}

// JurisdictionInfo maps a jurisdiction code to its descriptive string.
// Unknown codes get the general fallback; it never returns empty.
func (t *Toolkit) JurisdictionInfo(mem casefile.Memory) string {
	if info, ok := tables.Jurisdictions[mem.Jurisdiction()]; ok {
		return info
	}
	return fallbackJurisdictionInfo
}

// ExtractKeyFacts asks the LLM for the key facts of the case. A failed
// call returns a sentinel payload carrying the error instead of
// propagating it.
func (t *Toolkit) ExtractKeyFacts(ctx context.Context, caseContext string) map[string]string {
	prompt := fmt.Sprintf(`Extract key facts from this legal case description:

%s

Identify:
1. Parties involved
2. Key dates
3. Monetary amounts
4. Legal issues
5. Desired outcomes

Return as structured information.`, caseContext)

	facts, err := t.client.Generate(ctx, prompt)
	if err != nil {
		return map[string]string{
			"extracted_facts": "Unable to extract facts",
			"error":           err.Error(),
		}
	}
	return map[string]string{"extracted_facts": facts}
}

// Strategies returns the common strategies for a case type, or the
// generic list when the type has no table entry.
func (t *Toolkit) Strategies(caseType string) []string {
	if s, ok := tables.Strategies[caseType]; ok {
		return s
	}
	return tables.Strategies["_default"]
}

// Timeline estimates case duration by complexity, defaulting to medium.
func (t *Toolkit) Timeline(complexity string) TimelineEstimate {
	if tl, ok := tables.Timelines[complexity]; ok {
		return tl
	}
	return tables.Timelines["medium"]
}

// FormsList returns the required forms for a case type, or the generic
// intake list when the type has no table entry.
func (t *Toolkit) FormsList(caseType string) []Form {
	if f, ok := tables.Forms[caseType]; ok {
		return f
	}
	return tables.Forms["_default"]
}
