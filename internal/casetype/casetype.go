package casetype

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/stellarlinkco/lawclerk/internal/llm"
)

// CaseType is one label from the closed case taxonomy.
type CaseType string

const (
	TrafficTicket   CaseType = "traffic_ticket"
	SmallClaims     CaseType = "small_claims"
	LandlordTenant  CaseType = "landlord_tenant"
	ContractDispute CaseType = "contract_dispute"
	Employment      CaseType = "employment"
	PersonalInjury  CaseType = "personal_injury"
	FamilyLaw       CaseType = "family_law"
	Immigration     CaseType = "immigration"
	CriminalDefense CaseType = "criminal_defense"
	GeneralLegal    CaseType = "general_legal"
)

// All lists every valid case type, in classification-prompt order.
func All() []CaseType {
	return []CaseType{
		TrafficTicket, SmallClaims, LandlordTenant, ContractDispute,
		Employment, PersonalInjury, FamilyLaw, Immigration,
		CriminalDefense, GeneralLegal,
	}
}

// Valid reports whether s is a member of the taxonomy.
func Valid(s string) bool {
	for _, ct := range All() {
		if CaseType(s) == ct {
			return true
		}
	}
	return false
}

// Classify maps a free-text case description to a case type. It never
// fails: an unrecognized label or a generation error both degrade to
// GeneralLegal. There is no retry.
func Classify(ctx context.Context, client llm.Client, text string) CaseType {
	var sb strings.Builder
	sb.WriteString("Analyze this legal request and determine the case type:\n\n")
	fmt.Fprintf(&sb, "%q\n\n", text)
	sb.WriteString("Choose the most appropriate case type from:\n")
	for _, ct := range All() {
		fmt.Fprintf(&sb, "- %s\n", ct)
	}
	sb.WriteString("\nReturn just the case type, nothing else.")

	reply, err := client.Generate(ctx, sb.String())
	if err != nil {
		log.Printf("[classifier] generate failed, using %s: %v", GeneralLegal, err)
		return GeneralLegal
	}

	label := strings.ToLower(strings.TrimSpace(reply))
	if !Valid(label) {
		return GeneralLegal
	}
	return CaseType(label)
}
