package agent

import (
	"context"
	"fmt"
	"testing"

	"github.com/stellarlinkco/lawclerk/internal/casefile"
)

func TestJurisdictionInfo(t *testing.T) {
	tk := NewToolkit(&stubClient{})

	mem := casefile.Default()
	info := tk.JurisdictionInfo(mem)
	if info == "" || info == fallbackJurisdictionInfo {
		t.Errorf("CA info = %q, want a table entry", info)
	}

	mem.Preferences.Jurisdiction = "ZZ"
	if got := tk.JurisdictionInfo(mem); got != fallbackJurisdictionInfo {
		t.Errorf("unknown jurisdiction info = %q, want fallback", got)
	}
}

func TestExtractKeyFacts(t *testing.T) {
	tk := NewToolkit(&stubClient{reply: "Parties: A and B"})
	facts := tk.ExtractKeyFacts(context.Background(), "dispute between A and B")
	if facts["extracted_facts"] != "Parties: A and B" {
		t.Errorf("extracted_facts = %q", facts["extracted_facts"])
	}
	if _, ok := facts["error"]; ok {
		t.Error("successful extraction should not carry an error")
	}
}

func TestExtractKeyFactsFailure(t *testing.T) {
	tk := NewToolkit(&stubClient{err: fmt.Errorf("api down")})
	facts := tk.ExtractKeyFacts(context.Background(), "anything")
	if facts["extracted_facts"] != "Unable to extract facts" {
		t.Errorf("extracted_facts = %q, want sentinel", facts["extracted_facts"])
	}
	if facts["error"] == "" {
		t.Error("failed extraction should carry the error")
	}
}

func TestStrategies(t *testing.T) {
	tk := NewToolkit(&stubClient{})

	for _, ct := range []string{"traffic_ticket", "small_claims", "landlord_tenant"} {
		if len(tk.Strategies(ct)) == 0 {
			t.Errorf("Strategies(%q) is empty", ct)
		}
	}

	fallback := tk.Strategies("maritime_salvage")
	if len(fallback) == 0 {
		t.Fatal("unknown case type should get the default strategies")
	}
}

func TestTimeline(t *testing.T) {
	tk := NewToolkit(&stubClient{})

	simple := tk.Timeline("simple")
	complexTL := tk.Timeline("complex")
	if simple.TotalDays == 0 || complexTL.TotalDays == 0 {
		t.Fatal("timeline rows missing")
	}
	if simple.TotalDays >= complexTL.TotalDays {
		t.Errorf("simple (%d days) should be shorter than complex (%d days)",
			simple.TotalDays, complexTL.TotalDays)
	}

	if got := tk.Timeline("bizarre"); got.TotalDays != tk.Timeline("medium").TotalDays {
		t.Errorf("unknown complexity = %+v, want medium fallback", got)
	}
}

func TestFormsList(t *testing.T) {
	tk := NewToolkit(&stubClient{})

	forms := tk.FormsList("traffic_ticket")
	if len(forms) == 0 {
		t.Fatal("traffic forms missing")
	}

	fallback := tk.FormsList("maritime_salvage")
	if len(fallback) == 0 {
		t.Fatal("unknown case type should get the default forms")
	}
	if fallback[0].Name != "General Case Intake Form" {
		t.Errorf("default form = %q, want General Case Intake Form", fallback[0].Name)
	}
}
