package gateway

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stellarlinkco/lawclerk/internal/config"
	"github.com/stellarlinkco/lawclerk/internal/llm"
	"github.com/stellarlinkco/lawclerk/internal/task"
)

// stubLLM classifies every case as classifyReply and fails structured
// planning, which drives the pipeline down the default-plan path.
type stubLLM struct {
	classifyReply string
}

func (s *stubLLM) Generate(ctx context.Context, prompt string) (string, error) {
	return s.classifyReply, nil
}

func (s *stubLLM) GenerateStructured(ctx context.Context, prompt, schemaHint string, out any) error {
	return fmt.Errorf("structured generation unavailable")
}

func newTestGateway(t *testing.T, client llm.Client) *Gateway {
	t.Helper()

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Storage.Dir = dir
	cfg.Storage.DBPath = filepath.Join(dir, "casefiles.db")
	cfg.Channels.Web.Enabled = false
	cfg.Channels.Telegram.Enabled = false

	gw, err := NewWithOptions(cfg, Options{
		LLMFactory: func(cfg *config.Config) llm.Client { return client },
	})
	if err != nil {
		t.Fatalf("NewWithOptions error: %v", err)
	}
	t.Cleanup(func() { gw.Shutdown() })
	return gw
}

func TestRunCase(t *testing.T) {
	gw := newTestGateway(t, &stubLLM{classifyReply: "landlord_tenant"})

	resp, err := gw.RunCase(context.Background(), "u1", "my landlord kept my deposit", nil, "cli", "u1")
	if err != nil {
		t.Fatalf("RunCase error: %v", err)
	}

	if resp.Summary != responseSummary {
		t.Errorf("summary = %q", resp.Summary)
	}
	if len(resp.Timeline) != 2 {
		t.Fatalf("timeline steps = %d, want 2 (default plan)", len(resp.Timeline))
	}
	if resp.Timeline[0].ID != "step_0" {
		t.Errorf("timeline[0].ID = %q, want step_0", resp.Timeline[0].ID)
	}
	for i, step := range resp.Timeline {
		if step.Status != string(task.StatusCompleted) {
			t.Errorf("timeline[%d].Status = %q, want completed", i, step.Status)
		}
	}

	if len(resp.Agents) != 1 {
		t.Fatalf("agents = %d, want 1", len(resp.Agents))
	}
	agent := resp.Agents[0]
	if agent.Type != "small_claims" {
		t.Errorf("agent type = %q, want small_claims (default plan)", agent.Type)
	}
	if agent.Status != "deployed" {
		t.Errorf("agent status = %q, want deployed", agent.Status)
	}
	if agent.WinPercentage != 65 {
		t.Errorf("win percentage = %d, want 65", agent.WinPercentage)
	}
	if agent.Summary == "" {
		t.Error("agent summary should not be empty")
	}

	if len(resp.Artifacts) == 0 {
		t.Error("artifacts should include the generated agent document")
	}
}

func TestRunCasePersistsMemory(t *testing.T) {
	gw := newTestGateway(t, &stubLLM{classifyReply: "traffic_ticket"})

	if _, err := gw.RunCase(context.Background(), "u1", "I got a speeding ticket", []string{"ticket.pdf"}, "cli", "u1"); err != nil {
		t.Fatalf("RunCase error: %v", err)
	}

	mem := gw.cases.Load("u1")
	if mem.LatestPrompt() != "I got a speeding ticket" {
		t.Errorf("latest prompt = %q", mem.LatestPrompt())
	}
	if len(mem.PastCases) != 1 {
		t.Fatalf("past cases = %d, want 1", len(mem.PastCases))
	}
	rec := mem.PastCases[0]
	if rec.Type != "traffic_ticket" {
		t.Errorf("case type = %q, want traffic_ticket", rec.Type)
	}
	if rec.WinProbability != 75 {
		t.Errorf("win probability = %d, want 75 (default traffic plan)", rec.WinProbability)
	}
	if len(mem.BestPlans) != 1 {
		t.Errorf("best plans = %d, want 1 (clean run)", len(mem.BestPlans))
	}

	// A second case accumulates history.
	if _, err := gw.RunCase(context.Background(), "u1", "another ticket", nil, "cli", "u1"); err != nil {
		t.Fatalf("RunCase error: %v", err)
	}
	mem = gw.cases.Load("u1")
	if len(mem.Conversations) != 2 || len(mem.PastCases) != 2 {
		t.Errorf("conversations/cases = %d/%d, want 2/2", len(mem.Conversations), len(mem.PastCases))
	}
}

func TestRunCaseEmptyPrompt(t *testing.T) {
	gw := newTestGateway(t, &stubLLM{classifyReply: "general_legal"})

	if _, err := gw.RunCase(context.Background(), "u1", "   ", nil, "cli", "u1"); err == nil {
		t.Fatal("empty prompt should be an error")
	}
}

func TestResponseText(t *testing.T) {
	gw := newTestGateway(t, &stubLLM{classifyReply: "traffic_ticket"})

	resp, err := gw.RunCase(context.Background(), "u1", "speeding ticket", nil, "cli", "u1")
	if err != nil {
		t.Fatalf("RunCase error: %v", err)
	}

	text := resp.Text()
	if !strings.Contains(text, responseSummary) {
		t.Error("text should open with the summary")
	}
	if !strings.Contains(text, "Traffic Defense Agent") {
		t.Errorf("text should mention the deployed agent: %s", text)
	}
	if !strings.Contains(text, "Documents prepared:") {
		t.Error("text should list prepared documents")
	}
}
