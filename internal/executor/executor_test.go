package executor

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stellarlinkco/lawclerk/internal/artifact"
	"github.com/stellarlinkco/lawclerk/internal/casefile"
	"github.com/stellarlinkco/lawclerk/internal/task"
)

type stubClient struct {
	reply string
	err   error
}

func (s *stubClient) Generate(ctx context.Context, prompt string) (string, error) {
	return s.reply, s.err
}

func (s *stubClient) GenerateStructured(ctx context.Context, prompt, schemaHint string, out any) error {
	return s.err
}

func newTestStore(t *testing.T) artifact.Store {
	t.Helper()
	store, err := artifact.NewDirStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDirStore error: %v", err)
	}
	return store
}

func TestExecuteFailureIsolation(t *testing.T) {
	// Generate fails, so analyze_case fails while simulate_outcome and the
	// unknown type (which is skipped, not failed) still complete.
	client := &stubClient{err: fmt.Errorf("api down")}
	e := New(client, newTestStore(t))

	tasks := []task.Task{
		{ID: "a1", Type: task.TypeAnalyzeCase, Title: "Analyze"},
		{ID: "s1", Type: task.TypeSimulateOutcome, Title: "Simulate"},
		{ID: "u1", Type: task.Type("banana"), Title: "Mystery"},
	}

	rep := e.Execute(context.Background(), tasks, casefile.Default())

	if len(rep.CompletedTasks) != 2 {
		t.Errorf("completed = %d, want 2", len(rep.CompletedTasks))
	}
	if len(rep.FailedTasks) != 1 {
		t.Fatalf("failed = %d, want 1", len(rep.FailedTasks))
	}

	failed := rep.FailedTasks[0]
	if failed.ID != "a1" {
		t.Errorf("failed task = %q, want a1", failed.ID)
	}
	if failed.Status != task.StatusError {
		t.Errorf("failed status = %q, want error", failed.Status)
	}
	if failed.Error == "" {
		t.Error("failed task should carry an error message")
	}
	if failed.Progress != 0 {
		t.Errorf("failed progress = %d, want 0", failed.Progress)
	}

	// The input slice is stamped in place, preserving order.
	if tasks[0].Status != task.StatusError {
		t.Errorf("tasks[0].Status = %q, want error", tasks[0].Status)
	}
	if tasks[1].Status != task.StatusCompleted {
		t.Errorf("tasks[1].Status = %q, want completed", tasks[1].Status)
	}
	if tasks[1].Progress != 100 {
		t.Errorf("tasks[1].Progress = %d, want 100", tasks[1].Progress)
	}
}

func TestExecuteUnknownTypeSkipped(t *testing.T) {
	e := New(&stubClient{reply: "ok"}, newTestStore(t))

	tasks := []task.Task{{ID: "x", Type: task.Type("not_a_thing")}}
	rep := e.Execute(context.Background(), tasks, casefile.Default())

	if len(rep.CompletedTasks) != 1 {
		t.Fatalf("completed = %d, want 1", len(rep.CompletedTasks))
	}
	out := rep.CompletedTasks[0].Output
	if out["status"] != "skipped" {
		t.Errorf("output status = %v, want skipped", out["status"])
	}
	if out["result"] != "Unknown task type" {
		t.Errorf("output result = %v, want Unknown task type", out["result"])
	}
}

func TestExecuteDeployKnownAgent(t *testing.T) {
	client := &stubClient{reply: "Generated document text"}
	e := New(client, newTestStore(t))

	tasks := []task.Task{{
		ID:        "d1",
		Type:      task.TypeDeployAgent,
		AgentType: "traffic_ticket",
		AgentName: "Traffic Defense Agent",
	}}

	rep := e.Execute(context.Background(), tasks, casefile.Default())

	if len(rep.DeployedAgents) != 1 {
		t.Fatalf("deployed agents = %d, want 1", len(rep.DeployedAgents))
	}
	ar := rep.DeployedAgents[0]
	if ar.Status != "deployed" {
		t.Errorf("status = %q, want deployed", ar.Status)
	}
	if ar.AgentName != "Traffic Defense Agent" {
		t.Errorf("agent name = %q, want Traffic Defense Agent", ar.AgentName)
	}
	if len(ar.Plan) == 0 {
		t.Error("agent plan should not be empty")
	}
	if ar.Summary == "" {
		t.Error("agent summary should not be empty")
	}
	if len(rep.GeneratedArtifacts) != 1 {
		t.Fatalf("artifacts = %d, want 1", len(rep.GeneratedArtifacts))
	}
	if !strings.HasSuffix(rep.GeneratedArtifacts[0].Name, "_document.txt") {
		t.Errorf("artifact name = %q, want *_document.txt", rep.GeneratedArtifacts[0].Name)
	}
}

func TestExecuteDeployUnknownAgentType(t *testing.T) {
	e := New(&stubClient{reply: "text"}, newTestStore(t))

	tasks := []task.Task{{ID: "d2", Type: task.TypeDeployAgent, AgentType: "maritime_salvage"}}
	rep := e.Execute(context.Background(), tasks, casefile.Default())

	if len(rep.FailedTasks) != 0 {
		t.Fatalf("failed = %d, want 0", len(rep.FailedTasks))
	}
	if len(rep.DeployedAgents) != 1 {
		t.Fatalf("deployed agents = %d, want 1", len(rep.DeployedAgents))
	}
	ar := rep.DeployedAgents[0]
	if ar.Status != "running" {
		t.Errorf("status = %q, want running", ar.Status)
	}
	if ar.AgentName != "Legal Assistant" {
		t.Errorf("agent name = %q, want Legal Assistant", ar.AgentName)
	}
}

type fakeScheduler struct {
	titles []string
	userID string
}

func (f *fakeScheduler) ScheduleDeadline(userID, title string, at time.Time) {
	f.userID = userID
	f.titles = append(f.titles, title)
}

func TestExecuteScheduleDeadlines(t *testing.T) {
	sched := &fakeScheduler{}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e := New(&stubClient{reply: "text"}, newTestStore(t),
		WithScheduler(sched, "user-1"),
		WithClock(func() time.Time { return now }))

	tasks := []task.Task{{ID: "sd", Type: task.TypeScheduleDeadlines}}
	rep := e.Execute(context.Background(), tasks, casefile.Default())

	if len(rep.CompletedTasks) != 1 {
		t.Fatalf("completed = %d, want 1", len(rep.CompletedTasks))
	}
	if sched.userID != "user-1" {
		t.Errorf("scheduler user = %q, want user-1", sched.userID)
	}
	if len(sched.titles) != 2 {
		t.Fatalf("scheduled = %d, want 2", len(sched.titles))
	}
	if sched.titles[0] != "File Response" || sched.titles[1] != "Discovery Deadline" {
		t.Errorf("titles = %v", sched.titles)
	}

	out := rep.CompletedTasks[0].Output
	if out["reminders_set"] != 2 {
		t.Errorf("reminders_set = %v, want 2", out["reminders_set"])
	}
	if len(rep.GeneratedArtifacts) != 1 {
		t.Fatalf("artifacts = %d, want 1", len(rep.GeneratedArtifacts))
	}
	if rep.GeneratedArtifacts[0].Name != "case_deadlines.ics" {
		t.Errorf("artifact = %q, want case_deadlines.ics", rep.GeneratedArtifacts[0].Name)
	}
}

func TestExecuteSimulateOutcome(t *testing.T) {
	e := New(&stubClient{}, newTestStore(t))

	mem := casefile.Default()
	mem.Conversations = []casefile.Conversation{{Prompt: "I got a traffic ticket"}}

	tasks := []task.Task{{ID: "sim", Type: task.TypeSimulateOutcome}}
	rep := e.Execute(context.Background(), tasks, mem)

	if len(rep.CompletedTasks) != 1 {
		t.Fatalf("completed = %d, want 1", len(rep.CompletedTasks))
	}
	out := rep.CompletedTasks[0].Output
	wp, ok := out["win_probability"].(int)
	if !ok {
		t.Fatalf("win_probability missing from output %v", out)
	}
	if wp < 20 || wp > 90 {
		t.Errorf("win probability = %d, want in [20, 90]", wp)
	}
	if out["best_strategy"] == "" {
		t.Error("best_strategy should not be empty")
	}
}
