package executor

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/stellarlinkco/lawclerk/internal/artifact"
	"github.com/stellarlinkco/lawclerk/internal/casefile"
	"github.com/stellarlinkco/lawclerk/internal/llm"
	"github.com/stellarlinkco/lawclerk/internal/task"
)

// DeadlineScheduler receives deadlines produced by schedule_deadlines
// tasks, for reminder delivery outside the request cycle. May be nil.
type DeadlineScheduler interface {
	ScheduleDeadline(userID, title string, at time.Time)
}

// Handler executes one task type. The returned map becomes the task's
// output. Handlers may append artifacts and agent results to the report.
type Handler func(ctx context.Context, t *task.Task, mem casefile.Memory, rep *Report) (map[string]any, error)

// Report aggregates one execution batch. Completed and failed tasks keep
// their original relative order.
type Report struct {
	CompletedTasks     []task.Task         `json:"completed_tasks"`
	FailedTasks        []task.Task         `json:"failed_tasks"`
	GeneratedArtifacts []artifact.Artifact `json:"generated_artifacts"`
	DeployedAgents     []AgentResult       `json:"deployed_agents"`
}

// Executor dispatches planned tasks to type handlers, one at a time, in
// plan order. Task dependencies are advisory metadata only; there is no
// reordering and no concurrency.
type Executor struct {
	client    llm.Client
	store     artifact.Store
	scheduler DeadlineScheduler
	userID    string
	handlers  map[task.Type]Handler
	now       func() time.Time
}

type Option func(*Executor)

// WithScheduler wires deadline reminders for the given user.
func WithScheduler(s DeadlineScheduler, userID string) Option {
	return func(e *Executor) {
		e.scheduler = s
		e.userID = userID
	}
}

// WithClock overrides the time source, for deterministic deadline tests.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) { e.now = now }
}

func New(client llm.Client, store artifact.Store, opts ...Option) *Executor {
	e := &Executor{
		client: client,
		store:  store,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.handlers = map[task.Type]Handler{
		task.TypeAnalyzeCase:       e.analyzeCase,
		task.TypeDeployAgent:       e.deployAgent,
		task.TypeExtractDocuments:  e.extractDocuments,
		task.TypeResearchPrecedent: e.researchPrecedent,
		task.TypeDraftDocuments:    e.draftDocuments,
		task.TypeSimulateOutcome:   e.simulateOutcome,
		task.TypeScheduleDeadlines: e.scheduleDeadlines,
	}
	return e
}

// Execute runs every task. One failing task never aborts the batch: it is
// stamped error and recorded, and execution moves on. Tasks are mutated in
// place and the report carries them post-stamp.
func (e *Executor) Execute(ctx context.Context, tasks []task.Task, mem casefile.Memory) Report {
	var rep Report

	for i := range tasks {
		t := &tasks[i]
		log.Printf("[executor] running task %s (%s)", t.ID, t.Type)

		output, err := e.runTask(ctx, t, mem, &rep)
		if err != nil {
			log.Printf("[executor] task %s failed: %v", t.ID, err)
			t.Status = task.StatusError
			t.Error = err.Error()
			t.Progress = 0
			rep.FailedTasks = append(rep.FailedTasks, *t)
			continue
		}

		t.Status = task.StatusCompleted
		t.Output = output
		t.Progress = 100
		rep.CompletedTasks = append(rep.CompletedTasks, *t)
	}

	return rep
}

// runTask dispatches by type and converts handler panics into per-task
// errors so a misbehaving handler cannot take down the batch.
func (e *Executor) runTask(ctx context.Context, t *task.Task, mem casefile.Memory, rep *Report) (output map[string]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			output = nil
			err = fmt.Errorf("task handler panic: %v", r)
		}
	}()

	typ, known := task.ParseType(string(t.Type))
	if !known {
		return map[string]any{"result": "Unknown task type", "status": "skipped"}, nil
	}
	return e.handlers[typ](ctx, t, mem, rep)
}
