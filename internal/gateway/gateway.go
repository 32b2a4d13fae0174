package gateway

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/stellarlinkco/lawclerk/internal/artifact"
	"github.com/stellarlinkco/lawclerk/internal/bus"
	"github.com/stellarlinkco/lawclerk/internal/casefile"
	"github.com/stellarlinkco/lawclerk/internal/channel"
	"github.com/stellarlinkco/lawclerk/internal/config"
	"github.com/stellarlinkco/lawclerk/internal/executor"
	"github.com/stellarlinkco/lawclerk/internal/llm"
	"github.com/stellarlinkco/lawclerk/internal/planner"
	"github.com/stellarlinkco/lawclerk/internal/remind"
	"github.com/stellarlinkco/lawclerk/internal/task"
)

// LLMFactory creates the model client (allows injection for testing).
type LLMFactory func(cfg *config.Config) llm.Client

// Options for creating a Gateway
type Options struct {
	LLMFactory LLMFactory
	SignalChan chan os.Signal // for testing signal handling
}

// DefaultLLMFactory builds the Anthropic-backed client from config.
func DefaultLLMFactory(cfg *config.Config) llm.Client {
	return llm.NewAnthropicClient(cfg.Provider.APIKey, cfg.Provider.BaseURL,
		cfg.Assistant.Model, cfg.Assistant.MaxTokens)
}

// Gateway owns the whole case pipeline: intake over channels, planning,
// execution, persistence, and reply delivery.
type Gateway struct {
	cfg        *config.Config
	bus        *bus.MessageBus
	client     llm.Client
	cases      *casefile.Store
	artifacts  artifact.Store
	reminders  *remind.Service
	channels   *channel.ChannelManager
	signalChan chan os.Signal // for testing
}

// New creates a Gateway with default options
func New(cfg *config.Config) (*Gateway, error) {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions creates a Gateway with custom options for testing
func NewWithOptions(cfg *config.Config, opts Options) (*Gateway, error) {
	g := &Gateway{cfg: cfg}

	g.bus = bus.NewMessageBus(config.DefaultBufSize)

	cases, err := casefile.NewStore(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open case file store: %w", err)
	}
	g.cases = cases

	store, err := artifact.NewDirStore(filepath.Join(cfg.Storage.Dir, "artifacts"))
	if err != nil {
		_ = g.cases.Close()
		return nil, fmt.Errorf("open artifact store: %w", err)
	}
	g.artifacts = store

	factory := opts.LLMFactory
	if factory == nil {
		factory = DefaultLLMFactory
	}
	g.client = factory(cfg)

	g.reminders = remind.NewService(filepath.Join(cfg.Storage.Dir, "reminders.json"), g.bus)

	chMgr, err := channel.NewChannelManager(cfg.Channels, cfg.Gateway, g.bus, g.artifacts)
	if err != nil {
		_ = g.cases.Close()
		return nil, fmt.Errorf("create channel manager: %w", err)
	}
	g.channels = chMgr
	chMgr.SetCaseHandler(func(ctx context.Context, userID, prompt string, files []string) (any, error) {
		return g.RunCase(ctx, userID, prompt, files, "web", userID)
	})

	g.signalChan = opts.SignalChan

	return g, nil
}

// reminderScheduler adapts the reminder service to the executor, carrying
// the session the case arrived on so the reminder comes back the same way.
type reminderScheduler struct {
	svc     *remind.Service
	channel string
	chatID  string
}

func (r *reminderScheduler) ScheduleDeadline(userID, title string, at time.Time) {
	if r.svc == nil {
		return
	}
	if _, err := r.svc.Add(userID, title, at, r.channel, r.chatID); err != nil {
		log.Printf("[gateway] schedule reminder %q: %v", title, err)
	}
}

// RunCase runs the full pipeline for one case description and returns the
// structured response. A failing persistence step is logged, never fatal.
func (g *Gateway) RunCase(ctx context.Context, userID, prompt string, files []string, channelName, chatID string) (*Response, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("empty case description")
	}

	mem := g.cases.Load(userID)
	mem.AppendConversation(prompt, files, time.Now())

	log.Printf("[gateway] planning tasks for user %s", userID)
	tasks, caseType := planner.Plan(ctx, g.client, prompt, mem)

	log.Printf("[gateway] executing %d tasks", len(tasks))
	sched := &reminderScheduler{svc: g.reminders, channel: channelName, chatID: chatID}
	exec := executor.New(g.client, g.artifacts, executor.WithScheduler(sched, userID))
	rep := exec.Execute(ctx, tasks, mem)

	mem.AppendCase(casefile.CaseRecord{
		Type:           string(caseType),
		Description:    prompt,
		WinProbability: bestWinProbability(tasks),
		ClosedAt:       time.Now(),
	})
	if len(rep.FailedTasks) == 0 && len(tasks) > 0 {
		mem.BestPlans = append(mem.BestPlans, casefile.SavedPlan{
			CaseType: string(caseType),
			Tasks:    tasks,
			SavedAt:  time.Now(),
		})
	}
	if err := g.cases.Save(userID, mem); err != nil {
		log.Printf("[gateway] save case file for %s: %v", userID, err)
	}

	return g.buildResponse(tasks, rep), nil
}

// bestWinProbability picks the highest estimate any task produced, zero
// when none did.
func bestWinProbability(tasks []task.Task) int {
	best := 0
	for _, t := range tasks {
		if t.WinPercentage > best {
			best = t.WinPercentage
		}
	}
	return best
}

func (g *Gateway) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go g.bus.DispatchOutbound(ctx)

	if err := g.channels.StartAll(ctx); err != nil {
		return fmt.Errorf("start channels: %w", err)
	}
	log.Printf("[gateway] channels started: %v", g.channels.EnabledChannels())

	if err := g.reminders.Start(ctx); err != nil {
		log.Printf("[gateway] reminder start warning: %v", err)
	}

	go g.processLoop(ctx)

	log.Printf("[gateway] running on %s:%d", g.cfg.Gateway.Host, g.cfg.Gateway.Port)

	// Use injected signal channel for testing, or create default
	sigCh := g.signalChan
	if sigCh == nil {
		sigCh = make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	}
	<-sigCh

	log.Printf("[gateway] shutting down...")
	return g.Shutdown()
}

func (g *Gateway) processLoop(ctx context.Context) {
	for {
		select {
		case msg := <-g.bus.Inbound:
			log.Printf("[gateway] inbound from %s/%s: %s", msg.Channel, msg.SenderID, truncate(msg.Content, 80))

			resp, err := g.RunCase(ctx, msg.SenderID, msg.Content, msg.Files, msg.Channel, msg.ChatID)
			var reply string
			if err != nil {
				log.Printf("[gateway] pipeline error: %v", err)
				reply = "Sorry, I encountered an error processing your case."
			} else {
				reply = resp.Text()
			}

			if reply != "" {
				g.bus.Outbound <- bus.OutboundMessage{
					Channel: msg.Channel,
					ChatID:  msg.ChatID,
					Content: reply,
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

func (g *Gateway) Shutdown() error {
	if g.channels != nil {
		_ = g.channels.StopAll()
	}
	if g.reminders != nil {
		g.reminders.Stop()
	}
	if g.cases != nil {
		if err := g.cases.Close(); err != nil {
			log.Printf("[gateway] close case file store: %v", err)
		}
	}
	log.Printf("[gateway] shutdown complete")
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
