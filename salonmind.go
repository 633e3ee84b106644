// Package salonmind assembles the spa/salon analysis backend: a Postgres
// data store, a reasoning provider, the scheduling and client intelligence
// agents and the coordinator that runs workflows across them.
//
// The typical entry point is New, which wires everything from a Config:
//
//	app, err := salonmind.New(ctx, cfg)
//	if err != nil { ... }
//	defer app.Close()
//
//	result, err := app.RunWorkflow(ctx, coordinator.WorkflowDailyAnalysis)
package salonmind

import (
	"context"
	"fmt"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/salonmind/salonmind/agent"
	"github.com/salonmind/salonmind/config"
	"github.com/salonmind/salonmind/coordinator"
	"github.com/salonmind/salonmind/core"
	"github.com/salonmind/salonmind/logging"
	"github.com/salonmind/salonmind/model"
	"github.com/salonmind/salonmind/model/anthropic"
	"github.com/salonmind/salonmind/model/openai"
	"github.com/salonmind/salonmind/store"
)

// Options configure application assembly beyond what Config carries.
type Options struct {
	// Logger receives operational logging from every component. Defaults
	// to NoOpLogger.
	Logger logging.Logger

	// Completer overrides the provider selected by Config. Intended for
	// tests and embedding.
	Completer model.Completer
}

// App is the assembled application: store, agents and coordinator wired
// together and ready to run workflows.
type App struct {
	store       *store.Store
	completer   model.Completer
	coordinator *coordinator.Coordinator
	scheduler   *agent.SchedulerAgent
	clientIntel *agent.ClientIntelAgent
	logger      logging.Logger
}

// New assembles the application from configuration: it connects to Postgres,
// builds the configured reasoning provider and registers both agents with a
// fresh coordinator. A configuration or connection problem fails assembly;
// nothing is retried lazily.
func New(ctx context.Context, cfg config.Config, optFns ...func(o *Options)) (*App, error) {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	st, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	completer := opts.Completer
	if completer == nil {
		completer, err = buildCompleter(cfg)
		if err != nil {
			st.Close()
			return nil, err
		}
	}

	scheduler, err := agent.NewScheduler(completer, st, st, func(o *agent.SchedulerOptions) {
		o.CapacityPerDay = cfg.CapacityPerDay
		o.TargetUtilizationPct = cfg.TargetUtilizationPct
		o.BusinessDaysPerMonth = cfg.BusinessDaysPerMonth
		o.Base = agent.BaseOptions{MaxTokens: cfg.MaxTokens, Logger: opts.Logger}
	})
	if err != nil {
		st.Close()
		return nil, err
	}

	clientIntel, err := agent.NewClientIntel(completer, st, st, func(o *agent.ClientIntelOptions) {
		o.Base = agent.BaseOptions{MaxTokens: cfg.MaxTokens, Logger: opts.Logger}
	})
	if err != nil {
		st.Close()
		return nil, err
	}

	coord := coordinator.New(func(o *coordinator.Options) {
		o.Logger = opts.Logger
	})
	coord.Register(scheduler)
	coord.Register(clientIntel)

	info := completer.Info()
	opts.Logger.Info("application assembled",
		"provider", info.Provider, "model", info.Name, "agents", coord.AgentIDs())

	return &App{
		store:       st,
		completer:   completer,
		coordinator: coord,
		scheduler:   scheduler,
		clientIntel: clientIntel,
		logger:      opts.Logger,
	}, nil
}

func buildCompleter(cfg config.Config) (model.Completer, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "anthropic":
		return anthropic.New(func(o *anthropic.Options) {
			if cfg.Model != "" {
				o.Model = anthropicsdk.Model(cfg.Model)
			}
			o.MaxTokens = cfg.MaxTokens
			o.APIKey = cfg.APIKey
		})
	case "openai":
		return openai.New(func(o *openai.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			o.MaxCompletionTokens = cfg.MaxTokens
			o.APIKey = cfg.APIKey
		}), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.store.Close()
}

// Coordinator exposes the agent registry for embedding callers that register
// additional agents.
func (a *App) Coordinator() *coordinator.Coordinator {
	return a.coordinator
}

// RunWorkflow executes a named coordinator workflow.
func (a *App) RunWorkflow(ctx context.Context, name string) (*core.WorkflowResult, error) {
	return a.coordinator.RunWorkflow(ctx, name)
}

// RunAnalysis dispatches a single named analysis to the owning agent:
// "utilization", "gaps", "churn" or "segments". Workflows that span agents
// go through RunWorkflow instead.
func (a *App) RunAnalysis(ctx context.Context, kind string) (core.Result, error) {
	switch kind {
	case "utilization":
		return a.scheduler.AnalyzeUtilization(ctx)
	case "gaps":
		return a.scheduler.FindSchedulingGaps(ctx)
	case "churn":
		return a.clientIntel.DetectChurnRisk(ctx)
	case "segments":
		return a.clientIntel.SegmentCustomers(ctx)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownTask, kind)
	}
}

// AnalyzeUtilization runs the scheduler agent's utilization analysis.
func (a *App) AnalyzeUtilization(ctx context.Context) (*core.UtilizationReport, error) {
	return a.scheduler.AnalyzeUtilization(ctx)
}

// FindSchedulingGaps runs the scheduler agent's gap analysis.
func (a *App) FindSchedulingGaps(ctx context.Context) (*core.GapReport, error) {
	return a.scheduler.FindSchedulingGaps(ctx)
}

// DetectChurnRisk runs the client intelligence agent's churn detection.
func (a *App) DetectChurnRisk(ctx context.Context) (*core.ChurnReport, error) {
	return a.clientIntel.DetectChurnRisk(ctx)
}

// SegmentCustomers runs the client intelligence agent's segmentation.
func (a *App) SegmentCustomers(ctx context.Context) (*core.SegmentReport, error) {
	return a.clientIntel.SegmentCustomers(ctx)
}

// AgentActivity returns the most recent audit records for one agent, newest
// first. An empty agentID returns activity across all agents.
func (a *App) AgentActivity(ctx context.Context, agentID string, limit int) ([]core.Action, error) {
	return a.store.Recent(ctx, agentID, limit)
}
