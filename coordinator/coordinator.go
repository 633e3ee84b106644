package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/salonmind/salonmind/core"
	"github.com/salonmind/salonmind/logging"
)

// Workflow names accepted by RunWorkflow.
const (
	WorkflowDailyAnalysis   = "daily_analysis"
	WorkflowChurnPrevention = "churn_prevention"
)

// Options configure the coordinator.
type Options struct {
	// Logger receives operational logging. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Coordinator keeps the registry of analysis agents and runs named workflows
// across them. Registration and lookup are safe for concurrent use;
// workflows themselves execute their steps sequentially.
type Coordinator struct {
	mu     sync.RWMutex
	agents map[string]core.Agent
	logger logging.Logger
}

// New creates an empty coordinator.
func New(optFns ...func(o *Options)) *Coordinator {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Coordinator{
		agents: make(map[string]core.Agent),
		logger: opts.Logger,
	}
}

// Register adds an agent under its own ID. Registering a second agent with
// the same ID replaces the first; the replacement is logged.
func (c *Coordinator) Register(agent core.Agent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.agents[agent.ID()]; ok {
		c.logger.Warn("replacing registered agent", "agent_id", agent.ID())
	}
	c.agents[agent.ID()] = agent

	c.logger.Info("agent registered", "agent_id", agent.ID(), "role", agent.Role())
}

// Agent looks up a registered agent by ID.
func (c *Coordinator) Agent(id string) (core.Agent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	a, ok := c.agents[id]
	return a, ok
}

// AgentIDs returns the IDs of all registered agents.
func (c *Coordinator) AgentIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.agents))
	for id := range c.agents {
		ids = append(ids, id)
	}
	return ids
}

// RunWorkflow executes the named workflow. Unknown names fail with
// core.ErrUnknownWorkflow; a run with a missing required agent fails with
// core.ErrAgentsMissing before any agent executes.
func (c *Coordinator) RunWorkflow(ctx context.Context, name string) (*core.WorkflowResult, error) {
	c.logger.Info("workflow starting", "workflow", name)

	var (
		result *core.WorkflowResult
		err    error
	)
	switch name {
	case WorkflowDailyAnalysis:
		result, err = c.dailyAnalysis(ctx)
	case WorkflowChurnPrevention:
		result, err = c.churnPrevention(ctx)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownWorkflow, name)
	}
	if err != nil {
		logging.WorkflowRun(c.logger, name, "", err)
		return nil, fmt.Errorf("workflow %s: %w", name, err)
	}

	logging.WorkflowRun(c.logger, name, result.RunID, nil)
	return result, nil
}

// dailyAnalysis runs the utilization analysis followed by churn detection.
// Both agents must be registered before the first step executes.
func (c *Coordinator) dailyAnalysis(ctx context.Context) (*core.WorkflowResult, error) {
	scheduler, ok := c.Agent(core.AgentIDScheduler)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrAgentsMissing, core.AgentIDScheduler)
	}
	clientIntel, ok := c.Agent(core.AgentIDClientIntel)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrAgentsMissing, core.AgentIDClientIntel)
	}

	utilRes, err := scheduler.Execute(ctx, core.AnalyzeUtilizationTask{})
	if err != nil {
		return nil, err
	}
	utilization, ok := utilRes.(*core.UtilizationReport)
	if !ok {
		return nil, fmt.Errorf("agent %s: unexpected result %T", core.AgentIDScheduler, utilRes)
	}

	churnRes, err := clientIntel.Execute(ctx, core.DetectChurnTask{})
	if err != nil {
		return nil, err
	}
	churn, ok := churnRes.(*core.ChurnReport)
	if !ok {
		return nil, fmt.Errorf("agent %s: unexpected result %T", core.AgentIDClientIntel, churnRes)
	}

	return &core.WorkflowResult{
		Workflow:    WorkflowDailyAnalysis,
		RunID:       uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Utilization: utilization,
		ChurnRisk:   churn,
	}, nil
}

// churnPrevention runs churn detection and republishes the graded customers
// as retention recommendations.
func (c *Coordinator) churnPrevention(ctx context.Context) (*core.WorkflowResult, error) {
	clientIntel, ok := c.Agent(core.AgentIDClientIntel)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrAgentsMissing, core.AgentIDClientIntel)
	}

	churnRes, err := clientIntel.Execute(ctx, core.DetectChurnTask{})
	if err != nil {
		return nil, err
	}
	churn, ok := churnRes.(*core.ChurnReport)
	if !ok {
		return nil, fmt.Errorf("agent %s: unexpected result %T", core.AgentIDClientIntel, churnRes)
	}

	summary := churn.Summary

	return &core.WorkflowResult{
		Workflow:        WorkflowChurnPrevention,
		RunID:           uuid.NewString(),
		Timestamp:       time.Now().UTC(),
		AtRiskSummary:   &summary,
		Recommendations: churn.AtRisk,
	}, nil
}
