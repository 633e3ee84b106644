package coordinator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonmind/salonmind/core"
)

// stubAgent replays canned results per task type and records the dispatch
// order.
type stubAgent struct {
	id      string
	role    string
	results map[string]core.Result
	err     error
	calls   []string
}

func (s *stubAgent) ID() string           { return s.id }
func (s *stubAgent) Role() string         { return s.role }
func (s *stubAgent) SystemPrompt() string { return "You are " + s.role + "." }

func (s *stubAgent) Execute(_ context.Context, task core.Task) (core.Result, error) {
	s.calls = append(s.calls, task.Type())
	if s.err != nil {
		return nil, s.err
	}
	result, ok := s.results[task.Type()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownTask, task.Type())
	}
	return result, nil
}

func newStubScheduler() *stubAgent {
	return &stubAgent{
		id:   core.AgentIDScheduler,
		role: "Smart Scheduler Agent",
		results: map[string]core.Result{
			"analyze_utilization": &core.UtilizationReport{
				Analysis: "Utilization is healthy",
				Metrics:  core.UtilizationMetrics{UtilizationPct: 90},
				Agent:    core.AgentIDScheduler,
			},
		},
	}
}

func newStubClientIntel() *stubAgent {
	return &stubAgent{
		id:   core.AgentIDClientIntel,
		role: "Client Intelligence Agent",
		results: map[string]core.Result{
			"detect_churn_risk": &core.ChurnReport{
				AtRisk: []core.CustomerRisk{
					{Customer: core.Customer{ID: "c1", TotalSpent: 1200}, RiskLevel: core.RiskHigh},
				},
				Summary:  core.ChurnSummary{TotalAtRisk: 1, HighRisk: 1, ValueAtRisk: 1200},
				Analysis: "One customer needs a win-back offer",
				Agent:    core.AgentIDClientIntel,
			},
		},
	}
}

func TestRegister(t *testing.T) {
	t.Run("registers and looks up by id", func(t *testing.T) {
		c := New()
		scheduler := newStubScheduler()
		c.Register(scheduler)

		got, ok := c.Agent(core.AgentIDScheduler)
		require.True(t, ok)
		assert.Same(t, scheduler, got)
		assert.ElementsMatch(t, []string{core.AgentIDScheduler}, c.AgentIDs())
	})

	t.Run("last registration wins", func(t *testing.T) {
		c := New()
		first := newStubScheduler()
		second := newStubScheduler()
		c.Register(first)
		c.Register(second)

		got, ok := c.Agent(core.AgentIDScheduler)
		require.True(t, ok)
		assert.Same(t, second, got)
		assert.Len(t, c.AgentIDs(), 1)
	})
}

func TestRunWorkflowUnknown(t *testing.T) {
	c := New()

	_, err := c.RunWorkflow(context.Background(), "quarterly_review")
	require.ErrorIs(t, err, core.ErrUnknownWorkflow)
	assert.Contains(t, err.Error(), "quarterly_review")
}

func TestDailyAnalysis(t *testing.T) {
	t.Run("runs both steps in order", func(t *testing.T) {
		c := New()
		scheduler := newStubScheduler()
		clientIntel := newStubClientIntel()
		c.Register(scheduler)
		c.Register(clientIntel)

		result, err := c.RunWorkflow(context.Background(), WorkflowDailyAnalysis)
		require.NoError(t, err)

		assert.Equal(t, WorkflowDailyAnalysis, result.Workflow)
		assert.NotEmpty(t, result.RunID)
		assert.False(t, result.Timestamp.IsZero())

		require.NotNil(t, result.Utilization)
		assert.Equal(t, "Utilization is healthy", result.Utilization.Analysis)
		require.NotNil(t, result.ChurnRisk)
		assert.Equal(t, 1, result.ChurnRisk.Summary.TotalAtRisk)

		assert.Equal(t, []string{"analyze_utilization"}, scheduler.calls)
		assert.Equal(t, []string{"detect_churn_risk"}, clientIntel.calls)
	})

	t.Run("aborts before any step when an agent is missing", func(t *testing.T) {
		c := New()
		scheduler := newStubScheduler()
		c.Register(scheduler)

		_, err := c.RunWorkflow(context.Background(), WorkflowDailyAnalysis)
		require.ErrorIs(t, err, core.ErrAgentsMissing)
		assert.Empty(t, scheduler.calls)
	})

	t.Run("stops at the first failing step", func(t *testing.T) {
		c := New()
		scheduler := newStubScheduler()
		scheduler.err = errors.New("database unavailable")
		clientIntel := newStubClientIntel()
		c.Register(scheduler)
		c.Register(clientIntel)

		_, err := c.RunWorkflow(context.Background(), WorkflowDailyAnalysis)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database unavailable")
		assert.Empty(t, clientIntel.calls)
	})

	t.Run("distinct runs get distinct run ids", func(t *testing.T) {
		c := New()
		c.Register(newStubScheduler())
		c.Register(newStubClientIntel())

		first, err := c.RunWorkflow(context.Background(), WorkflowDailyAnalysis)
		require.NoError(t, err)
		second, err := c.RunWorkflow(context.Background(), WorkflowDailyAnalysis)
		require.NoError(t, err)

		assert.NotEqual(t, first.RunID, second.RunID)
	})
}

func TestChurnPrevention(t *testing.T) {
	t.Run("republishes the detection as recommendations", func(t *testing.T) {
		c := New()
		c.Register(newStubClientIntel())

		result, err := c.RunWorkflow(context.Background(), WorkflowChurnPrevention)
		require.NoError(t, err)

		assert.Equal(t, WorkflowChurnPrevention, result.Workflow)
		require.NotNil(t, result.AtRiskSummary)
		assert.Equal(t, 1, result.AtRiskSummary.HighRisk)
		require.Len(t, result.Recommendations, 1)
		assert.Equal(t, "c1", result.Recommendations[0].ID)
		assert.Nil(t, result.Utilization)
	})

	t.Run("requires the client intelligence agent", func(t *testing.T) {
		c := New()
		c.Register(newStubScheduler())

		_, err := c.RunWorkflow(context.Background(), WorkflowChurnPrevention)
		assert.ErrorIs(t, err, core.ErrAgentsMissing)
	})
}
