package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/salonmind/salonmind/core"
	"github.com/salonmind/salonmind/model"
)

type mockScheduleStore struct {
	mock.Mock
}

func (m *mockScheduleStore) DailyBookings(ctx context.Context) ([]core.DailyBooking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]core.DailyBooking), args.Error(1)
}

func (m *mockScheduleStore) QuietSlots(ctx context.Context) ([]core.SlotCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]core.SlotCount), args.Error(1)
}

func newScheduleStore(days []core.DailyBooking, slots []core.SlotCount) *mockScheduleStore {
	store := &mockScheduleStore{}
	store.On("DailyBookings", mock.Anything).Return(days, nil)
	store.On("QuietSlots", mock.Anything).Return(slots, nil)
	return store
}

func newTestScheduler(t *testing.T, store core.ScheduleStore) (*SchedulerAgent, *model.MockCompleter, *memActionLog) {
	t.Helper()

	completer := model.NewMockCompleter()
	actions := &memActionLog{}
	agent, err := NewScheduler(completer, store, actions)
	require.NoError(t, err)

	return agent, completer, actions
}

func bookings(counts []int, revenues []float64) []core.DailyBooking {
	days := make([]core.DailyBooking, len(counts))
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := range counts {
		days[i] = core.DailyBooking{
			Date:    base.AddDate(0, 0, i),
			Count:   counts[i],
			Revenue: revenues[i],
		}
	}
	return days
}

func TestNewScheduler(t *testing.T) {
	completer := model.NewMockCompleter()
	actions := &memActionLog{}

	t.Run("requires a schedule store", func(t *testing.T) {
		_, err := NewScheduler(completer, nil, actions)
		assert.Error(t, err)
	})

	t.Run("rejects a non-positive capacity", func(t *testing.T) {
		_, err := NewScheduler(completer, newScheduleStore(nil, nil), actions, func(o *SchedulerOptions) {
			o.CapacityPerDay = 0
		})
		assert.Error(t, err)
	})

	t.Run("registers under the scheduler identity", func(t *testing.T) {
		agent, _, _ := newTestScheduler(t, newScheduleStore(nil, nil))
		assert.Equal(t, core.AgentIDScheduler, agent.ID())
		assert.Equal(t, "Smart Scheduler Agent", agent.Role())
	})
}

func TestAnalyzeUtilization(t *testing.T) {
	t.Run("no opportunity above the target", func(t *testing.T) {
		store := newScheduleStore(bookings([]int{40, 45, 50}, []float64{4000, 4500, 5000}), nil)
		agent, _, _ := newTestScheduler(t, store)

		report, err := agent.AnalyzeUtilization(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 3, report.Metrics.Appointments30d)
		assert.InDelta(t, 45.0, report.Metrics.AvgDailyBookings, 1e-9)
		assert.InDelta(t, 90.0, report.Metrics.UtilizationPct, 1e-9)
		assert.Zero(t, report.Metrics.MonthlyOpportunity)
		assert.Equal(t, core.AgentIDScheduler, report.Agent)
	})

	t.Run("computes the monthly opportunity below the target", func(t *testing.T) {
		store := newScheduleStore(bookings([]int{20, 25, 30}, []float64{1000, 1200, 1500}), nil)
		agent, _, _ := newTestScheduler(t, store)

		report, err := agent.AnalyzeUtilization(context.Background())
		require.NoError(t, err)

		m := report.Metrics
		assert.Equal(t, 3, m.Appointments30d)
		assert.InDelta(t, 3700.0, m.TotalRevenue, 1e-9)
		assert.InDelta(t, 25.0, m.AvgDailyBookings, 1e-9)
		assert.InDelta(t, 50.0, m.UtilizationPct, 1e-9)

		// gap 0.35 × capacity 50 × avg revenue 49.33 × 20 business days.
		assert.InDelta(t, 17266.67, m.MonthlyOpportunity, 0.01)
	})

	t.Run("journals the analysis after thinking", func(t *testing.T) {
		store := newScheduleStore(bookings([]int{20, 25, 30}, []float64{1000, 1200, 1500}), nil)
		agent, completer, actions := newTestScheduler(t, store)

		_, err := agent.AnalyzeUtilization(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, completer.CallCount())

		recorded := actions.all()
		require.Len(t, recorded, 2)
		assert.Equal(t, "thinking", recorded[0].ActionType)
		assert.Equal(t, "utilization_analysis", recorded[1].ActionType)
		require.NotNil(t, recorded[1].Confidence)
		assert.InDelta(t, 0.9, *recorded[1].Confidence, 1e-9)
	})

	t.Run("short-circuits without data", func(t *testing.T) {
		agent, completer, actions := newTestScheduler(t, newScheduleStore(nil, nil))

		report, err := agent.AnalyzeUtilization(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "Insufficient data", report.Analysis)
		assert.Equal(t, core.UtilizationMetrics{}, report.Metrics)
		assert.Zero(t, completer.CallCount())
		assert.Empty(t, actions.all())
	})

	t.Run("propagates store errors", func(t *testing.T) {
		store := &mockScheduleStore{}
		store.On("DailyBookings", mock.Anything).Return(nil, errors.New("connection refused"))
		agent, completer, _ := newTestScheduler(t, store)

		_, err := agent.AnalyzeUtilization(context.Background())
		require.Error(t, err)
		assert.Zero(t, completer.CallCount())
	})

	t.Run("is deterministic over the same data", func(t *testing.T) {
		store := newScheduleStore(bookings([]int{20, 25, 30}, []float64{1000, 1200, 1500}), nil)
		agent, _, _ := newTestScheduler(t, store)

		first, err := agent.AnalyzeUtilization(context.Background())
		require.NoError(t, err)
		second, err := agent.AnalyzeUtilization(context.Background())
		require.NoError(t, err)

		assert.Equal(t, first.Metrics, second.Metrics)
	})
}

func TestFindSchedulingGaps(t *testing.T) {
	t.Run("maps day numbers and keeps the quietest five", func(t *testing.T) {
		store := newScheduleStore(nil, []core.SlotCount{
			{DayOfWeek: 1, Hour: 14, Bookings: 0},
			{DayOfWeek: 2, Hour: 15, Bookings: 1},
			{DayOfWeek: 3, Hour: 10, Bookings: 1},
			{DayOfWeek: 4, Hour: 11, Bookings: 2},
			{DayOfWeek: 5, Hour: 16, Bookings: 2},
			{DayOfWeek: 0, Hour: 9, Bookings: 2},
		})
		agent, completer, _ := newTestScheduler(t, store)

		report, err := agent.FindSchedulingGaps(context.Background())
		require.NoError(t, err)

		require.Len(t, report.Gaps, 5)
		assert.Equal(t, core.ScheduleGap{Day: "Mon", Hour: 14, Bookings: 0}, report.Gaps[0])
		assert.Equal(t, "Tue", report.Gaps[1].Day)
		assert.Equal(t, 1, completer.CallCount())
	})

	t.Run("short-circuits without gaps", func(t *testing.T) {
		agent, completer, _ := newTestScheduler(t, newScheduleStore(nil, nil))

		report, err := agent.FindSchedulingGaps(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "No significant gaps found", report.Analysis)
		assert.Empty(t, report.Gaps)
		assert.Zero(t, completer.CallCount())
	})

	t.Run("propagates store errors", func(t *testing.T) {
		store := &mockScheduleStore{}
		store.On("QuietSlots", mock.Anything).Return(nil, errors.New("connection refused"))
		agent, _, _ := newTestScheduler(t, store)

		_, err := agent.FindSchedulingGaps(context.Background())
		assert.Error(t, err)
	})
}

func TestSchedulerExecute(t *testing.T) {
	t.Run("dispatches utilization analysis", func(t *testing.T) {
		agent, _, _ := newTestScheduler(t, newScheduleStore(nil, nil))

		result, err := agent.Execute(context.Background(), core.AnalyzeUtilizationTask{})
		require.NoError(t, err)
		assert.IsType(t, &core.UtilizationReport{}, result)
	})

	t.Run("dispatches gap analysis", func(t *testing.T) {
		agent, _, _ := newTestScheduler(t, newScheduleStore(nil, nil))

		result, err := agent.Execute(context.Background(), core.FindGapsTask{})
		require.NoError(t, err)
		assert.IsType(t, &core.GapReport{}, result)
	})

	t.Run("rejects tasks it does not own", func(t *testing.T) {
		agent, _, actions := newTestScheduler(t, newScheduleStore(nil, nil))

		_, err := agent.Execute(context.Background(), core.DetectChurnTask{})
		require.ErrorIs(t, err, core.ErrUnknownTask)
		assert.Empty(t, actions.all())
	})
}
