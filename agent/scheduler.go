package agent

import (
	"context"
	"fmt"
	"math"

	"github.com/salonmind/salonmind/core"
	"github.com/salonmind/salonmind/model"
)

const schedulerRole = "Smart Scheduler Agent"

const schedulerSystemPrompt = `You are the Smart Scheduler Agent for a spa/salon.

Analyze appointment data and identify revenue optimization opportunities.

Provide:
- Utilization metrics with percentages
- Specific time slots needing attention
- Concrete recommendations with dollar amounts
- Revenue projections

Be specific and actionable. Focus on measurable business impact.`

// Day names indexed by the Postgres DOW convention (0 = Sunday).
var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// SchedulerOptions configure the scheduler agent. The business assumptions
// default to the established opportunity math: 50 bookable slots per day,
// an 85% utilization target and 20 business days per month.
type SchedulerOptions struct {
	CapacityPerDay       int
	TargetUtilizationPct float64
	BusinessDaysPerMonth int

	Base BaseOptions
}

// SchedulerAgent analyzes appointment utilization and identifies revenue
// opportunities in under-booked time slots.
type SchedulerAgent struct {
	BaseAgent
	store core.ScheduleStore

	capacityPerDay       float64
	targetUtilizationPct float64
	businessDaysPerMonth float64
}

var _ core.Agent = (*SchedulerAgent)(nil)

// NewScheduler constructs the scheduler agent under the identity
// core.AgentIDScheduler.
func NewScheduler(
	completer model.Completer,
	scheduleStore core.ScheduleStore,
	actions core.ActionLog,
	optFns ...func(o *SchedulerOptions),
) (*SchedulerAgent, error) {
	opts := SchedulerOptions{
		CapacityPerDay:       50,
		TargetUtilizationPct: 85,
		BusinessDaysPerMonth: 20,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if scheduleStore == nil {
		return nil, fmt.Errorf("agent %s: schedule store is required", core.AgentIDScheduler)
	}
	if opts.CapacityPerDay <= 0 {
		return nil, fmt.Errorf("agent %s: capacity per day must be positive", core.AgentIDScheduler)
	}

	base, err := NewBaseAgent(core.AgentIDScheduler, schedulerRole, schedulerSystemPrompt,
		completer, actions, func(o *BaseOptions) { *o = opts.Base })
	if err != nil {
		return nil, err
	}

	return &SchedulerAgent{
		BaseAgent:            base,
		store:                scheduleStore,
		capacityPerDay:       float64(opts.CapacityPerDay),
		targetUtilizationPct: opts.TargetUtilizationPct,
		businessDaysPerMonth: float64(opts.BusinessDaysPerMonth),
	}, nil
}

// Execute implements core.Agent.
func (a *SchedulerAgent) Execute(ctx context.Context, task core.Task) (core.Result, error) {
	switch task.(type) {
	case core.AnalyzeUtilizationTask:
		return a.AnalyzeUtilization(ctx)
	case core.FindGapsTask:
		return a.FindSchedulingGaps(ctx)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownTask, task.Type())
	}
}

// AnalyzeUtilization computes booking utilization over the trailing 30 days
// and the monthly revenue opportunity left below the utilization target,
// then asks the reasoning provider to narrate recommendations.
//
// With no appointment data the fixed "Insufficient data" report returns
// immediately and no reasoning call is made.
func (a *SchedulerAgent) AnalyzeUtilization(ctx context.Context) (*core.UtilizationReport, error) {
	a.Logger().Debug("analyzing utilization")

	days, err := a.store.DailyBookings(ctx)
	if err != nil {
		return nil, err
	}

	if len(days) == 0 {
		return &core.UtilizationReport{
			Analysis: "Insufficient data",
			Metrics:  core.UtilizationMetrics{},
			Agent:    a.ID(),
		}, nil
	}

	var totalRevenue float64
	var totalBookings int
	for _, d := range days {
		totalRevenue += d.Revenue
		totalBookings += d.Count
	}

	avgDailyBookings := float64(totalBookings) / float64(len(days))
	utilization := avgDailyBookings / a.capacityPerDay * 100

	// Opportunity math runs on the unrounded utilization; the metrics
	// carry rounded figures for presentation.
	var monthlyOpportunity float64
	if utilization < a.targetUtilizationPct {
		gap := (a.targetUtilizationPct - utilization) / 100
		avgRevenuePerBooking := totalRevenue / float64(totalBookings)
		dailyOpportunity := gap * a.capacityPerDay * avgRevenuePerBooking
		monthlyOpportunity = dailyOpportunity * a.businessDaysPerMonth
	}

	metrics := core.UtilizationMetrics{
		Appointments30d:    len(days),
		TotalRevenue:       round2(totalRevenue),
		AvgDailyBookings:   round1(avgDailyBookings),
		UtilizationPct:     round1(utilization),
		MonthlyOpportunity: round2(monthlyOpportunity),
	}

	result, err := a.Think(ctx,
		"Analyze this 30-day utilization data. Identify patterns and provide specific recommendations to improve utilization and revenue.",
		metrics)
	if err != nil {
		return nil, err
	}

	confidence := thinkingConfidence
	a.LogAction(ctx, "utilization_analysis", truncate(result.Reasoning, reasoningPrefixLen), metrics, &confidence)

	return &core.UtilizationReport{
		Analysis: result.Reasoning,
		Metrics:  metrics,
		Agent:    a.ID(),
	}, nil
}

// FindSchedulingGaps surfaces the quietest day/hour slots of the trailing
// 60 days and asks the reasoning provider for strategies to fill them. The
// report carries at most the five quietest slots.
func (a *SchedulerAgent) FindSchedulingGaps(ctx context.Context) (*core.GapReport, error) {
	a.Logger().Debug("finding scheduling gaps")

	slots, err := a.store.QuietSlots(ctx)
	if err != nil {
		return nil, err
	}

	if len(slots) == 0 {
		return &core.GapReport{
			Analysis: "No significant gaps found",
			Gaps:     []core.ScheduleGap{},
			Agent:    a.ID(),
		}, nil
	}

	gaps := make([]core.ScheduleGap, 0, len(slots))
	for _, s := range slots {
		gaps = append(gaps, core.ScheduleGap{
			Day:      dayName(s.DayOfWeek),
			Hour:     s.Hour,
			Bookings: s.Bookings,
		})
	}

	contextData := struct {
		Gaps      []core.ScheduleGap `json:"gaps"`
		TotalGaps int                `json:"total_gaps"`
	}{Gaps: gaps, TotalGaps: len(gaps)}

	result, err := a.Think(ctx,
		"These time slots have low booking rates. Recommend specific strategies to fill these gaps.",
		contextData)
	if err != nil {
		return nil, err
	}

	top := gaps
	if len(top) > 5 {
		top = top[:5]
	}

	return &core.GapReport{
		Analysis: result.Reasoning,
		Gaps:     top,
		Agent:    a.ID(),
	}, nil
}

func dayName(dow int) string {
	if dow < 0 || dow >= len(dayNames) {
		return "???"
	}
	return dayNames[dow]
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
