package core

import "time"

// Result is the closed set of analysis reports an agent task can produce.
// The coordinator type-asserts on the concrete report when aggregating a
// workflow run.
type Result interface {
	isResult()
}

// RiskLevel is the three-level churn classification derived per customer.
type RiskLevel string

// Risk levels, highest first.
const (
	RiskHigh   RiskLevel = "HIGH"
	RiskMedium RiskLevel = "MEDIUM"
	RiskLow    RiskLevel = "LOW"
)

// Segment is a customer value segment. Assignment follows a strict
// precedence order: VIP > Regular > New > Occasional.
type Segment string

// Customer segments in precedence order.
const (
	SegmentVIP        Segment = "VIP"
	SegmentRegular    Segment = "Regular"
	SegmentNew        Segment = "New"
	SegmentOccasional Segment = "Occasional"
)

// DailyBooking is one day's appointment aggregate: booking count and revenue
// for appointments in completed or scheduled status.
type DailyBooking struct {
	Date    time.Time `json:"date"`
	Count   int       `json:"count"`
	Revenue float64   `json:"revenue"`
}

// SlotCount is the booking count for one day-of-week × hour-of-day bucket.
// DayOfWeek follows the Postgres DOW convention: 0 = Sunday.
type SlotCount struct {
	DayOfWeek int `json:"day_of_week"`
	Hour      int `json:"hour"`
	Bookings  int `json:"bookings"`
}

// Customer is a customer row as the churn analysis consumes it, with the
// visit recency already computed by the store.
type Customer struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	DaysSinceVisit    int     `json:"days_since_visit"`
	TotalVisits       int     `json:"total_visits"`
	TotalSpent        float64 `json:"total_spent"`
	PreferredServices string  `json:"preferred_services"`
}

// CustomerValue is the minimal per-customer shape segmentation needs.
type CustomerValue struct {
	TotalSpent  float64 `json:"total_spent"`
	TotalVisits int     `json:"total_visits"`
}

// CustomerRisk is a Customer annotated with its derived churn risk level.
type CustomerRisk struct {
	Customer
	RiskLevel RiskLevel `json:"risk_level"`
}

// ScheduleGap is a low-booking slot with the numeric day of week mapped to a
// three-letter day name.
type ScheduleGap struct {
	Day      string `json:"day"`
	Hour     int    `json:"hour"`
	Bookings int    `json:"bookings"`
}

// UtilizationMetrics is the deterministic summary computed from the
// trailing-30-day appointment aggregates. Values are rounded for
// presentation; the opportunity math runs on the unrounded figures.
type UtilizationMetrics struct {
	Appointments30d    int     `json:"appointments_30d"`
	TotalRevenue       float64 `json:"total_revenue"`
	AvgDailyBookings   float64 `json:"avg_daily_bookings"`
	UtilizationPct     float64 `json:"utilization_pct"`
	MonthlyOpportunity float64 `json:"monthly_opportunity"`
}

// ChurnSummary aggregates one churn detection pass.
type ChurnSummary struct {
	TotalAtRisk int     `json:"total_at_risk"`
	HighRisk    int     `json:"high_risk"`
	ValueAtRisk float64 `json:"value_at_risk"`
}

// SegmentStat is the aggregate row for one customer segment.
type SegmentStat struct {
	Segment   Segment `json:"segment"`
	Count     int     `json:"count"`
	AvgLTV    float64 `json:"avg_ltv"`
	AvgVisits float64 `json:"avg_visits"`
}

// UtilizationReport is the scheduler agent's utilization analysis.
type UtilizationReport struct {
	Analysis string             `json:"analysis"`
	Metrics  UtilizationMetrics `json:"metrics"`
	Agent    string             `json:"agent"`
}

func (*UtilizationReport) isResult() {}

// GapReport is the scheduler agent's low-booking slot analysis. Gaps holds
// at most the five quietest slots.
type GapReport struct {
	Analysis string        `json:"analysis"`
	Gaps     []ScheduleGap `json:"gaps"`
	Agent    string        `json:"agent"`
}

func (*GapReport) isResult() {}

// ChurnReport is the client intelligence agent's churn detection result.
// AtRisk holds at most the five highest-value candidates by lifetime spend.
// Summary aggregates the full candidate set.
type ChurnReport struct {
	AtRisk   []CustomerRisk `json:"at_risk_customers"`
	Summary  ChurnSummary   `json:"summary"`
	Analysis string         `json:"analysis"`
	Agent    string         `json:"agent"`
}

func (*ChurnReport) isResult() {}

// SegmentReport is the client intelligence agent's segmentation result.
type SegmentReport struct {
	Segments []SegmentStat `json:"segments"`
	Analysis string        `json:"analysis"`
	Agent    string        `json:"agent"`
}

func (*SegmentReport) isResult() {}

// ReasoningResult is the outcome of a single reasoning-provider call made by
// an agent's Think. It is journaled as an Action and returned to the caller;
// nothing retains it in process afterwards.
type ReasoningResult struct {
	Reasoning       string    `json:"reasoning"`
	Agent           string    `json:"agent"`
	Timestamp       time.Time `json:"timestamp"`
	ExecutionTimeMS int64     `json:"execution_time_ms"`
}

// WorkflowResult aggregates the per-step reports of one coordinator workflow
// run. Only the fields the named workflow populates are set.
type WorkflowResult struct {
	Workflow  string    `json:"workflow"`
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`

	// daily_analysis steps.
	Utilization *UtilizationReport `json:"utilization,omitempty"`
	ChurnRisk   *ChurnReport       `json:"churn_risk,omitempty"`

	// churn_prevention republishes the detection output under the keys the
	// retention tooling consumes.
	AtRiskSummary   *ChurnSummary  `json:"at_risk_summary,omitempty"`
	Recommendations []CustomerRisk `json:"recommendations,omitempty"`
}
