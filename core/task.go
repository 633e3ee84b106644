package core

// Task is the closed set of work items an agent can be asked to perform.
// Each variant is an empty struct today; variants carry their parameters as
// fields when an analysis grows knobs. The unexported marker keeps the set
// closed so dispatch in the agents stays exhaustive.
type Task interface {
	// Type returns the stable task name used in audit records and errors.
	Type() string

	isTask()
}

// AnalyzeUtilizationTask asks the scheduler agent for the trailing-30-day
// utilization and revenue-opportunity analysis.
type AnalyzeUtilizationTask struct{}

func (AnalyzeUtilizationTask) Type() string { return "analyze_utilization" }
func (AnalyzeUtilizationTask) isTask()      {}

// FindGapsTask asks the scheduler agent for low-booking day/hour slots over
// the trailing 60 days.
type FindGapsTask struct{}

func (FindGapsTask) Type() string { return "find_gaps" }
func (FindGapsTask) isTask()      {}

// DetectChurnTask asks the client intelligence agent for at-risk customers
// and retention strategies.
type DetectChurnTask struct{}

func (DetectChurnTask) Type() string { return "detect_churn_risk" }
func (DetectChurnTask) isTask()      {}

// SegmentCustomersTask asks the client intelligence agent to bucket the
// customer base into value segments.
type SegmentCustomersTask struct{}

func (SegmentCustomersTask) Type() string { return "segment_customers" }
func (SegmentCustomersTask) isTask()      {}
