package core

import "context"

// ScheduleStore provides the appointment aggregates the scheduler agent
// analyzes. Implementations run read-only queries; errors propagate
// unmodified to the agent's caller.
type ScheduleStore interface {
	// DailyBookings returns per-day booking counts and revenue for the
	// trailing 30 days, restricted to completed and scheduled
	// appointments, newest day first.
	DailyBookings(ctx context.Context) ([]DailyBooking, error)

	// QuietSlots returns day-of-week × hour-of-day buckets from the
	// trailing 60 days with fewer than three bookings, quietest first,
	// capped at ten buckets.
	QuietSlots(ctx context.Context) ([]SlotCount, error)
}

// CustomerStore provides the customer views the client intelligence agent
// analyzes.
type CustomerStore interface {
	// AtRiskCustomers returns customers whose last visit lies strictly
	// between 45 and 120 days ago and who have at least three visits,
	// ordered by total spend descending, capped at ten.
	AtRiskCustomers(ctx context.Context) ([]Customer, error)

	// AllCustomers returns spend and visit totals for every customer,
	// for segmentation.
	AllCustomers(ctx context.Context) ([]CustomerValue, error)
}
