package store

import (
	"context"
	"fmt"

	"github.com/salonmind/salonmind/core"
)

// DailyBookings implements core.ScheduleStore.
func (s *Store) DailyBookings(ctx context.Context) ([]core.DailyBooking, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT
			DATE(scheduled_date) AS date,
			COUNT(*) AS count,
			COALESCE(SUM(total_amount), 0) AS revenue
		FROM appointments
		WHERE scheduled_date >= CURRENT_DATE - INTERVAL '30 days'
		  AND scheduled_date <= CURRENT_DATE
		  AND status IN ('completed', 'scheduled')
		GROUP BY DATE(scheduled_date)
		ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query daily bookings: %w", err)
	}
	defer rows.Close()

	var days []core.DailyBooking
	for rows.Next() {
		var d core.DailyBooking
		if err := rows.Scan(&d.Date, &d.Count, &d.Revenue); err != nil {
			return nil, fmt.Errorf("scan daily booking: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// QuietSlots implements core.ScheduleStore.
func (s *Store) QuietSlots(ctx context.Context) ([]core.SlotCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT
			EXTRACT(DOW FROM scheduled_date)::INTEGER AS day_of_week,
			EXTRACT(HOUR FROM start_time)::INTEGER AS hour,
			COUNT(*) AS bookings
		FROM appointments
		WHERE scheduled_date >= CURRENT_DATE - INTERVAL '60 days'
		GROUP BY day_of_week, hour
		HAVING COUNT(*) < 3
		ORDER BY bookings ASC
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("query quiet slots: %w", err)
	}
	defer rows.Close()

	var slots []core.SlotCount
	for rows.Next() {
		var sc core.SlotCount
		if err := rows.Scan(&sc.DayOfWeek, &sc.Hour, &sc.Bookings); err != nil {
			return nil, fmt.Errorf("scan quiet slot: %w", err)
		}
		slots = append(slots, sc)
	}
	return slots, rows.Err()
}
