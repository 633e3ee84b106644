package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/salonmind/salonmind/core"
)

// AtRiskCustomers implements core.CustomerStore. The 45 to 120 day recency
// window keeps recent regulars and long-gone customers out of the candidate
// set; the visit floor filters one-off walk-ins.
func (s *Store) AtRiskCustomers(ctx context.Context) ([]core.Customer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT
			c.id::TEXT,
			c.name,
			c.email,
			c.phone,
			EXTRACT(DAY FROM (CURRENT_DATE - c.last_visit))::INTEGER AS days_since_visit,
			c.total_visits,
			c.total_spent,
			c.preferred_services
		FROM customers c
		WHERE c.last_visit < CURRENT_DATE - INTERVAL '45 days'
		  AND c.last_visit >= CURRENT_DATE - INTERVAL '120 days'
		  AND c.total_visits >= 3
		ORDER BY c.total_spent DESC
		LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("query at-risk customers: %w", err)
	}
	defer rows.Close()

	var customers []core.Customer
	for rows.Next() {
		var (
			c                       core.Customer
			email, phone, preferred sql.NullString
		)
		if err := rows.Scan(
			&c.ID, &c.Name, &email, &phone,
			&c.DaysSinceVisit, &c.TotalVisits, &c.TotalSpent, &preferred,
		); err != nil {
			return nil, fmt.Errorf("scan at-risk customer: %w", err)
		}
		c.Email = email.String
		c.Phone = phone.String
		c.PreferredServices = preferred.String
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// AllCustomers implements core.CustomerStore.
func (s *Store) AllCustomers(ctx context.Context) ([]core.CustomerValue, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT COALESCE(total_spent, 0), COALESCE(total_visits, 0) FROM customers`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var values []core.CustomerValue
	for rows.Next() {
		var v core.CustomerValue
		if err := rows.Scan(&v.TotalSpent, &v.TotalVisits); err != nil {
			return nil, fmt.Errorf("scan customer value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
