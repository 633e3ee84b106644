// Package store implements the core store interfaces on Postgres using bun.
// The business tables (customers, appointments) are owned by the booking
// system; this package only reads them. The agent_actions audit table is
// owned here and created by migrate.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/salonmind/salonmind/core"
)

// Store bundles the Postgres-backed implementations of core.ScheduleStore,
// core.CustomerStore and core.ActionLog. All queries run through the
// connection pool with the caller's context, so connections release on
// every exit path.
type Store struct {
	db *bun.DB
}

var (
	_ core.ScheduleStore = (*Store)(nil)
	_ core.CustomerStore = (*Store)(nil)
	_ core.ActionLog     = (*Store)(nil)
)

// Open connects to Postgres with the given DSN, verifies the connection and
// runs the audit-table migration.
func Open(ctx context.Context, dsn string) (*Store, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the bun handle for callers that need ad-hoc queries.
func (s *Store) DB() *bun.DB {
	return s.db
}

func (s *Store) migrate(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS agent_actions (
			id          UUID PRIMARY KEY,
			agent_id    TEXT NOT NULL,
			action_type TEXT NOT NULL,
			reasoning   TEXT,
			outcome     JSONB,
			confidence  DOUBLE PRECISION,
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_agent_actions_created
			ON agent_actions (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_agent_actions_agent
			ON agent_actions (agent_id, created_at DESC)`,
	}
	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}
