package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salonmind/salonmind/core"
)

// Append implements core.ActionLog. The audit log is append-only; rows are
// never updated or deleted here.
func (s *Store) Append(ctx context.Context, action core.Action) error {
	if action.ID == "" {
		action.ID = uuid.NewString()
	}
	if action.CreatedAt.IsZero() {
		action.CreatedAt = time.Now().UTC()
	}

	outcome := action.Outcome
	if len(outcome) == 0 {
		outcome = []byte("null")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO agent_actions (id, agent_id, action_type, reasoning, outcome, confidence, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		action.ID, action.AgentID, action.ActionType, action.Reasoning,
		string(outcome), action.Confidence, action.CreatedAt)
	if err != nil {
		return fmt.Errorf("append agent action: %w", err)
	}
	return nil
}

// Recent implements core.ActionLog.
func (s *Store) Recent(ctx context.Context, agentID string, limit int) ([]core.Action, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id::TEXT, agent_id, action_type, COALESCE(reasoning, ''), outcome, confidence, created_at
		FROM agent_actions`
	args := []any{}
	if agentID != "" {
		query += ` WHERE agent_id = ?`
		args = append(args, agentID)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query agent actions: %w", err)
	}
	defer rows.Close()

	var actions []core.Action
	for rows.Next() {
		var (
			a       core.Action
			outcome []byte
		)
		if err := rows.Scan(&a.ID, &a.AgentID, &a.ActionType, &a.Reasoning,
			&outcome, &a.Confidence, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan agent action: %w", err)
		}
		a.Outcome = outcome
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
