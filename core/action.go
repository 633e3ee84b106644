package core

import (
	"context"
	"encoding/json"
	"time"
)

// Action is the append-only audit record written for every reasoning step
// and completed analysis an agent performs. Rows are never updated or
// deleted. Confidence is a static per-action-type heuristic, not calibrated
// from observed outcomes; it is nil when the action has no meaningful
// confidence (e.g. a failed reasoning call).
type Action struct {
	ID         string          `json:"id"`
	AgentID    string          `json:"agent_id"`
	ActionType string          `json:"action_type"`
	Reasoning  string          `json:"reasoning"`
	Outcome    json.RawMessage `json:"outcome,omitempty"`
	Confidence *float64        `json:"confidence,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ActionLog is the audit trail the agents write to. Append is called on a
// best-effort basis: the agents warn and continue when it fails, so
// implementations should not assume their errors stop anything.
type ActionLog interface {
	Append(ctx context.Context, action Action) error

	// Recent returns the newest actions, most recent first. An empty
	// agentID returns actions across all agents.
	Recent(ctx context.Context, agentID string, limit int) ([]Action, error)
}
