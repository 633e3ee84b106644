package core

import "context"

// Well-known agent identities. The coordinator's workflows look agents up by
// these IDs, so concrete agents must register under them.
const (
	AgentIDScheduler   = "scheduler-001"
	AgentIDClientIntel = "client-intel-001"
)

// Agent is the contract every salonmind analysis agent implements.
//
// Agents are stateless beyond their construction-time identity, role and
// dependencies, so a single instance is safe for concurrent Execute calls.
// Every reasoning step an agent performs is journaled as an Action through
// the ActionLog it was constructed with.
type Agent interface {
	// ID returns the unique agent identity (e.g. "scheduler-001").
	ID() string

	// Role returns the free-text role description used to seed the
	// reasoning provider's system prompt.
	Role() string

	// SystemPrompt returns the role brief sent as the system prompt on
	// every reasoning call.
	SystemPrompt() string

	// Execute dispatches on the task variant to one of the agent's named
	// analyses. A task outside the agent's set returns an error wrapping
	// ErrUnknownTask; no audit record is written in that case.
	Execute(ctx context.Context, task Task) (Result, error)
}
