package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/salonmind/salonmind/core"
	"github.com/salonmind/salonmind/logging"
	"github.com/salonmind/salonmind/model"
)

const (
	// defaultMaxTokens caps the provider's generated output per reasoning
	// call. A configuration constant, never caller-controlled.
	defaultMaxTokens = 4000

	// taskPrefixLen bounds the task excerpt stored on "thinking" audit
	// records; reasoningPrefixLen bounds the reasoning excerpt the
	// concrete agents journal with their analyses.
	taskPrefixLen      = 100
	reasoningPrefixLen = 200

	// thinkingConfidence is the static heuristic attached to every
	// successful reasoning action.
	thinkingConfidence = 0.9
)

// BaseOptions configure the shared agent plumbing.
type BaseOptions struct {
	// MaxTokens overrides the per-call output ceiling. Zero keeps the
	// default.
	MaxTokens int64

	// Logger receives operational logging. Defaults to NoOpLogger.
	Logger logging.Logger
}

// BaseAgent bundles the identity, role, reasoning provider and audit log
// every concrete agent shares. It holds no mutable state after
// construction, so concurrent use from multiple requests is safe.
type BaseAgent struct {
	id           string
	role         string
	systemPrompt string
	completer    model.Completer
	actions      core.ActionLog
	maxTokens    int64
	logger       logging.Logger
}

// NewBaseAgent constructs the shared agent plumbing. It refuses to build
// without a completer or action log: a half-wired agent would fail on first
// use instead of at assembly time. systemPrompt may be empty, in which case
// SystemPrompt falls back to a generic one-line role statement.
func NewBaseAgent(
	id string,
	role string,
	systemPrompt string,
	completer model.Completer,
	actions core.ActionLog,
	optFns ...func(o *BaseOptions),
) (BaseAgent, error) {
	opts := BaseOptions{
		MaxTokens: defaultMaxTokens,
		Logger:    logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	if id == "" {
		return BaseAgent{}, errors.New("agent id is required")
	}
	if completer == nil {
		return BaseAgent{}, fmt.Errorf("agent %s: completer is required", id)
	}
	if actions == nil {
		return BaseAgent{}, fmt.Errorf("agent %s: action log is required", id)
	}

	return BaseAgent{
		id:           id,
		role:         role,
		systemPrompt: systemPrompt,
		completer:    completer,
		actions:      actions,
		maxTokens:    opts.MaxTokens,
		logger:       logging.With(opts.Logger, "agent_id", id),
	}, nil
}

// ID returns the unique agent identity.
func (b *BaseAgent) ID() string { return b.id }

// Role returns the agent's role description.
func (b *BaseAgent) Role() string { return b.role }

// SystemPrompt returns the agent's role brief, or a generic statement when
// the concrete agent supplied none.
func (b *BaseAgent) SystemPrompt() string {
	if b.systemPrompt != "" {
		return b.systemPrompt
	}
	return fmt.Sprintf("You are %s. Analyze data and provide actionable insights.", b.role)
}

// Logger returns the agent's logger.
func (b *BaseAgent) Logger() logging.Logger { return b.logger }

// Think sends the task plus serialized context to the reasoning provider
// and returns the narrated result with the observed latency.
//
// Every call journals exactly one audit action: on success a "thinking"
// record carrying the result, on provider failure a record carrying the
// failure reasoning. The audit write itself is best-effort and never fails
// the call.
func (b *BaseAgent) Think(ctx context.Context, task string, contextData any) (*core.ReasoningResult, error) {
	user := task
	if contextData != nil {
		user = task + "\n\nContext:\n" + serializeContext(contextData)
	}

	b.logger.Debug("agent thinking")

	info := b.completer.Info()
	comp, err := b.completer.Complete(ctx, model.Request{
		System:    b.SystemPrompt(),
		User:      user,
		MaxTokens: b.maxTokens,
	})
	if err != nil {
		logging.LLMCall(b.logger, info.Provider, info.Name, 0, err)
		b.LogAction(ctx, "thinking",
			fmt.Sprintf("Task: %s | failed: %v", truncate(task, taskPrefixLen), err),
			nil, nil)
		return nil, fmt.Errorf("agent %s: reasoning call: %w", b.id, err)
	}
	logging.LLMCall(b.logger, info.Provider, info.Name, comp.Latency, nil)

	result := &core.ReasoningResult{
		Reasoning:       comp.Text,
		Agent:           b.id,
		Timestamp:       time.Now().UTC(),
		ExecutionTimeMS: comp.Latency.Milliseconds(),
	}

	confidence := thinkingConfidence
	b.LogAction(ctx, "thinking", "Task: "+truncate(task, taskPrefixLen), result, &confidence)

	return result, nil
}

// LogAction appends an audit record. Failures are logged and swallowed:
// the audit trail is observability, not a transactional requirement, and
// must never break the operation that produced it.
func (b *BaseAgent) LogAction(ctx context.Context, actionType, reasoning string, outcome any, confidence *float64) {
	action := core.Action{
		AgentID:    b.id,
		ActionType: actionType,
		Reasoning:  reasoning,
		Outcome:    marshalOutcome(outcome),
		Confidence: confidence,
		CreatedAt:  time.Now().UTC(),
	}

	if err := b.actions.Append(ctx, action); err != nil {
		b.logger.Warn("could not record agent action",
			"action_type", actionType, "error", err)
	}
}

// serializeContext renders the analysis context as indented JSON for the
// provider. Typed context structs keep field order stable across calls.
func serializeContext(v any) string {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(pretty)
}

func marshalOutcome(outcome any) json.RawMessage {
	if outcome == nil {
		return nil
	}
	payload, err := json.Marshal(outcome)
	if err != nil {
		quoted, _ := json.Marshal(fmt.Sprint(outcome))
		return quoted
	}
	return payload
}

// truncate bounds s to at most n bytes. Audit excerpts are ASCII-ish
// prose, so byte truncation is fine.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
