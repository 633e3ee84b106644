package agent

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonmind/salonmind/core"
	"github.com/salonmind/salonmind/model"
)

// memActionLog records appended actions in memory.
type memActionLog struct {
	mu        sync.Mutex
	actions   []core.Action
	appendErr error
}

func (m *memActionLog) Append(_ context.Context, action core.Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	m.actions = append(m.actions, action)
	return nil
}

func (m *memActionLog) Recent(_ context.Context, agentID string, limit int) ([]core.Action, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Action, 0, len(m.actions))
	for i := len(m.actions) - 1; i >= 0; i-- {
		if agentID != "" && m.actions[i].AgentID != agentID {
			continue
		}
		out = append(out, m.actions[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memActionLog) all() []core.Action {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Action, len(m.actions))
	copy(out, m.actions)
	return out
}

func TestNewBaseAgent(t *testing.T) {
	completer := model.NewMockCompleter()
	actions := &memActionLog{}

	t.Run("constructs with defaults", func(t *testing.T) {
		base, err := NewBaseAgent("agent-1", "Test Agent", "", completer, actions)
		require.NoError(t, err)

		assert.Equal(t, "agent-1", base.ID())
		assert.Equal(t, "Test Agent", base.Role())
	})

	t.Run("requires an id", func(t *testing.T) {
		_, err := NewBaseAgent("", "Test Agent", "", completer, actions)
		assert.Error(t, err)
	})

	t.Run("requires a completer", func(t *testing.T) {
		_, err := NewBaseAgent("agent-1", "Test Agent", "", nil, actions)
		assert.Error(t, err)
	})

	t.Run("requires an action log", func(t *testing.T) {
		_, err := NewBaseAgent("agent-1", "Test Agent", "", completer, nil)
		assert.Error(t, err)
	})
}

func TestBaseAgentSystemPrompt(t *testing.T) {
	completer := model.NewMockCompleter()
	actions := &memActionLog{}

	t.Run("returns the configured prompt", func(t *testing.T) {
		base, err := NewBaseAgent("agent-1", "Test Agent", "You are a test fixture.", completer, actions)
		require.NoError(t, err)

		assert.Equal(t, "You are a test fixture.", base.SystemPrompt())
	})

	t.Run("falls back to a generic role statement", func(t *testing.T) {
		base, err := NewBaseAgent("agent-1", "Test Agent", "", completer, actions)
		require.NoError(t, err)

		assert.Equal(t, "You are Test Agent. Analyze data and provide actionable insights.", base.SystemPrompt())
	})
}

func TestBaseAgentThink(t *testing.T) {
	t.Run("journals exactly one thinking action on success", func(t *testing.T) {
		completer := model.NewMockCompleter()
		actions := &memActionLog{}
		base, err := NewBaseAgent("agent-1", "Test Agent", "", completer, actions)
		require.NoError(t, err)

		result, err := base.Think(context.Background(), "Summarize the data.", map[string]int{"rows": 3})
		require.NoError(t, err)
		assert.Equal(t, "agent-1", result.Agent)
		assert.NotEmpty(t, result.Reasoning)

		recorded := actions.all()
		require.Len(t, recorded, 1)
		assert.Equal(t, "thinking", recorded[0].ActionType)
		assert.Equal(t, "Task: Summarize the data.", recorded[0].Reasoning)
		require.NotNil(t, recorded[0].Confidence)
		assert.InDelta(t, 0.9, *recorded[0].Confidence, 1e-9)
	})

	t.Run("sends the system prompt and serialized context", func(t *testing.T) {
		completer := model.NewMockCompleter()
		actions := &memActionLog{}
		base, err := NewBaseAgent("agent-1", "Test Agent", "You are a test fixture.", completer, actions)
		require.NoError(t, err)

		_, err = base.Think(context.Background(), "Summarize the data.", map[string]int{"rows": 3})
		require.NoError(t, err)

		calls := completer.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, "You are a test fixture.", calls[0].System)
		assert.Contains(t, calls[0].User, "Summarize the data.")
		assert.Contains(t, calls[0].User, `"rows": 3`)
	})

	t.Run("journals the failure and returns the error", func(t *testing.T) {
		completer := model.NewMockCompleter()
		completer.FailWith(errors.New("provider down"))
		actions := &memActionLog{}
		base, err := NewBaseAgent("agent-1", "Test Agent", "", completer, actions)
		require.NoError(t, err)

		_, err = base.Think(context.Background(), "Summarize the data.", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "provider down")

		recorded := actions.all()
		require.Len(t, recorded, 1)
		assert.Equal(t, "thinking", recorded[0].ActionType)
		assert.Contains(t, recorded[0].Reasoning, "failed: provider down")
		assert.Nil(t, recorded[0].Confidence)
	})

	t.Run("truncates long task excerpts", func(t *testing.T) {
		completer := model.NewMockCompleter()
		actions := &memActionLog{}
		base, err := NewBaseAgent("agent-1", "Test Agent", "", completer, actions)
		require.NoError(t, err)

		long := strings.Repeat("x", 500)
		_, err = base.Think(context.Background(), long, nil)
		require.NoError(t, err)

		recorded := actions.all()
		require.Len(t, recorded, 1)
		assert.Equal(t, "Task: "+long[:100], recorded[0].Reasoning)
	})

	t.Run("swallows audit failures", func(t *testing.T) {
		completer := model.NewMockCompleter()
		actions := &memActionLog{appendErr: errors.New("db down")}
		base, err := NewBaseAgent("agent-1", "Test Agent", "", completer, actions)
		require.NoError(t, err)

		result, err := base.Think(context.Background(), "Summarize the data.", nil)
		require.NoError(t, err)
		assert.NotEmpty(t, result.Reasoning)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "", truncate("", 4))
}
