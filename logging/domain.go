package logging

import "time"

// withLogger prefixes every record with a fixed set of key/value pairs for
// Logger implementations that are not slog-backed.
type withLogger struct {
	base Logger
	args []any
}

func (w *withLogger) Debug(msg string, args ...any) { w.base.Debug(msg, append(w.args, args...)...) }
func (w *withLogger) Info(msg string, args ...any)  { w.base.Info(msg, append(w.args, args...)...) }
func (w *withLogger) Warn(msg string, args ...any)  { w.base.Warn(msg, append(w.args, args...)...) }
func (w *withLogger) Error(msg string, args ...any) { w.base.Error(msg, append(w.args, args...)...) }

// With returns a Logger that attaches the given key/value pairs to every
// record.
func With(l Logger, args ...any) Logger {
	if len(args) == 0 {
		return l
	}
	if s, ok := l.(*SlogAdapter); ok {
		return &SlogAdapter{Logger: s.Logger.With(args...)}
	}
	if _, ok := l.(NoOpLogger); ok {
		return l
	}
	return &withLogger{base: l, args: args}
}

// LLMCall logs one reasoning-provider round trip.
func LLMCall(l Logger, provider, model string, latency time.Duration, err error) {
	if err != nil {
		l.Error("llm call failed", "provider", provider, "model", model, "error", err)
		return
	}
	l.Debug("llm call completed",
		"provider", provider, "model", model, "latency_ms", latency.Milliseconds())
}

// WorkflowRun logs the outcome of one workflow run.
func WorkflowRun(l Logger, workflow, runID string, err error) {
	if err != nil {
		l.Error("workflow failed", "workflow", workflow, "error", err)
		return
	}
	l.Info("workflow completed", "workflow", workflow, "run_id", runID)
}
