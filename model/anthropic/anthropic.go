// Package anthropic provides a model.Completer backed by the Anthropic
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/salonmind/salonmind/core"
	"github.com/salonmind/salonmind/model"
)

const apiKeyEnv = "ANTHROPIC_API_KEY"

// Options configures the Anthropic adapter (model id, temperature, default
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Completer wraps the Anthropic Messages API behind the model.Completer
// interface.
type Completer struct {
	client *anthropic.Client
	opts   Options
}

// New creates an Anthropic completer using the official client. It refuses
// to build without a credential: a nil-credential adapter would fail on
// first use instead of at assembly time.
func New(optFns ...func(o *Options)) (*Completer, error) {
	opts := Options{
		Model:       anthropic.ModelClaudeSonnet4_20250514,
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.APIKey == "" {
		opts.APIKey = os.Getenv(apiKeyEnv)
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("anthropic: %w: %s is not set", core.ErrMissingAPIKey, apiKeyEnv)
	}

	client := anthropic.NewClient(option.WithAPIKey(opts.APIKey))

	return &Completer{client: &client, opts: opts}, nil
}

// NewFromClient creates an Anthropic completer from an existing client.
func NewFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Completer {
	opts := Options{
		Model:       anthropic.ModelClaudeSonnet4_20250514,
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Completer{client: client, opts: opts}
}

// Complete implements model.Completer with a single-turn, non-streaming
// Messages call.
func (c *Completer) Complete(ctx context.Context, req model.Request) (*model.Completion, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.opts.MaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:       c.opts.Model,
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(c.opts.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	start := time.Now()
	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.AsText().Text)
		}
	}

	return &model.Completion{
		Text:    text.String(),
		Latency: time.Since(start),
	}, nil
}

// Info returns metadata describing this Anthropic completer.
func (c *Completer) Info() model.Info {
	return model.Info{
		Name:     string(c.opts.Model),
		Provider: "anthropic",
	}
}
