// Package openai provides a model.Completer backed by the OpenAI Chat
// Completions API. It is the alternate provider; selection happens in the
// application config.
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/salonmind/salonmind/model"
)

// Options configure the OpenAI adapter. Fields mirror a minimal subset of
// Chat Completion parameters; extend via functional options without breaking
// callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64

	// APIKey overrides the OPENAI_API_KEY environment variable.
	APIKey string
}

// Completer wraps the OpenAI Chat Completions API behind the model.Completer
// interface.
type Completer struct {
	client *openai.Client
	opts   Options
}

// New creates an OpenAI completer using the official client. The client reads
// OPENAI_API_KEY from the environment unless Options.APIKey is set.
func New(optFns ...func(o *Options)) *Completer {
	opts := applyOptions(optFns)

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := openai.NewClient(clientOpts...)
	return &Completer{client: &client, opts: opts}
}

// NewFromClient creates an OpenAI completer from an existing client.
// Options.APIKey is ignored here; credentials belong to the client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Completer {
	return &Completer{client: client, opts: applyOptions(optFns)}
}

func applyOptions(optFns []func(o *Options)) Options {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

// Complete implements model.Completer with a single-turn, non-streaming
// chat completion.
func (c *Completer) Complete(ctx context.Context, req model.Request) (*model.Completion, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.opts.MaxCompletionTokens
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.User))

	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               c.opts.Model,
		Temperature:         openai.Float(c.opts.Temperature),
		MaxCompletionTokens: openai.Int(maxTokens),
	}

	start := time.Now()
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: no choices returned")
	}

	return &model.Completion{
		Text:    resp.Choices[0].Message.Content,
		Latency: time.Since(start),
	}, nil
}

// Info returns metadata describing this OpenAI completer.
func (c *Completer) Info() model.Info {
	return model.Info{
		Name:     c.opts.Model,
		Provider: "openai",
	}
}
