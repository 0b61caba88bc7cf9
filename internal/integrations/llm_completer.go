package integrations

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/julianshen/repolens/internal/provider"
)

// LLMCompleter wraps an LLMProvider to turn a prompt into a single response.
type LLMCompleter struct {
	provider    provider.LLMProvider
	model       string
	temperature float64
	logger      *slog.Logger
}

// NewLLMCompleter creates a new LLMCompleter.
func NewLLMCompleter(p provider.LLMProvider, model string, temperature float64) *LLMCompleter {
	return &LLMCompleter{
		provider:    p,
		model:       model,
		temperature: temperature,
		logger:      slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger used for request tracing.
func (c *LLMCompleter) SetLogger(l *slog.Logger) {
	if l != nil {
		c.logger = l
	}
}

// Model returns the model identifier requests are sent to.
func (c *LLMCompleter) Model() string {
	return c.model
}

// Complete sends prompt as one user message and returns the response text.
func (c *LLMCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	req := provider.CompletionRequest{
		Model:       c.model,
		Messages:    []provider.Message{provider.NewUserMessage(prompt)},
		Temperature: provider.Temperature(c.temperature),
	}

	c.logger.Debug("llm request", "model", c.model, "prompt_bytes", len(prompt), "temperature", c.temperature)
	resp, err := c.provider.Complete(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm complete: %w", err)
	}
	if resp == nil || resp.Text == "" {
		return "", fmt.Errorf("llm complete: %w", provider.ErrEmptyResponse)
	}
	c.logger.Debug("llm response",
		"model", resp.Model,
		"finish_reason", resp.FinishReason,
		"input_tokens", resp.InputTokens,
		"output_tokens", resp.OutputTokens,
	)

	return resp.Text, nil
}
