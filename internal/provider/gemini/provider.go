// Package gemini adapts the Google Gen AI SDK to provider.LLMProvider.
package gemini

import (
	"context"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"github.com/julianshen/repolens/internal/provider"
)

func init() {
	provider.RegisterProvider("gemini", func(baseURL, apiKey string, _ map[string]string) (provider.LLMProvider, error) {
		return New(context.Background(), baseURL, apiKey)
	})
}

// Provider implements the LLMProvider interface for the Gemini API.
type Provider struct {
	models *genai.Models
}

// New creates a Gemini provider. An empty baseURL uses the SDK default.
func New(ctx context.Context, baseURL, apiKey string) (*Provider, error) {
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	cli, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Provider{models: cli.Models}, nil
}

// Complete issues a single GenerateContent call.
func (p *Provider) Complete(ctx context.Context, req provider.CompletionRequest) (*provider.CompletionResponse, error) {
	var contents []*genai.Content
	for _, msg := range req.Messages {
		role := string(genai.RoleUser)
		if msg.Role == "assistant" {
			role = string(genai.RoleModel)
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content}},
		})
	}

	gcc := &genai.GenerateContentConfig{}
	if req.Temperature != nil {
		gcc.Temperature = genai.Ptr(float32(*req.Temperature))
	}

	resp, err := p.models.GenerateContent(ctx, req.Model, contents, gcc)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, provider.ErrEmptyResponse
	}

	cand := resp.Candidates[0]
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if b.Len() == 0 {
		return nil, provider.ErrEmptyResponse
	}

	out := &provider.CompletionResponse{
		Text:         b.String(),
		Model:        resp.ModelVersion,
		FinishReason: string(cand.FinishReason),
	}
	if resp.UsageMetadata != nil {
		out.InputTokens = int(resp.UsageMetadata.PromptTokenCount)
		out.OutputTokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	return out, nil
}
