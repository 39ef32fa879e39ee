// Package ai wraps the language model used to draft bid stage content.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/tenderdesk/tenderdesk/internal/domain"
)

const serviceName = "ai"

var ErrNotConfigured = errors.New("ai completion is not configured")

type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type Client struct {
	llm         llms.Model
	temperature float64
	maxTokens   int
}

// NewOpenAIClient builds a completer on an OpenAI compatible endpoint. An
// empty baseURL targets api.openai.com.
func NewOpenAIClient(baseURL, apiKey, model string) (*Client, error) {
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("creating openai client: %w", err)
	}
	return NewClient(llm), nil
}

func NewClient(llm llms.Model) *Client {
	return &Client{llm: llm, temperature: 0.2, maxTokens: 2048}
}

func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.llm.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userPrompt),
	}, llms.WithTemperature(c.temperature), llms.WithMaxTokens(c.maxTokens))
	if err != nil {
		return "", &domain.ExternalServiceError{Service: serviceName, Err: err}
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return "", &domain.ExternalServiceError{Service: serviceName, Err: errors.New("empty completion")}
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}

// Unconfigured is used when no API key is set; every call fails as an
// upstream error so callers surface a retryable 502.
type Unconfigured struct{}

func (Unconfigured) Complete(context.Context, string, string) (string, error) {
	return "", &domain.ExternalServiceError{Service: serviceName, Err: ErrNotConfigured}
}
