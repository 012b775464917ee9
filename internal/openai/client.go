// Package openai provides a thin wrapper around the OpenAI chat API for the
// classification and drafting tasks. Completions are requested in JSON mode
// so callers can unmarshal results directly. A circuit breaker sits in front
// of the API: once the service starts failing, calls short-circuit
// immediately and callers drop to their deterministic fallbacks instead of
// waiting out timeouts.
package openai

import (
	"context"
	"fmt"
	"time"

	"triage/internal/config"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

// Client wraps the OpenAI API client with a per-call timeout and a circuit
// breaker shared by all tasks.
type Client struct {
	api     *openai.Client
	breaker *gobreaker.CircuitBreaker
	model   string
	timeout time.Duration
}

// NewClient creates a new OpenAI client from configuration. It returns an
// error when no API key is configured; callers may then run on fallbacks
// alone.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("no OpenAI provider configured: set OPENAI_API_KEY")
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "openai",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		api:     openai.NewClient(cfg.OpenAIKey),
		breaker: breaker,
		model:   cfg.OpenAIModel,
		timeout: time.Duration(cfg.OpenAITimeout) * time.Second,
	}, nil
}

// CompleteJSON sends a system/user prompt pair and returns the raw JSON
// content of the first choice.
func (c *Client) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no response from OpenAI")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

// Model returns the chat model name in use.
func (c *Client) Model() string {
	return c.model
}
