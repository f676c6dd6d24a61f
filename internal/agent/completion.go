package agent

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	openai "github.com/sashabaranov/go-openai"
)

// CompletionError is returned when every parameter variant of a completion
// call has failed. Attempts carries the error from each variant in order.
type CompletionError struct {
	Attempts error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("all completion attempts failed: %v", e.Attempts)
}

func (e *CompletionError) Unwrap() error { return e.Attempts }

// OpenAIClient generates text through an OpenAI-compatible chat completion API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	return NewOpenAIClientWithConfig(cfg, model)
}

// NewOpenAIClientWithConfig builds a client against a custom endpoint, used by
// tests and self-hosted backends.
func NewOpenAIClientWithConfig(cfg openai.ClientConfig, model string) *OpenAIClient {
	cfg.HTTPClient = &http.Client{Timeout: 60 * time.Second}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Complete sends one chat completion request. Backends disagree on the name
// of the output token cap, so the request is attempted with each known
// parameter variant in strict order: max_completion_tokens, then max_tokens,
// then no cap at all. Surrounding code fences are stripped from the reply.
func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int) (string, error) {
	base := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: temperature,
	}

	variants := []func(openai.ChatCompletionRequest) openai.ChatCompletionRequest{
		func(req openai.ChatCompletionRequest) openai.ChatCompletionRequest {
			req.MaxCompletionTokens = maxTokens
			return req
		},
		func(req openai.ChatCompletionRequest) openai.ChatCompletionRequest {
			req.MaxTokens = maxTokens
			return req
		},
		func(req openai.ChatCompletionRequest) openai.ChatCompletionRequest {
			return req
		},
	}

	var attempts error
	for _, variant := range variants {
		resp, err := c.client.CreateChatCompletion(ctx, variant(base))
		if err != nil {
			attempts = multierror.Append(attempts, err)
			continue
		}
		if len(resp.Choices) == 0 {
			attempts = multierror.Append(attempts, fmt.Errorf("completion returned no choices"))
			continue
		}
		return stripFences(resp.Choices[0].Message.Content), nil
	}
	return "", &CompletionError{Attempts: attempts}
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
