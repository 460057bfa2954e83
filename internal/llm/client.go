// Package llm provides the model-client abstraction used by the screening
// pipeline, with a Google Gemini implementation.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GenerateOptions holds per-call generation settings. Extraction and
// scoring use different temperatures and token limits.
type GenerateOptions struct {
	Temperature float32
	MaxTokens   int32
}

// Client is an abstraction over LLM providers.
type Client interface {
	// Generate produces a raw text reply for the prompt, synchronously.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// ProviderError reports a failed round-trip to the model provider
// (network, auth, quota). It is fatal for the call; nothing retries it.
type ProviderError struct {
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("model provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("model provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client      *genai.Client
	model       string
	callTimeout time.Duration
}

// NewGeminiClient creates a Gemini-backed client. Every Generate call is
// bounded by callTimeout; a zero value defaults to 60 seconds.
func NewGeminiClient(ctx context.Context, apiKey, model string, callTimeout time.Duration) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &ProviderError{Message: "API key is required"}
	}
	if model == "" {
		return nil, &ProviderError{Message: "model name is required"}
	}
	if callTimeout <= 0 {
		callTimeout = 60 * time.Second
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &ProviderError{Message: "failed to create Gemini client", Cause: err}
	}

	return &GeminiClient{
		client:      client,
		model:       model,
		callTimeout: callTimeout,
	}, nil
}

// Generate produces a raw text reply for the prompt.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(opts.Temperature)
	if opts.MaxTokens > 0 {
		model.SetMaxOutputTokens(opts.MaxTokens)
	}

	ctx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &ProviderError{Message: "failed to generate content", Cause: err}
	}

	return extractTextFromResponse(resp)
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &ProviderError{Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &ProviderError{Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &ProviderError{Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
