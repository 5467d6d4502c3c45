package llm

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"google.golang.org/genai"
)

// GeminiClient calls a Gemini model through the genai SDK.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiClient creates a lazily connected Gemini client. baseURL is optional and
// overrides the public endpoint.
func NewGeminiClient(apiKey, model, baseURL string, httpClient *http.Client) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		http:    httpClient,
	}
}

// genaiClient returns the shared SDK client, retrying creation until it succeeds.
func (c *GeminiClient) genaiClient(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	cfg := &genai.ClientConfig{
		APIKey:     c.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.http,
	}
	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}
	client, err := genai.NewClient(context.WithoutCancel(ctx), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	c.client = client
	return client, nil
}

// Complete runs a single-turn GenerateContent call and returns the reply text.
func (c *GeminiClient) Complete(ctx context.Context, p Prompt) (string, error) {
	if c.model == "" {
		return "", ErrModelNotConfigured
	}

	client, err := c.genaiClient(ctx)
	if err != nil {
		return "", err
	}

	temperature := float32(p.Temperature)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: int32(p.MaxTokens),
	}
	if p.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: p.System}}}
	}

	result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(p.User), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate %s: %w", c.model, err)
	}

	if result == nil || len(result.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	candidate := result.Candidates[0]
	if candidate.Content == nil {
		return "", ErrEmptyResponse
	}
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			return part.Text, nil
		}
	}
	return "", ErrEmptyResponse
}
