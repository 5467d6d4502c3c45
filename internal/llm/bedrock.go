package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const anthropicVersion = "bedrock-2023-05-31"

type bedrockAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockClient invokes an Anthropic model through the Bedrock runtime.
// The underlying SDK client is created on first successful use and shared afterwards.
type BedrockClient struct {
	modelID string
	region  string

	mu     sync.Mutex
	api    bedrockAPI
	newAPI func(ctx context.Context) (bedrockAPI, error)
}

func NewBedrockClient(modelID, region string) *BedrockClient {
	c := &BedrockClient{
		modelID: modelID,
		region:  region,
	}
	c.newAPI = c.loadAPI
	return c
}

func newBedrockClientWithAPI(modelID string, api bedrockAPI) *BedrockClient {
	return &BedrockClient{modelID: modelID, api: api}
}

func (c *BedrockClient) loadAPI(ctx context.Context) (bedrockAPI, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return bedrockruntime.NewFromConfig(cfg), nil
}

// client returns the shared SDK client. Only a successful load is kept, so a failed
// attempt is retried on the next call.
func (c *BedrockClient) client(ctx context.Context) (bedrockAPI, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.api != nil {
		return c.api, nil
	}
	api, err := c.newAPI(context.WithoutCancel(ctx))
	if err != nil {
		return nil, err
	}
	c.api = api
	return api, nil
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	System           string             `json:"system,omitempty"`
	Messages         []anthropicMessage `json:"messages"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float64            `json:"temperature"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

// Complete sends the prompt using the Anthropic messages schema and returns the first
// text block of the reply.
func (c *BedrockClient) Complete(ctx context.Context, p Prompt) (string, error) {
	if c.modelID == "" {
		return "", ErrModelNotConfigured
	}

	api, err := c.client(ctx)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(anthropicRequest{
		AnthropicVersion: anthropicVersion,
		System:           p.System,
		Messages: []anthropicMessage{{
			Role:    "user",
			Content: []anthropicContent{{Type: "text", Text: p.User}},
		}},
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("encode bedrock payload: %w", err)
	}

	out, err := api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        payload,
	})
	if err != nil {
		return "", fmt.Errorf("bedrock invoke %s: %w", c.modelID, err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("decode bedrock response: %w", err)
	}

	for _, block := range resp.Content {
		if block.Type == "" || block.Type == "text" {
			if block.Text != "" {
				return block.Text, nil
			}
		}
	}
	return "", ErrEmptyResponse
}
