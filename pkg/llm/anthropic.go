package llm

import (
	"context"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"
	"go.uber.org/zap"
)

// AnthropicClient talks to the Anthropic Messages API.
type AnthropicClient struct {
	client *anthropic.Client
	model  string
	logger *zap.Logger
}

var _ Client = (*AnthropicClient)(nil)

// NewAnthropicClient creates a client for the given model.
func NewAnthropicClient(apiKey, model string, logger *zap.Logger) *AnthropicClient {
	return &AnthropicClient{
		client: anthropic.NewClient(apiKey),
		model:  model,
		logger: logger.Named("llm-anthropic"),
	}
}

func (c *AnthropicClient) GenerateResponse(ctx context.Context, prompt, systemMessage string, params SamplingParams) (string, error) {
	maxTokens := params.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	temperature := float32(params.Temperature)

	req := anthropic.MessagesRequest{
		Model:       anthropic.Model(c.model),
		MaxTokens:   maxTokens,
		System:      systemMessage,
		Temperature: &temperature,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					{Type: anthropic.MessagesContentTypeText, Text: &prompt},
				},
			},
		},
	}

	resp, err := c.client.CreateMessages(ctx, req)
	if err != nil {
		c.logger.Warn("message request failed", zap.Error(err))
		return "", ClassifyError(err)
	}
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			return *block.Text, nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}
