package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient talks to any OpenAI-compatible chat-completions endpoint.
type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient creates a client. An empty endpoint uses the default
// OpenAI API base URL.
func NewOpenAIClient(endpoint, apiKey, model string, logger *zap.Logger) *OpenAIClient {
	clientConfig := openai.DefaultConfig(apiKey)
	if endpoint != "" {
		clientConfig.BaseURL = strings.TrimSuffix(endpoint, "/")
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger.Named("llm-openai"),
	}
}

func (c *OpenAIClient) GenerateResponse(ctx context.Context, prompt, systemMessage string, params SamplingParams) (string, error) {
	messages := []openai.ChatCompletionMessage{}
	if systemMessage != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemMessage,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: float32(params.Temperature),
	}
	if params.MaxTokens > 0 {
		req.MaxTokens = params.MaxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Warn("chat completion failed", zap.Error(err))
		return "", ClassifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
