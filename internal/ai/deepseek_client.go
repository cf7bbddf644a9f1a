package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// DeepseekClient — DeepSeek говорит на OpenAI-совместимом протоколе,
// поэтому используем тот же клиент с другим BaseURL.
type DeepseekClient struct {
	client *openai.Client
	model  string
}

func NewDeepseekClient(apiKey, model, baseURL string) *DeepseekClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &DeepseekClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *DeepseekClient) Name() string { return "deepseek" }

func (c *DeepseekClient) Call(ctx context.Context, messages []Message) (string, error) {
	return compatCall(ctx, c.client, c.model, messages)
}
