package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ZaiClient — клиент Z.AI (OpenAI-совместимый chat-completions API).
type ZaiClient struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

func NewZaiClient(apiKey, model, url string) *ZaiClient {
	return &ZaiClient{
		apiKey: apiKey,
		model:  model,
		url:    url,
		client: &http.Client{Timeout: 25 * time.Second},
	}
}

type zaiRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

type zaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *ZaiClient) Name() string { return "zai" }

func (c *ZaiClient) Call(ctx context.Context, messages []Message) (string, error) {
	b, _ := json.Marshal(zaiRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.1,
		Stream:      false,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if transientStatus(resp.StatusCode) {
		io.Copy(io.Discard, resp.Body)
		return "", &TransientError{
			Status:     resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("zai status %d: %s", resp.StatusCode, body)
	}

	var out zaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("zai decode: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", nil
	}
	return out.Choices[0].Message.Content, nil
}
