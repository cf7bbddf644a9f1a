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

// AmveraClient — шлюз Amvera LLaMA. Формат заметно отличается от
// OpenAI-совместимых бэкендов: токен уходит в X-Auth-Token, сообщения несут
// поле text вместо content, а ответ лежит в alternatives[0].message.text.
type AmveraClient struct {
	token  string
	model  string
	base   string
	client *http.Client
}

func NewAmveraClient(token, model, base string) *AmveraClient {
	return &AmveraClient{
		token:  token,
		model:  model,
		base:   base,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type amveraMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type amveraRequest struct {
	Model    string          `json:"model"`
	Messages []amveraMessage `json:"messages"`
}

type amveraResponse struct {
	Alternatives []struct {
		Message struct {
			Role string `json:"role"`
			Text string `json:"text"`
		} `json:"message"`
	} `json:"alternatives"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (c *AmveraClient) Name() string { return "amvera" }

func (c *AmveraClient) Call(ctx context.Context, messages []Message) (string, error) {
	msgs := make([]amveraMessage, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, amveraMessage{Role: m.Role, Text: m.Content})
	}
	b, _ := json.Marshal(amveraRequest{Model: c.model, Messages: msgs})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/models/llama", bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Auth-Token", "Bearer "+c.token)

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

	var out amveraResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("amvera decode: %w", err)
	}
	if resp.StatusCode >= 400 {
		desc := out.Message
		if desc == "" {
			desc = out.Description
		}
		return "", fmt.Errorf("amvera status %d: %s", resp.StatusCode, desc)
	}
	if len(out.Alternatives) == 0 {
		return "", nil
	}
	return out.Alternatives[0].Message.Text, nil
}
