package ai

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Message — одно сообщение диалога в формате chat-completion.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider — адаптер одного LLM-бэкенда. Разбор ответа конкретного API
// целиком спрятан внутри адаптера: наружу уходит только текст или ошибка.
type Provider interface {
	Name() string
	Call(ctx context.Context, messages []Message) (string, error)
}

// TransientError — временная ошибка апстрима (429/502/503/504, таймаут чтения).
// Gateway ретраит такие ошибки с бэкоффом.
type TransientError struct {
	Status     int
	RetryAfter time.Duration
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient upstream error: status %d", e.Status)
}

func transientStatus(code int) bool {
	switch code {
	case 429, 502, 503, 504:
		return true
	}
	return false
}

// parseRetryAfter понимает только секунды; дату-время игнорируем.
func parseRetryAfter(header string) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs <= 0 {
		return 0
	}
	if secs > 30 {
		secs = 30
	}
	return time.Duration(secs) * time.Second
}
