package ai

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net"
	"strings"
	"time"
)

// фиксированные ответы пользователю: наружу никогда не уходит сырая ошибка
const (
	replyBusy  = "Сервис перегружен. Попробуйте ещё раз позже."
	replySlow  = "Сервис отвечает дольше обычного. Попробуйте ещё раз."
	replyEmpty = "Извините, модель вернула пустой ответ."
	replyFail  = "Не удалось получить ответ от модели. Попробуйте ещё раз."
	replyDown  = "Сервис временно недоступен."
)

// Gateway — единая точка вызова LLM. Общий семафор ограничивает число
// одновременных запросов ко всем провайдерам, временные ошибки ретраятся
// с бэкоффом. Invoke никогда не возвращает ошибку: любой исход — строка,
// пригодная для отправки пользователю.
type Gateway struct {
	providers   map[string]Provider
	fallback    string
	sem         chan struct{}
	maxAttempts int
	baseDelay   time.Duration
}

func NewGateway(defaultProvider string, concurrencyLimit int, providers ...Provider) *Gateway {
	g := &Gateway{
		providers:   make(map[string]Provider, len(providers)),
		fallback:    defaultProvider,
		sem:         make(chan struct{}, concurrencyLimit),
		maxAttempts: 5,
		baseDelay:   1200 * time.Millisecond,
	}
	for _, p := range providers {
		g.providers[p.Name()] = p
	}
	return g
}

// Has — зарегистрирован ли провайдер с таким именем.
func (g *Gateway) Has(name string) bool {
	_, ok := g.providers[name]
	return ok
}

func (g *Gateway) pick(name string) Provider {
	if p, ok := g.providers[name]; ok {
		return p
	}
	return g.providers[g.fallback]
}

// Invoke отправляет диалог выбранному провайдеру (или провайдеру по
// умолчанию) и возвращает текст ответа либо фиксированную строку об ошибке.
func (g *Gateway) Invoke(ctx context.Context, provider string, messages []Message) string {
	p := g.pick(provider)
	if p == nil {
		log.Printf("[gateway] no provider for %q and no default", provider)
		return replyDown
	}

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		text, err := g.callOnce(ctx, p, messages)
		if err == nil {
			text = strings.TrimSpace(text)
			if text == "" {
				return replyEmpty
			}
			return text
		}

		// сторожевой таймаут воркера: ретраить поздно
		if ctx.Err() != nil {
			return replySlow
		}

		var te *TransientError
		switch {
		case errors.As(err, &te):
			log.Printf("[gateway] %s transient %d (attempt %d/%d)", p.Name(), te.Status, attempt, g.maxAttempts)
			if attempt < g.maxAttempts {
				g.sleep(ctx, g.backoff(attempt, te.RetryAfter))
				continue
			}
			return replyBusy

		case isTimeout(err):
			log.Printf("[gateway] %s timeout (attempt %d/%d): %v", p.Name(), attempt, g.maxAttempts, err)
			if attempt < g.maxAttempts {
				g.sleep(ctx, g.backoff(attempt, 0))
				continue
			}
			return replySlow

		default:
			log.Printf("[gateway] %s error: %v", p.Name(), err)
			return replyFail
		}
	}

	return replyBusy
}

func (g *Gateway) callOnce(ctx context.Context, p Provider, messages []Message) (string, error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-g.sem }()

	return p.Call(ctx, messages)
}

// backoff — задержка перед повтором: подсказка Retry-After, если апстрим её
// дал, иначе base*attempt; плюс джиттер, чтобы чаты не ретраили хором.
func (g *Gateway) backoff(attempt int, retryAfter time.Duration) time.Duration {
	d := retryAfter
	if d == 0 {
		d = g.baseDelay * time.Duration(attempt)
	}
	return d + time.Duration(rand.Int63n(int64(400*time.Millisecond)))
}

func (g *Gateway) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
