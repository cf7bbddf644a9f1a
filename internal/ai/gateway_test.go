package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMessages = []Message{
	{Role: "system", Content: "ты форматтер"},
	{Role: "user", Content: "TODAY=01.09.2026\nmeta\nhttps://e.org"},
}

func newTestGateway(limit int, providers ...Provider) *Gateway {
	g := NewGateway("zai", limit, providers...)
	g.baseDelay = time.Millisecond
	return g
}

func TestRetryOnTransientThenSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"(https://e.org 'meta')"}}]}`))
	}))
	defer srv.Close()

	g := newTestGateway(2, NewZaiClient("key", "glm-4.5-Flash", srv.URL))
	out := g.Invoke(context.Background(), "zai", testMessages)

	assert.Equal(t, "(https://e.org 'meta')", out)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNonTransientNoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	g := newTestGateway(2, NewZaiClient("key", "glm-4.5-Flash", srv.URL))
	out := g.Invoke(context.Background(), "zai", testMessages)

	assert.Equal(t, replyFail, out)
	assert.Equal(t, int32(1), calls.Load(), "не-транзиентная ошибка не ретраится")
}

func TestExhaustedRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := newTestGateway(2, NewZaiClient("key", "glm-4.5-Flash", srv.URL))
	out := g.Invoke(context.Background(), "zai", testMessages)

	assert.Equal(t, replyBusy, out)
	assert.Equal(t, int32(5), calls.Load())
}

func TestEmptyCompletionSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"  "}}]}`))
	}))
	defer srv.Close()

	g := newTestGateway(2, NewZaiClient("key", "glm-4.5-Flash", srv.URL))
	out := g.Invoke(context.Background(), "zai", testMessages)

	assert.Equal(t, replyEmpty, out)
}

func TestSemaphoreBoundsConcurrency(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := inFlight.Add(1)
		for {
			m := maxInFlight.Load()
			if cur <= m || maxInFlight.CompareAndSwap(m, cur) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		inFlight.Add(-1)
		w.Write([]byte(`{"choices":[{"message":{"content":"ок"}}]}`))
	}))
	defer srv.Close()

	g := newTestGateway(1, NewZaiClient("key", "glm-4.5-Flash", srv.URL))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Invoke(context.Background(), "zai", testMessages)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInFlight.Load(), "семафор должен ограничивать параллельные запросы")
}

func TestWatchdogTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	g := newTestGateway(1, NewZaiClient("key", "glm-4.5-Flash", srv.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	out := g.Invoke(ctx, "zai", testMessages)

	assert.Equal(t, replySlow, out)
	assert.Less(t, time.Since(start), time.Second)
}

func TestUnknownProviderFallsBackToDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"ответ"}}]}`))
	}))
	defer srv.Close()

	g := newTestGateway(1, NewZaiClient("key", "glm-4.5-Flash", srv.URL))
	out := g.Invoke(context.Background(), "нет-такого", testMessages)

	assert.Equal(t, "ответ", out)
	assert.True(t, g.Has("zai"))
	assert.False(t, g.Has("нет-такого"))
}

func TestNoProvidersAtAll(t *testing.T) {
	g := newTestGateway(1)
	assert.Equal(t, replyDown, g.Invoke(context.Background(), "zai", testMessages))
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, time.Duration(0), parseRetryAfter(""))
	assert.Equal(t, time.Duration(0), parseRetryAfter("не число"))
	assert.Equal(t, 3*time.Second, parseRetryAfter("3"))
	// слишком щедрую подсказку ограничиваем
	assert.Equal(t, 30*time.Second, parseRetryAfter("600"))
}

func TestAmveraResponseShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token123", r.Header.Get("X-Auth-Token"))
		w.Write([]byte(`{"alternatives":[{"message":{"role":"assistant","text":"llama ответ"}}]}`))
	}))
	defer srv.Close()

	c := NewAmveraClient("token123", "llama8b", srv.URL)
	out, err := c.Call(context.Background(), testMessages)
	require.NoError(t, err)
	assert.Equal(t, "llama ответ", out)
}

func TestAmveraErrorShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"model not found"}`))
	}))
	defer srv.Close()

	c := NewAmveraClient("token123", "llama8b", srv.URL)
	_, err := c.Call(context.Background(), testMessages)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}
