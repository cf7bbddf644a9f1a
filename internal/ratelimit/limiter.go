package ratelimit

import (
	"sync"
	"time"
)

// сколько чатов держим в журнале до принудительной чистки
const maxEntries = 100_000

// Limiter — кулдаун на чат: сообщения, пришедшие чаще, молча отбрасываются.
type Limiter struct {
	mu       sync.Mutex
	cooldown time.Duration
	lastUsed map[int64]time.Time
	now      func() time.Time
}

func New(cooldown time.Duration) *Limiter {
	return &Limiter{
		cooldown: cooldown,
		lastUsed: make(map[int64]time.Time),
		now:      time.Now,
	}
}

// Allow возвращает true, если кулдаун чата прошёл, и фиксирует обращение.
func (l *Limiter) Allow(chatID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.lastUsed[chatID]; ok && now.Sub(last) < l.cooldown {
		return false
	}

	if len(l.lastUsed) >= maxEntries {
		l.sweep(now)
	}

	l.lastUsed[chatID] = now
	return true
}

// sweep выбрасывает чаты, у которых кулдаун давно истёк. Вызывается под mu.
func (l *Limiter) sweep(now time.Time) {
	for id, last := range l.lastUsed {
		if now.Sub(last) >= l.cooldown {
			delete(l.lastUsed, id)
		}
	}
}
