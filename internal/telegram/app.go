package telegram

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Vovarama1992/edsource_bot/internal/ratelimit"
	"github.com/Vovarama1992/edsource_bot/internal/session"
)

// BotApp — вся логика бота: роутинг апдейтов, команды, режим оформления
// источников. Транспорт (webhook) снаружи, Telegram API — за портом Messenger.
type BotApp struct {
	messenger Messenger
	sessions  *session.Store
	limiter   *ratelimit.Limiter
	gateway   LLMGateway

	watchdog            time.Duration
	batchAllowEmptyMeta bool

	wg       sync.WaitGroup
	inFlight atomic.Int32
}

func NewBotApp(
	messenger Messenger,
	sessions *session.Store,
	limiter *ratelimit.Limiter,
	gateway LLMGateway,
	watchdog time.Duration,
	batchAllowEmptyMeta bool,
) *BotApp {
	return &BotApp{
		messenger:           messenger,
		sessions:            sessions,
		limiter:             limiter,
		gateway:             gateway,
		watchdog:            watchdog,
		batchAllowEmptyMeta: batchAllowEmptyMeta,
	}
}

// Spawn запускает фоновую задачу с учётом в WaitGroup, чтобы число задач
// в полёте было наблюдаемым, а тесты могли дождаться завершения.
// Паника в задаче гасится здесь: один сломанный апдейт не роняет процесс.
func (app *BotApp) Spawn(fn func()) {
	app.wg.Add(1)
	app.inFlight.Add(1)
	go func() {
		defer app.wg.Done()
		defer app.inFlight.Add(-1)
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[app] panic in background task: %v", r)
			}
		}()
		fn()
	}()
}

// InFlight — сколько фоновых задач выполняется сейчас.
func (app *BotApp) InFlight() int {
	return int(app.inFlight.Load())
}

// Wait блокируется, пока не завершатся все фоновые задачи.
func (app *BotApp) Wait() {
	app.wg.Wait()
}
