package session

import "sync"

type Mode string

const (
	ModeMenu           Mode = "menu"
	ModeFormatCitation Mode = "format_citation"
)

// Parts — накопленные части источника.
type Parts struct {
	Link string
	Meta string
}

// Session — состояние диалога одного чата.
type Session struct {
	Mode     Mode
	Provider string // "" — провайдер по умолчанию
	Parts    Parts
}

type entry struct {
	mu   sync.Mutex
	sess Session
}

// Store держит сессии всех чатов в памяти. Каждое чтение-изменение сессии
// выполняется под замком её чата, чтобы два апдейта одного чата не
// перемешали частичные записи.
type Store struct {
	mu      sync.Mutex
	entries map[int64]*entry
}

func NewStore() *Store {
	return &Store{entries: make(map[int64]*entry)}
}

func (s *Store) get(chatID int64) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[chatID]
	if !ok {
		e = &entry{sess: Session{Mode: ModeMenu}}
		s.entries[chatID] = e
	}
	return e
}

// WithChat выполняет fn как единую критическую секцию для чата.
func (s *Store) WithChat(chatID int64, fn func(sess *Session)) {
	e := s.get(chatID)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sess.Mode == "" {
		e.sess.Mode = ModeMenu
	}
	fn(&e.sess)
}

// Ensure возвращает копию сессии, создавая её при первом обращении.
func (s *Store) Ensure(chatID int64) Session {
	var snap Session
	s.WithChat(chatID, func(sess *Session) {
		snap = *sess
	})
	return snap
}

// Reset переводит чат в указанный режим и очищает накопленные части.
// Выбор провайдера при этом сохраняется.
func (s *Store) Reset(chatID int64, mode Mode) {
	s.WithChat(chatID, func(sess *Session) {
		sess.Mode = mode
		sess.Parts = Parts{}
	})
}

// ResetParts очищает части, не трогая текущий режим: если пользователь успел
// выйти в меню пока работал воркер, режим не «воскресает».
func (s *Store) ResetParts(chatID int64) {
	s.WithChat(chatID, func(sess *Session) {
		sess.Parts = Parts{}
	})
}

// SetProvider меняет LLM-провайдера для чата.
func (s *Store) SetProvider(chatID int64, provider string) {
	s.WithChat(chatID, func(sess *Session) {
		sess.Provider = provider
	})
}
