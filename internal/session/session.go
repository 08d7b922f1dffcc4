// Package session implements cookie-keyed server-side sessions. State
// lives in Redis when it is reachable and in a process-local map
// otherwise; the in-memory fallback only works for a single process.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CookieName = "session_id"
	TTL        = 24 * time.Hour

	redisPrefix = "session:"
)

// Data is the state attached to one session id.
type Data struct {
	UserID   int                 `json:"user_id,omitempty"`
	Username string              `json:"username,omitempty"`
	IsAdmin  bool                `json:"is_admin,omitempty"`
	Flash    map[string][]string `json:"flash,omitempty"`
}

// Store persists session data by id. Get returns (nil, nil) for an
// unknown or expired id.
type Store interface {
	Get(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data *Data) error
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps sessions under session:<id> with the session TTL.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Data, error) {
	val, err := s.rdb.Get(ctx, redisPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var data Data
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, data *Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, redisPrefix+id, raw, TTL).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, redisPrefix+id).Err()
}

// MemoryStore is the single-process fallback when Redis is down.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, nil
	}
	data := entry.data
	return &data, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, data *Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = memoryEntry{data: *data, expiresAt: time.Now().Add(TTL)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Manager ties the store to the session cookie.
type Manager struct {
	store  Store
	secure bool
}

func NewManager(store Store, secure bool) *Manager {
	return &Manager{store: store, secure: secure}
}

// Session is one request's view of its session state. Mutations are
// local until Save.
type Session struct {
	ID   string
	Data Data

	mgr *Manager
	c   echo.Context
	new bool
}

// Get loads the session named by the request cookie, or starts a fresh
// one. A store read failure is treated as no session.
func (m *Manager) Get(c echo.Context) *Session {
	sess := &Session{mgr: m, c: c, new: true}

	cookie, err := c.Cookie(CookieName)
	if err == nil && cookie.Value != "" {
		data, err := m.store.Get(c.Request().Context(), cookie.Value)
		if err == nil && data != nil {
			sess.ID = cookie.Value
			sess.Data = *data
			sess.new = false
			return sess
		}
	}

	sess.ID = uuid.NewString()
	return sess
}

// Save persists the session and (re)issues the cookie.
func (s *Session) Save() error {
	if err := s.mgr.store.Save(s.c.Request().Context(), s.ID, &s.Data); err != nil {
		return err
	}
	s.c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    s.ID,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.mgr.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Destroy drops the server-side state and expires the cookie.
func (s *Session) Destroy() error {
	err := s.mgr.store.Delete(s.c.Request().Context(), s.ID)
	s.c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.mgr.secure,
	})
	return err
}

// LoggedIn reports whether a user is attached to the session.
func (s *Session) LoggedIn() bool {
	return s.Data.UserID != 0
}

// Flash queues a one-shot message under kind ("success" or "error").
func (s *Session) Flash(kind, message string) {
	if s.Data.Flash == nil {
		s.Data.Flash = make(map[string][]string)
	}
	s.Data.Flash[kind] = append(s.Data.Flash[kind], message)
}

// PopFlashes drains and returns all queued messages. The caller must
// Save for the drain to stick.
func (s *Session) PopFlashes() map[string][]string {
	flashes := s.Data.Flash
	s.Data.Flash = nil
	return flashes
}
