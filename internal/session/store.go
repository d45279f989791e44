// Package session implements the server-side half of the session gate:
// creation, sliding-expiry lookup and destruction of sessions. The primary
// implementation keeps state in Redis so sessions survive restarts and are
// shared across replicas; when Redis is unreachable at startup the server
// degrades to an in-process store instead of refusing to run.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jpkrishna28/mls-point-locator/internal/model"
	"github.com/jpkrishna28/mls-point-locator/internal/utils"
)

// ErrSessionNotFound is returned for unknown, expired or logged-out
// session ids. The gate treats all three identically.
var ErrSessionNotFound = errors.New("session not found")

// Store persists sessions with a sliding inactivity window. Get must
// reject a session whose last activity is older than the window; Touch
// records activity and pushes the expiry forward.
type Store interface {
	Create(ctx context.Context, username string) (model.Session, error)
	Get(ctx context.Context, id string) (model.Session, error)
	Touch(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// ---- Redis-backed store ----

// RedisStore keeps each session as a JSON value under sess:<id> with the
// inactivity window as its TTL. Redis expiry does the sliding-window work:
// Touch rewrites the value with a fresh TTL, and an untouched session
// simply disappears.
type RedisStore struct {
	rdb    *redis.Client
	window time.Duration
}

// NewRedisStore builds a session store on the given client with the
// configured inactivity window.
func NewRedisStore(rdb *redis.Client, window time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, window: window}
}

func sessionKey(id string) string { return "sess:" + id }

// Create stores a new session and returns it.
func (s *RedisStore) Create(ctx context.Context, username string) (model.Session, error) {
	id, err := utils.RandomHex(24)
	if err != nil {
		return model.Session{}, err
	}
	now := time.Now().UTC()
	sess := model.Session{ID: id, Username: username, LoginTime: now, LastSeen: now}
	body, err := json.Marshal(sess)
	if err != nil {
		return model.Session{}, err
	}
	if err := s.rdb.Set(ctx, sessionKey(id), body, s.window).Err(); err != nil {
		return model.Session{}, err
	}
	return sess, nil
}

// Get loads a live session. Expired sessions have already been evicted by
// Redis, so any miss is ErrSessionNotFound.
func (s *RedisStore) Get(ctx context.Context, id string) (model.Session, error) {
	body, err := s.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return model.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return model.Session{}, err
	}
	var sess model.Session
	if err := json.Unmarshal(body, &sess); err != nil {
		return model.Session{}, ErrSessionNotFound
	}
	return sess, nil
}

// Touch stamps the session's last activity and resets its TTL.
func (s *RedisStore) Touch(ctx context.Context, id string) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	sess.LastSeen = time.Now().UTC()
	body, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(id), body, s.window).Err()
}

// Delete removes the session immediately.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKey(id)).Err()
}

// ---- In-memory fallback store ----

// MemoryStore is the single-process fallback used when Redis is down. The
// clock is a field so expiry behavior is testable without sleeping.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]model.Session
	window   time.Duration
	now      func() time.Time
}

// NewMemoryStore builds an in-process session store with the configured
// inactivity window.
func NewMemoryStore(window time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]model.Session),
		window:   window,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new session and returns it.
func (s *MemoryStore) Create(ctx context.Context, username string) (model.Session, error) {
	id, err := utils.RandomHex(24)
	if err != nil {
		return model.Session{}, err
	}
	now := s.now()
	sess := model.Session{ID: id, Username: username, LoginTime: now, LastSeen: now}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return sess, nil
}

// Get loads a session, evicting it when the inactivity window has passed.
func (s *MemoryStore) Get(ctx context.Context, id string) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return model.Session{}, ErrSessionNotFound
	}
	if s.now().Sub(sess.LastSeen) > s.window {
		delete(s.sessions, id)
		return model.Session{}, ErrSessionNotFound
	}
	return sess, nil
}

// Touch stamps the session's last activity, sliding its expiry forward.
func (s *MemoryStore) Touch(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.LastSeen = s.now()
	s.sessions[id] = sess
	return nil
}

// Delete removes the session immediately.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
