package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"currency-converter/internal/form"
	"currency-converter/pkg/cache"
)

// Store хранит состояние веб-формы между запросами одного браузера.
// Load для неизвестного или истёкшего id возвращает новую форму.
type Store interface {
	Load(ctx context.Context, id string) (*form.Form, error)
	Save(ctx context.Context, id string, f *form.Form) error
	Ping(ctx context.Context) error
	Close() error
}

// MemoryStore - хранилище в памяти процесса, по умолчанию
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

type memoryEntry struct {
	form      form.Form
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Load(_ context.Context, id string) (*form.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return form.New(), nil
	}
	if s.ttl > 0 && !s.now().Before(e.expiresAt) {
		delete(s.entries, id)
		return form.New(), nil
	}
	f := e.form
	return &f, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, f *form.Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.entries[id] = memoryEntry{form: *f, expiresAt: now.Add(s.ttl)}
	// заодно выкидываем просроченные
	if s.ttl > 0 {
		for k, e := range s.entries {
			if !now.Before(e.expiresAt) {
				delete(s.entries, k)
			}
		}
	}
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// KV - то, что RedisStore нужно от pkg/cache
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// RedisStore хранит форму в Redis в виде JSON
type RedisStore struct {
	kv  KV
	ttl time.Duration
}

func NewRedisStore(kv KV, ttl time.Duration) *RedisStore {
	return &RedisStore{kv: kv, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, id string) (*form.Form, error) {
	data, err := s.kv.Get(ctx, id)
	if errors.Is(err, cache.ErrNotFound) {
		return form.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	f := form.New()
	if err := json.Unmarshal(data, f); err != nil {
		// битую сессию удаляем и начинаем с чистой формы
		if err := s.kv.Delete(ctx, id); err != nil {
			return nil, fmt.Errorf("drop corrupt session: %w", err)
		}
		return form.New(), nil
	}
	return f, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, f *form.Form) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, id, data, s.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.kv.HealthCheck(ctx)
}

func (s *RedisStore) Close() error {
	return s.kv.Close()
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
	_ KV    = (*cache.RedisClient)(nil)
)
