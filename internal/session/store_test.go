package session

import (
	"context"
	"testing"
	"time"

	"currency-converter/internal/config"
	"currency-converter/internal/form"
	"currency-converter/internal/model"
	"currency-converter/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleForm() *form.Form {
	f := form.New()
	f.Amount = "250"
	f.From, f.To = "GBP", "BTC"
	f.Result = &model.ConversionResult{From: "GBP", To: "BTC", Amount: 250, Result: 0.0045}
	return f
}

func TestMemoryStore_LoadUnknownReturnsDefaults(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	f, err := s.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, form.New(), f)
}

func TestMemoryStore_SaveLoad(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "id", sampleForm()))
	got, err := s.Load(ctx, "id")
	require.NoError(t, err)
	assert.Equal(t, sampleForm(), got)

	// изменения копии не попадают в хранилище
	got.Amount = "1"
	again, _ := s.Load(ctx, "id")
	assert.Equal(t, "250", again.Amount)
}

func TestMemoryStore_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(time.Minute)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "id", sampleForm()))
	now = now.Add(2 * time.Minute)

	got, err := s.Load(ctx, "id")
	require.NoError(t, err)
	assert.Equal(t, form.New(), got)
	assert.Empty(t, s.entries)
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := cache.NewRedisClient(config.RedisConfig{Addr: mr.Addr()}, "session:", zap.NewNop())
	require.NoError(t, err)
	s := NewRedisStore(client, time.Minute)
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestRedisStore_SaveLoad(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "abc", sampleForm()))
	assert.True(t, mr.Exists("session:abc"))
	assert.Equal(t, time.Minute, mr.TTL("session:abc"))

	got, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, sampleForm(), got)
}

func TestRedisStore_Missing(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	got, err := s.Load(ctx, "unknown")
	require.NoError(t, err)
	assert.Equal(t, form.New(), got)

	require.NoError(t, s.Save(ctx, "abc", sampleForm()))
	mr.FastForward(2 * time.Minute)
	got, err = s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, form.New(), got)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	s, mr := newRedisStore(t)
	require.NoError(t, mr.Set("session:bad", "{not json"))

	got, err := s.Load(context.Background(), "bad")
	require.NoError(t, err)
	assert.Equal(t, form.New(), got)
	assert.False(t, mr.Exists("session:bad"), "битая сессия удалена")
}

func TestStore_Ping(t *testing.T) {
	assert.NoError(t, NewMemoryStore(time.Minute).Ping(context.Background()))

	s, mr := newRedisStore(t)
	assert.NoError(t, s.Ping(context.Background()))
	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}
