package availability

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/InkStudio-BookingService/internal/domain"
	"github.com/m04kA/InkStudio-BookingService/pkg/logger"
	"github.com/m04kA/InkStudio-BookingService/pkg/ptr"
	"github.com/m04kA/InkStudio-BookingService/pkg/types"
)

type fakeRedis struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

type fakeStore struct {
	configs map[int64]*domain.AvailabilityConfig
	gets    int
	// afterRead вызывается после чтения строки, до возврата значения
	afterRead func()
}

func (s *fakeStore) Get(_ context.Context, artistID int64) (*domain.AvailabilityConfig, error) {
	s.gets++
	cfg, ok := s.configs[artistID]
	if s.afterRead != nil {
		hook := s.afterRead
		s.afterRead = nil
		hook()
	}
	if !ok {
		return nil, errors.New("not found")
	}
	return cfg, nil
}

func (s *fakeStore) Upsert(_ context.Context, cfg *domain.AvailabilityConfig) (*domain.AvailabilityConfig, error) {
	s.configs[cfg.ArtistID] = cfg
	return cfg, nil
}

func (s *fakeStore) Delete(_ context.Context, artistID int64) error {
	if _, ok := s.configs[artistID]; !ok {
		return errors.New("not found")
	}
	delete(s.configs, artistID)
	return nil
}

type countingMetrics struct {
	results map[string]int
}

func (m *countingMetrics) ObserveCache(result string) {
	m.results[result]++
}

func storedConfig() *domain.AvailabilityConfig {
	return &domain.AvailabilityConfig{
		ArtistID:      7,
		StudioID:      1,
		WorkStart:     ptr.Ptr(types.TimeString("11:00")),
		DaysOff:       []int{},
		ExplicitSlots: []string{"11:00", "15:00"},
	}
}

func TestCache_ReadThrough(t *testing.T) {
	store := &fakeStore{configs: map[int64]*domain.AvailabilityConfig{7: storedConfig()}}
	rdb := newFakeRedis()
	m := &countingMetrics{results: map[string]int{}}
	cache := NewCache(store, rdb, time.Minute, m, logger.NewNop())

	first, err := cache.Get(context.Background(), 7)
	require.NoError(t, err)
	second, err := cache.Get(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 1, store.gets)
	assert.Equal(t, 1, m.results["miss"])
	assert.Equal(t, 1, m.results["hit"])

	assert.Equal(t, first.ExplicitSlots, second.ExplicitSlots)
	assert.Equal(t, types.TimeString("11:00"), *second.WorkStart)
	assert.Nil(t, second.WorkEnd)
	require.NotNil(t, second.DaysOff, "empty days off must survive the round trip")
	assert.Empty(t, second.DaysOff)
}

func TestCache_FallsThroughOnRedisError(t *testing.T) {
	store := &fakeStore{configs: map[int64]*domain.AvailabilityConfig{7: storedConfig()}}
	rdb := newFakeRedis()
	rdb.getErr = errors.New("connection refused")
	rdb.setErr = errors.New("connection refused")
	cache := NewCache(store, rdb, time.Minute, nil, logger.NewNop())

	cfg, err := cache.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.ArtistID)
	assert.Equal(t, 1, store.gets)
}

func TestCache_CorruptedEntryIsIgnored(t *testing.T) {
	store := &fakeStore{configs: map[int64]*domain.AvailabilityConfig{7: storedConfig()}}
	rdb := newFakeRedis()
	rdb.data[Key(7, 0)] = "{not json"
	cache := NewCache(store, rdb, time.Minute, nil, logger.NewNop())

	cfg, err := cache.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.ArtistID)
	assert.Equal(t, 1, store.gets)
}

func TestCache_UpsertInvalidates(t *testing.T) {
	store := &fakeStore{configs: map[int64]*domain.AvailabilityConfig{7: storedConfig()}}
	rdb := newFakeRedis()
	cache := NewCache(store, rdb, time.Minute, nil, logger.NewNop())

	_, err := cache.Get(context.Background(), 7)
	require.NoError(t, err)
	require.Contains(t, rdb.data, Key(7, 0))

	updated := storedConfig()
	updated.ExplicitSlots = nil
	_, err = cache.Upsert(context.Background(), updated)
	require.NoError(t, err)
	assert.Equal(t, "1", rdb.data[GenerationKey(7)])

	cfg, err := cache.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, cfg.ExplicitSlots)
	assert.Equal(t, 2, store.gets)
}

func TestCache_StoreErrorsPropagate(t *testing.T) {
	store := &fakeStore{configs: map[int64]*domain.AvailabilityConfig{}}
	cache := NewCache(store, newFakeRedis(), time.Minute, nil, logger.NewNop())

	_, err := cache.Get(context.Background(), 99)
	assert.Error(t, err)
}

func TestCache_DeleteInvalidates(t *testing.T) {
	store := &fakeStore{configs: map[int64]*domain.AvailabilityConfig{7: storedConfig()}}
	rdb := newFakeRedis()
	cache := NewCache(store, rdb, time.Minute, nil, logger.NewNop())

	_, err := cache.Get(context.Background(), 7)
	require.NoError(t, err)

	require.NoError(t, cache.Delete(context.Background(), 7))
	assert.Equal(t, "1", rdb.data[GenerationKey(7)])

	_, err = cache.Get(context.Background(), 7)
	assert.Error(t, err)
	assert.Error(t, cache.Delete(context.Background(), 7))
}

func TestCache_StaleReadDoesNotOutliveUpsert(t *testing.T) {
	store := &fakeStore{configs: map[int64]*domain.AvailabilityConfig{7: storedConfig()}}
	rdb := newFakeRedis()
	cache := NewCache(store, rdb, time.Minute, nil, logger.NewNop())

	updated := storedConfig()
	updated.ExplicitSlots = []string{"12:00"}

	// Запись расписания происходит между чтением старой строки и заполнением кеша
	store.afterRead = func() {
		store.configs[7] = updated
		_, err := cache.Upsert(context.Background(), updated)
		require.NoError(t, err)
	}

	stale, err := cache.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00", "15:00"}, stale.ExplicitSlots)

	fresh, err := cache.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"12:00"}, fresh.ExplicitSlots)
	assert.Equal(t, 2, store.gets)
}
