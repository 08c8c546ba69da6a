package service_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"quiz-api/internal/adapter"
	"quiz-api/internal/config"
	"quiz-api/internal/domain"
	"quiz-api/internal/logger"
	"quiz-api/internal/service"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Env: "test", Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

func TestNewSessionStore_NilCache(t *testing.T) {
	store, err := service.NewSessionStore(nil)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestSessionStore_PutGet(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache()
	store, err := service.NewSessionStore(cache)
	require.NoError(t, err)

	answers := sampleBatch().Answers
	require.NoError(t, store.Put(ctx, "abc", answers, 75*time.Second))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, answers, got)
}

func TestSessionStore_Expiry(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache()
	store, err := service.NewSessionStore(cache)
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "abc", sampleBatch().Answers, 75*time.Second))

	cache.advance(74 * time.Second)
	_, err = store.Get(ctx, "abc")
	assert.NoError(t, err)

	cache.advance(time.Second)
	_, err = store.Get(ctx, "abc")
	assert.True(t, domain.HasCode(err, domain.ErrSessionNotFound))
}

func TestSessionStore_PutRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache()
	store, err := service.NewSessionStore(cache)
	require.NoError(t, err)

	tests := []struct {
		name      string
		sessionID string
		ttl       time.Duration
	}{
		{name: "empty session id", sessionID: "", ttl: time.Minute},
		{name: "zero ttl", sessionID: "abc", ttl: 0},
		{name: "negative ttl", sessionID: "abc", ttl: -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Put(ctx, tt.sessionID, sampleBatch().Answers, tt.ttl)
			assert.True(t, domain.HasCode(err, domain.ErrInvalidInput))
		})
	}
	assert.Equal(t, 0, cache.len())
}

func TestSessionStore_GetNotFound(t *testing.T) {
	ctx := context.Background()
	store, err := service.NewSessionStore(newMemoryCache())
	require.NoError(t, err)

	_, err = store.Get(ctx, "never-issued")
	assert.True(t, domain.HasCode(err, domain.ErrSessionNotFound))

	_, err = store.Get(ctx, "")
	assert.True(t, domain.HasCode(err, domain.ErrSessionNotFound))
}

func TestSessionStore_CacheErrors(t *testing.T) {
	ctx := context.Background()
	cacheErr := errors.New("connection refused")

	t.Run("get error is internal", func(t *testing.T) {
		store, err := service.NewSessionStore(&ManualMockCache{
			GetFunc: func(ctx context.Context, key string) (string, error) { return "", cacheErr },
		})
		require.NoError(t, err)

		_, err = store.Get(ctx, "abc")
		assert.True(t, domain.HasCode(err, domain.ErrInternal))
		assert.ErrorIs(t, err, cacheErr)
	})

	t.Run("corrupt payload is internal", func(t *testing.T) {
		store, err := service.NewSessionStore(&ManualMockCache{
			GetFunc: func(ctx context.Context, key string) (string, error) { return "{not json", nil },
		})
		require.NoError(t, err)

		_, err = store.Get(ctx, "abc")
		assert.True(t, domain.HasCode(err, domain.ErrInternal))
	})

	t.Run("empty payload is not found", func(t *testing.T) {
		store, err := service.NewSessionStore(&ManualMockCache{
			GetFunc: func(ctx context.Context, key string) (string, error) { return "", nil },
		})
		require.NoError(t, err)

		_, err = store.Get(ctx, "abc")
		assert.True(t, domain.HasCode(err, domain.ErrSessionNotFound))
	})

	t.Run("set error is internal", func(t *testing.T) {
		store, err := service.NewSessionStore(&ManualMockCache{
			SetFunc: func(ctx context.Context, key, value string, ttl time.Duration) error { return cacheErr },
		})
		require.NoError(t, err)

		err = store.Put(ctx, "abc", sampleBatch().Answers, time.Minute)
		assert.True(t, domain.HasCode(err, domain.ErrInternal))
		assert.ErrorIs(t, err, cacheErr)
	})
}

func TestSessionStore_ConcurrentGets(t *testing.T) {
	ctx := context.Background()
	cache := newMemoryCache()
	store, err := service.NewSessionStore(cache)
	require.NoError(t, err)
	require.NoError(t, store.Put(ctx, "abc", sampleBatch().Answers, time.Minute))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := store.Get(ctx, "abc")
			assert.NoError(t, err)
			assert.Len(t, got, 3)
		}()
	}
	wg.Wait()
}

// gatedCache blocks every Get until release is closed and honours ctx.
type gatedCache struct {
	*memoryCache
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (c *gatedCache) Get(ctx context.Context, key string) (string, error) {
	c.once.Do(func() { close(c.started) })
	select {
	case <-c.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return c.memoryCache.Get(ctx, key)
}

func TestSessionStore_CancelledCallerDoesNotFailOthers(t *testing.T) {
	cache := &gatedCache{
		memoryCache: newMemoryCache(),
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	store, err := service.NewSessionStore(cache)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), "abc", sampleBatch().Answers, time.Minute))

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := store.Get(firstCtx, "abc")
		firstErr <- err
	}()
	<-cache.started

	type result struct {
		answers []domain.AnswerKey
		err     error
	}
	second := make(chan result, 1)
	go func() {
		answers, err := store.Get(context.Background(), "abc")
		second <- result{answers, err}
	}()

	time.Sleep(20 * time.Millisecond)
	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(cache.release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, sampleBatch().Answers, got.answers)
}

func TestSessionStore_RedisWireFormat(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	store, err := service.NewSessionStore(adapter.NewRedisCacheAdapter(db))
	require.NoError(t, err)

	answers := []domain.AnswerKey{{Correct: []int{1, 3}, Explanation: "both"}}
	key := "quizapi:quiz:answers:abc"
	payload := `[{"correct":[1,3],"explanation":"both"}]`

	mock.ExpectSet(key, payload, 75*time.Second).SetVal("OK")
	require.NoError(t, store.Put(ctx, "abc", answers, 75*time.Second))

	mock.ExpectGet(key).SetVal(payload)
	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, answers, got)

	mock.ExpectGet("quizapi:quiz:answers:gone").RedisNil()
	_, err = store.Get(ctx, "gone")
	assert.True(t, domain.HasCode(err, domain.ErrSessionNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}
