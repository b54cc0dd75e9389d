package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss - в бекенде нет значения по ключу
var ErrCacheMiss = errors.New("feed cache: miss")

// CacheBackend - хранилище отрендеренных страниц ленты
type CacheBackend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// RedisCacheBackend - боевой бекенд кеша поверх Redis
type RedisCacheBackend struct {
	Client *redis.Client
}

func (b *RedisCacheBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	return data, err
}

func (b *RedisCacheBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.Client.Set(ctx, key, value, ttl).Err()
}

func (b *RedisCacheBackend) Del(ctx context.Context, keys ...string) error {
	return b.Client.Del(ctx, keys...).Err()
}

// FeedCache мемоизирует отрендеренную главную ленту на окно времени.
// В пределах окна отдаются ровно те же байты, даже если посты изменились -
// обновление происходит только по истечении окна или явному Clear.
// Кеш - оптимизация: при недоступном бекенде запрос уходит в прямой рендер.
type FeedCache struct {
	backend CacheBackend
	window  time.Duration
}

func NewFeedCache(backend CacheBackend, window time.Duration) *FeedCache {
	return &FeedCache{backend: backend, window: window}
}

// Fetch отдает закешированные байты по ключу или вызывает render и
// сохраняет результат. Второе значение - был ли cache hit.
func (fc *FeedCache) Fetch(ctx context.Context, key string, render func() ([]byte, error)) ([]byte, bool, error) {
	if fc == nil || fc.backend == nil {
		data, err := render()
		return data, false, err
	}

	data, err := fc.backend.Get(ctx, key)
	if err == nil {
		return data, true, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		log.Printf("feed cache get failed for %s, falling back to render: %v", key, err)
	}

	data, err = render()
	if err != nil {
		return nil, false, err
	}

	if setErr := fc.backend.Set(ctx, key, data, fc.window); setErr != nil {
		log.Printf("feed cache set failed for %s: %v", key, setErr)
	}
	return data, false, nil
}

// Clear явно сбрасывает закешированные страницы
func (fc *FeedCache) Clear(ctx context.Context, keys ...string) error {
	if fc == nil || fc.backend == nil || len(keys) == 0 {
		return nil
	}
	return fc.backend.Del(ctx, keys...)
}
