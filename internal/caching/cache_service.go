package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheService is the platform's ambient key-value store: resolved sessions,
// refresh tokens, wizard drafts, admin settings, cached analytics, login
// rate limiting and the change-event feed all live here.
type CacheService interface {
	// Generic JSON documents
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error

	// Generic string operations for token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Change-event feed (registration/application inserts)
	PublishEvent(ctx context.Context, channel string, payload any) error
	SubscribeEvents(ctx context.Context, channel string) (<-chan string, func(), error)

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port style addresses as well as bare host:port.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func key(parts ...string) string {
	return "bizboost:" + strings.Join(parts, ":")
}

func (r *redisCacheService) GetJSON(ctx context.Context, k string, dest any) (bool, error) {
	data, err := r.client.Get(ctx, key(k)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil // cache miss
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) SetJSON(ctx context.Context, k string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key(k), data, ttl).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, k string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key(k), value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, k string) (string, error) {
	val, err := r.client.Get(ctx, key(k)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, k string) error {
	return r.client.Del(ctx, key(k)).Err()
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, k string, limit int, window time.Duration) (bool, error) {
	cacheKey := key("ratelimit", k)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return true, err
	}

	// Set expiry on first request
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) PublishEvent(ctx context.Context, channel string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, key("events", channel), data).Err()
}

func (r *redisCacheService) SubscribeEvents(ctx context.Context, channel string) (<-chan string, func(), error) {
	sub := r.client.Subscribe(ctx, key("events", channel))
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	out := make(chan string, 16)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() {
		sub.Close()
	}
	return out, cancel, nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
