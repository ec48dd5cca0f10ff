package cartstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/vxxious/aunty-burger/internal/cart"
)

// cartTTL bounds how long an abandoned session's cart lingers in Redis.
const cartTTL = 72 * time.Hour

// RedisStore is a cart mirror backed by Redis, one JSON blob per session.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore accepts a Redis connection string (a "redis://..." URL or
// a plain "hostname:port") and returns a store instance.
func NewRedisStore(redisAddr string) *RedisStore {
	opts, err := redis.ParseURL(redisAddr)
	if err != nil {
		// Not a URL, use it as a plain address.
		opts = &redis.Options{
			Addr:         redisAddr,
			MinIdleConns: 1,
			DialTimeout:  10 * time.Second,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		}
	}

	client := redis.NewClient(opts)
	client.AddHook(redisotel.NewTracingHook())

	return &RedisStore{client: client}
}

func cartKey(sessionID string) string { return "cart:" + sessionID }

// Load fetches and decodes a session's saved cart. A missing key is an
// empty cart; a decode failure is an error the caller downgrades to an
// empty cart.
func (r *RedisStore) Load(ctx context.Context, sessionID string) ([]cart.Line, error) {
	val, err := r.client.Get(ctx, cartKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis GET cart")
	}

	var lines []cart.Line
	if err := json.Unmarshal([]byte(val), &lines); err != nil {
		return nil, errors.Wrap(err, "decode saved cart")
	}
	return lines, nil
}

// Save encodes and writes a session's cart with a TTL.
func (r *RedisStore) Save(ctx context.Context, sessionID string, lines []cart.Line) error {
	if len(lines) == 0 {
		if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
			return errors.Wrap(err, "redis DEL cart")
		}
		return nil
	}

	blob, err := json.Marshal(lines)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	if err := r.client.Set(ctx, cartKey(sessionID), blob, cartTTL).Err(); err != nil {
		return errors.Wrap(err, "redis SET cart")
	}
	return nil
}

// Ping checks if Redis is alive.
func (r *RedisStore) Ping(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.client.Ping(pingCtx).Err() == nil
}
