package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "sess:"

// redisCommands is the slice of the redis client the store uses. *redis.Client
// satisfies it.
type redisCommands interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps sessions in redis, using key TTL as the idle deadline.
type RedisStore struct {
	client      redisCommands
	idleTimeout time.Duration
}

// NewRedisStore creates a redis-backed session store.
func NewRedisStore(client *redis.Client, idleTimeout time.Duration) *RedisStore {
	return &RedisStore{client: client, idleTimeout: idleTimeout}
}

// Create registers a new session keyed by a fresh uuid, expiring after the
// idle timeout unless touched.
func (s *RedisStore) Create(ctx context.Context, userID string) (*Session, error) {
	sess := Session{ID: uuid.NewString(), UserID: userID, CreatedAt: time.Now().UTC()}
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sess.ID, data, s.idleTimeout).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return &sess, nil
}

// Touch loads the session and resets the key TTL. Redis drops expired keys
// on its own, so an idled-out session reads as absent.
func (s *RedisStore) Touch(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	reset, err := s.client.Expire(ctx, keyPrefix+id, s.idleTimeout).Result()
	if err != nil {
		return nil, fmt.Errorf("reset session deadline: %w", err)
	}
	if !reset {
		// The key lapsed between the read and the reset.
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Delete removes the session key. Absent keys are a no-op.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
