package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in redis so several processes can share them.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}

	return &sess, nil
}

func (s *RedisStore) Set(ctx context.Context, token string, sess *Session, ttl time.Duration) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, redisKeyPrefix+token, raw, ttl).Err()
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, redisKeyPrefix+token).Err()
}
