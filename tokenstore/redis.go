package tokenstore

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

// RedisStore keeps the token under <prefix>token, for consoles sharing one login.
type RedisStore struct {
	redis redis.Cmdable
	key   string
}

func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{
		redis: client,
		key:   prefix + Key,
	}
}

// RedisKey is the key holding the token.
func (r *RedisStore) RedisKey() string {
	return r.key
}

func (r *RedisStore) Save(ctx context.Context, token string) error {
	if err := r.redis.Set(ctx, r.key, token, 0).Err(); err != nil {
		return errors.Wrap(err, "[RedisStore.Save] Set")
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context) (string, error) {
	token, err := r.redis.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", errors.Wrap(err, "[RedisStore.Load] Get")
	}
	return token, nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.redis.Del(ctx, r.key).Err(); err != nil {
		return errors.Wrap(err, "[RedisStore.Clear] Del")
	}
	return nil
}
