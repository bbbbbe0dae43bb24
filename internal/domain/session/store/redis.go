package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"keneviz-panel-go/internal/domain/session"
	"keneviz-panel-go/internal/platform/config"
	"keneviz-panel-go/internal/platform/errors"
)

// RedisStore keeps sessions in redis so they survive restarts and can
// be shared between instances. TTL is enforced by redis key expiry.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(cfg config.RedisConfig, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.KindSession, "session.redis", "connect to redis", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "keneviz:session:"
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, state session.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(errors.KindSession, "session.redis", "marshal session state", err)
	}
	if err := s.client.Set(ctx, s.prefix+id, data, s.ttl).Err(); err != nil {
		return errors.Wrap(errors.KindSession, "session.redis", "save session", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (session.State, error) {
	data, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err == redis.Nil {
		return session.State{}, session.ErrNotFound
	}
	if err != nil {
		return session.State{}, errors.Wrap(errors.KindSession, "session.redis", "load session", err)
	}
	var state session.State
	if err := json.Unmarshal(data, &state); err != nil {
		return session.State{}, errors.Wrap(errors.KindSession, "session.redis", "decode session state", err)
	}
	return state, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.prefix+id).Err(); err != nil {
		return errors.Wrap(errors.KindSession, "session.redis", "delete session", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
