package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"mystica/pkg/metrics"
)

// RedisConfig configures the redis-backed session store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisRepository stores sessions as TTL'd JSON values, one key per session.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
	reg    *metrics.Registry
}

func NewRedisRepository(cfg RedisConfig, reg *metrics.Registry) *RedisRepository {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisRepository{client: rdb, ttl: cfg.TTL, reg: reg}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func (r *RedisRepository) Create(ctx context.Context) (Session, error) {
	s := Session{ID: uuid.NewString()}
	if err := r.Put(ctx, s); err != nil {
		return Session{}, err
	}

	log.Ctx(ctx).Info().Str("session_id", s.ID).Msg("session created")
	if r.reg != nil {
		r.reg.Inc(ctx, metrics.CounterSessions, map[string]string{"store": "redis"}, 1)
	}
	return s, nil
}

func (r *RedisRepository) Get(ctx context.Context, id string) (Session, error) {
	val, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNotFound
	} else if err != nil {
		return Session{}, fmt.Errorf("redis get: %w", err)
	}

	var s Session
	if err := json.Unmarshal(val, &s); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

func (r *RedisRepository) Put(ctx context.Context, s Session) error {
	val, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(s.ID), val, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
