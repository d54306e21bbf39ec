package handoff

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/roadtower/pkg/observability"
)

// keyPrefix namespaces slot keys in a shared Redis database.
const keyPrefix = "roadtower:handoff:"

// RedisConfig configures a Redis slot.
type RedisConfig struct {
	Addr     string // host:port, "localhost:6379" when empty
	Password string
	DB       int
	Name     string
	TTL      time.Duration
}

// Redis is a slot stored under one Redis key. Take uses GETDEL, which is
// atomic across clients.
type Redis struct {
	client *redis.Client
	name   string
	ttl    time.Duration
}

// NewRedis connects to Redis and verifies the connection with PING.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	if cfg.Name == "" {
		cfg.Name = DefaultSlot
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return &Redis{client: client, name: cfg.Name, ttl: cfg.TTL}, nil
}

// Name returns the slot name.
func (r *Redis) Name() string { return r.name }

// Key returns the Redis key holding the slot's value.
func (r *Redis) Key() string { return keyPrefix + r.name }

// Put stores data with the configured TTL, replacing any previous value.
func (r *Redis) Put(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, r.Key(), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	observability.Handoff().OnPut(ctx, BackendRedis, r.name, len(data))
	return nil
}

// Take returns the stored value and deletes the key.
func (r *Redis) Take(ctx context.Context) ([]byte, error) {
	data, err := r.client.GetDel(ctx, r.Key()).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.Handoff().OnTake(ctx, BackendRedis, r.name, false)
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("redis getdel: %w", err)
	}
	observability.Handoff().OnTake(ctx, BackendRedis, r.name, true)
	return data, nil
}

// Clear deletes the key.
func (r *Redis) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.Key()).Err()
}

// Close closes the Redis connection pool.
func (r *Redis) Close() error { return r.client.Close() }

// Ensure Redis implements Slot.
var _ Slot = (*Redis)(nil)
