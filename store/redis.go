// SPDX-License-Identifier: GPL-3.0-only

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps values under prefix+key with no expiry.
type RedisStore struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
	logger  *log.Logger
}

func NewRedisStore(client *redis.Client, prefix string, timeout time.Duration, logger *log.Logger) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, timeout: timeout, logger: logger}
}

// DialRedis connects and pings the server.
func DialRedis(addr, password string, db int, timeout time.Duration) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: ping redis %s: %v", ErrUnavailable, addr, err)
	}
	return client, nil
}

func (s *RedisStore) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warnf("Failed to read %s from redis: %v", key, err)
		}
		return "", false
	}
	return v, true
}

func (s *RedisStore) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: write %s to redis: %v", ErrUnavailable, key, err)
	}
	return nil
}
