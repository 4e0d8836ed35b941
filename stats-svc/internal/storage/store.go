package storage

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps per-restaurant order counters: a daily sorted set
// for leaderboards plus an all-time hash.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func (s *RedisStore) RecordOrder(ctx context.Context, restaurantID int, at time.Time) error {
	member := strconv.Itoa(restaurantID)
	dailyKey := "orders:daily:" + at.Format("2006-01-02")

	if err := s.Client.ZIncrBy(ctx, dailyKey, 1, member).Err(); err != nil {
		return err
	}
	s.Client.Expire(ctx, dailyKey, 7*24*time.Hour) // keep for a week

	return s.Client.HIncrBy(ctx, "orders:alltime", member, 1).Err()
}
