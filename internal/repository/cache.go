package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
)

const leaderboardKeyPrefix = "leaderboard:top:"

type LeaderboardCache interface {
	Get(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
	Set(ctx context.Context, limit int, entries []entity.LeaderboardEntry) error
	Invalidate(ctx context.Context) error
}

type leaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(client *redis.Client, ttl time.Duration) LeaderboardCache {
	return &leaderboardCache{
		client: client,
		ttl:    ttl,
	}
}

func leaderboardKey(limit int) string {
	return leaderboardKeyPrefix + strconv.Itoa(limit)
}

func (that *leaderboardCache) Get(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	response, err := that.client.Get(ctx, leaderboardKey(limit)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	var entries []entity.LeaderboardEntry
	if err = json.Unmarshal([]byte(response), &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}

	return entries, nil
}

func (that *leaderboardCache) Set(ctx context.Context, limit int, entries []entity.LeaderboardEntry) error {
	entriesJSON, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("could not marshal leaderboard: %w", err)
	}

	if err = that.client.Set(ctx, leaderboardKey(limit), entriesJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set leaderboard: %w", err)
	}

	return nil
}

// Invalidate - drops every cached leaderboard size.
func (that *leaderboardCache) Invalidate(ctx context.Context) error {
	var keys []string

	iter := that.client.Scan(ctx, 0, leaderboardKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan leaderboard keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := that.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete leaderboard keys: %w", err)
	}

	return nil
}
