package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"messaging-service/internal/database"
	"messaging-service/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	onlineUsersKey   = "online_users"
	presenceConnsKey = "presence:connections"
	userStatusTTL    = 5 * time.Minute
	offlineStatusTTL = 24 * time.Hour
)

// ErrCacheMiss is returned by Get when the key does not exist.
var ErrCacheMiss = errors.New("cache miss")

type RedisService struct {
	client *database.RedisClient
}

func NewRedisService(client *database.RedisClient) *RedisService {
	return &RedisService{
		client: client,
	}
}

func userStatusKey(userID string) string {
	return fmt.Sprintf("user:%s:status", userID)
}

// =============================================================================
// Presence
// =============================================================================

// SetUserOnline records one more live connection for userID. Connections are
// counted so a user with two tabs stays online until both close.
func (r *RedisService) SetUserOnline(ctx context.Context, userID string) error {
	now := time.Now().Unix()
	pipe := r.client.GetClient().TxPipeline()

	pipe.HIncrBy(ctx, presenceConnsKey, userID, 1)
	pipe.SAdd(ctx, onlineUsersKey, userID)
	pipe.HSet(ctx, userStatusKey(userID), map[string]interface{}{
		"status":     "online",
		"last_seen":  now,
		"updated_at": now,
	})
	pipe.Expire(ctx, userStatusKey(userID), userStatusTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		lg := logger.Ctx(ctx)
		lg.Error().Err(err).Str(logger.FieldUserID, userID).Msg("failed to set user online")
		return err
	}

	lg := logger.Ctx(ctx)
	lg.Debug().Str(logger.FieldUserID, userID).Msg("user set to online")
	return nil
}

// SetUserOffline releases one connection and marks the user offline once the
// last one is gone.
func (r *RedisService) SetUserOffline(ctx context.Context, userID string) error {
	client := r.client.GetClient()

	remaining, err := client.HIncrBy(ctx, presenceConnsKey, userID, -1).Result()
	if err != nil {
		lg := logger.Ctx(ctx)
		lg.Error().Err(err).Str(logger.FieldUserID, userID).Msg("failed to release user connection")
		return err
	}
	if remaining > 0 {
		return nil
	}

	now := time.Now().Unix()
	pipe := client.TxPipeline()
	pipe.HDel(ctx, presenceConnsKey, userID)
	pipe.SRem(ctx, onlineUsersKey, userID)
	pipe.HSet(ctx, userStatusKey(userID), map[string]interface{}{
		"status":     "offline",
		"last_seen":  now,
		"updated_at": now,
	})
	pipe.Expire(ctx, userStatusKey(userID), offlineStatusTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		lg := logger.Ctx(ctx)
		lg.Error().Err(err).Str(logger.FieldUserID, userID).Msg("failed to set user offline")
		return err
	}

	lg := logger.Ctx(ctx)
	lg.Debug().Str(logger.FieldUserID, userID).Msg("user set to offline")
	return nil
}

func (r *RedisService) IsUserOnline(ctx context.Context, userID string) (bool, error) {
	return r.client.GetClient().SIsMember(ctx, onlineUsersKey, userID).Result()
}

func (r *RedisService) GetOnlineUsers(ctx context.Context) ([]string, error) {
	return r.client.GetClient().SMembers(ctx, onlineUsersKey).Result()
}

// =============================================================================
// Rate Limiting
// =============================================================================

// CheckRateLimit is a sliding-window limiter: it reports whether the call
// identified by key is within limit calls per window, and records it.
func (r *RedisService) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-window).UnixNano()

	pipe := r.client.GetClient().Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	card := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return card.Val() < int64(limit), nil
}

// =============================================================================
// Cache Operations
// =============================================================================

func (r *RedisService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return r.client.GetClient().Set(ctx, key, data, expiration).Err()
}

func (r *RedisService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.GetClient().Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}

	return json.Unmarshal(data, dest)
}

func (r *RedisService) Delete(ctx context.Context, keys ...string) error {
	return r.client.GetClient().Del(ctx, keys...).Err()
}
