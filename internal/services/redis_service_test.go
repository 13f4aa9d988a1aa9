package services

import (
	"context"
	"testing"
	"time"

	"messaging-service/internal/database"
	"messaging-service/internal/models"
	"messaging-service/internal/repositories/postgres"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isRedisAvailable() bool {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

func newTestRedisService(t *testing.T) *RedisService {
	t.Helper()
	if !isRedisAvailable() {
		t.Skip("Redis is not available, skipping test")
	}
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	require.NoError(t, client.FlushDB(context.Background()).Err())
	t.Cleanup(func() { client.Close() })
	return NewRedisService(database.NewRedisClient(client))
}

func TestRedisPresenceCountsConnections(t *testing.T) {
	ctx := context.Background()
	svc := newTestRedisService(t)
	user := newID()

	require.NoError(t, svc.SetUserOnline(ctx, user))
	require.NoError(t, svc.SetUserOnline(ctx, user))

	require.NoError(t, svc.SetUserOffline(ctx, user))
	online, err := svc.IsUserOnline(ctx, user)
	require.NoError(t, err)
	assert.True(t, online, "second connection still open")

	require.NoError(t, svc.SetUserOffline(ctx, user))
	online, err = svc.IsUserOnline(ctx, user)
	require.NoError(t, err)
	assert.False(t, online)

	users, err := svc.GetOnlineUsers(ctx)
	require.NoError(t, err)
	assert.NotContains(t, users, user)
}

func TestRedisRateLimit(t *testing.T) {
	ctx := context.Background()
	svc := newTestRedisService(t)
	key := "rate_limit:test:" + newID()

	for i := 0; i < 3; i++ {
		ok, err := svc.CheckRateLimit(ctx, key, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "call %d", i)
	}
	ok, err := svc.CheckRateLimit(ctx, key, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	svc := newTestRedisService(t)

	var out string
	assert.ErrorIs(t, svc.Get(ctx, "missing", &out), ErrCacheMiss)

	require.NoError(t, svc.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, svc.Get(ctx, "k", &out))
	assert.Equal(t, "v", out)

	require.NoError(t, svc.Delete(ctx, "k"))
	assert.ErrorIs(t, svc.Get(ctx, "k", &out), ErrCacheMiss)
}

func TestProfileServiceCachesDisplayName(t *testing.T) {
	ctx := context.Background()
	cache := newTestRedisService(t)
	f := newFixture(t)
	svc := NewProfileService(postgres.NewProfileRepository(f.db), cache)

	user := newID()
	require.NoError(t, f.db.Create(&models.UserProfile{UserID: user, FirstName: "Alan", LastName: "Turing"}).Error)

	name, err := svc.DisplayName(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "Alan Turing", name)

	// served from cache once the row is gone
	require.NoError(t, f.db.Where("user_id = ?", user).Delete(&models.UserProfile{}).Error)
	name, err = svc.DisplayName(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "Alan Turing", name)
}
