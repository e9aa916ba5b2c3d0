package repository

import (
	"context"
	"testing"
	"time"

	"hotelms/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStateRepository(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	repo := NewRedisStateRepository(client, time.Hour)
	ctx := context.Background()

	t.Run("SetAndGetState", func(t *testing.T) {
		state := &models.ChatState{
			SessionID:    "sess-1",
			LastTopic:    "rooms",
			MessageCount: 3,
			TempData:     map[string]interface{}{"key": "value"},
		}

		err := repo.SetState(ctx, state)
		require.NoError(t, err)

		got, err := repo.GetState(ctx, "sess-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, state.SessionID, got.SessionID)
		assert.Equal(t, state.LastTopic, got.LastTopic)
		assert.Equal(t, state.MessageCount, got.MessageCount)
		assert.Equal(t, state.TempData["key"], got.TempData["key"])
	})

	t.Run("GetNonExistentState", func(t *testing.T) {
		got, err := repo.GetState(ctx, "no-such-session")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ClearState", func(t *testing.T) {
		state := &models.ChatState{SessionID: "sess-2", LastTopic: "booking"}
		repo.SetState(ctx, state)

		err := repo.ClearState(ctx, "sess-2")
		require.NoError(t, err)

		got, _ := repo.GetState(ctx, "sess-2")
		assert.Nil(t, got)
	})

	t.Run("RateLimit", func(t *testing.T) {
		sessionID := "sess-3"
		limit := 2
		window := time.Second

		// First request
		allowed, err := repo.CheckRateLimit(ctx, sessionID, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)

		// Second request
		allowed, err = repo.CheckRateLimit(ctx, sessionID, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)

		// Third request (exceeds limit)
		allowed, err = repo.CheckRateLimit(ctx, sessionID, limit, window)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("RateLimitWindowReset", func(t *testing.T) {
		sessionID := "sess-4"

		allowed, err := repo.CheckRateLimit(ctx, sessionID, 1, time.Second)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = repo.CheckRateLimit(ctx, sessionID, 1, time.Second)
		require.NoError(t, err)
		assert.False(t, allowed)

		s.FastForward(2 * time.Second)

		allowed, err = repo.CheckRateLimit(ctx, sessionID, 1, time.Second)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("StateExpiry", func(t *testing.T) {
		state := &models.ChatState{SessionID: "sess-5", LastTopic: "amenities"}
		require.NoError(t, repo.SetState(ctx, state))

		s.FastForward(2 * time.Hour)

		got, err := repo.GetState(ctx, "sess-5")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestRedisStateRepositoryNilClient(t *testing.T) {
	repo := NewRedisStateRepository(nil, time.Hour)
	ctx := context.Background()

	_, err := repo.GetState(ctx, "x")
	assert.Error(t, err)

	err = repo.SetState(ctx, &models.ChatState{SessionID: "x"})
	assert.Error(t, err)

	err = repo.ClearState(ctx, "x")
	assert.Error(t, err)

	_, err = repo.CheckRateLimit(ctx, "x", 1, time.Second)
	assert.Error(t, err)
}
