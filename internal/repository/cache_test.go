package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/fourinarow-backend/internal/apperror"
	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
	"github.com/rocketscienceinc/fourinarow-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardCache_SetAndGet(t *testing.T) {
	ctx, st := suite.New(t)

	cache := NewLeaderboardCache(st.Storage, time.Minute)

	// Given: cached entries for the top 10
	entries := []entity.LeaderboardEntry{{DisplayName: "Alice", Wins: 3}}
	require.NoError(t, cache.Set(ctx, 10, entries))

	// When: Get is called with the same limit
	cached, err := cache.Get(ctx, 10)

	// Then: the entries are returned
	require.NoError(t, err)
	assert.Equal(t, entries, cached)

	// And: other limits are a miss
	_, err = cache.Get(ctx, 5)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestLeaderboardCache_Invalidate(t *testing.T) {
	t.Run("Drops every cached size", func(t *testing.T) {
		ctx, st := suite.New(t)

		cache := NewLeaderboardCache(st.Storage, time.Minute)

		// Given: two cached sizes
		require.NoError(t, cache.Set(ctx, 5, []entity.LeaderboardEntry{{DisplayName: "Alice", Wins: 1}}))
		require.NoError(t, cache.Set(ctx, 10, []entity.LeaderboardEntry{{DisplayName: "Alice", Wins: 1}}))

		// When: the cache is invalidated
		require.NoError(t, cache.Invalidate(ctx))

		// Then: both are gone
		_, err := cache.Get(ctx, 5)
		require.ErrorIs(t, err, apperror.ErrNotFound)
		_, err = cache.Get(ctx, 10)
		require.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("Empty cache is a no-op", func(t *testing.T) {
		ctx, st := suite.New(t)

		cache := NewLeaderboardCache(st.Storage, time.Minute)

		assert.NoError(t, cache.Invalidate(ctx))
	})
}
