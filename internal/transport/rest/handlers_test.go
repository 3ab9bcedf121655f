package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaderboard struct {
	entries   []entity.LeaderboardEntry
	err       error
	lastLimit int
}

func (that *fakeLeaderboard) Top(_ context.Context, limit int) ([]entity.LeaderboardEntry, error) {
	that.lastLimit = limit
	return that.entries, that.err
}

func newTestRouter(leaderboard *fakeLeaderboard) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ws := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	return NewRouter(NewHandlers(logger, leaderboard, 10), ws)
}

func TestPingHandler(t *testing.T) {
	router := newTestRouter(&fakeLeaderboard{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestLeaderboardHandler(t *testing.T) {
	t.Run("Returns the entries with the default limit", func(t *testing.T) {
		// Given: a leaderboard with one entry
		leaderboard := &fakeLeaderboard{entries: []entity.LeaderboardEntry{{DisplayName: "Alice", Wins: 2}}}
		router := newTestRouter(leaderboard)

		// When
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 10, leaderboard.lastLimit)

		var entries []entity.LeaderboardEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
		assert.Equal(t, leaderboard.entries, entries)
	})

	t.Run("Honours the limit parameter", func(t *testing.T) {
		leaderboard := &fakeLeaderboard{entries: []entity.LeaderboardEntry{}}
		router := newTestRouter(leaderboard)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leaderboard?limit=3", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 3, leaderboard.lastLimit)
	})

	t.Run("Rejects an invalid limit", func(t *testing.T) {
		router := newTestRouter(&fakeLeaderboard{})

		for _, limit := range []string{"abc", "0", "1000"} {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leaderboard?limit="+limit, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code, limit)
		}
	})

	t.Run("Store failure is a server error", func(t *testing.T) {
		router := newTestRouter(&fakeLeaderboard{err: errors.New("db down")})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestRouter_MountsWebsocket(t *testing.T) {
	router := newTestRouter(&fakeLeaderboard{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
