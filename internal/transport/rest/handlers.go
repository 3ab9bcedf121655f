package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/fourinarow-backend/internal/entity"
)

const maxLeaderboardLimit = 100

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	LeaderboardHandler(w http.ResponseWriter, r *http.Request)
}

type leaderboardService interface {
	Top(ctx context.Context, limit int) ([]entity.LeaderboardEntry, error)
}

type handlers struct {
	logger       *slog.Logger
	leaderboard  leaderboardService
	defaultLimit int
}

func NewHandlers(logger *slog.Logger, leaderboard leaderboardService, defaultLimit int) Handlers {
	return &handlers{
		logger:       logger.With("component", "rest"),
		leaderboard:  leaderboard,
		defaultLimit: defaultLimit,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// LeaderboardHandler - GET /leaderboard?limit=n.
func (that *handlers) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "LeaderboardHandler")

	limit := that.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxLeaderboardLimit {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be between 1 and 100"})
			return
		}
		limit = parsed
	}

	entries, err := that.leaderboard.Top(r.Context(), limit)
	if err != nil {
		log.Error("failed to get leaderboard", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
