package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/pkg/handlers"
)

type leaderboard interface {
	Snapshot() []entity.LeaderboardEntry
	Get(name string) (entity.LeaderboardEntry, error)
}

type leaderboardHandler struct {
	logger      *slog.Logger
	leaderboard leaderboard
}

// NewRouter exposes a read-only view of the leaderboard.
func NewRouter(logger *slog.Logger, leaderboard leaderboard) http.Handler {
	h := &leaderboardHandler{
		logger:      logger.With("component", "rest"),
		leaderboard: leaderboard,
	}

	r := chi.NewRouter()
	r.Get("/ping", handlers.PingHandler)
	r.Route("/leaderboard", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{name}", h.get)
	})

	return r
}

func (that *leaderboardHandler) list(w http.ResponseWriter, _ *http.Request) {
	that.writeJSON(w, http.StatusOK, that.leaderboard.Snapshot())
}

func (that *leaderboardHandler) get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	entry, err := that.leaderboard.Get(name)
	if err != nil {
		that.writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	that.writeJSON(w, http.StatusOK, entry)
}

func (that *leaderboardHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
