package stats

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	repo RepositoryInterface
}

func NewHandler(repo RepositoryInterface) *Handler {
	return &Handler{repo: repo}
}

type StatsResponse struct {
	Success bool      `json:"success"`
	Stats   *Snapshot `json:"stats"`
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	snap, err := h.repo.Snapshot(r.Context())
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "stats_failed", "message": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(StatsResponse{
		Success: true,
		Stats:   snap,
	})
}
