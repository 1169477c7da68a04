package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mgavilanes/campline-be/internal/monitoring"
)

// SystemHandler serves host health information for the admin dashboard.
type SystemHandler struct {
	stats *monitoring.StatsUpdater
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(stats *monitoring.StatsUpdater) *SystemHandler {
	return &SystemHandler{stats: stats}
}

// GetStats returns the most recent host resource sample.
func (h *SystemHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.stats.Latest())
}
