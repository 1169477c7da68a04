package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/mgavilanes/campline-be/internal/auth"
	"github.com/mgavilanes/campline-be/internal/models"
	"github.com/mgavilanes/campline-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AnnouncementHandler handles HTTP requests for announcements.
type AnnouncementHandler struct {
	service services.AnnouncementServiceProvider
}

// NewAnnouncementHandler creates a new AnnouncementHandler.
func NewAnnouncementHandler(service services.AnnouncementServiceProvider) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// announcementView decorates an announcement with the per-viewer
// unread flag.
type announcementView struct {
	models.Announcement
	Unread bool `json:"unread"`
}

// GetAll handles listing announcements with each one's unread state
// for the calling viewer.
func (h *AnnouncementHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.service.GetAllAnnouncements()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve announcements")
		http.Error(w, "Failed to retrieve announcements", http.StatusInternalServerError)
		return
	}

	viewerID := auth.UserIDFromContext(r.Context())
	now := time.Now()
	views := make([]announcementView, 0, len(announcements))
	for _, a := range announcements {
		views = append(views, announcementView{
			Announcement: a,
			Unread:       a.IsUnreadFor(viewerID, now),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

// Create handles posting a new announcement.
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	announcement, err := h.service.CreateAnnouncement(payload.Title, payload.Body)
	if err != nil {
		log.Error().Err(err).Str("title", payload.Title).Msg("Failed to create announcement")
		http.Error(w, "Failed to create announcement: "+err.Error(), httpStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(announcement)
}

// MarkRead records the calling viewer's acknowledgment of one
// announcement. The operation is idempotent.
func (h *AnnouncementHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	viewerID := auth.UserIDFromContext(r.Context())
	if viewerID == "" {
		http.Error(w, "Could not retrieve user from token", http.StatusUnauthorized)
		return
	}

	if err := h.service.MarkRead(id, viewerID); err != nil {
		log.Error().Err(err).Str("announcement_id", id).Str("user_id", viewerID).Msg("Failed to mark announcement read")
		http.Error(w, "Failed to mark announcement read", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
