package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mgavilanes/campline-be/internal/access"
	"github.com/mgavilanes/campline-be/internal/auth"
	"github.com/mgavilanes/campline-be/internal/models"
	"github.com/mgavilanes/campline-be/internal/services"
	"github.com/rs/zerolog/log"
)

const maxImportBytes = 8 << 20

// EventHandler handles HTTP requests for calendar events, including
// CSV import and export.
type EventHandler struct {
	service     services.EventServiceProvider
	interchange services.InterchangeServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider, interchange services.InterchangeServiceProvider) *EventHandler {
	return &EventHandler{service: service, interchange: interchange}
}

// GetAll handles listing events. Department-scoped callers only see
// their own department's events.
func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	var events []models.Event
	var err error

	tier := auth.TierFromContext(r.Context())
	if tier.Tier == access.TierDepartment {
		events, err = h.service.GetEventsForDepartment(tier.DepartmentID)
	} else {
		events, err = h.service.GetAllEvents()
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve events")
		http.Error(w, "Failed to retrieve events", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

// Get handles retrieving a single event.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	event, err := h.service.GetEventByID(id)
	if err != nil {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(event)
}

// Create handles creating a new event.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateEvent(event)
	if err != nil {
		log.Error().Err(err).Str("title", event.Title).Msg("Failed to create event")
		http.Error(w, "Failed to create event: "+err.Error(), httpStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// Update handles replacing an event's fields.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateEvent(id, event)
	if err != nil {
		log.Error().Err(err).Str("event_id", id).Msg("Failed to update event")
		http.Error(w, "Failed to update event: "+err.Error(), httpStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// Delete handles removing a single event.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteEvent(id); err != nil {
		log.Error().Err(err).Str("event_id", id).Msg("Failed to delete event")
		http.Error(w, "Failed to delete event", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAll handles clearing the whole calendar.
func (h *EventHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAllEvents(); err != nil {
		log.Error().Err(err).Msg("Failed to delete all events")
		http.Error(w, "Failed to delete events", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export streams every event as a dated CSV download.
func (h *EventHandler) Export(w http.ResponseWriter, r *http.Request) {
	filename, data, err := h.interchange.ExportCSV()
	if err != nil {
		log.Error().Err(err).Msg("Failed to export events")
		http.Error(w, "Failed to export events", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// Import decodes CSV text from the request body and creates the
// resulting events. The response reports the created count and any
// per-line diagnostics.
func (h *EventHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	result, err := h.interchange.ImportCSV(string(body))
	if err != nil {
		log.Warn().Err(err).Msg("Event import rejected")
		http.Error(w, "Import failed: "+err.Error(), httpStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
