package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mgavilanes/campline-be/internal/access"
	"github.com/mgavilanes/campline-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AccessHandler handles HTTP requests for the access table.
type AccessHandler struct {
	service services.AccessServiceProvider
}

// NewAccessHandler creates a new AccessHandler.
func NewAccessHandler(service services.AccessServiceProvider) *AccessHandler {
	return &AccessHandler{service: service}
}

// Get returns the current access table.
func (h *AccessHandler) Get(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.GetTable()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load access table")
		http.Error(w, "Failed to load access table", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(table)
}

// AddAdmin grants an address unconditional admin access.
func (h *AccessHandler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Address string `json:"address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	table, err := h.service.AddAdmin(payload.Address)
	if err != nil {
		log.Warn().Err(err).Str("address", payload.Address).Msg("Admin address rejected")
		http.Error(w, "Failed to add admin address: "+err.Error(), httpStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(table)
}

// RemoveAdmin revokes an address's admin access.
func (h *AccessHandler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	table, err := h.service.RemoveAdmin(address)
	if err != nil {
		log.Error().Err(err).Str("address", address).Msg("Failed to remove admin address")
		http.Error(w, "Failed to remove admin address", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(table)
}

// AddScopes maps a batch of addresses to one department. The batch is
// atomic; conflicts report the offending addresses.
func (h *AccessHandler) AddScopes(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Addresses    string `json:"addresses"`
		DepartmentID string `json:"departmentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	table, err := h.service.AddScopes(payload.Addresses, payload.DepartmentID)
	if err != nil {
		var conflict *access.ConflictError
		if errors.As(err, &conflict) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":     "addresses already mapped",
				"addresses": conflict.Addresses,
			})
			return
		}
		log.Warn().Err(err).Str("department_id", payload.DepartmentID).Msg("Scope batch rejected")
		http.Error(w, "Failed to add scopes: "+err.Error(), httpStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(table)
}

// RemoveScope removes an address's department mapping.
func (h *AccessHandler) RemoveScope(w http.ResponseWriter, r *http.Request) {
	address := chi.URLParam(r, "address")
	table, err := h.service.RemoveScope(address)
	if err != nil {
		log.Error().Err(err).Str("address", address).Msg("Failed to remove scope")
		http.Error(w, "Failed to remove scope", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(table)
}

// Classify reports how an address would be classified. Useful for
// administrators checking the effect of table edits.
func (h *AccessHandler) Classify(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	classification, err := h.service.Classify(address)
	if err != nil {
		log.Error().Err(err).Str("address", address).Msg("Failed to classify address")
		http.Error(w, "Failed to classify address", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(classification)
}
