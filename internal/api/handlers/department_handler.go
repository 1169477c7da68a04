package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mgavilanes/campline-be/internal/services"
	"github.com/rs/zerolog/log"
)

// DepartmentHandler handles HTTP requests for departments.
type DepartmentHandler struct {
	service services.DepartmentServiceProvider
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(service services.DepartmentServiceProvider) *DepartmentHandler {
	return &DepartmentHandler{service: service}
}

// GetAll handles listing every department.
func (h *DepartmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.GetAllDepartments()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve departments")
		http.Error(w, "Failed to retrieve departments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(departments)
}

// Get handles retrieving a single department.
func (h *DepartmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	department, err := h.service.GetDepartmentByID(id)
	if err != nil {
		http.Error(w, "Department not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(department)
}

// Create handles creating a new department.
func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	department, err := h.service.CreateDepartment(payload.Name)
	if err != nil {
		log.Error().Err(err).Str("name", payload.Name).Msg("Failed to create department")
		http.Error(w, "Failed to create department: "+err.Error(), httpStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(department)
}

// Delete handles removing a department. Events referencing it keep
// existing with their department cleared.
func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.DeleteDepartment(id); err != nil {
		log.Error().Err(err).Str("department_id", id).Msg("Failed to delete department")
		http.Error(w, "Failed to delete department", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
