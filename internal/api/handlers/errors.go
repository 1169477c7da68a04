package handlers

import (
	"errors"
	"net/http"

	"github.com/mgavilanes/campline-be/internal/access"
	"github.com/mgavilanes/campline-be/internal/services"
)

// httpStatus maps service errors to response codes: validation
// problems are the caller's to correct, duplicate/conflict rejections
// from the access table are conflicts, anything else is a server
// failure.
func httpStatus(err error) int {
	if services.IsValidation(err) {
		return http.StatusBadRequest
	}
	var conflict *access.ConflictError
	if errors.As(err, &conflict) || errors.Is(err, access.ErrDuplicateAdmin) {
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
