package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shopworks/storefront/internal/database"
	"github.com/shopworks/storefront/internal/model"
	"github.com/shopworks/storefront/internal/service"
)

// MapServiceError converts a service or store error to a ProblemDetails
// response. This centralizes error handling logic for all handlers, ensuring
// consistent HTTP status codes across the API. resource names the entity the
// operation touched and shows up in 404 bodies.
func MapServiceError(err error, resource string) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		// Single message for both unknown email and wrong password.
		return model.NewUnauthorizedError("Invalid email or password")
	case errors.Is(err, service.ErrInvalidSession),
		errors.Is(err, service.ErrSessionExpired),
		errors.Is(err, service.ErrSessionRevoked):
		return model.NewUnauthorizedError("Invalid or expired session")

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, database.ErrNotFound):
		return model.NewNotFoundError(resource)
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("user")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewConflictError(err.Error())
	case errors.Is(err, database.ErrDuplicate):
		return model.NewConflictError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordRequired),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		return model.NewValidationError([]model.FieldError{{Field: "credentials", Message: err.Error()}})
	case errors.Is(err, service.ErrInvalidQuantity):
		return model.NewValidationError([]model.FieldError{{Field: "quantity", Message: err.Error()}})

	// ===== Default → 500 =====
	// The raw store error lands in the response detail. Known to leak
	// driver internals to clients; kept for compatibility with existing
	// consumers that parse it.
	default:
		return model.NewStoreError(err)
	}
}

// parseID extracts a numeric ID path value. A non-numeric segment is a 400,
// written directly; the bool reports whether the handler should continue.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		WriteError(w, model.NewBadRequestError("ID must be numeric, got "+strconv.Quote(raw)))
		return 0, false
	}
	return id, true
}
