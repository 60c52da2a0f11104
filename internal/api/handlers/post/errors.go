package post

import (
	"errors"
	"log/slog"
	"net/http"

	"Postfeed/internal/api/handlers"
	"Postfeed/internal/core/posts"
)

// handleServiceError maps service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case posts.IsValidationError(err):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidParameter", validationMessage(err))

	case posts.IsNotFound(err):
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Page not found")

	case posts.IsStoreUnavailable(err):
		// Don't leak store details to clients
		slog.ErrorContext(r.Context(), "store unavailable while listing posts",
			slog.String("error", err.Error()))
		handlers.WriteError(w, http.StatusServiceUnavailable, "StoreUnavailable",
			"The post store is temporarily unavailable")

	default:
		slog.ErrorContext(r.Context(), "unexpected error in post handler",
			slog.String("error", err.Error()))
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError",
			"An internal error occurred")
	}
}

func validationMessage(err error) string {
	var valErr *posts.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Message
	}
	return err.Error()
}
