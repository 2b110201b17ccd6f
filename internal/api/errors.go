package api

import (
	"errors"
	"net/http"

	"github.com/focusflow/focusflow-server/internal/api/respond"
	"github.com/focusflow/focusflow-server/internal/model"
)

// writeServiceError maps domain sentinel errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrInvalidRange):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrEntryPublished):
		respond.WriteConflict(w, err.Error())
	case errors.Is(err, model.ErrPreconditionFailed):
		respond.WritePreconditionFailed(w, err.Error())
	case errors.Is(err, model.ErrStorageUnavailable):
		respond.WriteServiceUnavailable(w, "storage unavailable, try again later")
	default:
		respond.WriteInternalError(w, "internal error")
	}
}
