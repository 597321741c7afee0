package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"prorentals-backend/internal/domain"
	"prorentals-backend/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

type errorBody struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
	// ExistingID references the resource already holding a contested slot
	ExistingID string `json:"existing_id,omitempty"`
}

// writeError translates a domain error into an HTTP status and JSON body.
// Anything not in the taxonomy is a 500 with a generic message.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *domain.ValidationError
		notFoundErr   *domain.NotFoundError
		stateErr      *domain.InvalidStateError
		authErr       *domain.AuthorizationError
		conflictErr   *domain.ConflictError
		upstreamErr   *domain.UpstreamError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: validationErr.Message, Fields: validationErr.Fields})
	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusNotFound, errorBody{Error: notFoundErr.Error()})
	case errors.As(err, &stateErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: stateErr.Error()})
	case errors.As(err, &authErr):
		writeJSON(w, http.StatusForbidden, errorBody{Error: authErr.Message})
	case errors.As(err, &conflictErr):
		writeJSON(w, http.StatusConflict, errorBody{Error: conflictErr.Message, ExistingID: conflictErr.ExistingID})
	case errors.As(err, &upstreamErr):
		status := upstreamErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, errorBody{Error: upstreamErr.Error()})
	default:
		logger.Error("Unhandled error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("invalid JSON body")
	}
	return nil
}
