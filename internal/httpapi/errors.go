package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/honeycarbs/jobmarket-tracker/internal/errors"
)

type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = middleware.GetReqID(r.Context())
	writeJSON(w, status, e)
}

// fail maps err to a status by its kind. Only invalid input messages reach
// the client; everything else is described by public.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error, public string) {
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalid:
		writeError(w, r, http.StatusBadRequest, "invalid_parameter", err.Error())
	case apperrors.KindUnavailable:
		h.logger.Error(public, "error", err)
		writeError(w, r, http.StatusServiceUnavailable, "unavailable", public)
	default:
		h.logger.Error(public, "error", err)
		writeError(w, r, http.StatusInternalServerError, "internal_error", public)
	}
}

// writeReport sends a reporter result with status 200. A result annotated
// with an error keeps its shape and is marked no-store so it is not cached.
func writeReport(w http.ResponseWriter, v any, errMsg string) {
	if errMsg != "" {
		w.Header().Set("Cache-Control", "no-store")
	}
	writeJSON(w, http.StatusOK, v)
}
