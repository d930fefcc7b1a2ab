package httptransport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"moneyguard/pkg/platform/sentinel"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// writeError translates sentinel errors into HTTP statuses. Anything
// unrecognized is a 500 with a generic body; details stay in the logs.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found"})
	case errors.Is(err, sentinel.ErrInvalidState):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "invalid_state", ErrorDescription: err.Error()})
	case errors.Is(err, sentinel.ErrAborted):
		writeJSON(w, http.StatusGone, errorResponse{Error: "aborted"})
	case errors.Is(err, sentinel.ErrExpired):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "expired"})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
	}
}
