package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"kart-checkout/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError maps a domain error onto the right status code.
func writeDomainError(w http.ResponseWriter, domainErr *model.DomainError, logger zerolog.Logger) {
	status := http.StatusBadRequest
	switch domainErr.Code {
	case model.ErrCodeSubmissionInFlight, model.ErrCodeCheckoutComplete:
		status = http.StatusConflict
	}

	logger.Warn().
		Str("code", domainErr.Code).
		Str("error", domainErr.Message).
		Int("status", status).
		Msg("request rejected")
	writeJSON(w, status, ErrorResponse{Error: domainErr.Message, Code: domainErr.Code})
}

// handleFlowError dispatches between domain errors, backend failures
// and everything else.
func handleFlowError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeDomainError(w, domainErr, logger)
		return
	}

	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		writeError(w, http.StatusBadGateway, apiErr.Message, logger)
		return
	}

	writeError(w, http.StatusInternalServerError, "internal error", logger)
}
