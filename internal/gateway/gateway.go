package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kart-checkout/internal/auth"
	"kart-checkout/internal/config"
	"kart-checkout/internal/model"

	"github.com/rs/zerolog"
)

// Gateway is the single request helper every store goes through. It
// attaches the caller's bearer token, unwraps JSON bodies and
// normalises every failure into a *model.APIError. Callers never
// retry; each failure is surfaced once to the caller.
type Gateway interface {
	// Do issues an HTTP request against the backend and returns the raw
	// response body. header may be nil. A nil body sends no payload.
	Do(ctx context.Context, method, path string, body any, header http.Header) (json.RawMessage, error)
}

// httpGateway implements Gateway over net/http.
type httpGateway struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// New creates a gateway for the configured backend. The request
// timeout bounds every call; a hung backend must not hold the checkout
// flow open indefinitely.
func New(cfg config.BackendConfig, logger zerolog.Logger) Gateway {
	return &httpGateway{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		logger: logger.With().Str("component", "gateway").Logger(),
	}
}

// Do issues the request and normalises the outcome.
func (g *httpGateway) Do(ctx context.Context, method, path string, body any, header http.Header) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if token := auth.TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error().
			Err(err).
			Str("method", method).
			Str("path", path).
			Msg("backend request failed")
		return nil, &model.APIError{Message: "backend unreachable: " + err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.APIError{Message: "failed to read backend response: " + err.Error()}
	}

	g.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("backend request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &model.APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw, resp.StatusCode),
		}
		g.logger.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("message", apiErr.Message).
			Msg("backend rejected request")
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return nil, nil
	}

	return json.RawMessage(raw), nil
}

// errorMessage pulls a human-readable message out of an error body.
// Backends answer with either {"message": ...} or {"error": ...};
// anything else falls back to the HTTP status text.
func errorMessage(raw []byte, status int) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return http.StatusText(status)
}
