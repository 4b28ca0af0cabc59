package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	app_errors "flow-chat/frontend/internal/errors"
)

// Shared response DTOs and helpers for consistent HTTP responses.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by operations that have no resource to show.
type StatusResponse struct {
	Status string `json:"status"`
}

// TextResponse carries a transcription.
type TextResponse struct {
	Text string `json:"text"`
}

// respondWithError maps business-layer errors to HTTP status codes and a
// user-facing message. The full error is logged.
func respondWithError(w http.ResponseWriter, err error) {
	statusCode, message := classify(err)
	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)
	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

func classify(err error) (int, string) {
	var httpErr *app_errors.HTTPError
	var streamErr *app_errors.StreamError
	switch {
	case errors.Is(err, app_errors.ErrValidation):
		// Validation messages are written for the user already.
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, app_errors.ErrAuth):
		return http.StatusUnauthorized, "Please log in again."
	case errors.Is(err, app_errors.ErrPermission):
		return http.StatusForbidden, "You do not have permission to perform this action."
	case errors.Is(err, app_errors.ErrNotFound):
		return http.StatusNotFound, "The requested resource was not found."
	case errors.Is(err, app_errors.ErrConflict):
		return http.StatusConflict, "Another action is still in progress. Please wait or stop it first."
	case errors.As(err, &streamErr):
		return http.StatusBadGateway, "The reply was interrupted."
	case errors.As(err, &httpErr) && httpErr.Detail != "":
		return http.StatusBadGateway, httpErr.Detail
	case app_errors.IsUpstream(err):
		return http.StatusBadGateway, "The chat service is not available right now."
	default:
		return http.StatusInternalServerError, "An unexpected internal server error occurred."
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func setStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
}

// sendStreamError sends an `event: error` frame over an SSE stream.
func sendStreamError(w http.ResponseWriter, err error) {
	_, message := classify(err)
	slog.Warn("Sending stream error to client", "message", message, "internal_error", err)

	jsonData, mErr := json.Marshal(ErrorResponse{Error: message})
	if mErr != nil {
		slog.Error("Failed to marshal stream error payload", "error", mErr)
		return
	}
	if _, wErr := fmt.Fprintf(w, "event: error\ndata: %s\n\n", jsonData); wErr != nil {
		slog.Warn("Failed to write stream error, client might have disconnected", "error", wErr)
		return
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}

// writeStreamEvent writes one SSE frame named event. A write failure means
// the client is gone.
func writeStreamEvent(w http.ResponseWriter, event string, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal stream data to JSON", "error", err)
		return nil
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return fmt.Errorf("failed to write data to stream: %w", err)
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
