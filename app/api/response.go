package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ecomweb/catalog-api/app/logging"
)

// OKResponse writes data as a 200 JSON response.
func OKResponse(w http.ResponseWriter, data any) {
	JSONResponse(w, http.StatusOK, data)
}

// CreatedResponse writes data as a 201 JSON response pointing at location.
func CreatedResponse(w http.ResponseWriter, location string, data any) {
	w.Header().Set("Location", location)
	JSONResponse(w, http.StatusCreated, data)
}

// JSONResponse writes data as JSON with the given status.
func JSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// StatusResponse writes a response with an empty body.
func StatusResponse(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// ErrorResponse writes {"error": message} with the given status.
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, map[string]string{"error": message})
}

// ValidationResponse writes the collected model state as a 400 response.
func ValidationResponse(w http.ResponseWriter, ms ModelState) {
	JSONResponse(w, http.StatusBadRequest, ms)
}

// ServerErrorResponse logs err with the request context and writes a 500
// carrying only message.
func ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error, message string) {
	logging.FromContext(r.Context()).LogAttrs(r.Context(), slog.LevelError, message,
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	ErrorResponse(w, http.StatusInternalServerError, message)
}
