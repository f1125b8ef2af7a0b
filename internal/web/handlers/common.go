// Package handlers implements the HTTP endpoints of the archive.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kozaktomas/photo-archive/internal/database"
	"github.com/kozaktomas/photo-archive/internal/event"
)

var log = event.Log

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// errStorageUnavailable is returned while no storage backend is registered.
const errStorageUnavailable = "storage backend not available"

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Warnf("web: encoding response: %v", err)
		}
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// HealthCheck handles the health check endpoint. The server is alive even
// without storage, so it always answers 200 and reports the storage state.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	storage := "ready"
	if !database.IsInitialized() {
		storage = "unavailable"
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"storage": storage,
	})
}
