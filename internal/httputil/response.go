package httputil

import (
	"encoding/json"
	"log"
	"net/http"
)

// Envelope is the shape of every API response.
// Data carries the payload on success, Error carries detail on failure.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Logs encoding errors to avoid silent failures.
func RespondJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// RespondData sends a success envelope with the given message and payload.
func RespondData(w http.ResponseWriter, message string, data any, statusCode int) {
	RespondJSON(w, Envelope{Success: true, Message: message, Data: data}, statusCode)
}

// RespondError sends a failure envelope with the given message and status code.
func RespondError(w http.ResponseWriter, message string, statusCode int) {
	RespondJSON(w, Envelope{Success: false, Message: message, Error: http.StatusText(statusCode)}, statusCode)
}
