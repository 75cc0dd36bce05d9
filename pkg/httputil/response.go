// Package httputil provides shared HTTP utilities for consistent JSON responses.
package httputil

import (
	"encoding/json"
	"net/http"
)

// Error names used in {"error", "message"} bodies.
const (
	ErrNotFound = "Not Found"
	ErrInternal = "Internal Server Error"
)

// BodyAllowed reports whether a response with the given status may carry a body.
func BodyAllowed(status int) bool {
	switch {
	case status >= 100 && status < 200:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}

// WriteJSON encodes data and writes it with the given status code.
// The payload is marshalled before anything is written, so a marshal error leaves
// the ResponseWriter untouched and can still be turned into a 500 by the caller.
// Statuses that forbid a body only get the status line and headers; a nil
// data is written as JSON null.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	if !BodyAllowed(status) {
		w.WriteHeader(status)
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(payload)
	return err
}

// WriteError writes a {"error": message} body, the shape used for request
// validation and authentication failures.
func WriteError(w http.ResponseWriter, status int, message string) {
	_ = WriteJSON(w, status, map[string]string{"error": message})
}

// WriteErrorMessage writes a {"error": errName, "message": message} body.
func WriteErrorMessage(w http.ResponseWriter, status int, errName, message string) {
	_ = WriteJSON(w, status, map[string]string{
		"error":   errName,
		"message": message,
	})
}

// WriteBadRequest writes a 400 with a {"error": message} body.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 Not Found error response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteErrorMessage(w, http.StatusNotFound, ErrNotFound, message)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteErrorMessage(w, http.StatusInternalServerError, ErrInternal, message)
}
