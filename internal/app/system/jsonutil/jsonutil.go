// Package jsonutil writes JSON responses.
package jsonutil

import (
	"encoding/json"
	"net/http"
)

// Write encodes v as the response body with the given status.
// A nil pointer encodes as JSON null.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK is Write with status 200.
func OK(w http.ResponseWriter, v any) {
	Write(w, http.StatusOK, v)
}
