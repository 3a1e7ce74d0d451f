package server

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope of JSON API responses.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}

const contentTypeJSONLD = "application/ld+json; charset=utf-8"

func writeJSON(w http.ResponseWriter, contentType string, code int, v any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func (s *Server) success(w http.ResponseWriter, data any, count int) {
	writeJSON(w, "application/json; charset=utf-8", http.StatusOK, Response{Success: true, Data: data, Count: &count})
}
