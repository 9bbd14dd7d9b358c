// Package api provides HTTP handlers for the Learnzverse API.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ashureev/learnzverse/internal/store"
	"github.com/ashureev/learnzverse/internal/transcript"
	"github.com/ashureev/learnzverse/internal/tutor"
)

// Handler provides common handler utilities.
type Handler struct {
	repo       store.Repository
	tutor      *tutor.Service
	transcript *transcript.Logger
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(repo store.Repository, svc *tutor.Service, tr *transcript.Logger) *Handler {
	return &Handler{
		repo:       repo,
		tutor:      svc,
		transcript: tr,
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
