package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"resoluteAPI/internal/checkin"
	"resoluteAPI/services"
	"resoluteAPI/store"
)

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithServiceError maps the service error taxonomy onto HTTP codes:
// not-found is a condition, guard rejections are conflicts, validation is a
// bad request, anything else is a store failure.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Record not found")
	case errors.Is(err, checkin.ErrSubtasksOutstanding):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, checkin.ErrUnknownSubtask):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrInvalid):
		respondWithError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("Service error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
