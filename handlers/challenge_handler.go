package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"resoluteAPI/internal/checkin"
	"resoluteAPI/internal/types/challenge"
	"resoluteAPI/middleware"
	"resoluteAPI/services"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
}

func NewChallengeHandler(challengeService *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService}
}

func (h *ChallengeHandler) requestContext(r *http.Request) (context.Context, context.CancelFunc, string, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	userID, ok := middleware.GetUserID(ctx)
	return ctx, cancel, userID, ok
}

func challengeID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

func (h *ChallengeHandler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, ok := h.requestContext(r)
	defer cancel()
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	challenges, err := h.challengeService.ListChallenges(ctx, userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, challenges)
}

func (h *ChallengeHandler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, ok := h.requestContext(r)
	defer cancel()
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req challenge.CreateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.challengeService.CreateChallenge(ctx, userID, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, created)
}

func (h *ChallengeHandler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, ok := h.requestContext(r)
	defer cancel()
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, err := challengeID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}

	detail, err := h.challengeService.GetDetail(ctx, userID, id, time.Now())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, detail)
}

func (h *ChallengeHandler) UpdateChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, ok := h.requestContext(r)
	defer cancel()
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, err := challengeID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}

	var req challenge.UpdateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.challengeService.UpdateChallenge(ctx, userID, id, &req)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (h *ChallengeHandler) DeleteChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, ok := h.requestContext(r)
	defer cancel()
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, err := challengeID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}

	if err := h.challengeService.DeleteChallenge(ctx, userID, id); err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Challenge deleted"})
}

func (h *ChallengeHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, ok := h.requestContext(r)
	defer cancel()
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, err := challengeID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}

	logs, err := h.challengeService.ListLogs(ctx, userID, id)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, logs)
}

func (h *ChallengeHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, ok := h.requestContext(r)
	defer cancel()
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, err := challengeID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}

	cells, err := h.challengeService.Calendar(ctx, userID, id, time.Now())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, cells)
}

type checkInRequest struct {
	Completed bool `json:"completed"`
}

func (h *ChallengeHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, ok := h.requestContext(r)
	defer cancel()
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, err := challengeID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}

	var req checkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.challengeService.CheckIn(ctx, userID, id, req.Completed, time.Now())
	if err != nil {
		if errors.Is(err, checkin.ErrSubtasksOutstanding) {
			middleware.RecordCheckin("rejected")
		} else {
			middleware.RecordCheckin("failed")
		}
		respondWithServiceError(w, err)
		return
	}

	if req.Completed {
		middleware.RecordCheckin("completed")
	} else {
		middleware.RecordCheckin("undone")
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (h *ChallengeHandler) ToggleSubtask(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, ok := h.requestContext(r)
	defer cancel()
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	id, err := challengeID(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}
	subtaskID := mux.Vars(r)["subtaskId"]
	if subtaskID == "" {
		respondWithError(w, http.StatusBadRequest, "Subtask id is required")
		return
	}

	result, err := h.challengeService.ToggleSubtask(ctx, userID, id, subtaskID, time.Now())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (h *ChallengeHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, ok := h.requestContext(r)
	defer cancel()
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	stats, err := h.challengeService.Dashboard(ctx, userID, time.Now())
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}
