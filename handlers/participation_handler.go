package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"gymAPI/internal/types/participation"
	"gymAPI/services"
)

type ParticipationHandler struct {
	participationService *services.ParticipationService
	logger               *zap.Logger
}

func NewParticipationHandler(participationService *services.ParticipationService, logger *zap.Logger) *ParticipationHandler {
	return &ParticipationHandler{participationService: participationService, logger: logger}
}

func (h *ParticipationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	page, err := h.participationService.ListForUser(ctx, userID, pageParams(r))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch participations")
		return
	}
	respondWithPage(w, page)
}

func (h *ParticipationHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	p, err := h.participationService.Get(ctx, pathVar(r, "id"), userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch participation")
		return
	}
	respondWithData(w, http.StatusOK, p)
}

func (h *ParticipationHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	sessions, err := h.participationService.ListSessions(ctx, pathVar(r, "id"), userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch workout sessions")
		return
	}
	respondWithData(w, http.StatusOK, sessions)
}

func (h *ParticipationHandler) AddSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	var req participation.AddWorkoutSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.participationService.AddWorkoutSession(ctx, pathVar(r, "id"), userID, req.Input())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to add workout session")
		return
	}
	respondWithDataMessage(w, http.StatusCreated, res, "Workout session added successfully")
}

func (h *ParticipationHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	var req participation.UpdateWorkoutSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.participationService.UpdateWorkoutSession(ctx, pathVar(r, "id"), pathVar(r, "sessionId"), userID, req.Changes())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to update workout session")
		return
	}
	respondWithDataMessage(w, http.StatusOK, res, "Workout session updated successfully")
}

func (h *ParticipationHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	res, err := h.participationService.DeleteWorkoutSession(ctx, pathVar(r, "id"), pathVar(r, "sessionId"), userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to delete workout session")
		return
	}
	respondWithDataMessage(w, http.StatusOK, res, res.Message)
}
