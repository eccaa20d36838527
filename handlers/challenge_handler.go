package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"gymAPI/internal/types/challenge"
	"gymAPI/internal/types/exercise"
	"gymAPI/internal/types/participation"
	"gymAPI/services"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
	logger           *zap.Logger
}

func NewChallengeHandler(challengeService *services.ChallengeService, logger *zap.Logger) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService, logger: logger}
}

func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	q := r.URL.Query()
	filter := challenge.ListFilter{
		Status:     challenge.Status(q.Get("status")),
		Difficulty: exercise.Difficulty(q.Get("difficulty")),
		GymID:      q.Get("gymId"),
	}

	page, err := h.challengeService.List(ctx, filter, pageParams(r))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch challenges")
		return
	}
	respondWithPage(w, page)
}

func (h *ChallengeHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	c, err := h.challengeService.GetByID(ctx, pathVar(r, "id"))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch challenge")
		return
	}
	respondWithData(w, http.StatusOK, c)
}

func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	var req challenge.CreateChallengeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.challengeService.Create(ctx, userID, req.Draft())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to create challenge")
		return
	}
	respondWithDataMessage(w, http.StatusCreated, c, "Challenge created successfully")
}

func (h *ChallengeHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	var req challenge.UpdateChallengeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	c, err := h.challengeService.Update(ctx, pathVar(r, "id"), userID, req.Changes())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to update challenge")
		return
	}
	respondWithDataMessage(w, http.StatusOK, c, "Challenge updated successfully")
}

func (h *ChallengeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	if err := h.challengeService.Delete(ctx, pathVar(r, "id"), userID); err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to delete challenge")
		return
	}
	respondWithMessage(w, http.StatusOK, "Challenge deleted successfully")
}

func (h *ChallengeHandler) Join(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	p, err := h.challengeService.Join(ctx, pathVar(r, "id"), userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to join challenge")
		return
	}
	respondWithDataMessage(w, http.StatusCreated, p, "Successfully joined the challenge")
}

func (h *ChallengeHandler) Leave(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	msg, err := h.challengeService.Leave(ctx, pathVar(r, "id"), userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to leave challenge")
		return
	}
	respondWithMessage(w, http.StatusOK, msg)
}

func (h *ChallengeHandler) Invite(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	var req challenge.InviteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.challengeService.Invite(ctx, pathVar(r, "id"), userID, req.Email); err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to send invitation")
		return
	}
	respondWithMessage(w, http.StatusOK, "Invitation sent successfully")
}

func (h *ChallengeHandler) Participants(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	status := participation.Status(r.URL.Query().Get("status"))
	page, err := h.challengeService.Participants(ctx, pathVar(r, "id"), status, pageParams(r))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch participants")
		return
	}
	respondWithPage(w, page)
}
