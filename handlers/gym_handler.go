package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"gymAPI/internal/types/gym"
	"gymAPI/services"
)

type GymHandler struct {
	gymService *services.GymService
	logger     *zap.Logger
}

func NewGymHandler(gymService *services.GymService, logger *zap.Logger) *GymHandler {
	return &GymHandler{gymService: gymService, logger: logger}
}

func (h *GymHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	gyms, err := h.gymService.List(ctx, gym.Status(r.URL.Query().Get("status")))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch gyms")
		return
	}
	respondWithData(w, http.StatusOK, gyms)
}

func (h *GymHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	g, err := h.gymService.GetByID(ctx, pathVar(r, "id"), viewer(ctx))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch gym")
		return
	}
	respondWithData(w, http.StatusOK, g)
}

func (h *GymHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	var req gym.CreateGymRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := h.gymService.Create(ctx, userID, req.Details())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to create gym")
		return
	}
	respondWithDataMessage(w, http.StatusCreated, g, "Gym registered successfully and pending approval")
}

func (h *GymHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(ownerID string) (string, error) { return pathVar(r, "id"), nil })
}

// UpdateOwn updates the caller's first gym.
func (h *GymHandler) UpdateOwn(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(ownerID string) (string, error) {
		g, err := h.gymService.GetByOwner(r.Context(), ownerID)
		return g.ID, err
	})
}

func (h *GymHandler) update(w http.ResponseWriter, r *http.Request, target func(ownerID string) (string, error)) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	var req gym.UpdateGymRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	gymID, err := target(userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to update gym")
		return
	}
	g, err := h.gymService.Update(ctx, gymID, userID, req.Details())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to update gym")
		return
	}
	respondWithDataMessage(w, http.StatusOK, g, "Gym updated successfully")
}

func (h *GymHandler) GetOwn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	g, err := h.gymService.GetByOwner(ctx, userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch gym")
		return
	}
	respondWithData(w, http.StatusOK, g)
}
