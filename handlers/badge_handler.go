package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"gymAPI/internal/types/badge"
	"gymAPI/services"
)

type BadgeHandler struct {
	badgeService *services.BadgeService
	logger       *zap.Logger
}

func NewBadgeHandler(badgeService *services.BadgeService, logger *zap.Logger) *BadgeHandler {
	return &BadgeHandler{badgeService: badgeService, logger: logger}
}

func (h *BadgeHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	badges, err := h.badgeService.ListActive(ctx)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch badges")
		return
	}
	respondWithData(w, http.StatusOK, badges)
}

func (h *BadgeHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	b, err := h.badgeService.Get(ctx, pathVar(r, "id"))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch badge")
		return
	}
	respondWithData(w, http.StatusOK, b)
}

func (h *BadgeHandler) Mine(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	badges, err := h.badgeService.UserBadges(ctx, userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch user badges")
		return
	}
	respondWithData(w, http.StatusOK, badges)
}

func (h *BadgeHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, _ := callerID(ctx)
	badges, err := h.badgeService.ListAll(ctx, userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch badges")
		return
	}
	respondWithData(w, http.StatusOK, badges)
}

func (h *BadgeHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	var req badge.CreateBadgeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := callerID(ctx)
	b, err := h.badgeService.Create(ctx, userID, req)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to create badge")
		return
	}
	respondWithDataMessage(w, http.StatusCreated, b, "Badge created successfully")
}

func (h *BadgeHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	var req badge.UpdateBadgeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, _ := callerID(ctx)
	b, err := h.badgeService.Update(ctx, userID, pathVar(r, "id"), req)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to update badge")
		return
	}
	respondWithDataMessage(w, http.StatusOK, b, "Badge updated successfully")
}

func (h *BadgeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, _ := callerID(ctx)
	if err := h.badgeService.Delete(ctx, userID, pathVar(r, "id")); err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to delete badge")
		return
	}
	respondWithMessage(w, http.StatusOK, "Badge deleted successfully")
}
