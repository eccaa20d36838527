package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"gymAPI/services"
)

// DashboardHandler serves the gym-owner and client views.
type DashboardHandler struct {
	statsService *services.StatsService
	logger       *zap.Logger
}

func NewDashboardHandler(statsService *services.StatsService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{statsService: statsService, logger: logger}
}

func (h *DashboardHandler) OwnerChallenges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, _ := callerID(ctx)
	list, err := h.statsService.OwnerGymChallenges(ctx, userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch gym challenges")
		return
	}
	respondWithData(w, http.StatusOK, list)
}

func (h *DashboardHandler) OwnerStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, _ := callerID(ctx)
	st, err := h.statsService.OwnerGymStats(ctx, userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch gym stats")
		return
	}
	respondWithData(w, http.StatusOK, st)
}

func (h *DashboardHandler) ClientDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, _ := callerID(ctx)
	d, err := h.statsService.ClientDashboard(ctx, userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch dashboard")
		return
	}
	respondWithData(w, http.StatusOK, d)
}

func (h *DashboardHandler) ClientStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, _ := callerID(ctx)
	st, err := h.statsService.ClientStats(ctx, userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch stats")
		return
	}
	respondWithData(w, http.StatusOK, st)
}

func (h *DashboardHandler) WorkoutHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, _ := callerID(ctx)
	page, err := h.statsService.WorkoutHistory(ctx, userID, pageParams(r))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch workout history")
		return
	}
	respondWithPage(w, page)
}
