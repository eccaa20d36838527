package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"gymAPI/internal/types/account"
	"gymAPI/internal/types/gym"
	"gymAPI/services"
)

// AdminHandler serves the super-admin console: users, gym approvals and
// platform stats. Badge and exercise administration reuse their own
// handlers.
type AdminHandler struct {
	accountService *services.AccountService
	gymService     *services.GymService
	statsService   *services.StatsService
	logger         *zap.Logger
}

func NewAdminHandler(accountService *services.AccountService, gymService *services.GymService, statsService *services.StatsService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		accountService: accountService,
		gymService:     gymService,
		statsService:   statsService,
		logger:         logger,
	}
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	filter := account.ListFilter{
		Role:     account.Role(r.URL.Query().Get("role")),
		IsActive: queryBool(r, "isActive"),
	}
	page, err := h.accountService.ListUsers(ctx, filter, pageParams(r))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch users")
		return
	}
	respondWithPage(w, page)
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	acc, err := h.accountService.GetUser(ctx, pathVar(r, "id"))
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch user")
		return
	}
	respondWithData(w, http.StatusOK, acc)
}

func (h *AdminHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *AdminHandler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *AdminHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	adminID, _ := callerID(ctx)
	res, err := h.accountService.SetActive(ctx, adminID, pathVar(r, "id"), active)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to update user status")
		return
	}
	if !res.Success {
		respondWithError(w, http.StatusBadRequest, res.Message)
		return
	}
	respondWithDataMessage(w, http.StatusOK, res.User, res.Message)
}

func (h *AdminHandler) PendingGyms(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	adminID, _ := callerID(ctx)
	gyms, err := h.gymService.ListPending(ctx, adminID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch pending gyms")
		return
	}
	respondWithData(w, http.StatusOK, gyms)
}

func (h *AdminHandler) ReviewGym(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	var req gym.ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	adminID, _ := callerID(ctx)
	res, err := h.gymService.Review(ctx, pathVar(r, "id"), adminID, *req.Approved)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to review gym")
		return
	}
	respondWithDataMessage(w, http.StatusOK, res.Gym, res.Message)
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	adminID, _ := callerID(ctx)
	st, err := h.statsService.AdminDashboard(ctx, adminID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch dashboard stats")
		return
	}
	respondWithData(w, http.StatusOK, st)
}
