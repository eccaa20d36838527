package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"gymAPI/internal/types/account"
	"gymAPI/services"
)

type AuthHandler struct {
	accountService *services.AccountService
	logger         *zap.Logger
}

func NewAuthHandler(accountService *services.AccountService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{accountService: accountService, logger: logger}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	var req account.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.accountService.Register(ctx, req)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to register user")
		return
	}
	respondWithDataMessage(w, http.StatusCreated, res, "User registered successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	var req account.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.accountService.Authenticate(ctx, req)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to log in")
		return
	}
	respondWithDataMessage(w, http.StatusOK, res, "Login successful")
}

// Logout only acknowledges; tokens are stateless and expire on their own.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondWithMessage(w, http.StatusOK, "Logout successful")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r)
	defer cancel()

	userID, ok := callerID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, services.ErrAuthRequired.Error())
		return
	}

	acc, err := h.accountService.Me(ctx, userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "Failed to fetch profile")
		return
	}
	respondWithData(w, http.StatusOK, acc)
}
