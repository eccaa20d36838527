package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"gymAPI/internal/auth"
	"gymAPI/internal/store"
	"gymAPI/internal/types/account"
	"gymAPI/internal/types/pagination"
)

const minPasswordLength = 6

type AccountService struct {
	users  store.Collection
	tokens *auth.TokenIssuer
	logger *zap.Logger
	now    func() time.Time
}

func NewAccountService(db store.Database, tokens *auth.TokenIssuer, logger *zap.Logger) *AccountService {
	return &AccountService{
		users:  db.Collection(store.Users),
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

func (s *AccountService) Register(ctx context.Context, req account.RegisterRequest) (account.AuthResponse, error) {
	if len(req.Password) < minPasswordLength {
		return account.AuthResponse{}, ErrPasswordTooShort
	}
	role := req.Role
	if role == "" {
		role = account.RoleClient
	}
	if !role.Valid() {
		return account.AuthResponse{}, ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	_, err := store.FindOne[account.Account](ctx, s.users, store.Filter{"email": email})
	if err == nil {
		return account.AuthResponse{}, ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return account.AuthResponse{}, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return account.AuthResponse{}, err
	}

	acc := account.New(email, hash, role, s.now())
	if err := s.users.Insert(ctx, acc.ID, acc); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return account.AuthResponse{}, ErrEmailTaken
		}
		return account.AuthResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", acc.ID), zap.String("role", string(acc.Role)))
	return s.session(acc)
}

func (s *AccountService) Authenticate(ctx context.Context, req account.LoginRequest) (account.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	acc, err := store.FindOne[account.Account](ctx, s.users, store.Filter{"email": email})
	if errors.Is(err, store.ErrNotFound) {
		return account.AuthResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return account.AuthResponse{}, fmt.Errorf("failed to look up email: %w", err)
	}
	if !acc.IsActive {
		return account.AuthResponse{}, ErrAccountDeactivated
	}
	if !auth.CheckPassword(acc.PasswordHash, req.Password) {
		return account.AuthResponse{}, ErrInvalidCredentials
	}
	return s.session(acc)
}

func (s *AccountService) session(acc account.Account) (account.AuthResponse, error) {
	token, err := s.tokens.Issue(acc)
	if err != nil {
		return account.AuthResponse{}, err
	}
	return account.AuthResponse{User: acc, Token: token}, nil
}

// SetActive activates or deactivates a user. Repeating the current state is
// not an error; the result reports Success=false instead.
func (s *AccountService) SetActive(ctx context.Context, adminID, userID string, active bool) (account.ActivationResult, error) {
	admin, err := loadAccount(ctx, s.users, adminID, ErrActingUserNotFound)
	if err != nil {
		return account.ActivationResult{}, err
	}
	if !admin.Role.Can(account.ManagePlatform) {
		return account.ActivationResult{}, ErrActivationForbidden
	}

	target, err := loadAccount(ctx, s.users, userID, ErrUserNotFound)
	if err != nil {
		return account.ActivationResult{}, err
	}
	if !active && target.IsSuperAdmin() && target.ID != admin.ID {
		return account.ActivationResult{}, ErrCannotDeactivateAdmin
	}

	if target.IsActive == active {
		msg := "User is already deactivated"
		if active {
			msg = "User is already activated"
		}
		return account.ActivationResult{Success: false, Message: msg, User: target}, nil
	}

	updated := target.WithActive(active, s.now())
	if err := s.users.Replace(ctx, updated.ID, updated); err != nil {
		return account.ActivationResult{}, fmt.Errorf("failed to update user: %w", err)
	}

	msg := "User deactivated successfully"
	if active {
		msg = "User activated successfully"
	}
	s.logger.Info("user activation changed",
		zap.String("admin_id", admin.ID),
		zap.String("user_id", updated.ID),
		zap.Bool("active", active),
	)
	return account.ActivationResult{Success: true, Message: msg, User: updated}, nil
}

// ListUsers returns users newest first.
func (s *AccountService) ListUsers(ctx context.Context, f account.ListFilter, p pagination.Params) (pagination.Page[account.Account], error) {
	filter := store.Filter{}
	if f.Role != "" {
		filter["role"] = string(f.Role)
	}
	if f.IsActive != nil {
		filter["isActive"] = *f.IsActive
	}

	users, err := store.FindAll[account.Account](ctx, s.users, filter)
	if err != nil {
		return pagination.Page[account.Account]{}, fmt.Errorf("failed to list users: %w", err)
	}
	slices.SortStableFunc(users, func(a, b account.Account) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return pagination.Paginate(users, p), nil
}

func (s *AccountService) GetUser(ctx context.Context, id string) (account.Account, error) {
	return loadAccount(ctx, s.users, id, ErrUserNotFound)
}

// Me returns the authenticated profile.
func (s *AccountService) Me(ctx context.Context, id string) (account.Account, error) {
	return loadAccount(ctx, s.users, id, ErrUserNotFound)
}
