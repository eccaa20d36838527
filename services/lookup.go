package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymAPI/internal/store"
	"gymAPI/internal/types/account"
)

// load fetches one document and translates a missing document into the
// caller's not-found error.
func load[T any](ctx context.Context, c store.Collection, id string, notFound error) (T, error) {
	v, err := store.Get[T](ctx, c, id)
	if errors.Is(err, store.ErrNotFound) {
		return v, notFound
	}
	if err != nil {
		return v, fmt.Errorf("failed to load %s: %w", id, err)
	}
	return v, nil
}

func loadAccount(ctx context.Context, users store.Collection, id string, notFound error) (account.Account, error) {
	return load[account.Account](ctx, users, id, notFound)
}

// requireCapability loads the caller and checks its role.
func requireCapability(ctx context.Context, users store.Collection, id string, c account.Capability, denied error) (account.Account, error) {
	acc, err := loadAccount(ctx, users, id, denied)
	if err != nil {
		return acc, err
	}
	if !acc.Role.Can(c) {
		return acc, denied
	}
	return acc, nil
}

func startOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
