package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymAPI/internal/types/account"
	"gymAPI/internal/types/pagination"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.accounts.Register(env.ctx, account.RegisterRequest{Email: "Ana@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, account.RoleClient, res.User.Role)
	assert.Equal(t, "ana@example.com", res.User.Email)
	assert.True(t, res.User.IsActive)
	assert.NotEmpty(t, res.Token)

	_, err = env.accounts.Register(env.ctx, account.RegisterRequest{Email: "ana@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	login, err := env.accounts.Authenticate(env.ctx, account.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	_, err = env.accounts.Authenticate(env.ctx, account.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.accounts.Authenticate(env.ctx, account.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsShortPasswordAndUnknownRole(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.accounts.Register(env.ctx, account.RegisterRequest{Email: "a@example.com", Password: "123"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = env.accounts.Register(env.ctx, account.RegisterRequest{Email: "a@example.com", Password: "123456", Role: "coach"})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestSetActive(t *testing.T) {
	env := newTestEnv(t)
	admin := env.account(t, "admin@example.com", account.RoleSuperAdmin)
	otherAdmin := env.account(t, "root@example.com", account.RoleSuperAdmin)
	client := env.account(t, "client@example.com", account.RoleClient)

	_, err := env.accounts.SetActive(env.ctx, client.ID, admin.ID, false)
	assert.ErrorIs(t, err, ErrActivationForbidden)

	_, err = env.accounts.SetActive(env.ctx, admin.ID, otherAdmin.ID, false)
	assert.ErrorIs(t, err, ErrCannotDeactivateAdmin)

	_, err = env.accounts.SetActive(env.ctx, admin.ID, "missing", false)
	assert.ErrorIs(t, err, ErrUserNotFound)

	res, err := env.accounts.SetActive(env.ctx, admin.ID, client.ID, false)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "User deactivated successfully", res.Message)
	assert.False(t, res.User.IsActive)

	res, err = env.accounts.SetActive(env.ctx, admin.ID, client.ID, false)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "User is already deactivated", res.Message)

	res, err = env.accounts.SetActive(env.ctx, admin.ID, client.ID, true)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "User activated successfully", res.Message)
}

func TestDeactivatedAccountCannotLogin(t *testing.T) {
	env := newTestEnv(t)
	admin := env.account(t, "admin@example.com", account.RoleSuperAdmin)

	reg, err := env.accounts.Register(env.ctx, account.RegisterRequest{Email: "c@example.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = env.accounts.SetActive(env.ctx, admin.ID, reg.User.ID, false)
	require.NoError(t, err)

	_, err = env.accounts.Authenticate(env.ctx, account.LoginRequest{Email: "c@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestListUsersFiltersAndPaginates(t *testing.T) {
	env := newTestEnv(t)
	env.account(t, "admin@example.com", account.RoleSuperAdmin)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		env.account(t, email, account.RoleClient)
	}

	page, err := env.accounts.ListUsers(env.ctx, account.ListFilter{Role: account.RoleClient}, pagination.Params{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	active := false
	page, err = env.accounts.ListUsers(env.ctx, account.ListFilter{IsActive: &active}, pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}
