package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymAPI/internal/types/account"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "gym-api", time.Hour)
	acc := account.New("owner@example.com", "hash", account.RoleGymOwner, time.Now())

	token, err := issuer.Issue(acc)
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, claims.UserID)
	assert.Equal(t, acc.ID, claims.Subject)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, account.RoleGymOwner, claims.Role)
}

func TestParseRejectsBadTokens(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "gym-api", time.Hour)
	acc := account.New("client@example.com", "hash", account.RoleClient, time.Now())

	_, err := issuer.Parse("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = issuer.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenIssuer("other-secret", "gym-api", time.Hour)
	foreign, err := other.Issue(acc)
	require.NoError(t, err)
	_, err = issuer.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer := NewTokenIssuer("test-secret", "someone-else", time.Hour)
	token, err := wrongIssuer.Issue(acc)
	require.NoError(t, err)
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "gym-api", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := issuer.Issue(account.New("late@example.com", "hash", account.RoleClient, time.Now()))
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", "gym-api", time.Hour)
	claims := Claims{
		UserID:           "u1",
		Role:             account.RoleSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "gym-api"},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = issuer.Parse(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.True(t, CheckPassword(hash, "secret1"))
	assert.False(t, CheckPassword(hash, "secret2"))
}
