package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmcg-app/catalog-api/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_IssueVerify(t *testing.T) {
	svc := NewTokenService("secret")

	token, err := svc.Issue("u1", domain.RoleAdmin)
	require.NoError(t, err)

	id, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{UserID: "u1", Role: domain.RoleAdmin}, id)
}

func TestTokenService_ClaimsShape(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("secret")
	svc.now = fixedClock(issued)

	token, err := svc.Issue("u1", domain.RoleUser)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	assert.Equal(t, "u1", claims["userId"])
	assert.Equal(t, "user", claims["role"])
	assert.EqualValues(t, issued.Unix(), claims["iat"])
	assert.EqualValues(t, issued.Add(TokenTTL).Unix(), claims["exp"])
}

func TestTokenService_Expired(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewTokenService("secret")
	svc.now = fixedClock(issued)

	token, err := svc.Issue("u1", domain.RoleUser)
	require.NoError(t, err)

	svc.now = fixedClock(issued.Add(59 * time.Minute))
	_, err = svc.Verify(token)
	require.NoError(t, err)

	svc.now = fixedClock(issued.Add(TokenTTL + time.Second))
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, err := NewTokenService("other").Issue("u1", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = NewTokenService("secret").Verify(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalidSignature)
}

func TestTokenService_ExpiredWinsOverSignature(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	signer := NewTokenService("other")
	signer.now = fixedClock(issued)
	token, err := signer.Issue("u1", domain.RoleAdmin)
	require.NoError(t, err)

	verifier := NewTokenService("secret")
	verifier.now = fixedClock(issued.Add(2 * TokenTTL))
	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("secret")

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, domain.ErrTokenMalformed, "token %q", token)
	}
}

func TestTokenService_RejectsUnknownRoleAndMissingExpiry(t *testing.T) {
	svc := NewTokenService("secret")

	sign := func(claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		return s
	}
	exp := time.Now().Add(time.Hour).Unix()

	_, err := svc.Verify(sign(jwt.MapClaims{"userId": "u1", "role": "root", "exp": exp}))
	assert.ErrorIs(t, err, domain.ErrTokenMalformed)

	_, err = svc.Verify(sign(jwt.MapClaims{"userId": "u1", "role": "admin"}))
	assert.ErrorIs(t, err, domain.ErrTokenMalformed)
}
