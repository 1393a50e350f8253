package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) *authService {
	t.Helper()
	hash, err := utils.HashPassword("bowls4life")
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[int]*models.User{
		12: {ID: 12, Email: "ann@example.com", Name: "Ann", PasswordHash: hash, UserType: models.UserTypeOrganiser},
	}}
	return NewAuthService(users, "test-secret").(*authService)
}

func TestLogin_TokenRoundTrip(t *testing.T) {
	svc := newAuthFixture(t)

	token, user, err := svc.Login(context.Background(), models.Credentials{Email: " ann@example.com ", Password: "bowls4life"})
	require.NoError(t, err)
	assert.Equal(t, 12, user.ID)
	assert.Empty(t, user.PasswordHash)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, 12, claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, models.UserTypeOrganiser, claims.UserType)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestLogin_Failures(t *testing.T) {
	svc := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), models.Credentials{Email: "ann@example.com"})
	assertServiceError(t, err, ErrValidation, "Email and password are required")

	_, _, err = svc.Login(context.Background(), models.Credentials{Email: "nobody@example.com", Password: "x"})
	assertServiceError(t, err, ErrUnauthorized, "Invalid credentials")

	_, _, err = svc.Login(context.Background(), models.Credentials{Email: "ann@example.com", Password: "wrong"})
	assertServiceError(t, err, ErrUnauthorized, "Invalid credentials")
}

func TestParseToken_Rejects(t *testing.T) {
	svc := newAuthFixture(t)

	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	expired, _, err := svc.Login(context.Background(), models.Credentials{Email: "ann@example.com", Password: "bowls4life"})
	require.NoError(t, err)
	_, err = svc.ParseToken(expired)
	assertServiceError(t, err, ErrUnauthorized, "Invalid or expired token")

	other := NewAuthService(&fakeUserRepo{}, "other-secret").(*authService)
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 12}).SignedString(other.jwtSecret)
	require.NoError(t, err)
	_, err = svc.ParseToken(forged)
	assertServiceError(t, err, ErrUnauthorized, "Invalid or expired token")
}
