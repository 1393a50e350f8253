package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/nevrodda11/torny-aws-api/constants"
	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/repositories"
	"github.com/nevrodda11/torny-aws-api/utils"
	"github.com/rs/zerolog"
)

var errInvalidCredentials = unauthorizedError("Invalid credentials")

// Claims is the payload of an access token.
type Claims struct {
	UserID   int             `json:"user_id"`
	Email    string          `json:"email"`
	UserType models.UserType `json:"user_type"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, creds models.Credentials) (string, *models.User, error)
	ParseToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	now       func() time.Time
}

func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, creds models.Credentials) (string, *models.User, error) {
	email := strings.TrimSpace(creds.Email)
	if email == "" || creds.Password == "" {
		return "", nil, validationError("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			zerolog.Ctx(ctx).Debug().Str("email", email).Msg("login for unknown email")
			return "", nil, errInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if !utils.CheckPasswordHash(creds.Password, user.PasswordHash) {
		zerolog.Ctx(ctx).Debug().Int("user_id", user.ID).Msg("login with wrong password")
		return "", nil, errInvalidCredentials
	}

	now := s.now()
	claims := Claims{
		UserID:   user.ID,
		Email:    user.Email,
		UserType: user.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(constants.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	user.PasswordHash = ""
	return token, user, nil
}

// ParseToken verifies an HS256 token and returns its claims.
func (s *authService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, unauthorizedError("Invalid or expired token")
	}
	if claims.UserID <= 0 {
		return nil, unauthorizedError("Invalid or expired token")
	}
	return claims, nil
}
