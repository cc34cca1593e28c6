package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin     = "admin"
	tokenLifetime = 24 * time.Hour

	jwtClaimRole = "role"
)

// AuthService guards the single shared admin credential. A successful login
// yields a signed token; requests carrying a valid token are privileged.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (string, error)
	ParseToken(tokenString string) (jwt.MapClaims, error)
}

type LoginInput struct {
	Password string `json:"password" validate:"required"`
}

type authService struct {
	passwordHash []byte
	jwtSecret    []byte
	now          func() time.Time
}

func NewAuthService(adminPassword, jwtSecret string) (AuthService, error) {
	if jwtSecret == "" {
		return nil, errors.New("jwt secret is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	return &authService{
		passwordHash: hash,
		jwtSecret:    []byte(jwtSecret),
		now:          time.Now,
	}, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (string, error) {
	err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to compare password hash: %w", err)
	}

	now := s.now()
	claims := jwt.MapClaims{
		jwtClaimRole: RoleAdmin,
		"exp":        now.Add(tokenLifetime).Unix(),
		"iat":        now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ParseToken verifies signature and expiry and requires the admin role.
func (s *authService) ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrAuthenticationFailed
	}
	if role, _ := claims[jwtClaimRole].(string); role != RoleAdmin {
		return nil, ErrForbiddenOperation
	}
	return claims, nil
}
