package auth

import (
	"fmt"
	"time"

	"peerperm/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Service issues and validates the HS256 bearer tokens protecting the admin
// API.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a new authentication service
func NewService(cfg *config.AuthConfig) *Service {
	return &Service{
		secret: []byte(cfg.Secret),
		ttl:    time.Duration(cfg.TokenTTL) * time.Second,
	}
}

// GenerateToken mints a signed admin token for the given subject.
func (s *Service) GenerateToken(subject string) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("auth secret is not configured")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    "peerperm",
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken verifies signature and expiry and returns the token subject.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	return claims.Subject, nil
}
