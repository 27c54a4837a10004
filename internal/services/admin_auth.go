package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"neurobiomark/internal/domain"
)

type adminAuthService struct {
	email        string
	passwordHash string
	passwords    domain.PasswordVerifier
	tokens       domain.TokenIssuer
	ttl          time.Duration
}

// NewAdminAuthService creates an AdminAuthService for the single configured admin account.
func NewAdminAuthService(email, passwordHash string, passwords domain.PasswordVerifier, tokens domain.TokenIssuer, ttl time.Duration) domain.AdminAuthService {
	return &adminAuthService{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: passwordHash,
		passwords:    passwords,
		tokens:       tokens,
		ttl:          ttl,
	}
}

func (s *adminAuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if s.email == "" || s.passwordHash == "" {
		return "", fmt.Errorf("%w: admin account not configured", domain.ErrUnauthorized)
	}
	if subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) != 1 {
		return "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	if err := s.passwords.Compare(s.passwordHash, password); err != nil {
		return "", fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	token, err := s.tokens.Issue(s.email, s.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *adminAuthService) SessionTTL() time.Duration {
	return s.ttl
}
