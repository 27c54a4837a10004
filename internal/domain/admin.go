package domain

import (
	"context"
	"time"
)

// PasswordVerifier checks a password against a stored hash.
type PasswordVerifier interface {
	Compare(hash, password string) error
}

// TokenIssuer issues signed session tokens for the given subject.
type TokenIssuer interface {
	Issue(subject string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AdminAuthService authenticates the back-office account.
type AdminAuthService interface {
	Login(ctx context.Context, email, password string) (token string, err error)
	SessionTTL() time.Duration
}

// Limiter decides whether one more request for key is allowed right now.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
