package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"neurobiomark/internal/domain"
)

// sessionAudience scopes admin session tokens so they cannot be replayed elsewhere.
const sessionAudience = "nbm-admin"

type jwtClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// JWTSigner issues and verifies HS256 admin session tokens.
type JWTSigner struct {
	secret []byte
	now    func() time.Time
}

// NewJWTSigner returns a signer that uses the given secret for both directions.
func NewJWTSigner(secret string) *JWTSigner {
	return &JWTSigner{secret: []byte(secret), now: time.Now}
}

var (
	_ domain.TokenIssuer   = (*JWTSigner)(nil)
	_ domain.TokenVerifier = (*JWTSigner)(nil)
)

func (s *JWTSigner) Issue(subject string, expiry time.Duration) (string, error) {
	now := s.now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Audience:  jwt.ClaimStrings{sessionAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		Role: "admin",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify checks signature, expiry and audience and returns the token subject.
func (s *JWTSigner) Verify(tokenString string) (string, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(sessionAudience),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !token.Valid || claims.Role != "admin" {
		return "", domain.ErrUnauthorized
	}
	if claims.Subject == "" {
		return "", errors.Join(domain.ErrUnauthorized, errors.New("token has no subject"))
	}
	return claims.Subject, nil
}
