package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"neurobiomark/internal/domain"
)

type bcryptVerifier struct{}

// NewBcryptVerifier returns a PasswordVerifier for bcrypt hashes such as the one
// stored in ADMIN_PASSWORD_HASH.
func NewBcryptVerifier() domain.PasswordVerifier {
	return bcryptVerifier{}
}

func (bcryptVerifier) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// HashPassword returns a bcrypt hash of password suitable for ADMIN_PASSWORD_HASH.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
