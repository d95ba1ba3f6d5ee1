package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// hashPassword produces a salted, irreversible hash. The plaintext is never
// stored anywhere past this call.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// verifyPassword relies on bcrypt's own comparison, which is constant-time.
func verifyPassword(hash, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
