package service

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is deliberately above the library default; matches the cost
// used when the user store was first seeded.
const bcryptCost = 12

// PasswordHasher wraps bcrypt hashing and verification. Hash is only called
// when a plaintext credential enters the system (registration); stored
// hashes are never re-hashed.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcryptCost}
}

// Hash returns a salted bcrypt hash of the plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. A mismatch and
// a malformed hash both yield false; callers cannot tell them apart.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
