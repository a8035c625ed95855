// Package credential hashes and verifies administrator passwords.
package credential

import (
	"golang.org/x/crypto/bcrypt"
)

// Store hashes and verifies passwords with bcrypt. The salt is embedded in
// the produced hash, so no extra state is kept.
type Store struct {
	cost int
}

// NewStore creates a credential store with the given bcrypt cost. Costs
// outside bcrypt's supported range fall back to the library default.
func NewStore(cost int) *Store {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Store{cost: cost}
}

// Hash returns the bcrypt hash of the plaintext password.
func (s *Store) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext password matches the stored hash.
func (s *Store) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
