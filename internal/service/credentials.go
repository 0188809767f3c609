package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type CredentialService interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

type bcryptCredentials struct {
	cost int
}

// NewCredentialService hashes with bcrypt at cost, or bcrypt.DefaultCost when cost is zero.
func NewCredentialService(cost int) CredentialService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptCredentials{cost: cost}
}

func (c *bcryptCredentials) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), c.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", withDetail(ErrValidationFailed, "password must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

func (c *bcryptCredentials) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
