package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinCost = bcrypt.MinCost
	MaxCost = bcrypt.MaxCost

	// maxPasswordLength is where bcrypt stops reading input.
	maxPasswordLength = 72
)

// ValidateCost checks that saltRounds is a cost bcrypt accepts without
// silently substituting its default.
func ValidateCost(saltRounds int) error {
	if saltRounds < MinCost || saltRounds > MaxCost {
		return fmt.Errorf("%w: must be between %d and %d, got %d",
			ErrInvalidCost, MinCost, MaxCost, saltRounds)
	}
	return nil
}

// HashPassword returns a self-describing bcrypt hash of password at the given cost.
// A fresh 16 byte salt is drawn from crypto/rand for every call.
func HashPassword(password []byte, saltRounds int) ([]byte, error) {
	if err := ValidateCost(saltRounds); err != nil {
		return nil, err
	}
	if len(password) > maxPasswordLength {
		return nil, ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword(password, saltRounds)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

// VerifyPassword compares password with a hash produced by HashPassword in
// constant time. A mismatch is reported as false with a nil error.
func VerifyPassword(hash, password []byte) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hash, password)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
}

// HashCost reports the cost a hash was produced with.
func HashCost(hash []byte) (int, error) {
	cost, err := bcrypt.Cost(hash)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	return cost, nil
}
