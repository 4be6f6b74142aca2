package crypto

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks failures caused by the caller's arguments or configuration
// rather than by the primitive itself.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrUnsupportedAlgorithm = fmt.Errorf("%w: unsupported cipher algorithm", ErrInvalidInput)
	ErrInvalidCiphertext    = fmt.Errorf("%w: invalid ciphertext", ErrInvalidInput)
	ErrInvalidCost          = fmt.Errorf("%w: invalid salt rounds", ErrInvalidInput)
	ErrPasswordTooLong      = fmt.Errorf("%w: password exceeds 72 bytes", ErrInvalidInput)
	ErrMalformedHash        = fmt.Errorf("%w: malformed password hash", ErrInvalidInput)
	ErrInvalidLength        = fmt.Errorf("%w: invalid length", ErrInvalidInput)

	// ErrBadDecrypt is returned when deciphering yields invalid padding, usually
	// because the key or algorithm differs from the one used to cipher.
	ErrBadDecrypt = errors.New("bad decrypt")
)
