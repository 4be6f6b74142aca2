package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
	"math"
	"sync"
)

// MaxRandomLength is the largest size Generate accepts.
const MaxRandomLength = math.MaxInt32

// SecureRandomGenerator provides cryptographically secure random bytes.
type SecureRandomGenerator struct {
	reader io.Reader
	mutex  sync.Mutex
}

// NewSecureRandomGenerator creates a generator backed by crypto/rand.
func NewSecureRandomGenerator() *SecureRandomGenerator {
	return NewSecureRandomGeneratorFrom(rand.Reader)
}

// NewSecureRandomGeneratorFrom creates a generator reading from r.
func NewSecureRandomGeneratorFrom(r io.Reader) *SecureRandomGenerator {
	return &SecureRandomGenerator{reader: r}
}

// Generate returns size random bytes. size must be in 1..MaxRandomLength.
func (srg *SecureRandomGenerator) Generate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be positive, got %d", ErrInvalidLength, size)
	}
	if size > MaxRandomLength {
		return nil, fmt.Errorf("%w: size must not exceed %d, got %d", ErrInvalidLength, MaxRandomLength, size)
	}

	srg.mutex.Lock()
	defer srg.mutex.Unlock()

	data := make([]byte, size)
	if _, err := io.ReadFull(srg.reader, data); err != nil {
		return nil, fmt.Errorf("secure random generation failed: %w", err)
	}
	return data, nil
}
