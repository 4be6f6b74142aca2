package crypton

import "context"

// Provider supplies the cryptographic primitives behind the operations.
// Implementations must be safe for concurrent use.
type Provider interface {
	// Cipher encrypts plaintext with the named algorithm under a key derived
	// deterministically from secretKey.
	Cipher(algorithm string, secretKey, plaintext []byte) ([]byte, error)
	Decipher(algorithm string, secretKey, ciphertext []byte) ([]byte, error)

	// ValidateSaltRounds checks the bcrypt cost before hashing. bcrypt draws
	// the salt itself.
	ValidateSaltRounds(saltRounds int) error
	HashPassword(password []byte, saltRounds int) ([]byte, error)
	// VerifyPassword reports a mismatch as false with a nil error.
	VerifyPassword(hash, password []byte) (bool, error)

	RandomBytes(n int) ([]byte, error)
	Digest(data []byte) ([]byte, error)
}

// SecretSource resolves a secret reference, such as the secretKeyRef of a
// configuration file, to its value.
type SecretSource interface {
	GetSecret(ctx context.Context, ref string) (string, error)
}
