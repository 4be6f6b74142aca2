package crypto

import "io"

// Provider is the default primitive capability provider. It satisfies
// crypton.Provider.
type Provider struct {
	random *SecureRandomGenerator
}

// NewProvider returns a Provider backed by crypto/rand.
func NewProvider() *Provider {
	return &Provider{random: NewSecureRandomGenerator()}
}

// NewProviderWithRandom returns a Provider drawing random bytes from r.
func NewProviderWithRandom(r io.Reader) *Provider {
	return &Provider{random: NewSecureRandomGeneratorFrom(r)}
}

func (p *Provider) Cipher(algorithm string, secretKey, plaintext []byte) ([]byte, error) {
	return Encrypt(algorithm, secretKey, plaintext)
}

func (p *Provider) Decipher(algorithm string, secretKey, ciphertext []byte) ([]byte, error) {
	return Decrypt(algorithm, secretKey, ciphertext)
}

func (p *Provider) ValidateSaltRounds(saltRounds int) error {
	return ValidateCost(saltRounds)
}

func (p *Provider) HashPassword(password []byte, saltRounds int) ([]byte, error) {
	return HashPassword(password, saltRounds)
}

func (p *Provider) VerifyPassword(hash, password []byte) (bool, error) {
	return VerifyPassword(hash, password)
}

func (p *Provider) RandomBytes(n int) ([]byte, error) {
	return p.random.Generate(n)
}

func (p *Provider) Digest(data []byte) ([]byte, error) {
	return MD5(data), nil
}
