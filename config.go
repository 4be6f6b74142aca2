package crypton

import (
	"github.com/hengadev/crypton/internal/config"
	"github.com/hengadev/crypton/internal/encoding"
)

// Default values used when no layer supplies a setting.
const (
	DefaultSecretKey      = "crypton-default-secret-key-change-me"
	DefaultAlgorithm      = "aes-256-cbc"
	DefaultInputEncoding  = encoding.UTF8
	DefaultOutputEncoding = encoding.Hex
	DefaultSaltRounds     = 10
)

// CipherConfig is the fully resolved configuration of the reversible cipher
// operations.
type CipherConfig struct {
	SecretKey      string `yaml:"secretKey" json:"secretKey"`
	Algorithm      string `yaml:"algorithm" json:"algorithm"`
	InputEncoding  string `yaml:"inputEncoding" json:"inputEncoding"`
	OutputEncoding string `yaml:"outputEncoding" json:"outputEncoding"`
}

// PasswordConfig is the fully resolved configuration of Crypt.
type PasswordConfig struct {
	SaltRounds int `yaml:"saltRounds" json:"saltRounds"`
}

// Config is a complete configuration: every field carries a value.
type Config struct {
	Crypto CipherConfig   `yaml:"crypto" json:"crypto"`
	Bcrypt PasswordConfig `yaml:"bcrypt" json:"bcrypt"`
}

// CipherOptions overrides part of a CipherConfig. Empty fields are not supplied.
type CipherOptions struct {
	SecretKey      string
	Algorithm      string
	InputEncoding  string
	OutputEncoding string
}

// PasswordOptions overrides a PasswordConfig. Zero is not supplied.
type PasswordOptions struct {
	SaltRounds int
}

// Options overrides part of a Config.
type Options struct {
	Crypto CipherOptions
	Bcrypt PasswordOptions
}

// DefaultConfig returns the built-in defaults. The secret key is a placeholder
// that callers are expected to override.
func DefaultConfig() Config {
	return Config{
		Crypto: CipherConfig{
			SecretKey:      DefaultSecretKey,
			Algorithm:      DefaultAlgorithm,
			InputEncoding:  DefaultInputEncoding,
			OutputEncoding: DefaultOutputEncoding,
		},
		Bcrypt: PasswordConfig{
			SaltRounds: DefaultSaltRounds,
		},
	}
}

// MergeCipher applies every supplied field of override on top of base.
func MergeCipher(override CipherOptions, base CipherConfig) CipherConfig {
	return CipherConfig{
		SecretKey:      config.Select(override.SecretKey, base.SecretKey),
		Algorithm:      config.Select(override.Algorithm, base.Algorithm),
		InputEncoding:  config.Select(override.InputEncoding, base.InputEncoding),
		OutputEncoding: config.Select(override.OutputEncoding, base.OutputEncoding),
	}
}

// MergePassword applies override on top of base.
func MergePassword(override PasswordOptions, base PasswordConfig) PasswordConfig {
	return PasswordConfig{
		SaltRounds: config.Select(override.SaltRounds, base.SaltRounds),
	}
}

// Merge applies both override groups on top of base.
func Merge(override Options, base Config) Config {
	return Config{
		Crypto: MergeCipher(override.Crypto, base.Crypto),
		Bcrypt: MergePassword(override.Bcrypt, base.Bcrypt),
	}
}

// Validate checks that every setting names something the primitives support.
// The returned error is an errsx.Map keyed by field name, or nil.
//
// Operations never call Validate: an invalid setting surfaces as the error of
// the operation that uses it.
func (c Config) Validate() error {
	return config.Validate(config.Settings{
		SecretKey:      c.Crypto.SecretKey,
		Algorithm:      c.Crypto.Algorithm,
		InputEncoding:  c.Crypto.InputEncoding,
		OutputEncoding: c.Crypto.OutputEncoding,
		SaltRounds:     c.Bcrypt.SaltRounds,
	})
}

func firstCipher(overrides []CipherOptions) CipherOptions {
	if len(overrides) == 0 {
		return CipherOptions{}
	}
	return overrides[0]
}

func firstPassword(overrides []PasswordOptions) PasswordOptions {
	if len(overrides) == 0 {
		return PasswordOptions{}
	}
	return overrides[0]
}
