package crypton

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hengadev/crypton/internal/config"
)

type loadSettings struct {
	source   SecretSource
	envFiles []string
	lookup   func(string) (string, bool)
	workDir  string
}

// LoadOption configures LoadOptions.
type LoadOption func(s *loadSettings)

// WithSecretSource resolves secretKeyRef through source.
func WithSecretSource(source SecretSource) LoadOption {
	return func(s *loadSettings) {
		s.source = source
	}
}

// WithEnvFiles sets the .env files loaded before reading the environment.
// The default is ".env" in the working directory.
func WithEnvFiles(paths ...string) LoadOption {
	return func(s *loadSettings) {
		s.envFiles = paths
	}
}

// WithLookupEnv replaces os.LookupEnv when reading CRYPTON_* variables.
func WithLookupEnv(lookup func(string) (string, bool)) LoadOption {
	return func(s *loadSettings) {
		s.lookup = lookup
	}
}

// WithWorkDir sets where the search for crypton.yaml starts when no path is
// given.
func WithWorkDir(dir string) LoadOption {
	return func(s *loadSettings) {
		s.workDir = dir
	}
}

// LoadOptions builds overrides from, in increasing precedence, a YAML file
// and CRYPTON_* environment variables (after loading .env files). When path
// is empty, CRYPTON_CONFIG_FILE is used, then crypton.yaml searched upward
// from the working directory; a missing file is not an error in that case.
//
// A secretKeyRef is resolved with the SecretSource given by WithSecretSource
// unless a literal secret key is set. The result merged onto the defaults is
// validated; validation failures wrap ErrInvalidConfiguration and an
// errsx.Map.
func LoadOptions(ctx context.Context, path string, opts ...LoadOption) (Options, error) {
	s := &loadSettings{
		envFiles: []string{".env"},
		lookup:   os.LookupEnv,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := config.LoadDotEnv(s.envFiles...); err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	path, err := s.resolvePath(path)
	if err != nil {
		return Options{}, err
	}

	var file config.File
	if path != "" {
		if file, err = config.ReadFile(path); err != nil {
			return Options{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
	}

	file, err = config.FromEnvironment(file, s.lookup)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	if file.Crypto.SecretKey == "" && file.Crypto.SecretKeyRef != "" {
		if s.source == nil {
			return Options{}, fmt.Errorf("%w: secretKeyRef %q set but no secret source configured",
				ErrSecretSourceUnavailable, file.Crypto.SecretKeyRef)
		}
		secret, err := s.source.GetSecret(ctx, file.Crypto.SecretKeyRef)
		if err != nil {
			return Options{}, fmt.Errorf("%w: resolve %q: %w",
				ErrSecretSourceUnavailable, file.Crypto.SecretKeyRef, err)
		}
		file.Crypto.SecretKey = secret
	}

	overrides := Options{
		Crypto: CipherOptions{
			SecretKey:      file.Crypto.SecretKey,
			Algorithm:      file.Crypto.Algorithm,
			InputEncoding:  file.Crypto.InputEncoding,
			OutputEncoding: file.Crypto.OutputEncoding,
		},
		Bcrypt: PasswordOptions{
			SaltRounds: file.Bcrypt.SaltRounds,
		},
	}

	if err := Merge(overrides, DefaultConfig()).Validate(); err != nil {
		return Options{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return overrides, nil
}

func (s *loadSettings) resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	if env, ok := s.lookup(config.EnvConfigFile); ok && env != "" {
		return env, nil
	}

	dir := s.workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", nil
		}
		dir = wd
	}

	found, err := config.FindUpward(dir, config.DefaultFilename)
	if errors.Is(err, config.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return found, nil
}
