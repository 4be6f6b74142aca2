package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names read by FromEnvironment.
const (
	EnvSecretKey      = "CRYPTON_SECRET_KEY"
	EnvSecretKeyRef   = "CRYPTON_SECRET_KEY_REF"
	EnvAlgorithm      = "CRYPTON_ALGORITHM"
	EnvInputEncoding  = "CRYPTON_INPUT_ENCODING"
	EnvOutputEncoding = "CRYPTON_OUTPUT_ENCODING"
	EnvSaltRounds     = "CRYPTON_SALT_ROUNDS"
	EnvConfigFile     = "CRYPTON_CONFIG_FILE"
)

// DefaultFilename is the configuration file looked up when no path is given.
const DefaultFilename = "crypton.yaml"

// File is the on-disk and environment representation of crypton settings.
type File struct {
	Crypto CryptoSection `yaml:"crypto"`
	Bcrypt BcryptSection `yaml:"bcrypt"`
}

// CryptoSection holds the cipher group.
type CryptoSection struct {
	SecretKey      string `yaml:"secretKey"`
	SecretKeyRef   string `yaml:"secretKeyRef"`
	Algorithm      string `yaml:"algorithm"`
	InputEncoding  string `yaml:"inputEncoding"`
	OutputEncoding string `yaml:"outputEncoding"`
}

// BcryptSection holds the password hash group.
type BcryptSection struct {
	SaltRounds int `yaml:"saltRounds"`
}

// ReadFile loads a YAML configuration file.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return f, nil
}

// WriteFile saves a configuration file as YAML.
func WriteFile(f File, path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadDotEnv loads the given .env files into the process environment. Missing
// files are skipped and variables already set are never overwritten.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}
	return nil
}

// FromEnvironment overlays values found through lookup onto f.
func FromEnvironment(f File, lookup func(string) (string, bool)) (File, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	str := func(key string, current string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return v
		}
		return current
	}

	f.Crypto.SecretKey = str(EnvSecretKey, f.Crypto.SecretKey)
	f.Crypto.SecretKeyRef = str(EnvSecretKeyRef, f.Crypto.SecretKeyRef)
	f.Crypto.Algorithm = str(EnvAlgorithm, f.Crypto.Algorithm)
	f.Crypto.InputEncoding = str(EnvInputEncoding, f.Crypto.InputEncoding)
	f.Crypto.OutputEncoding = str(EnvOutputEncoding, f.Crypto.OutputEncoding)

	if v, ok := lookup(EnvSaltRounds); ok && strings.TrimSpace(v) != "" {
		rounds, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return File{}, fmt.Errorf("%s must be an integer: %w", EnvSaltRounds, err)
		}
		f.Bcrypt.SaltRounds = rounds
	}

	return f, nil
}
