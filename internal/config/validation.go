package config

import (
	"fmt"
	"strings"

	"github.com/hengadev/errsx"

	"github.com/hengadev/crypton/internal/crypto"
	"github.com/hengadev/crypton/internal/encoding"
)

// Settings is the flat view of a resolved configuration checked by Validate.
type Settings struct {
	SecretKey      string
	Algorithm      string
	InputEncoding  string
	OutputEncoding string
	SaltRounds     int
}

// Validate checks that every setting names something the primitives support.
// Failures are collected per field in an errsx.Map.
func Validate(s Settings) error {
	errs := errsx.Map{}

	if strings.TrimSpace(s.SecretKey) == "" {
		errs.Set("secretKey", fmt.Errorf("secret key cannot be empty"))
	}

	if _, err := crypto.NormalizeAlgorithm(s.Algorithm); err != nil {
		errs.Set("algorithm", fmt.Errorf("algorithm must be one of %s: %w",
			strings.Join(crypto.SupportedAlgorithms(), ", "), err))
	}

	if !encoding.Supported(s.InputEncoding) {
		errs.Set("inputEncoding", fmt.Errorf("unknown input encoding %q", s.InputEncoding))
	}

	if !encoding.Supported(s.OutputEncoding) {
		errs.Set("outputEncoding", fmt.Errorf("unknown output encoding %q", s.OutputEncoding))
	}

	if err := crypto.ValidateCost(s.SaltRounds); err != nil {
		errs.Set("saltRounds", err)
	}

	return errs.AsError()
}
