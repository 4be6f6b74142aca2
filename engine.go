package crypton

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hengadev/crypton/internal/crypto"
	"github.com/hengadev/crypton/internal/encoding"
	"github.com/hengadev/crypton/internal/monitoring"
)

// Engine runs the operations against an explicit configuration. It holds no
// configuration of its own; see Crypton for the stateful handle.
//
// Every failure is returned as an *Error whose Kind names the operation.
// NewEngine is the usual constructor; a zero Engine uses the default
// primitives and no hooks.
type Engine struct {
	provider Provider
	hook     ObservabilityHook
}

var _ Provider = (*crypto.Provider)(nil)

var (
	defaultProvider Provider          = crypto.NewProvider()
	noOpHook        ObservabilityHook = &monitoring.NoOpObservabilityHook{}
)

// NewEngine creates an Engine using the default primitives unless
// WithProvider is given.
func NewEngine(opts ...Option) (*Engine, error) {
	s := &settings{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}
	if s.provider == nil {
		s.provider = crypto.NewProvider()
	}

	return &Engine{
		provider: s.provider,
		hook:     monitoring.NewCompositeObservabilityHook(s.hooks...),
	}, nil
}

// Cipher encrypts text. text is read with cfg.InputEncoding and the result is
// written with cfg.OutputEncoding.
func (e *Engine) Cipher(ctx context.Context, cfg CipherConfig, text string) (string, error) {
	return run(ctx, e, KindCipher, cipherMetadata(cfg), func() (string, error) {
		return e.cipher(cfg, text)
	})
}

// Decipher reverses Cipher under the same configuration.
func (e *Engine) Decipher(ctx context.Context, cfg CipherConfig, text string) (string, error) {
	return run(ctx, e, KindDecipher, cipherMetadata(cfg), func() (string, error) {
		return e.decipher(cfg, text)
	})
}

// Compare ciphers text and reports whether it equals ciphered. With force,
// text is first deciphered when possible, so two ciphered strings can be
// compared; if deciphering fails text is used as is.
func (e *Engine) Compare(ctx context.Context, cfg CipherConfig, text, ciphered string, force bool) (bool, error) {
	metadata := cipherMetadata(cfg)
	metadata["force"] = force
	return run(ctx, e, KindCompare, metadata, func() (bool, error) {
		candidate := text
		if force {
			if plain, err := e.decipher(cfg, text); err == nil {
				candidate = plain
			}
		}

		out, err := e.cipher(cfg, candidate)
		if err != nil {
			return false, err
		}
		return out == ciphered, nil
	})
}

// Crypt hashes text with bcrypt at cfg.SaltRounds.
func (e *Engine) Crypt(ctx context.Context, cfg PasswordConfig, text string) (string, error) {
	metadata := map[string]any{"salt_rounds": cfg.SaltRounds}
	return run(ctx, e, KindEncrypt, metadata, func() (string, error) {
		if err := e.primitives().ValidateSaltRounds(cfg.SaltRounds); err != nil {
			return "", err
		}
		hash, err := e.primitives().HashPassword([]byte(text), cfg.SaltRounds)
		if err != nil {
			return "", err
		}
		return string(hash), nil
	})
}

// Verify reports whether text matches a hash produced by Crypt. A mismatch is
// false with a nil error.
func (e *Engine) Verify(ctx context.Context, text, hash string) (bool, error) {
	return run(ctx, e, KindVerify, map[string]any{}, func() (bool, error) {
		return e.primitives().VerifyPassword([]byte(hash), []byte(text))
	})
}

// RandomBytes returns length random bytes rendered with outputEncoding.
// An empty outputEncoding means hex.
func (e *Engine) RandomBytes(ctx context.Context, length int, outputEncoding string) (string, error) {
	outputEncoding = orDefault(outputEncoding, DefaultOutputEncoding)
	metadata := map[string]any{"length": length, "output_encoding": outputEncoding}
	return run(ctx, e, KindRandomBytes, metadata, func() (string, error) {
		if length <= 0 || length > crypto.MaxRandomLength {
			return "", fmt.Errorf("%w: length must be between 1 and %d, got %d",
				crypto.ErrInvalidLength, crypto.MaxRandomLength, length)
		}
		if !encoding.Supported(outputEncoding) {
			return "", invalidInput(fmt.Errorf("%w: %q", encoding.ErrUnknownEncoding, outputEncoding))
		}
		data, err := e.primitives().RandomBytes(length)
		if err != nil {
			return "", err
		}
		return encode(data, outputEncoding)
	})
}

// Digest returns the MD5 sum of data rendered with outputEncoding. An empty
// outputEncoding means hex.
func (e *Engine) Digest(ctx context.Context, data, outputEncoding string) (string, error) {
	outputEncoding = orDefault(outputEncoding, DefaultOutputEncoding)
	metadata := map[string]any{"output_encoding": outputEncoding}
	return run(ctx, e, KindDigest, metadata, func() (string, error) {
		sum, err := e.primitives().Digest([]byte(data))
		if err != nil {
			return "", err
		}
		return encode(sum, outputEncoding)
	})
}

func (e *Engine) primitives() Provider {
	if e.provider == nil {
		return defaultProvider
	}
	return e.provider
}

func (e *Engine) observer() ObservabilityHook {
	if e.hook == nil {
		return noOpHook
	}
	return e.hook
}

func (e *Engine) cipher(cfg CipherConfig, text string) (string, error) {
	plain, err := decode(text, cfg.InputEncoding)
	if err != nil {
		return "", err
	}
	out, err := e.primitives().Cipher(cfg.Algorithm, []byte(cfg.SecretKey), plain)
	if err != nil {
		return "", err
	}
	return encode(out, cfg.OutputEncoding)
}

func (e *Engine) decipher(cfg CipherConfig, text string) (string, error) {
	raw, err := decode(text, cfg.OutputEncoding)
	if err != nil {
		return "", err
	}
	plain, err := e.primitives().Decipher(cfg.Algorithm, []byte(cfg.SecretKey), raw)
	if err != nil {
		return "", err
	}
	return encode(plain, cfg.InputEncoding)
}

// run wraps fn with the observability hooks and turns its error into an
// *Error of the given kind. A failed run never returns a partial value.
func run[T any](ctx context.Context, e *Engine, kind Kind, metadata map[string]any, fn func() (T, error)) (T, error) {
	metadata["operation_id"] = uuid.NewString()
	op := kind.String()

	hook := e.observer()
	hook.OnProcessStart(ctx, op, metadata)
	start := time.Now()

	value, err := fn()
	if err != nil {
		var zero T
		wrapped := newError(kind, err)
		hook.OnError(ctx, op, wrapped, metadata)
		hook.OnProcessComplete(ctx, op, time.Since(start), wrapped, metadata)
		return zero, wrapped
	}

	hook.OnProcessComplete(ctx, op, time.Since(start), nil, metadata)
	return value, nil
}

func cipherMetadata(cfg CipherConfig) map[string]any {
	return map[string]any{
		"algorithm":       cfg.Algorithm,
		"input_encoding":  cfg.InputEncoding,
		"output_encoding": cfg.OutputEncoding,
	}
}

func decode(text, name string) ([]byte, error) {
	b, err := encoding.Decode(text, name)
	if err != nil {
		return nil, invalidInput(err)
	}
	return b, nil
}

func encode(data []byte, name string) (string, error) {
	s, err := encoding.Encode(data, name)
	if err != nil {
		return "", invalidInput(err)
	}
	return s, nil
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
