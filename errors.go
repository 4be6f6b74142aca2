package crypton

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hengadev/crypton/internal/crypto"
	"github.com/hengadev/crypton/internal/operation"
)

// Kind identifies which operation produced an *Error.
type Kind = operation.Action

const (
	KindCipher      = operation.Cipher
	KindDecipher    = operation.Decipher
	KindCompare     = operation.Compare
	KindEncrypt     = operation.Encrypt
	KindVerify      = operation.Verify
	KindRandomBytes = operation.RandomBytes
	KindDigest      = operation.Digest
)

// Error is returned by every failed operation. Status is always 500 and
// Message is the cause's message, or the kind's default phrase when the cause
// has none.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func newError(kind Kind, cause error) *Error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if msg == "" {
		msg = kind.DefaultMessage()
	}
	return &Error{
		Kind:    kind,
		Status:  http.StatusInternalServerError,
		Message: msg,
		Err:     cause,
	}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Name returns the stable error name of the kind, e.g. "CipherCryptonError".
func (e *Error) Name() string {
	return e.Kind.ErrorName()
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrCipher) works
// regardless of the cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Per-kind sentinels for use with errors.Is.
var (
	ErrCipher      = &Error{Kind: KindCipher, Status: http.StatusInternalServerError, Message: KindCipher.DefaultMessage()}
	ErrDecipher    = &Error{Kind: KindDecipher, Status: http.StatusInternalServerError, Message: KindDecipher.DefaultMessage()}
	ErrCompare     = &Error{Kind: KindCompare, Status: http.StatusInternalServerError, Message: KindCompare.DefaultMessage()}
	ErrEncrypt     = &Error{Kind: KindEncrypt, Status: http.StatusInternalServerError, Message: KindEncrypt.DefaultMessage()}
	ErrVerify      = &Error{Kind: KindVerify, Status: http.StatusInternalServerError, Message: KindVerify.DefaultMessage()}
	ErrRandomBytes = &Error{Kind: KindRandomBytes, Status: http.StatusInternalServerError, Message: KindRandomBytes.DefaultMessage()}
	ErrDigest      = &Error{Kind: KindDigest, Status: http.StatusInternalServerError, Message: KindDigest.DefaultMessage()}
)

var (
	// ErrInvalidInput is wrapped by causes that come from the caller's arguments
	// or configuration: unsupported algorithm, unknown encoding, undecodable
	// text, out of range cost or length, malformed hash.
	ErrInvalidInput = crypto.ErrInvalidInput

	// Loader errors. These are not operation errors and carry no Kind.
	ErrInvalidConfiguration    = errors.New("invalid configuration")
	ErrSecretSourceUnavailable = errors.New("secret source unavailable")
)

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return operation.Unknown, false
}

// IsInputError returns true if the failure was caused by invalid arguments or
// configuration rather than by the primitive.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfigurationError returns true if loading configuration failed.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration) ||
		errors.Is(err, ErrSecretSourceUnavailable)
}

func invalidInput(err error) error {
	if err == nil || errors.Is(err, ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
