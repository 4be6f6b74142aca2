package crypton

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hengadev/crypton/internal/monitoring"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Cipher(algorithm string, secretKey, plaintext []byte) ([]byte, error) {
	args := m.Called(algorithm, secretKey, plaintext)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) Decipher(algorithm string, secretKey, ciphertext []byte) ([]byte, error) {
	args := m.Called(algorithm, secretKey, ciphertext)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) ValidateSaltRounds(saltRounds int) error {
	return m.Called(saltRounds).Error(0)
}

func (m *mockProvider) HashPassword(password []byte, saltRounds int) ([]byte, error) {
	args := m.Called(password, saltRounds)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) VerifyPassword(hash, password []byte) (bool, error) {
	args := m.Called(hash, password)
	return args.Bool(0), args.Error(1)
}

func (m *mockProvider) RandomBytes(n int) ([]byte, error) {
	args := m.Called(n)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProvider) Digest(data []byte) ([]byte, error) {
	args := m.Called(data)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestEngine_ErrorMessage(t *testing.T) {
	ctx := context.Background()
	provider := &mockProvider{}
	engine, err := NewEngine(WithProvider(provider))
	require.NoError(t, err)

	t.Run("cause message is kept", func(t *testing.T) {
		provider.On("RandomBytes", 8).Return(nil, errors.New("entropy exhausted")).Once()

		_, err := engine.RandomBytes(ctx, 8, "")
		require.Error(t, err)

		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "entropy exhausted", cerr.Message)
		assert.Equal(t, "RandomBytesCryptonError", cerr.Name())
		assert.False(t, IsInputError(err))
	})

	t.Run("empty cause message falls back to default", func(t *testing.T) {
		provider.On("Digest", []byte("example")).Return(nil, errors.New("")).Once()

		_, err := engine.Digest(ctx, "example", "")
		require.Error(t, err)
		assert.Equal(t, "Error while generating md5 hash", err.Error())
		assert.ErrorIs(t, err, ErrDigest)
	})

	provider.AssertExpectations(t)
}

func TestEngine_CryptValidatesSaltRoundsBeforeHashing(t *testing.T) {
	ctx := context.Background()
	provider := &mockProvider{}
	engine, err := NewEngine(WithProvider(provider))
	require.NoError(t, err)

	provider.On("ValidateSaltRounds", 12).Return(errors.New("salt rejected")).Once()

	_, err = engine.Crypt(ctx, PasswordConfig{SaltRounds: 12}, "password")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncrypt)
	provider.AssertNotCalled(t, "HashPassword", mock.Anything, mock.Anything)

	provider.On("ValidateSaltRounds", 4).Return(nil).Once()
	provider.On("HashPassword", []byte("password"), 4).Return([]byte("$2a$04$hash"), nil).Once()

	hash, err := engine.Crypt(ctx, PasswordConfig{SaltRounds: 4}, "password")
	require.NoError(t, err)
	assert.Equal(t, "$2a$04$hash", hash)
	provider.AssertExpectations(t)
}

func TestEngine_CompareForceFallback(t *testing.T) {
	ctx := context.Background()
	provider := &mockProvider{}
	engine, err := NewEngine(WithProvider(provider))
	require.NoError(t, err)

	cfg := CipherConfig{SecretKey: "k", Algorithm: "aes-256-cbc", InputEncoding: "utf8", OutputEncoding: "hex"}

	provider.On("Decipher", "aes-256-cbc", []byte("k"), mock.Anything).Return(nil, errors.New("bad decrypt")).Once()
	provider.On("Cipher", "aes-256-cbc", []byte("k"), []byte("abcd")).Return([]byte{0x01}, nil).Once()

	ok, err := engine.Compare(ctx, cfg, "abcd", "01", true)
	require.NoError(t, err)
	assert.True(t, ok)

	provider.AssertExpectations(t)
}

func TestEngine_Observability(t *testing.T) {
	ctx := context.Background()
	collector := monitoring.NewInMemoryMetricsCollector()
	var logs bytes.Buffer
	logger := monitoring.NewLogger(monitoring.LoggerConfig{Level: slog.LevelDebug, Output: &logs})

	engine, err := NewEngine(WithMetricsCollector(collector), WithLogger(logger))
	require.NoError(t, err)

	_, err = engine.Digest(ctx, "example", "")
	require.NoError(t, err)
	_, err = engine.Digest(ctx, "example", "morse")
	require.Error(t, err)

	tags := map[string]string{"operation": "digest"}
	assert.Equal(t, int64(2), collector.Counter(monitoring.MetricStarted, tags))
	assert.Equal(t, int64(1), collector.Counter(monitoring.MetricSucceeded, tags))
	assert.Equal(t, int64(1), collector.Counter(monitoring.MetricFailed, tags))
	assert.Len(t, collector.Timings(monitoring.MetricDuration, tags), 2)

	var failed map[string]any
	for _, line := range strings.Split(strings.TrimSpace(logs.String()), "\n") {
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		if record["msg"] == "operation failed" {
			failed = record
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, "digest", failed["operation"])
	assert.NotEmpty(t, failed["operation_id"])
}

func TestEngine_NeverLogsSecrets(t *testing.T) {
	var logs bytes.Buffer
	logger := monitoring.NewLogger(monitoring.LoggerConfig{Level: slog.LevelDebug, Output: &logs})
	engine, err := NewEngine(WithLogger(logger))
	require.NoError(t, err)

	cfg := CipherConfig{SecretKey: "super-secret", Algorithm: "aes-256-cbc", InputEncoding: "utf8", OutputEncoding: "hex"}
	_, err = engine.Cipher(context.Background(), cfg, "clear text value")
	require.NoError(t, err)

	assert.NotEmpty(t, logs.String())
	assert.NotContains(t, logs.String(), "super-secret")
	assert.NotContains(t, logs.String(), "clear text value")
}

func TestEngine_ZeroValue(t *testing.T) {
	ctx := context.Background()
	var engine Engine

	sum, err := engine.Digest(ctx, "example", "")
	require.NoError(t, err)
	assert.Equal(t, "1a79a4d60de6718e8e5b326e338ae533", sum)

	_, err = engine.RandomBytes(ctx, 0, "")
	assert.ErrorIs(t, err, ErrRandomBytes)
}
