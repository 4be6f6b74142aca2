package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCost(t *testing.T) {
	tests := []struct {
		cost    int
		wantErr bool
	}{
		{cost: 3, wantErr: true},
		{cost: 4},
		{cost: 10},
		{cost: 31},
		{cost: 32, wantErr: true},
		{cost: -1, wantErr: true},
	}

	for _, tt := range tests {
		err := ValidateCost(tt.cost)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidCost, "cost %d", tt.cost)
			assert.ErrorIs(t, err, ErrInvalidInput)
		} else {
			assert.NoError(t, err, "cost %d", tt.cost)
		}
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword([]byte("example"), MinCost)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(hash), "$2a$04$"))

	cost, err := HashCost(hash)
	require.NoError(t, err)
	assert.Equal(t, MinCost, cost)

	ok, err := VerifyPassword(hash, []byte("example"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, []byte("fake"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_FreshSalt(t *testing.T) {
	first, err := HashPassword([]byte("example"), MinCost)
	require.NoError(t, err)
	second, err := HashPassword([]byte("example"), MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashPassword_Errors(t *testing.T) {
	_, err := HashPassword([]byte("example"), 2)
	assert.ErrorIs(t, err, ErrInvalidCost)

	_, err = HashPassword([]byte(strings.Repeat("a", 73)), MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, hash := range []string{"", "not-a-hash", "$2a$04$short"} {
		ok, err := VerifyPassword([]byte(hash), []byte("example"))
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrMalformedHash, "hash %q", hash)
	}
}
