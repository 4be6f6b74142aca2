package crypton

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsync(t *testing.T) {
	ctx := context.Background()
	c := newTestCrypton(t)

	f := Async(func() (string, error) {
		return c.Crypt(ctx, "example")
	})

	hash, err := f.Await(ctx)
	require.NoError(t, err)

	ok, err := Async(func() (bool, error) {
		return c.Verify(ctx, "example", hash)
	}).Await(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAsync_Error(t *testing.T) {
	ctx := context.Background()
	c := newTestCrypton(t)

	_, err := Async(func() (string, error) {
		return c.RandomBytes(ctx, -1)
	}).Await(ctx)

	assert.ErrorIs(t, err, ErrRandomBytes)
}

func TestFuture_AwaitContextDone(t *testing.T) {
	release := make(chan struct{})
	f := Async(func() (int, error) {
		<-release
		return 42, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	close(release)
	<-f.Done()

	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}
