//go:build integration

package lock

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: go test -v -tags=integration ./internal/lock/...

func setupLocker(t *testing.T) *Locker {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/15"
	}

	locker, err := NewLocker(context.Background(), url, time.Minute)
	require.NoError(t, err, "Failed to connect to test redis")
	t.Cleanup(func() { locker.Close() })

	return locker
}

func TestAcquireRelease(t *testing.T) {
	locker := setupLocker(t)
	ctx := context.Background()

	first, err := locker.Acquire(ctx, "acquire-release")
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, "acquire-release")
	assert.ErrorIs(t, err, ErrLocked, "Second acquire should fail while held")

	require.NoError(t, first.Release(ctx))

	again, err := locker.Acquire(ctx, "acquire-release")
	require.NoError(t, err, "Lock should be free after release")
	require.NoError(t, again.Release(ctx))
}

func TestReleaseDoesNotDropForeignLock(t *testing.T) {
	locker := setupLocker(t)
	ctx := context.Background()

	held, err := locker.Acquire(ctx, "foreign")
	require.NoError(t, err)
	defer held.Release(ctx)

	stale := &Lock{client: locker.client, key: held.key, token: "someone-else"}
	require.NoError(t, stale.Release(ctx))

	_, err = locker.Acquire(ctx, "foreign")
	assert.ErrorIs(t, err, ErrLocked, "Stale token must not release the live lock")
}
