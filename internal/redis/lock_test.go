package redis_test

import (
	"sync"
	"testing"
	"time"

	appredis "github.com/RSA-Bots/Reppy/internal/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupLocker(t *testing.T) *appredis.GuildLocker {
	t.Helper()

	// Start miniredis server
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	// Create Redis client
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return appredis.NewGuildLocker(client, zap.NewNop())
}

func TestAcquireAndRelease(t *testing.T) {
	t.Parallel()
	locker := setupLocker(t)

	ctx := t.Context()

	release, err := locker.Acquire(ctx, 1)
	require.NoError(t, err)
	release()

	// Released locks can be re-acquired immediately.
	release, err = locker.Acquire(ctx, 1)
	require.NoError(t, err)
	release()
}

func TestAcquireSerializesSameGuild(t *testing.T) {
	t.Parallel()
	locker := setupLocker(t)

	ctx := t.Context()

	release, err := locker.Acquire(ctx, 1)
	require.NoError(t, err)

	var (
		wg       sync.WaitGroup
		acquired time.Time
	)

	wg.Add(1)

	go func() {
		defer wg.Done()

		secondRelease, err := locker.Acquire(ctx, 1)
		assert.NoError(t, err)

		acquired = time.Now()

		secondRelease()
	}()

	// Hold the lock briefly so the second acquire has to wait for it.
	held := 150 * time.Millisecond
	time.Sleep(held)
	releasedAt := time.Now()
	release()

	wg.Wait()
	assert.False(t, acquired.Before(releasedAt))
}

func TestAcquireIndependentGuilds(t *testing.T) {
	t.Parallel()
	locker := setupLocker(t)

	ctx := t.Context()

	releaseFirst, err := locker.Acquire(ctx, 1)
	require.NoError(t, err)
	defer releaseFirst()

	// A different guild's lock is a different key and never blocks.
	done := make(chan struct{})

	go func() {
		releaseSecond, err := locker.Acquire(ctx, 2)
		assert.NoError(t, err)
		releaseSecond()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("acquiring an unrelated guild lock blocked")
	}
}
