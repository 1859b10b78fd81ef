package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_InvalidSchedule(t *testing.T) {
	s := NewScheduler("not a schedule", RunnerFunc(func(ctx context.Context) error { return nil }))

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to schedule import")
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler("@every 1s", RunnerFunc(func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond,
		"Job should run at least once")
}

func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	var running, maxRunning atomic.Int32
	var runs atomic.Int32

	s := NewScheduler("@every 1s", RunnerFunc(func(ctx context.Context) error {
		n := running.Add(1)
		if n > maxRunning.Load() {
			maxRunning.Store(n)
		}
		runs.Add(1)
		time.Sleep(2500 * time.Millisecond)
		running.Add(-1)
		return nil
	}))

	require.NoError(t, s.Start(context.Background()))

	time.Sleep(4 * time.Second)
	s.Stop()

	assert.Equal(t, int32(1), maxRunning.Load(), "Runs must never overlap")
	assert.GreaterOrEqual(t, runs.Load(), int32(1))
	assert.Equal(t, int32(0), running.Load(), "Stop should wait for the running job")
}
