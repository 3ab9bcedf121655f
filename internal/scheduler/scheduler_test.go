package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	shortDelay = 10 * time.Millisecond
	waitFor    = time.Second
	tick       = 5 * time.Millisecond
)

func TestScheduler_Schedule(t *testing.T) {
	t.Run("Task runs after the delay and is removed", func(t *testing.T) {
		// Given: a scheduler with one task
		sched := New()
		var calls atomic.Int32

		sched.Schedule("game:1", shortDelay, func() { calls.Add(1) })
		assert.True(t, sched.Pending("game:1"))

		// Then: the task eventually runs exactly once
		require.Eventually(t, func() bool { return calls.Load() == 1 }, waitFor, tick)
		assert.False(t, sched.Pending("game:1"))
		assert.Equal(t, 0, sched.Len())
	})

	t.Run("Rescheduling replaces the previous task", func(t *testing.T) {
		// Given: a task under a key
		sched := New()
		var first, second atomic.Int32

		sched.Schedule("key", shortDelay, func() { first.Add(1) })

		// When: another task is scheduled under the same key
		sched.Schedule("key", shortDelay, func() { second.Add(1) })

		// Then: only the second one runs
		require.Eventually(t, func() bool { return second.Load() == 1 }, waitFor, tick)
		time.Sleep(3 * shortDelay)
		assert.Equal(t, int32(0), first.Load())
	})
}

func TestScheduler_Cancel(t *testing.T) {
	t.Run("Cancelled task never runs", func(t *testing.T) {
		// Given: a pending task
		sched := New()
		var calls atomic.Int32
		sched.Schedule("key", shortDelay, func() { calls.Add(1) })

		// When: it is cancelled before the deadline
		cancelled := sched.Cancel("key")

		// Then: it never runs
		assert.True(t, cancelled)
		time.Sleep(3 * shortDelay)
		assert.Equal(t, int32(0), calls.Load())
	})

	t.Run("Cancel of an unknown key is a no-op", func(t *testing.T) {
		sched := New()

		assert.False(t, sched.Cancel("missing"))
	})

	t.Run("Stop disarms every task", func(t *testing.T) {
		sched := New()
		var calls atomic.Int32
		sched.Schedule("a", shortDelay, func() { calls.Add(1) })
		sched.Schedule("b", shortDelay, func() { calls.Add(1) })

		sched.Stop()

		time.Sleep(3 * shortDelay)
		assert.Equal(t, int32(0), calls.Load())
		assert.Equal(t, 0, sched.Len())
	})
}
