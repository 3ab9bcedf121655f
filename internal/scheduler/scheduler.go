package scheduler

import (
	"sync"
	"time"
)

// Scheduler - side table of delayed tasks keyed by an owner id (game, queue entry).
// A task that was cancelled or replaced before its deadline never runs.
type Scheduler struct {
	mu    sync.Mutex
	tasks map[string]*task
	seq   uint64
}

type task struct {
	id    uint64
	timer *time.Timer
}

func New() *Scheduler {
	return &Scheduler{
		tasks: make(map[string]*task),
	}
}

// Schedule - runs fn after delay, replacing any task already registered under key.
func (that *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelLocked(key)

	that.seq++
	id := that.seq

	that.tasks[key] = &task{
		id: id,
		timer: time.AfterFunc(delay, func() {
			if !that.claim(key, id) {
				return
			}

			fn()
		}),
	}
}

// Cancel - disarms the task under key, returns false if nothing was pending.
func (that *Scheduler) Cancel(key string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.cancelLocked(key)
}

func (that *Scheduler) Pending(key string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, ok := that.tasks[key]
	return ok
}

func (that *Scheduler) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.tasks)
}

// Stop - disarms every pending task.
func (that *Scheduler) Stop() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for key := range that.tasks {
		that.cancelLocked(key)
	}
}

// claim - removes the task if it is still the current one for key.
func (that *Scheduler) claim(key string, id uint64) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	current, ok := that.tasks[key]
	if !ok || current.id != id {
		return false
	}

	delete(that.tasks, key)
	return true
}

func (that *Scheduler) cancelLocked(key string) bool {
	current, ok := that.tasks[key]
	if !ok {
		return false
	}

	current.timer.Stop()
	delete(that.tasks, key)
	return true
}
