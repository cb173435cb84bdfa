package staking

import (
	"sync"
	"time"

	"github.com/AlexZinkM/staking-dashboard/internal/common"
	"github.com/AlexZinkM/staking-dashboard/internal/model"
	"github.com/AlexZinkM/staking-dashboard/internal/observability"

	"github.com/robfig/cron/v3"
)

// DeriveLock computes the withdrawal window of a position at now
func DeriveLock(lastUpdateTime, now, lockDuration int64) model.LockState {
	if lastUpdateTime == 0 {
		return model.Unlocked()
	}

	remaining := common.RemainingLock(lastUpdateTime, now, lockDuration)
	return model.LockState{
		RemainingSeconds: remaining,
		CanUnstake:       remaining == 0,
		UnlocksAt:        lastUpdateTime + lockDuration,
		Remaining:        common.FormatTimeRemaining(remaining),
	}
}

// LockTimer re-derives the lock state every second while a lock is running.
// It stops ticking once the lock is over or no position exists.
type LockTimer struct {
	lockDuration int64
	now          Clock
	metrics      *observability.Metrics

	mu        sync.Mutex
	base      int64
	state     model.LockState
	ticker    *cron.Cron
	listeners map[int]func(model.LockState)
	nextID    int
}

// NewLockTimer creates a stopped timer in the unlocked state
func NewLockTimer(lockDuration time.Duration, now Clock, metrics *observability.Metrics) *LockTimer {
	if now == nil {
		now = time.Now
	}
	return &LockTimer{
		lockDuration: int64(lockDuration / time.Second),
		now:          now,
		metrics:      metrics,
		state:        model.Unlocked(),
		listeners:    make(map[int]func(model.LockState)),
	}
}

// SetBase sets the position's last update time and recomputes immediately
func (t *LockTimer) SetBase(lastUpdateTime int64) {
	t.mu.Lock()
	if lastUpdateTime == t.base && (t.ticker != nil || t.state.CanUnstake) {
		t.mu.Unlock()
		return
	}

	t.base = lastUpdateTime
	changed := t.recomputeLocked(true)
	if t.state.CanUnstake {
		t.stopLocked()
	} else {
		t.startLocked()
	}
	state, listeners := t.state, t.listenersLocked()
	t.mu.Unlock()

	if changed {
		notify(listeners, state)
	}
}

// State returns the current lock state
func (t *LockTimer) State() model.LockState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// OnChange registers fn for every state change and returns a function removing it
func (t *LockTimer) OnChange(fn func(model.LockState)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.listeners, id)
	}
}

// Ticking reports whether the per-second schedule is running
func (t *LockTimer) Ticking() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ticker != nil
}

// Stop tears the schedule down; the last state stays readable
func (t *LockTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *LockTimer) tick() {
	t.mu.Lock()
	changed := t.recomputeLocked(false)
	if t.state.CanUnstake {
		t.stopLocked()
	}
	state, listeners := t.state, t.listenersLocked()
	t.mu.Unlock()

	if changed {
		notify(listeners, state)
	}
}

// recomputeLocked derives the state from base. Without a base change the
// remaining time never goes up, even if the wall clock steps back.
func (t *LockTimer) recomputeLocked(baseChanged bool) bool {
	next := DeriveLock(t.base, t.now().Unix(), t.lockDuration)
	if !baseChanged && next.RemainingSeconds > t.state.RemainingSeconds {
		return false
	}
	if next == t.state {
		return false
	}

	t.state = next
	t.metrics.SetLockRemaining(next.RemainingSeconds)
	return true
}

func (t *LockTimer) startLocked() {
	if t.ticker != nil {
		return
	}
	t.ticker = cron.New()
	t.ticker.Schedule(cron.Every(time.Second), cron.FuncJob(t.tick))
	t.ticker.Start()
}

func (t *LockTimer) stopLocked() {
	if t.ticker == nil {
		return
	}
	// Stop does not wait for a running tick; tick only needs the mutex
	t.ticker.Stop()
	t.ticker = nil
}

func (t *LockTimer) listenersLocked() []func(model.LockState) {
	out := make([]func(model.LockState), 0, len(t.listeners))
	for _, fn := range t.listeners {
		out = append(out, fn)
	}
	return out
}

func notify[T any](fns []func(T), v T) {
	for _, fn := range fns {
		fn(v)
	}
}
