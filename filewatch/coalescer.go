package filewatch

import (
	"sync"
	"time"

	log "gopkg.in/inconshreveable/log15.v2"
)

// DefaultRateLimit and DefaultVirtualDoneDelay are the coalescer's
// stock timings, carried over unchanged from the source this module is
// grounded on (DEFAULT_RATE_LIMIT_MSECS / DEFAULT_VIRTUAL_CHANGES_DONE_DELAY_SECS).
const (
	DefaultRateLimit       = 800 * time.Millisecond
	DefaultVirtualDoneDelay = 2 * time.Second
)

// Emitter receives coalesced/forwarded events downstream.
type Emitter func(file, otherFile string, kind EventKind)

// Coalescer is the rate-limit + virtual-done state machine described by
// §3/§4.7: at most one pending delayed-Changed timer and one pending
// virtual-ChangesDoneHint timer at any instant.
//
// The source this is grounded on assumes a single cooperative event
// loop dispatching both raw events and timer firings, so no locking is
// needed there. Go's time.AfterFunc callbacks run on their own
// goroutine, so Coalescer adds a mutex guarding exactly the state
// described in §3 — a consequence of the runtime, not a redesign of the
// state machine. Emitter must not call back into the Coalescer
// synchronously (Emit/Cancel) — doing so would deadlock on this mutex.
type Coalescer struct {
	mu sync.Mutex

	log log.Logger
	emit Emitter

	rateLimit        time.Duration
	virtualDoneDelay time.Duration

	cancelled bool

	hasLastEmittedChange   bool
	lastEmittedChangeFile  string
	lastEmittedChangeTime  time.Time

	pendingChangeTimer *time.Timer

	pendingDoneTimer *time.Timer
	pendingDoneFile  string

	// OnCancel, if set, is invoked exactly once when Cancel transitions
	// the coalescer to cancelled — the hook the owning monitor uses to
	// stop its own raw event source.
	OnCancel func()
}

// New creates a Coalescer with the default rate limit and virtual-done
// delay, dispatching coalesced events to emit.
func New(emit Emitter) *Coalescer {
	return &Coalescer{
		log:              log.New("component", "filewatch.Coalescer"),
		emit:             emit,
		rateLimit:        DefaultRateLimit,
		virtualDoneDelay: DefaultVirtualDoneDelay,
	}
}

// SetRateLimit overrides the default 800ms rate limit.
func (c *Coalescer) SetRateLimit(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rateLimit = d
}

// Emit feeds one raw (file, otherFile, kind) event into the coalescer
// (§4.7). Non-Changed events flush any buffered Changed first and
// forward verbatim; Changed events are rate-limited and arm the virtual
// ChangesDoneHint timer.
func (c *Coalescer) Emit(file, otherFile string, kind EventKind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelled {
		return
	}

	if kind != Changed {
		c.sendDelayedChangeNowLocked()
		c.hasLastEmittedChange = false
		c.lastEmittedChangeFile = ""

		if kind == ChangesDoneHint {
			c.cancelVirtualChangesDoneLocked()
		} else {
			c.sendVirtualChangesDoneNowLocked()
		}

		c.dispatchLocked(file, otherFile, kind)
		return
	}

	now := time.Now()
	emitNow := true

	if c.hasLastEmittedChange {
		sinceLast := timeDifference(c.lastEmittedChangeTime, now)
		if sinceLast < c.rateLimit {
			emitNow = false
			c.scheduleDelayedChangeLocked(c.rateLimit - sinceLast)
		}
	}

	if emitNow {
		c.dispatchLocked(file, otherFile, Changed)
		c.cancelDelayedChangeLocked()
		c.hasLastEmittedChange = true
		c.lastEmittedChangeFile = file
		c.lastEmittedChangeTime = now
	}

	c.cancelVirtualChangesDoneLocked()
	c.scheduleVirtualChangeDoneLocked(file)
}

// Cancel idempotently stops the coalescer: pending timers are released
// and no further events are emitted. Notifies OnCancel exactly once.
func (c *Coalescer) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelled {
		return
	}
	c.cancelled = true

	c.cancelDelayedChangeLocked()
	c.cancelVirtualChangesDoneLocked()

	if c.OnCancel != nil {
		c.OnCancel()
	}
}

// IsCancelled reports whether Cancel has been called.
func (c *Coalescer) IsCancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelled
}

func timeDifference(from, to time.Time) time.Duration {
	if from.After(to) {
		return 0
	}
	return to.Sub(from)
}

func (c *Coalescer) dispatchLocked(file, otherFile string, kind EventKind) {
	c.log.Debug("dispatch", "file", file, "otherFile", otherFile, "kind", kind.String())
	c.emit(file, otherFile, kind)
}

func (c *Coalescer) sendDelayedChangeNowLocked() {
	if c.pendingChangeTimer == nil {
		return
	}
	c.pendingChangeTimer.Stop()
	c.pendingChangeTimer = nil

	c.dispatchLocked(c.lastEmittedChangeFile, "", Changed)
	c.lastEmittedChangeTime = time.Now()
}

func (c *Coalescer) scheduleDelayedChangeLocked(delay time.Duration) {
	if c.pendingChangeTimer != nil {
		return // only set the timeout once
	}
	c.pendingChangeTimer = time.AfterFunc(delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.cancelled || c.pendingChangeTimer == nil {
			return
		}
		c.sendDelayedChangeNowLocked()
	})
}

func (c *Coalescer) cancelDelayedChangeLocked() {
	if c.pendingChangeTimer == nil {
		return
	}
	c.pendingChangeTimer.Stop()
	c.pendingChangeTimer = nil
}

func (c *Coalescer) sendVirtualChangesDoneNowLocked() {
	if c.pendingDoneTimer == nil {
		return
	}
	c.pendingDoneTimer.Stop()
	file := c.pendingDoneFile
	c.pendingDoneTimer = nil
	c.pendingDoneFile = ""

	c.dispatchLocked(file, "", ChangesDoneHint)
}

func (c *Coalescer) scheduleVirtualChangeDoneLocked(file string) {
	c.pendingDoneFile = file
	c.pendingDoneTimer = time.AfterFunc(c.virtualDoneDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.cancelled || c.pendingDoneTimer == nil {
			return
		}
		c.sendVirtualChangesDoneNowLocked()
	})
}

func (c *Coalescer) cancelVirtualChangesDoneLocked() {
	if c.pendingDoneTimer == nil {
		return
	}
	c.pendingDoneTimer.Stop()
	c.pendingDoneTimer = nil
	c.pendingDoneFile = ""
}
