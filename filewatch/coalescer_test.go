package filewatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct {
	file string
	kind EventKind
	at   time.Time
}

func newRecordingCoalescer() (*Coalescer, chan recordedEvent) {
	events := make(chan recordedEvent, 64)
	c := New(func(file, otherFile string, kind EventKind) {
		events <- recordedEvent{file: file, kind: kind, at: time.Now()}
	})
	return c, events
}

// C1: within any window of length rate_limit_ms, at most one Changed
// event is emitted downstream.
func TestCoalescerRateLimitsChanged_C1(t *testing.T) {
	c, events := newRecordingCoalescer()
	c.SetRateLimit(50 * time.Millisecond)

	c.Emit("f", "", Changed)
	c.Emit("f", "", Changed)
	c.Emit("f", "", Changed)

	select {
	case ev := <-events:
		assert.Equal(t, Changed, ev.kind)
	case <-time.After(time.Second):
		t.Fatal("expected immediate Changed emission")
	}

	select {
	case ev := <-events:
		t.Fatalf("unexpected second emission before rate limit elapsed: %+v", ev)
	case <-time.After(20 * time.Millisecond):
	}
}

// The suppressed burst's trailing Changed is still delivered once the
// rate limit window elapses.
func TestCoalescerDelayedChangeFires(t *testing.T) {
	c, events := newRecordingCoalescer()
	c.SetRateLimit(30 * time.Millisecond)

	c.Emit("f", "", Changed)
	<-events // immediate emission

	c.Emit("f", "", Changed) // suppressed, arms delayed timer

	select {
	case ev := <-events:
		assert.Equal(t, Changed, ev.kind)
	case <-time.After(time.Second):
		t.Fatal("expected delayed Changed emission")
	}
}

// C2: a ChangesDoneHint follows a quiet burst after the virtual-done
// delay, unless a real one arrives first.
func TestCoalescerVirtualChangesDoneHint_C2(t *testing.T) {
	c, events := newRecordingCoalescer()
	c.SetRateLimit(10 * time.Millisecond)
	c.virtualDoneDelay = 40 * time.Millisecond

	c.Emit("f", "", Changed)
	<-events // Changed

	select {
	case ev := <-events:
		assert.Equal(t, ChangesDoneHint, ev.kind)
	case <-time.After(time.Second):
		t.Fatal("expected ChangesDoneHint after quiescence")
	}
}

// C3: a non-Changed event flushes any buffered Changed before itself.
func TestCoalescerNonChangedFlushesBuffered_C3(t *testing.T) {
	c, events := newRecordingCoalescer()
	c.SetRateLimit(time.Hour) // force suppression

	c.Emit("f", "", Changed)
	<-events // immediate first emission

	c.Emit("f", "", Changed) // suppressed, buffered

	c.Emit("f", "", Deleted)

	first := <-events
	assert.Equal(t, Changed, first.kind, "buffered Changed must flush before the Deleted event")

	second := <-events
	assert.Equal(t, ChangesDoneHint, second.kind, "the pending virtual ChangesDoneHint fires before the Deleted event")

	third := <-events
	assert.Equal(t, Deleted, third.kind)
}

// C4: after cancel, no further events are emitted.
func TestCoalescerCancelIsTerminal_C4(t *testing.T) {
	c, events := newRecordingCoalescer()
	c.SetRateLimit(10 * time.Millisecond)

	cancelled := make(chan struct{})
	c.OnCancel = func() { close(cancelled) }

	c.Cancel()
	assert.True(t, c.IsCancelled())

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("OnCancel was not invoked")
	}

	c.Emit("f", "", Changed)

	select {
	case ev := <-events:
		t.Fatalf("unexpected emission after cancel: %+v", ev)
	case <-time.After(30 * time.Millisecond):
	}

	c.Cancel() // idempotent, must not panic or re-invoke OnCancel
}

func TestTimeDifference(t *testing.T) {
	base := time.Now()
	require.Equal(t, time.Duration(0), timeDifference(base, base.Add(-time.Second)))
	require.Equal(t, time.Second, timeDifference(base, base.Add(time.Second)))
}
