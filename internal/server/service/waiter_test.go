package service

import (
	"context"
	"testing"
	"time"
)

func fired(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	case <-time.After(time.Second):
		return false
	}
}

func TestNotifyOnlyWakesStaleWaiters(t *testing.T) {
	t.Parallel()

	w := NewWaitRegistry()
	defer w.Shutdown(time.Second)

	stale := w.RegisterWait(context.Background(), "g", 0)
	current := w.RegisterWait(context.Background(), "g", 1)

	w.NotifyGame("g", 1)

	if !fired(stale) {
		t.Fatalf("waiter at move 0 not woken by move 1")
	}
	select {
	case <-current:
		t.Fatalf("waiter already at move 1 was woken")
	default:
	}
}

func TestWaitEndsWithContext(t *testing.T) {
	t.Parallel()

	w := NewWaitRegistry()
	defer w.Shutdown(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	ch := w.RegisterWait(ctx, "g", 0)
	cancel()

	if !fired(ch) {
		t.Fatalf("cancelled wait not released")
	}

	deadline := time.Now().Add(time.Second)
	for w.Waiting("g") != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("released waiter still registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRemoveGameReleasesAll(t *testing.T) {
	t.Parallel()

	w := NewWaitRegistry()
	defer w.Shutdown(time.Second)

	a := w.RegisterWait(context.Background(), "g", 0)
	b := w.RegisterWait(context.Background(), "g", 5)
	other := w.RegisterWait(context.Background(), "h", 0)

	w.RemoveGame("g")
	if !fired(a) || !fired(b) {
		t.Fatalf("waiters of removed game not released")
	}
	select {
	case <-other:
		t.Fatalf("waiter of another game released")
	default:
	}
}

func TestShutdownReleasesAndRejects(t *testing.T) {
	t.Parallel()

	w := NewWaitRegistry()
	ch := w.RegisterWait(context.Background(), "g", 0)

	if err := w.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if !fired(ch) {
		t.Fatalf("waiter not released by shutdown")
	}

	// Registrations after shutdown return immediately
	if !fired(w.RegisterWait(context.Background(), "g", 0)) {
		t.Fatalf("wait registered after shutdown")
	}
	if err := w.Shutdown(time.Second); err != nil {
		t.Fatalf("second Shutdown: %v", err)
	}
}
