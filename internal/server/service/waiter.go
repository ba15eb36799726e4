// FILE: internal/server/service/waiter.go
package service

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const (
	// WaitTimeout is the maximum time a client can wait for notifications
	WaitTimeout = 25 * time.Second
)

// WaitRegistry tracks long-polling and websocket clients waiting for a game
// to change
type WaitRegistry struct {
	mu       sync.Mutex
	waiters  map[string]map[*waitRequest]struct{} // gameID → waiting clients
	shutdown chan struct{}
	closed   bool
	wg       sync.WaitGroup
}

type waitRequest struct {
	moveCount int           // move count the client has already seen
	notify    chan struct{} // closed exactly once when the wait ends
	once      sync.Once
}

func (r *waitRequest) fire() {
	r.once.Do(func() { close(r.notify) })
}

func NewWaitRegistry() *WaitRegistry {
	return &WaitRegistry{
		waiters:  make(map[string]map[*waitRequest]struct{}),
		shutdown: make(chan struct{}),
	}
}

// RegisterWait returns a channel that is closed when the game's move count
// moves past moveCount, the game is deleted, WaitTimeout elapses, ctx ends or
// the registry shuts down. Callers re-read the game after it fires.
func (w *WaitRegistry) RegisterWait(ctx context.Context, gameID string, moveCount int) <-chan struct{} {
	req := &waitRequest{
		moveCount: moveCount,
		notify:    make(chan struct{}),
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		req.fire()
		return req.notify
	}
	if w.waiters[gameID] == nil {
		w.waiters[gameID] = make(map[*waitRequest]struct{})
	}
	w.waiters[gameID][req] = struct{}{}
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		timer := time.NewTimer(WaitTimeout)
		defer timer.Stop()

		select {
		case <-req.notify:
		case <-timer.C:
		case <-ctx.Done():
		case <-w.shutdown:
		}
		w.remove(gameID, req)
		req.fire()
	}()

	return req.notify
}

// NotifyGame wakes every waiter on gameID whose known move count differs
// from currentMoveCount
func (w *WaitRegistry) NotifyGame(gameID string, currentMoveCount int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for req := range w.waiters[gameID] {
		if req.moveCount != currentMoveCount {
			req.fire()
		}
	}
}

// RemoveGame wakes all waiters of a deleted game
func (w *WaitRegistry) RemoveGame(gameID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for req := range w.waiters[gameID] {
		req.fire()
	}
}

// Waiting returns the number of clients waiting on gameID
func (w *WaitRegistry) Waiting(gameID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.waiters[gameID])
}

// Shutdown releases every waiter and waits for their goroutines
func (w *WaitRegistry) Shutdown(timeout time.Duration) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.shutdown)
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("wait registry shutdown timed out")
	}
}

func (w *WaitRegistry) remove(gameID string, req *waitRequest) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.waiters[gameID], req)
	if len(w.waiters[gameID]) == 0 {
		delete(w.waiters, gameID)
	}
}
