package state

import (
	"errors"
	"sync"
)

// ErrReentrantCall is returned when an entry point is entered while a prior
// call on the same instance has not finished.
var ErrReentrantCall = errors.New("reentrant call rejected")

// Guard is a single-entry latch protecting a component instance. Entry points
// that mutate balances take the guard for the whole call, so nothing can
// re-enter the instance while post-burn or post-collateral-pull state is
// still in flight.
type Guard struct {
	mu   sync.Mutex
	busy bool
}

// Enter takes the latch, failing if the instance is already busy.
func (g *Guard) Enter() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return ErrReentrantCall
	}
	g.busy = true
	return nil
}

// Exit releases the latch.
func (g *Guard) Exit() {
	g.mu.Lock()
	g.busy = false
	g.mu.Unlock()
}
