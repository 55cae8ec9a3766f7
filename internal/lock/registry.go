// Package lock is the process-wide status registry gating concurrent
// mutation of an open league. Commands that simulate, advance phases, or
// draft must hold the matching flag for their whole duration and release it
// on every exit path; the With helper guarantees release even on error.
package lock

import (
	"fmt"
	"sync"
)

// Flag names one of the registry's boolean locks.
type Flag string

const (
	GameSim     Flag = "gameSim"
	NewPhase    Flag = "newPhase"
	StopGameSim Flag = "stopGameSim"
	Drafting    Flag = "drafting"
)

// ErrLocked is wrapped by acquisition failures so callers can detect the
// busy case.
var ErrLocked = fmt.Errorf("operation already in progress")

// NegotiationChecker reports whether any non-resigning negotiation is open.
// The registry consults it in CanStartNegotiation; the cache layer provides
// the implementation at wiring time.
type NegotiationChecker interface {
	AnyNonResigningNegotiation() bool
}

// Registry holds the named locks. Safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	flags map[Flag]bool

	negotiations NegotiationChecker
}

// NewRegistry returns a registry with every flag clear.
func NewRegistry() *Registry {
	return &Registry{flags: make(map[Flag]bool)}
}

// SetNegotiationChecker wires the open-negotiation probe. Until set,
// CanStartNegotiation assumes no negotiations are open.
func (r *Registry) SetNegotiationChecker(nc NegotiationChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.negotiations = nc
}

// Get reports whether a flag is held.
func (r *Registry) Get(f Flag) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flags[f]
}

// Set forces a flag. Most callers should prefer With, which cannot leak a
// held flag.
func (r *Registry) Set(f Flag, held bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flags[f] = held
}

// TryAcquire atomically takes a flag, failing fast if it is already held.
func (r *Registry) TryAcquire(f Flag) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.flags[f] {
		return fmt.Errorf("%w: %s", ErrLocked, f)
	}
	r.flags[f] = true
	return nil
}

// Release clears a flag.
func (r *Registry) Release(f Flag) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flags[f] = false
}

// With runs fn while holding the flag, releasing it on every exit path
// including panics. It fails fast with ErrLocked if the flag is held.
func (r *Registry) With(f Flag, fn func() error) error {
	if err := r.TryAcquire(f); err != nil {
		return err
	}
	defer r.Release(f)
	return fn()
}

// Reset clears every flag. Used when a league is closed or creation fails
// partway.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flags = make(map[Flag]bool)
}

// CanStartNegotiation reports whether a new negotiation may begin: no game
// simulation running, no phase change running, and either this is a
// resigning (many may run concurrently) or no other non-resigning
// negotiation is open.
func (r *Registry) CanStartNegotiation(resigning bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.flags[GameSim] || r.flags[NewPhase] {
		return false
	}
	if resigning {
		return true
	}
	if r.negotiations != nil && r.negotiations.AnyNonResigningNegotiation() {
		return false
	}
	return true
}
