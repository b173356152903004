// Package gate implements the critical-section gate that delimits every
// manipulation of the run queue, wait queues, TCB state and link fields,
// and the current-thread pointer.
//
// A sigprocmask-style translation (mask SIGALRM around the critical
// section) would be unsound here: the Go scheduler may move a goroutine
// between OS threads at any suspension point, so a per-OS-thread signal
// mask does not exclude the preemption ticker. A mutex does. The ticker
// goroutine and the currently-running thread's goroutine are the only
// two participants that can race (every other thread is parked on its
// own resume channel), and the mutex excludes them regardless of which
// OS thread either lands on.
package gate

import "sync"

// Gate serializes access to scheduler-owned state.
type Gate struct {
	mu sync.Mutex
}

// New returns an open Gate.
func New() *Gate { return &Gate{} }

// Enter closes the gate. It must be paired with a Leave; entering twice
// on the same goroutine without an intervening Leave deadlocks. The gate
// is not reentrant.
func (g *Gate) Enter() { g.mu.Lock() }

// Leave opens the gate.
func (g *Gate) Leave() { g.mu.Unlock() }
