package thread

import "time"

// DefaultStackHint is the conventional 64 KiB per-thread stack of a
// fixed-stack threading package. Go grows goroutine stacks on demand, so
// nothing of this size is actually allocated; the constant is surfaced
// through Config so StackAllocator hooks and callers budgeting resources
// have a concrete number to work with.
const DefaultStackHint = 64 * 1024

// Config tunes the scheduler. The zero value is the library's default
// configuration.
type Config struct {
	// Quantum is the preemption tick interval. Zero means
	// preempt.DefaultQuantum.
	Quantum time.Duration

	// StackHint is the per-thread stack size surfaced through Config;
	// see DefaultStackHint. Zero means DefaultStackHint.
	StackHint int

	// StackAllocator, if set, is called once per CreatePriority before
	// the new thread's goroutine is started. An error return aborts the
	// create with ErrStackAllocation. Production callers have no reason
	// to set this; it exists for tests that simulate stack exhaustion,
	// which a runtime with growable stacks cannot otherwise produce.
	StackAllocator func() error
}

var defaultConfig = Config{}

// Configure installs cfg. Quantum is consumed once, by whichever call
// first triggers lazy library initialization, so it must be set before
// the first Create/CreatePriority/Join/Yield in a process; StackHint and
// StackAllocator are read on every create and may be changed at any
// time.
func Configure(cfg Config) {
	defaultConfig = cfg
}
