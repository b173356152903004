package thread

import "github.com/pkg/errors"

// Sentinel errors returned by the thread package. Callers compare with
// errors.Is (pkg/errors preserves that interop).
var (
	// ErrUnknownThread is returned by Join/JoinContext when no thread with
	// the given id exists in this process, either because it was never
	// created or because it was already joined and reclaimed.
	ErrUnknownThread = errors.New("thread: unknown thread id")

	// ErrNotOwner is returned by Mutex.Unlock and CondVar.Wait when the
	// calling thread does not hold the mutex.
	ErrNotOwner = errors.New("thread: mutex not held by calling thread")

	// ErrStackAllocation is returned by CreatePriority when a configured
	// Config.StackAllocator hook fails.
	ErrStackAllocation = errors.New("thread: stack allocation failed")

	// ErrDeadlock is the panic value used when the run queue is empty and
	// the outgoing thread is not TERMINATED: nothing is left to dispatch
	// and no other thread can ever wake it.
	ErrDeadlock = errors.New("thread: deadlock detected, run queue empty with no terminated outgoing thread")
)
