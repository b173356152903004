package thread

import (
	ictx "github.com/Amam1Shamil/OS-UserLevel-ThreadLibrary/internal/context"
	"github.com/Amam1Shamil/OS-UserLevel-ThreadLibrary/internal/runqueue"
)

// State is a thread's position in the lifecycle:
//
//	CREATED -> READY <-> RUNNING
//	              \-> BLOCKED (parked on a wait queue)
//	RUNNING -> TERMINATED (via Exit)
//	BLOCKED -> READY (via Unlock/Signal/Post)
type State int

const (
	StateCreated State = iota
	StateReady
	StateRunning
	StateBlocked
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateReady:
		return "ready"
	case StateRunning:
		return "running"
	case StateBlocked:
		return "blocked"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// TCB is a thread control block: identity, state, priority, saved
// context, return value, and the single queue link a thread may occupy
// at any instant. All fields are only ever mutated with the scheduler's
// gate held, except ctx, which is a self-synchronizing channel handoff
// (internal/context).
type TCB struct {
	id       int
	state    State
	priority int
	retval   any
	ctx      *ictx.Context
	next     runqueue.Node
}

// ID returns the thread's unique, monotonically assigned identifier. The
// initial thread is id 0.
func (t *TCB) ID() int { return t.id }

// State returns the thread's current lifecycle state.
func (t *TCB) State() State { return t.state }

// Priority returns the thread's scheduling priority (larger is higher).
func (t *TCB) Priority() int { return t.priority }

// Next implements runqueue.Node.
func (t *TCB) Next() runqueue.Node { return t.next }

// SetNext implements runqueue.Node.
func (t *TCB) SetNext(n runqueue.Node) { t.next = n }
