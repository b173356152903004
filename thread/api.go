package thread

import (
	"context"
	"runtime"

	ictx "github.com/Amam1Shamil/OS-UserLevel-ThreadLibrary/internal/context"
)

// Create spawns a new thread at priority 0 running fn(arg), and returns
// its id.
func Create[T any](fn func(arg T) any, arg T) (int, error) {
	return CreatePriority(fn, arg, 0)
}

// CreatePriority spawns a new thread at the given priority running
// fn(arg): lazily initialize the library and run any configured stack
// allocator hook, then, as a single critical section, assign a fresh id,
// build the context (a parked goroutine whose entry is a trampoline
// wrapping fn), and enqueue it.
//
// fn's return value is exactly what a later Join/JoinContext for this id
// receives.
func CreatePriority[T any](fn func(arg T) any, arg T, priority int) (int, error) {
	initLibrary()

	stackHint := defaultConfig.StackHint
	if stackHint == 0 {
		stackHint = DefaultStackHint
	}
	if alloc := defaultConfig.StackAllocator; alloc != nil {
		if err := alloc(); err != nil {
			return 0, ErrStackAllocation
		}
	}

	sched.g.Enter()
	id := sched.nextID
	sched.nextID++
	tcb := &TCB{id: id, state: StateReady, priority: priority}
	tcb.ctx = ictx.Make(func() { trampoline(tcb, func() any { return fn(arg) }) })
	sched.tcbs[id] = tcb
	sched.runQ.Enqueue(tcb)
	observeStateChange(StateCreated, StateReady)
	sched.g.Leave()

	log.Debug().Int("thread", id).Int("priority", priority).Int("stack_hint", stackHint).Msg("thread created")
	return id, nil
}

// trampoline is the first code a newly created thread's goroutine runs
// once it is first swapped in. Its first action is to leave the gate:
// the context was built inside CreatePriority's critical section, and
// the schedule() call that dispatches this goroutine for the first time
// does so with the gate held. A thread resuming mid-function instead has
// its own enclosing Yield/Lock/Wait leave the gate on return from
// schedule; a fresh context has no such enclosing call, so the
// trampoline does it.
func trampoline(self *TCB, fn func() any) {
	sched.g.Leave()
	log.Debug().Int("thread", self.id).Msg("thread starting")
	ret := fn()
	Exit(ret)
}

// Exit terminates the calling thread, recording retval for a later Join,
// and never returns. Calling Exit on thread 0 removes the process's
// original goroutine from scheduling; ordinary programs should let main
// return instead.
//
// schedule() dispatches the successor with a one-way handoff and then
// returns here on the dying goroutine; the gate travels with the
// handoff (the resumed thread's own code path leaves it), so Exit must
// not leave it again. Goexit ends the goroutine without running any
// code that could touch scheduler state after this thread has formally
// ceased to exist.
func Exit(retval any) {
	initLibrary()
	sched.g.Enter()
	cur := sched.current
	cur.state = StateTerminated
	cur.retval = retval
	observeStateChange(StateRunning, StateTerminated)
	log.Debug().Int("thread", cur.id).Msg("thread exited")
	schedule()
	runtime.Goexit()
}

// Yield voluntarily relinquishes the remainder of the calling thread's
// quantum. The calling thread is re-enqueued behind any ready threads of
// equal or higher priority, and the head of the run queue runs next; if
// no ready thread has at least the caller's priority, the calling thread
// simply continues (dequeue immediately returns it again, no swap).
func Yield() {
	initLibrary()
	sched.g.Enter()
	cur := sched.current
	if cur.state == StateRunning {
		cur.state = StateReady
		observeStateChange(StateRunning, StateReady)
		sched.runQ.Enqueue(cur)
	}
	sched.preemptRequested = false
	schedule()
	sched.g.Leave()
}

// Checkpoint yields only if a preemption tick has fired since the last
// scheduling point. CPU-bound loops that never touch a lock or condvar
// call this periodically so the timer's quantum, rather than the loop's
// own structure, decides when they are switched out. It is much cheaper
// than an unconditional Yield when no tick is pending.
func Checkpoint() {
	initLibrary()
	checkPreempt()
}

// Join blocks the calling thread, via repeated Yield, until the thread
// identified by id has terminated, then reports its return value through
// out (if out is non-nil) and releases the thread's TCB. Concurrent joins
// of the same id, or joining id 0, are undefined; ErrUnknownThread is
// returned if id was never created (or was already joined and reclaimed).
func Join(id int, out *any) error {
	return JoinContext(context.Background(), id, out)
}

// JoinContext is Join with cancellation. If ctx is canceled before the
// target thread terminates, JoinContext returns ctx.Err() and the target
// thread is left running; there is no mechanism to force a thread to
// stop, so cancellation abandons the wait, not the thread.
func JoinContext(ctx context.Context, id int, out *any) error {
	initLibrary()
	sched.g.Enter()
	target, ok := sched.tcbs[id]
	sched.g.Leave()
	if !ok {
		return ErrUnknownThread
	}

	for {
		sched.g.Enter()
		done := target.state == StateTerminated
		var rv any
		if done {
			rv = target.retval
			reclaim(id)
		}
		sched.g.Leave()

		if done {
			if out != nil {
				*out = rv
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		Yield()
	}
}
