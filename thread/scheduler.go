package thread

import (
	"os"
	"strconv"
	"sync"

	ictx "github.com/Amam1Shamil/OS-UserLevel-ThreadLibrary/internal/context"
	"github.com/Amam1Shamil/OS-UserLevel-ThreadLibrary/internal/gate"
	"github.com/Amam1Shamil/OS-UserLevel-ThreadLibrary/internal/preempt"
	"github.com/Amam1Shamil/OS-UserLevel-ThreadLibrary/internal/runqueue"
)

// scheduler holds all state that may only be touched with the gate held:
// the run queue, the current-thread pointer, the id allocator, the TCB
// table Join looks ids up in, and the context-switch count. There is
// exactly one scheduler per process.
type scheduler struct {
	g      *gate.Gate
	runQ   runqueue.Queue
	tcbs   map[int]*TCB
	nextID int

	current          *TCB
	switches         uint64
	preemptRequested bool

	timer *preempt.Timer
}

var (
	sched    = &scheduler{g: gate.New(), tcbs: make(map[int]*TCB)}
	initOnce sync.Once
)

// initLibrary captures the calling goroutine as thread 0 and arms the
// preemption timer. Runs once; every public entry point calls it.
func initLibrary() {
	initOnce.Do(func() {
		main := &TCB{id: 0, state: StateRunning, priority: 0, ctx: ictx.New()}
		sched.tcbs[0] = main
		sched.current = main
		sched.nextID = 1
		observeStateChange(StateCreated, StateRunning)

		sched.timer = preempt.Start(defaultConfig.Quantum, onTick)

		log.Info().Msg("library initialized, thread 0 is the calling goroutine")
	})
}

// onTick runs on the timer's own goroutine, never on the goroutine
// backing the current thread. internal/context.Swap can only park its
// caller, so switching from here would park the timer and leave the
// interrupted thread running alongside whatever got swapped in. onTick
// therefore only records that a preemption is due; the running thread
// consumes the request at its next safe point (checkPreempt).
func onTick() {
	sched.g.Enter()
	if sched.current != nil && sched.current.state == StateRunning {
		sched.preemptRequested = true
	}
	sched.g.Leave()
}

// checkPreempt consumes a pending preemption request, if any, by making
// the calling thread yield. Every safe point funnels through here:
// Checkpoint, lock acquisition and release, and condvar signal.
func checkPreempt() {
	sched.g.Enter()
	requested := sched.preemptRequested
	sched.preemptRequested = false
	sched.g.Leave()
	if requested {
		Yield()
	}
}

// schedule must be called with the gate held. For every caller except
// Exit it also returns with the gate still held, either immediately (no
// switch was needed) or after a full round trip through
// internal/context.Swap once this goroutine is chosen again. Exit's
// outgoing thread is TERMINATED and will never be resumed, so schedule
// hands the gate off to the dispatched thread via internal/context.Finish
// instead of returning it to a caller that is about to unwind.
//
// schedule never decides the outgoing thread's new state; the caller
// (Yield, Exit, Mutex.Lock, CondVar.Wait) has already set it and, if
// applicable, pushed the outgoing TCB onto whichever queue it belongs on.
func schedule() {
	outgoing := sched.current

	next := sched.runQ.Dequeue()
	if next == nil {
		if outgoing.state == StateTerminated {
			finish()
			return
		}
		deadlock(outgoing)
		return
	}

	incoming := next.(*TCB)
	sched.current = incoming
	incoming.state = StateRunning
	observeStateChange(StateReady, StateRunning)

	if outgoing == incoming {
		// Nothing else was ready; the caller was immediately redispatched
		// to itself. Not counted as a switch: no other context ran.
		return
	}

	sched.switches++
	observeSwitch()

	if outgoing.state == StateTerminated {
		// outgoing's goroutine is inside Exit, about to unwind; there is
		// nothing to park it on. Hand off one-way. incoming's own
		// resumption path (trampoline's first line, or its enclosing
		// Yield/Lock/Wait) leaves the gate; Exit must not.
		ictx.Finish(incoming.ctx)
		return
	}

	ictx.Swap(outgoing.ctx, incoming.ctx)
}

// reclaim drops a terminated thread's TCB and gauge entry once Join has
// copied out its return value. Must be called with the gate held.
// Without it the TCB table would grow without bound in a long-running
// process.
func reclaim(id int) {
	delete(sched.tcbs, id)
	observeReclaim()
}

// finish terminates the process with status 0: the run queue is empty
// and the thread relinquishing control has terminated, so every thread
// that was ever going to run has run to completion.
func finish() {
	switches := sched.switches
	sched.g.Leave()
	log.Info().Uint64("context_switches", switches).Msg("all threads terminated, exiting")
	exitProcess(0)
}

// deadlock handles an empty run queue with a non-terminated outgoing
// thread: nothing can ever resume it. Logs the full TCB table, then
// panics with ErrDeadlock.
func deadlock(outgoing *TCB) {
	deadlocks.Inc()
	ev := log.Error().
		Int("outgoing_thread", outgoing.id).
		Str("outgoing_state", outgoing.state.String())
	for id, t := range sched.tcbs {
		ev = ev.Str("thread_"+strconv.Itoa(id), t.state.String())
	}
	ev.Msg("deadlock: run queue empty, outgoing thread not terminated")
	sched.g.Leave()
	panic(ErrDeadlock)
}

// exitProcess is a package variable so tests can intercept the process
// exit that finish triggers.
var exitProcess = func(code int) { os.Exit(code) }
