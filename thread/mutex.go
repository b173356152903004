package thread

import (
	"sync/atomic"

	"github.com/Amam1Shamil/OS-UserLevel-ThreadLibrary/internal/runqueue"
)

// Mutex is the library's user-space mutex: a single atomic test-and-set
// flag for the fast path, with a FIFO wait queue of blocked threads
// maintained under the gate for the contended path. The flag lives
// outside the gate on purpose; an uncontended acquire performs its
// test-and-set without the gate and enters it only briefly afterwards to
// record the owner.
type Mutex struct {
	locked atomic.Bool
	owner  *TCB
	wait   runqueue.FIFO
}

// NewMutex returns an unlocked Mutex.
func NewMutex() *Mutex {
	return &Mutex{}
}

// Lock acquires the mutex, blocking the calling thread if it is already
// held. A woken waiter re-attempts the test-and-set rather than assuming
// ownership: a higher-priority thread that raced in between the release
// and this thread's dispatch wins the flag, and this thread parks again.
func (m *Mutex) Lock() {
	initLibrary()
	for !m.locked.CompareAndSwap(false, true) {
		sched.g.Enter()
		cur := sched.current
		cur.state = StateBlocked
		observeStateChange(StateRunning, StateBlocked)
		m.wait.PushBack(cur)
		schedule()
		sched.g.Leave()
	}
	sched.g.Enter()
	m.owner = sched.current
	sched.g.Leave()
	checkPreempt()
}

// Unlock releases the mutex and wakes one waiter, if any. It returns
// ErrNotOwner, with no side effect, if the calling thread does not hold
// the mutex.
func (m *Mutex) Unlock() error {
	initLibrary()
	sched.g.Enter()
	err := m.unlockLocked()
	sched.g.Leave()
	if err == nil {
		checkPreempt()
	}
	return err
}

// unlockLocked is Unlock's body, callable with the gate already held
// (CondVar.Wait releases the mutex and parks in one critical section).
// The flag clears before the waiter is made ready, so a thread spinning
// in Lock can grab it first; the retry loop there tolerates that.
func (m *Mutex) unlockLocked() error {
	if m.owner != sched.current {
		return ErrNotOwner
	}
	m.owner = nil
	m.locked.Store(false)
	if w := m.wait.PopFront(); w != nil {
		waking := w.(*TCB)
		waking.state = StateReady
		observeStateChange(StateBlocked, StateReady)
		sched.runQ.Enqueue(waking)
	}
	return nil
}
