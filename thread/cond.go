package thread

import "github.com/Amam1Shamil/OS-UserLevel-ThreadLibrary/internal/runqueue"

// CondVar is the library's condition variable: a FIFO wait queue of
// threads parked until a signal, always used together with a Mutex the
// caller already holds. Signals are not latched; a Signal with no waiter
// is a no-op, and waiters must recheck their predicate in a loop.
type CondVar struct {
	wait runqueue.FIFO
}

// NewCondVar returns an empty CondVar.
func NewCondVar() *CondVar {
	return &CondVar{}
}

// Wait atomically releases m and blocks the calling thread until Signal
// or Broadcast wakes it, then reacquires m before returning. It returns
// ErrNotOwner, without blocking, if the calling thread does not hold m.
//
// The gate is entered before m is released and left only after this
// thread is on the wait queue and handed off to the scheduler, so a
// concurrent Signal can never find the queue empty between the release
// and the park.
func (c *CondVar) Wait(m *Mutex) error {
	initLibrary()
	sched.g.Enter()
	if err := m.unlockLocked(); err != nil {
		sched.g.Leave()
		return err
	}
	cur := sched.current
	cur.state = StateBlocked
	observeStateChange(StateRunning, StateBlocked)
	c.wait.PushBack(cur)
	schedule()
	sched.g.Leave()

	m.Lock()
	return nil
}

// Signal wakes the oldest waiting thread, if any.
func (c *CondVar) Signal() {
	sched.g.Enter()
	if w := c.wait.PopFront(); w != nil {
		waking := w.(*TCB)
		waking.state = StateReady
		observeStateChange(StateBlocked, StateReady)
		sched.runQ.Enqueue(waking)
	}
	sched.g.Leave()
	checkPreempt()
}

// Broadcast wakes every thread currently waiting on c. Draining happens
// inside one critical section, so no waiter that parked before the call
// is missed and none that parks after it is woken.
func (c *CondVar) Broadcast() {
	sched.g.Enter()
	for {
		w := c.wait.PopFront()
		if w == nil {
			break
		}
		waking := w.(*TCB)
		waking.state = StateReady
		observeStateChange(StateBlocked, StateReady)
		sched.runQ.Enqueue(waking)
	}
	sched.g.Leave()
	checkPreempt()
}
