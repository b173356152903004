package thread

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// The scheduler is a process-wide singleton: exactly one goroutine in
// this test binary may ever act as thread 0, whichever first calls a
// function that triggers initLibrary. Go's testing package starts every
// top-level Test function and every t.Run subtest on a fresh goroutine
// of its own, and a second goroutine calling into the scheduler would
// try to act as a second thread 0 and hang forever waiting on a context
// nothing will resume. Every scenario below therefore runs sequentially
// inside this single test function.
func TestThreadLibrary(t *testing.T) {
	// Park the wall-clock timer out of the way so the preemption
	// scenario below is driven entirely by explicit onTick calls rather
	// than racing real 50ms ticks.
	Configure(Config{Quantum: time.Hour})

	// -- create/join round-trips a typed argument and return value --
	id, err := Create(func(arg int) any { return arg * 2 }, 21)
	require.NoError(t, err)
	var out any
	require.NoError(t, Join(id, &out))
	require.Equal(t, 42, out)

	// -- a joined thread's TCB is reclaimed; joining it again is
	// indistinguishable from joining an id that never existed --
	require.ErrorIs(t, Join(id, nil), ErrUnknownThread)
	require.ErrorIs(t, Join(1<<30, nil), ErrUnknownThread)

	// -- priority ordering: higher priority runs before lower, both
	// created while this goroutine (thread 0, priority 0) is not
	// competing for the same quantum --
	var mu sync.Mutex
	var order []string
	record := func(tag string) {
		mu.Lock()
		order = append(order, tag)
		mu.Unlock()
	}
	lowID, err := CreatePriority(func(_ any) any { record("low"); return nil }, nil, 1)
	require.NoError(t, err)
	highID, err := CreatePriority(func(_ any) any { record("high"); return nil }, nil, 5)
	require.NoError(t, err)
	require.NoError(t, Join(highID, nil))
	require.NoError(t, Join(lowID, nil))
	require.Equal(t, []string{"high", "low"}, order)

	// -- FIFO within an equal priority class --
	order = nil
	aID, err := CreatePriority(func(_ any) any { record("a"); return nil }, nil, 2)
	require.NoError(t, err)
	bID, err := CreatePriority(func(_ any) any { record("b"); return nil }, nil, 2)
	require.NoError(t, err)
	require.NoError(t, Join(aID, nil))
	require.NoError(t, Join(bID, nil))
	require.Equal(t, []string{"a", "b"}, order)

	// -- mutex: unlock by a thread that isn't the owner is an error, not
	// a crash, and the owning thread can still unlock it afterward --
	m := NewMutex()
	require.ErrorIs(t, m.Unlock(), ErrNotOwner) // never locked at all
	workerID, err := Create(func(_ any) any {
		m.Lock()
		Yield() // hand control back to the test goroutine while still holding m
		require.NoError(t, m.Unlock())
		return nil
	}, nil)
	require.NoError(t, err)
	Yield() // dispatch the worker up to its first Yield, i.e. right after it locks m
	require.ErrorIs(t, m.Unlock(), ErrNotOwner)
	require.NoError(t, Join(workerID, nil))

	// -- condvar wait without holding the mutex is reported, without
	// parking the caller --
	require.ErrorIs(t, NewCondVar().Wait(m), ErrNotOwner)

	// -- producer/consumer over a mutex + condvar, join propagates the
	// consumer's accumulated sum as its typed return value --
	type pcState struct {
		mu   Mutex
		cv   CondVar
		val  int
		has  bool
		done bool
	}
	st := &pcState{}
	const n = 5
	prodID, err := CreatePriority(func(s *pcState) any {
		for i := 1; i <= n; i++ {
			s.mu.Lock()
			for s.has {
				require.NoError(t, s.cv.Wait(&s.mu))
			}
			s.val = i
			s.has = true
			s.cv.Signal()
			require.NoError(t, s.mu.Unlock())
		}
		s.mu.Lock()
		s.done = true
		s.cv.Signal()
		require.NoError(t, s.mu.Unlock())
		return nil
	}, st, 0)
	require.NoError(t, err)
	consID, err := CreatePriority(func(s *pcState) any {
		sum := 0
		for {
			s.mu.Lock()
			for !s.has && !s.done {
				require.NoError(t, s.cv.Wait(&s.mu))
			}
			if s.has {
				sum += s.val
				s.has = false
				s.cv.Signal()
				require.NoError(t, s.mu.Unlock())
				continue
			}
			require.NoError(t, s.mu.Unlock())
			return sum
		}
	}, st, 0)
	require.NoError(t, err)
	require.NoError(t, Join(prodID, nil))
	var sum any
	require.NoError(t, Join(consID, &sum))
	require.Equal(t, 15, sum)

	// -- broadcast wakes every waiter parked at the time of the call --
	type bcState struct {
		mu    Mutex
		cv    CondVar
		start bool
		woken int
	}
	bst := &bcState{}
	const waiters = 3
	waiterIDs := make([]int, waiters)
	for i := range waiterIDs {
		waiterIDs[i], err = Create(func(s *bcState) any {
			s.mu.Lock()
			for !s.start {
				require.NoError(t, s.cv.Wait(&s.mu))
			}
			s.woken++
			require.NoError(t, s.mu.Unlock())
			return nil
		}, bst)
		require.NoError(t, err)
	}
	for i := 0; i < waiters; i++ {
		Yield() // let each waiter reach its cv.Wait
	}
	bst.mu.Lock()
	bst.start = true
	bst.cv.Broadcast()
	require.NoError(t, bst.mu.Unlock())
	for _, wid := range waiterIDs {
		require.NoError(t, Join(wid, nil))
	}
	require.Equal(t, waiters, bst.woken)

	// -- semaphore: at most `value` threads are ever between Wait and
	// Post at once --
	sem := NewSemaphore(2)
	var activeMu sync.Mutex
	active, maxActive := 0, 0
	const clients = 5
	ids := make([]int, clients)
	for i := range ids {
		ids[i], err = Create(func(_ any) any {
			sem.Wait()
			activeMu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			activeMu.Unlock()
			Yield()
			Yield()
			activeMu.Lock()
			active--
			activeMu.Unlock()
			sem.Post()
			return nil
		}, nil)
		require.NoError(t, err)
	}
	for _, id := range ids {
		require.NoError(t, Join(id, nil))
	}
	require.LessOrEqual(t, maxActive, 2)
	require.Equal(t, 2, sem.Value())

	// -- a preemption tick is consumed at the next Checkpoint, which
	// yields to the oldest ready thread; with no tick pending Checkpoint
	// is a no-op --
	ran := false
	preemptID, err := Create(func(_ any) any { ran = true; return nil }, nil)
	require.NoError(t, err)
	onTick()
	sched.g.Enter()
	require.True(t, sched.preemptRequested)
	sched.g.Leave()
	Checkpoint()
	require.True(t, ran)
	sched.g.Enter()
	require.False(t, sched.preemptRequested)
	sched.g.Leave()
	Checkpoint() // nothing pending, nothing to run; must not block
	require.NoError(t, Join(preemptID, nil))

	// -- a failing stack allocator aborts create before any TCB is made --
	Configure(Config{StackAllocator: func() error { return ErrStackAllocation }})
	_, err = Create(func(_ any) any { return nil }, nil)
	require.ErrorIs(t, err, ErrStackAllocation)
	Configure(Config{})

	// -- JoinContext: cancellation returns without waiting for the
	// target to finish; the target is left running, not killed --
	stop := make(chan struct{})
	loopID, err := Create(func(_ any) any {
		for {
			select {
			case <-stop:
				return nil
			default:
			}
			Yield()
		}
	}, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err = JoinContext(ctx, loopID, nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	close(stop)
	require.NoError(t, Join(loopID, nil))
}
