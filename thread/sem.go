package thread

// Semaphore is a counting semaphore built directly on Mutex and CondVar:
// the mutex guards the count, the condvar provides blocking. Waiters are
// FIFO by virtue of the condvar's FIFO wait queue.
type Semaphore struct {
	count int
	mu    Mutex
	cv    CondVar
}

// NewSemaphore returns a Semaphore initialized to value.
func NewSemaphore(value int) *Semaphore {
	return &Semaphore{count: value}
}

// Wait blocks the calling thread until the semaphore's count is positive,
// then decrements it.
func (s *Semaphore) Wait() {
	s.mu.Lock()
	for s.count <= 0 {
		s.cv.Wait(&s.mu)
	}
	s.count--
	s.mu.Unlock()
}

// Post increments the semaphore's count and wakes one waiter, if any.
func (s *Semaphore) Post() {
	s.mu.Lock()
	s.count++
	s.cv.Signal()
	s.mu.Unlock()
}

// Value returns the semaphore's current count. Intended for diagnostics
// and tests; ordinary synchronization logic should not branch on it since
// the value can change the instant it is observed.
func (s *Semaphore) Value() int {
	s.mu.Lock()
	v := s.count
	s.mu.Unlock()
	return v
}
