// Package runqueue implements the intrusive linked-list queues the
// scheduler and the synchronization primitives park threads on: a
// priority-ordered run queue and a plain FIFO wait queue.
package runqueue

// Node is anything that can occupy exactly one queue at a time. TCB
// implements this directly so no separate node allocation is needed.
type Node interface {
	Priority() int
	Next() Node
	SetNext(Node)
}

// Queue is a singly-linked list ordered by non-increasing priority.
// Among nodes of equal priority, insertion order is preserved (FIFO
// within a priority class). Enqueue is O(n) and Dequeue is O(1); the
// scheduler's queues stay small enough that a simple explicit list beats
// per-priority FIFOs on clarity.
type Queue struct {
	head, tail Node
	len        int
}

// Enqueue inserts n preserving the non-increasing priority invariant.
func (q *Queue) Enqueue(n Node) {
	n.SetNext(nil)
	q.len++

	if q.head == nil {
		q.head, q.tail = n, n
		return
	}

	if n.Priority() > q.head.Priority() {
		n.SetNext(q.head)
		q.head = n
		return
	}

	cur := q.head
	for cur.Next() != nil && cur.Next().Priority() >= n.Priority() {
		cur = cur.Next()
	}
	n.SetNext(cur.Next())
	cur.SetNext(n)
	if n.Next() == nil {
		q.tail = n
	}
}

// Dequeue removes and returns the head (highest priority, oldest among
// ties), or nil if the queue is empty.
func (q *Queue) Dequeue() Node {
	if q.head == nil {
		return nil
	}
	n := q.head
	q.head = n.Next()
	if q.head == nil {
		q.tail = nil
	}
	n.SetNext(nil)
	q.len--
	return n
}

// Len reports the number of queued nodes.
func (q *Queue) Len() int { return q.len }

// Empty reports whether the queue has no nodes.
func (q *Queue) Empty() bool { return q.head == nil }

// FIFO is a plain first-in-first-out queue, used by mutexes, condition
// variables, and semaphores for their blocked-wait queues: those are
// strictly FIFO, not priority-ordered.
type FIFO struct {
	head, tail Node
	len        int
}

// PushBack appends n to the tail.
func (f *FIFO) PushBack(n Node) {
	n.SetNext(nil)
	f.len++
	if f.head == nil {
		f.head, f.tail = n, n
		return
	}
	f.tail.SetNext(n)
	f.tail = n
}

// PopFront removes and returns the head, or nil if empty.
func (f *FIFO) PopFront() Node {
	if f.head == nil {
		return nil
	}
	n := f.head
	f.head = n.Next()
	if f.head == nil {
		f.tail = nil
	}
	n.SetNext(nil)
	f.len--
	return n
}

// Len reports the number of queued nodes.
func (f *FIFO) Len() int { return f.len }

// Empty reports whether the queue has no nodes.
func (f *FIFO) Empty() bool { return f.head == nil }
