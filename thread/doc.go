// Package thread implements a user-space, priority-scheduled threading
// library with cooperative-with-preemption semantics: a process-wide
// scheduler multiplexes any number of logical threads (TCBs) onto
// goroutines, runs them one at a time under a single-writer "gate,"
// context-switches them at explicit yield points and on a periodic
// preemption tick, and provides a mutex, condition variable, and counting
// semaphore for coordinating between them.
//
// Unlike ordinary goroutines, threads created here are scheduled strictly
// by priority and run one at a time. The scheduling policy is the
// product; goroutines and channels are only the substrate standing in
// for the raw stack-and-register contexts a kernel-backed implementation
// would switch between.
package thread
