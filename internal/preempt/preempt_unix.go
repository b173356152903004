//go:build linux

package preempt

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// run arms ITIMER_REAL via setitimer and consumes the resulting SIGALRM
// through signal.Notify's channel, the one safe way for ordinary Go code
// to observe an asynchronous signal without writing a raw handler.
func (t *Timer) run() {
	defer close(t.done)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGALRM)
	defer signal.Stop(sigCh)

	interval := unix.NsecToTimeval(t.quantum.Nanoseconds())
	it := unix.Itimerval{Interval: interval, Value: interval}
	if _, err := unix.Setitimer(unix.ITIMER_REAL, it); err != nil {
		// Fall back to a plain ticker if the itimer can't be armed
		// (e.g. sandboxed environments that deny setitimer).
		t.runTicker()
		return
	}
	defer unix.Setitimer(unix.ITIMER_REAL, unix.Itimerval{})

	for {
		select {
		case <-t.stop:
			return
		case <-sigCh:
			t.onTick()
		}
	}
}
