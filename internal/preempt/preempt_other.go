//go:build !linux

package preempt

// run uses a plain time.Ticker on platforms without the itimer path
// (darwin, windows, wasm, ...).
func (t *Timer) run() {
	defer close(t.done)
	t.runTicker()
}
