package thread

import "github.com/prometheus/client_golang/prometheus"

// Package-level collectors, registered explicitly via Register so the
// library never touches a host process's default registry on its own.
var (
	contextSwitches = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "thread",
		Name:      "context_switches_total",
		Help:      "Total number of context switches performed by the scheduler.",
	})

	threadsByState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "thread",
		Name:      "threads",
		Help:      "Current number of threads in each lifecycle state.",
	}, []string{"state"})

	deadlocks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "thread",
		Name:      "deadlocks_total",
		Help:      "Total number of scheduler deadlocks detected (empty run queue, non-terminated outgoing thread).",
	})
)

// Register adds this package's collectors to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{contextSwitches, threadsByState, deadlocks} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func observeSwitch() {
	contextSwitches.Inc()
}

func observeStateChange(from, to State) {
	if from != StateCreated {
		threadsByState.WithLabelValues(from.String()).Dec()
	}
	threadsByState.WithLabelValues(to.String()).Inc()
}

// observeReclaim drops a joined thread from the terminated gauge; its TCB
// is gone from the table at the same moment.
func observeReclaim() {
	threadsByState.WithLabelValues(StateTerminated.String()).Dec()
}
