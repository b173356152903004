package thread

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// Register never touches the scheduler singleton, so unlike the
// scenarios in TestThreadLibrary it is safe to run from its own test
// goroutine.
func TestRegisterCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, Register(reg))

	// The same collectors cannot be registered twice.
	require.Error(t, Register(reg))
}
