package gate

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGateExcludesConcurrentEnter(t *testing.T) {
	g := New()
	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
	)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Enter()
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			g.Leave()
		}()
	}
	wg.Wait()

	require.Equal(t, 1, maxSeen)
}

func TestSecondEnterBlocksWhileGateHeld(t *testing.T) {
	g := New()
	g.Enter()

	entered := make(chan struct{})
	go func() {
		g.Enter()
		close(entered)
	}()

	select {
	case <-entered:
		t.Fatal("second Enter should not succeed while the gate is held")
	case <-time.After(20 * time.Millisecond):
	}
	g.Leave()
	<-entered
	g.Leave()
}
