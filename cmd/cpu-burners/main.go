// Command cpu-burners runs two CPU-bound threads side by side to show
// timer-driven preemption. Each burner calls thread.Checkpoint every
// -safepoint iterations (100,000 by default); Checkpoint only yields when
// a preemption tick is pending, so the interleaving of the progress
// messages is decided by
// the scheduler's quantum, not by the loop's own structure.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/Amam1Shamil/OS-UserLevel-ThreadLibrary/thread"
)

func cpuBurner(iterations, checkpoint, safepoint int) func(name string) any {
	return func(name string) any {
		fmt.Printf("[%s] Starting long calculation...\n", name)
		for i := 0; i < iterations; i++ {
			if i%checkpoint == 0 {
				fmt.Printf("[%s] Progress: %d\n", name, i)
			}
			if i%safepoint == 0 {
				thread.Checkpoint()
			}
		}
		fmt.Printf("[%s] Finished.\n", name)
		return nil
	}
}

func run(iterations, checkpoint, safepoint int) error {
	burn := cpuBurner(iterations, checkpoint, safepoint)

	id1, err := thread.Create(burn, "Burner A")
	if err != nil {
		return err
	}
	id2, err := thread.Create(burn, "Burner B")
	if err != nil {
		return err
	}

	if err := thread.Join(id1, nil); err != nil {
		return err
	}
	return thread.Join(id2, nil)
}

func main() {
	fs := flag.NewFlagSet("cpu-burners", flag.ExitOnError)
	iterations := fs.Int("iterations", 200_000_000, "loop iterations per burner")
	checkpoint := fs.Int("checkpoint", 50_000_000, "iterations between progress messages")
	safepoint := fs.Int("safepoint", 100_000, "iterations between preemption checkpoints")

	cmd := &ffcli.Command{
		Name:       "cpu-burners",
		ShortUsage: "cpu-burners [flags]",
		ShortHelp:  "run the two cpu-bound preemption demo threads",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return run(*iterations, *checkpoint, *safepoint)
		},
	}

	if err := cmd.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	if err := cmd.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
