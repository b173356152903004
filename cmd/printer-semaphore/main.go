// Command printer-semaphore runs four clients contending for two
// printer resources guarded by a counting semaphore: at any instant at
// most two of them are between "PRINTING" and "DONE".
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/Amam1Shamil/OS-UserLevel-ThreadLibrary/thread"
)

func printJob(sem *thread.Semaphore, printTime time.Duration) func(arg string) any {
	return func(name string) any {
		fmt.Printf("User %s wants to print...\n", name)

		sem.Wait()

		fmt.Printf("User %s is PRINTING now.\n", name)
		// Sleep in slices, yielding between them, so the other printer
		// stays busy while this one runs; a single uninterrupted Sleep
		// would stall every thread, since the sleeping thread still
		// holds the CPU from the scheduler's point of view.
		slice := printTime / 10
		if slice <= 0 {
			slice = printTime
		}
		for slept := time.Duration(0); slept < printTime; slept += slice {
			time.Sleep(slice)
			thread.Yield()
		}
		fmt.Printf("User %s is DONE.\n", name)

		sem.Post()
		return nil
	}
}

func run(printers int, printTime time.Duration) error {
	fmt.Printf("\n=== TEST 2: SEMAPHORES (Resource Limit = %d) ===\n", printers)

	sem := thread.NewSemaphore(printers)
	job := printJob(sem, printTime)

	names := []string{"Alice", "Bob", "Charlie", "Dave"}
	ids := make([]int, len(names))
	for i, name := range names {
		id, err := thread.Create(job, name)
		if err != nil {
			return err
		}
		ids[i] = id
	}

	for _, id := range ids {
		if err := thread.Join(id, nil); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	fs := flag.NewFlagSet("printer-semaphore", flag.ExitOnError)
	printers := fs.Int("printers", 2, "number of concurrently available printers")
	printTime := fs.Duration("print-time", time.Second, "simulated time spent printing")

	cmd := &ffcli.Command{
		Name:       "printer-semaphore",
		ShortUsage: "printer-semaphore [flags]",
		ShortHelp:  "run the 4-client/2-resource semaphore demo",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return run(*printers, *printTime)
		},
	}

	if err := cmd.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	if err := cmd.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
