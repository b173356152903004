// Command priority-demo races a low-priority "Turtle" created first
// against a higher-priority "Rabbit" created second, doing the same
// amount of work. The scheduler runs Rabbit to completion first.
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

func work(name string, iterations int, finishedFirst string) any {
	fmt.Printf("[%s] Started. %s\n", name, finishedFirst)
	for i := 0; i < iterations; i++ {
		if i%(iterations/3+1) == 0 {
			thread.Yield()
		}
	}
	fmt.Printf("[%s] Finished.\n", name)
	return nil
}

func run(iterations int) error {
	fmt.Println("=== TEST 1: PRIORITY SCHEDULING ===")

	lowID, err := thread.CreatePriority(func(_ any) any {
		return work("Turtle", iterations, "(Low Priority) I should finish LAST.")
	}, nil, 0)
	if err != nil {
		return err
	}
	highID, err := thread.CreatePriority(func(_ any) any {
		return work("Rabbit", iterations, "(High Priority) Started later, but I should finish FIRST!")
	}, nil, 10)
	if err != nil {
		return err
	}

	if err := thread.Join(lowID, nil); err != nil {
		return err
	}
	return thread.Join(highID, nil)
}

func main() {
	fs := flag.NewFlagSet("priority-demo", flag.ExitOnError)
	iterations := fs.Int("iterations", 30_000_000, "iterations of busywork per task")

	cmd := &ffcli.Command{
		Name:       "priority-demo",
		ShortUsage: "priority-demo [flags]",
		ShortHelp:  "run the Turtle/Rabbit priority preemption demo",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			return run(*iterations)
		},
	}

	if err := cmd.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	if err := cmd.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
