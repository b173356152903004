// Command producer-consumer runs one producer and one consumer over a
// mutex and condition variable: the producer sleeps briefly, publishes a
// value under the mutex, and signals; the consumer waits on the condvar
// until the value is available. The producer's return value comes back
// through Join.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/Amam1Shamil/OS-UserLevel-ThreadLibrary/thread"
)

// fileConfig is the optional -config file's shape: a subset of
// thread.Config that is sensible to pin for a demo run (the
// StackAllocator hook has no TOML representation and is left at its
// zero value). The quantum is in milliseconds because TOML has no
// duration type.
type fileConfig struct {
	QuantumMS int `toml:"quantum_ms"`
	StackHint int `toml:"stack_hint"`
}

func loadConfig(path string) (thread.Config, error) {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return thread.Config{}, err
	}
	return thread.Config{
		Quantum:   time.Duration(fc.QuantumMS) * time.Millisecond,
		StackHint: fc.StackHint,
	}, nil
}

var (
	lock          = thread.NewMutex()
	cond          = thread.NewCondVar()
	dataAvailable = false
)

func producer(_ any) any {
	fmt.Println("[Producer] Starting...")
	time.Sleep(200 * time.Millisecond)

	lock.Lock()
	dataAvailable = true
	fmt.Println("[Producer] Data ready! Signaling consumer...")
	cond.Signal()
	if err := lock.Unlock(); err != nil {
		log.Fatalf("producer: unlock: %v", err)
	}

	const exitCode = 100
	return exitCode
}

func consumer(_ any) any {
	fmt.Println("[Consumer] Starting...")

	lock.Lock()
	for !dataAvailable {
		fmt.Println("[Consumer] Waiting for data...")
		if err := cond.Wait(lock); err != nil {
			log.Fatalf("consumer: wait: %v", err)
		}
	}
	fmt.Println("[Consumer] Woke up! Data detected.")
	if err := lock.Unlock(); err != nil {
		log.Fatalf("consumer: unlock: %v", err)
	}
	return nil
}

func run(_ context.Context, _ []string) error {
	fmt.Println("=== MyThread Library Test ===")

	consID, err := thread.Create(consumer, nil)
	if err != nil {
		return err
	}
	prodID, err := thread.Create(producer, nil)
	if err != nil {
		return err
	}

	var retVal any
	if err := thread.Join(prodID, &retVal); err != nil {
		return err
	}
	fmt.Printf("=== MAIN: Producer joined with exit code: %v ===\n", retVal)

	if err := thread.Join(consID, nil); err != nil {
		return err
	}

	fmt.Println("=== All threads completed successfully ===")
	return nil
}

func main() {
	fs := flag.NewFlagSet("producer-consumer", flag.ExitOnError)
	quantum := fs.Duration("quantum", 0, "preemption quantum (0 = library default)")
	configPath := fs.String("config", "", "optional TOML file overriding quantum/stack_hint")

	cmd := &ffcli.Command{
		Name:       "producer-consumer",
		ShortUsage: "producer-consumer [flags]",
		ShortHelp:  "run the producer/consumer condvar demo",
		FlagSet:    fs,
		Exec: func(ctx context.Context, args []string) error {
			cfg := thread.Config{Quantum: *quantum}
			if *configPath != "" {
				fileCfg, err := loadConfig(*configPath)
				if err != nil {
					return err
				}
				cfg = fileCfg
			}
			thread.Configure(cfg)
			return run(ctx, args)
		},
	}

	if err := cmd.Parse(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	if err := cmd.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
