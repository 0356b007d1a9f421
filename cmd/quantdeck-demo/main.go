// Command quantdeck-demo serves deterministic market fixtures over the
// analytics API surface so the dashboard can be developed and demoed
// without a live data provider.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quantdeck/quantdeck/internal/demoapi"
)

func main() {
	var addr string
	flag.StringVar(&addr, "addr", ":3000", "listen address for the demo API")
	flag.Parse()

	if err := run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(addr string) error {
	srv := demoapi.NewServer(addr)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start demo API: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down gracefully... (press Ctrl+C again to force)")
		cancel()

		deadline := time.NewTimer(10 * time.Second)
		defer deadline.Stop()

		select {
		case <-sigCh:
			fmt.Println("\nForce shutdown.")
		case <-deadline.C:
			fmt.Println("Shutdown timed out, forcing exit.")
		}
		os.Exit(1)
	}()

	log.Printf("demo API listening on %s", addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return srv.Stop()
	})

	if err := g.Wait(); err != nil {
		log.Printf("demo API: shutdown error: %v", err)
	}

	signal.Stop(sigCh)
	return nil
}
