package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/datastore"
	"github.com/aretw0/datastore/pkg/settings"
)

func main() {
	count := flag.Int("count", 1000, "Number of updates to apply")
	workers := flag.Int("workers", 8, "Number of concurrent writers")
	keep := flag.Bool("keep", false, "Keep the benchmark directory after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "datastore_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	path := filepath.Join(benchDir, datastore.DefaultFileName)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	svc, err := datastore.OpenSettings(path, datastore.WithLogger(logger))
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// An observer that drains every commit, so fan-out cost is part of the run.
	observed := 0
	drained := make(chan struct{})
	stream := svc.Observe(ctx)
	go func() {
		defer close(drained)
		for range stream {
			observed++
		}
	}()

	fmt.Printf("Applying %d updates with %d writers in %s...\n", *count, *workers, benchDir)
	jobs := make(chan int)
	var wg sync.WaitGroup
	start := time.Now()
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				loc := settings.Location{Lat: float64(i%180) - 89, Lng: float64(i%360) - 179}
				if _, err := svc.AddLocation(ctx, loc); err != nil {
					logger.Error("update failed", "error", err)
				}
			}
		}()
	}
	for i := 0; i < *count; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	duration := time.Since(start)

	final := svc.Current().Locations.Len()
	if err := svc.Close(); err != nil {
		panic(err)
	}
	<-drained

	// Reopen to measure a cold load of the grown document.
	startLoad := time.Now()
	reopened, err := datastore.OpenSettings(path, datastore.WithLogger(logger), datastore.WithReadOnly(true))
	if err != nil {
		panic(err)
	}
	loadDuration := time.Since(startLoad)
	loaded := reopened.Current().Locations.Len()
	_ = reopened.Close()

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d updates, %d writers):\n", *count, *workers)
	fmt.Printf("  Updates:   %v (%.0f/s)\n", duration, float64(*count)/duration.Seconds())
	fmt.Printf("  Committed: %d, observed: %d, reloaded: %d\n", final, observed, loaded)
	fmt.Printf("  Cold load: %v\n", loadDuration)
	fmt.Printf("--------------------------------------------------\n")
}
