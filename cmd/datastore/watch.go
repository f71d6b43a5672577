package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/datastore"
	"github.com/aretw0/datastore/pkg/adapters/fs"
	"github.com/aretw0/datastore/pkg/adapters/lifecycle"
	"github.com/aretw0/datastore/pkg/core"
)

var (
	watchEvents bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print every settings change until interrupted",
	Long: `Print the current settings and then every committed change, including edits
made to the file by other processes. With --events, print the raw file events instead.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if watchEvents {
			printEvents(ctx)
			return
		}

		svc := openSettings(
			datastore.WithWatch(true),
			datastore.WithWatcherErrorHandler(func(err error) {
				slog.Warn("external change rejected", "error", err)
			}),
		)
		defer svc.Close()

		location := svc.Store().Location()
		for current := range svc.Observe(ctx) {
			printSettings(os.Stdout, location, current)
			fmt.Println()
		}
	},
}

func printEvents(ctx context.Context) {
	path := datastore.ResolvePath(settingsPath(), datastore.IsDevRun())
	storage := fs.NewStorage(fs.Config{
		Path:     path,
		ReadOnly: true,
		Logger:   slog.Default(),
	})

	events, err := storage.Watch(ctx)
	if err != nil {
		fatal("Error watching settings", err)
	}

	src := lifecycle.NewSource(events)
	if err := src.Start(ctx); err != nil {
		fatal("Error starting event source", err)
	}

	for e := range src.Events() {
		if ev, ok := e.(core.Event); ok {
			fmt.Println(ev.String())
		}
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().BoolVar(&watchEvents, "events", false, "Print raw file events")
}
