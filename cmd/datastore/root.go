package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aretw0/datastore"
)

// EnvFile names the environment variable holding the default settings path.
const EnvFile = "DATASTORE_FILE"

var (
	verbose  bool
	filePath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "datastore",
	Short: "Inspect and update a persisted settings document",
	Long: `Datastore keeps a single settings document on disk.
Every change is validated, written atomically and then published to observers.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)

		// A missing .env is fine.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to load .env", "error", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&filePath, "file", "f", "", "Settings file (default $"+EnvFile+" or the nearest "+datastore.DefaultFileName+")")
}

// settingsPath picks the settings file: --file, then $DATASTORE_FILE, then the
// nearest app-settings.json above the working directory, then one in it.
func settingsPath() string {
	if filePath != "" {
		return filePath
	}
	if env := os.Getenv(EnvFile); env != "" {
		return env
	}

	wd, err := os.Getwd()
	if err != nil {
		fatal("Error getting working directory", err)
	}
	if found, err := datastore.FindFile(wd, datastore.DefaultFileName); err == nil {
		return found
	}
	return filepath.Join(wd, datastore.DefaultFileName)
}

func openSettings(opts ...datastore.Option) *datastore.SettingsService {
	path := settingsPath()
	opts = append([]datastore.Option{datastore.WithLogger(slog.Default())}, opts...)

	svc, err := datastore.OpenSettings(path, opts...)
	if err != nil {
		fatal("Error opening settings", err)
	}
	slog.Debug("settings opened", "path", svc.Store().Location())
	return svc
}
