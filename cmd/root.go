package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/JosiahBull/yolo-v8-explorations/internal/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Options holds shared configuration for the scan, summary and reset commands
type Options struct {
	InputPath  string
	OutputPath string
	ConfigPath string
	NumWorkers int
	KeepGoing  bool
	NoProgress bool
}

// Fallback locations used when neither a flag nor the environment names one.
const (
	defaultTargetDir = "./data/frames/"
	defaultOutDir    = "./data/processed_frames/"
)

var verbose bool

// Version is the application version.
const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "hitscan",
	Short:   "Sort game screen captures by whether they show an enemy marker",
	Version: Version, // This enables the --version flag
	// Execute prints errors itself so each failure is reported once.
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func Execute() {
	// Create a context that listens for Ctrl+C (SIGINT) or Kill (SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := loadDotEnv(); err != nil {
		utils.Die("Failed to load .env", err)
	}

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !alreadyShown(err) {
			utils.ShowError("Command failed", err)
		}
		os.Exit(1)
	}
}

// loadDotEnv reads .env from the working directory. The file is optional;
// anything else going wrong with it is not.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// shownError marks an error whose report has already been printed by the
// command that produced it.
type shownError struct{ err error }

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

// shown wraps a non-nil error returned by a run function that has already
// called utils.ShowError.
func shown(err error) error {
	if err == nil {
		return nil
	}
	return &shownError{err: err}
}

func alreadyShown(err error) bool {
	var s *shownError
	return errors.As(err, &s)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every frame as it is classified and stored")
}
