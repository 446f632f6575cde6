package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/JosiahBull/yolo-v8-explorations/internal/config"
	"github.com/JosiahBull/yolo-v8-explorations/internal/detect"
	"github.com/JosiahBull/yolo-v8-explorations/internal/discovery"
	"github.com/JosiahBull/yolo-v8-explorations/internal/store"
	"github.com/JosiahBull/yolo-v8-explorations/internal/types"
	"github.com/JosiahBull/yolo-v8-explorations/internal/utils"
	"github.com/JosiahBull/yolo-v8-explorations/internal/worker"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var scanOpts Options

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Classify every frame under the input directory and copy it into category folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return shown(runScan(cmd.Context(), scanOpts))
	},
}

func init() {
	scanCmd.Flags().StringVarP(&scanOpts.InputPath, "input", "i", "", "Directory of captured frames (default: $HITSCAN_TARGET_DIR or "+defaultTargetDir+")")
	scanCmd.Flags().StringVarP(&scanOpts.OutputPath, "output", "o", "", "Directory to organize frames into (default: $HITSCAN_OUT_DIR or "+defaultOutDir+")")
	scanCmd.Flags().StringVarP(&scanOpts.ConfigPath, "config", "c", "", "YAML file overriding target color, tolerance and ignored regions (default: $HITSCAN_CONFIG)")
	scanCmd.Flags().IntVarP(&scanOpts.NumWorkers, "workers", "w", runtime.NumCPU(), "Number of parallel classification workers")
	scanCmd.Flags().BoolVarP(&scanOpts.KeepGoing, "keep-going", "k", false, "Leave undecodable frames uncategorised instead of aborting the run")
	scanCmd.Flags().BoolVar(&scanOpts.NoProgress, "no-progress", false, "Disable the progress bar")

	rootCmd.AddCommand(scanCmd)
}

// runScan orchestrates a full pass: discovery, parallel classification, then
// copying every frame into its category folder.
func runScan(ctx context.Context, opts Options) error {
	resolveScanOptions(&opts)
	if err := validateScanFlags(&opts); err != nil {
		utils.ShowError("Invalid scan options", err)
		return err
	}

	cfg := config.Default()
	if opts.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigPath); err != nil {
			utils.ShowError("Failed to load classifier config", err)
			return err
		}
	}

	runID := uuid.NewString()
	log := slog.Default().With("run", runID)
	start := time.Now()

	// 1. Discovery
	fmt.Fprintf(os.Stderr, "📂 Discovering frames in %s\n", opts.InputPath)
	frames, err := discovery.Discover(opts.InputPath)
	if err != nil {
		utils.ShowError("Frame discovery failed", err)
		return err
	}
	if len(frames) == 0 {
		fmt.Fprintf(os.Stderr, "No frames found in %s\n", opts.InputPath)
		return nil
	}
	log.Info("scan started", "frames", len(frames), "workers", opts.NumWorkers, "regions", len(cfg.IgnoredRegions))
	fmt.Fprintf(os.Stderr, "⚙️  Spawning %d workers for %d frames...\n", opts.NumWorkers, len(frames))

	// 2. Classification
	bar := progressbar.NewOptions(len(frames),
		progressbar.OptionSetDescription("🔍 Classifying"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetVisibility(!opts.NoProgress),
	)

	pool := worker.NewPool(opts.NumWorkers, detect.New(cfg))
	pool.KeepGoing = opts.KeepGoing
	pool.Logger = log
	pool.OnProgress = func(uint64) { bar.Add(1) }

	procErr := pool.Process(ctx, frames)
	bar.Finish()
	fmt.Fprintln(os.Stderr)
	if procErr != nil && !opts.KeepGoing {
		utils.ShowError("Frame classification failed", procErr)
		return procErr
	}

	// 3. Organization, strictly after every worker has finished
	fmt.Fprintf(os.Stderr, "📦 Copying frames into %s\n", opts.OutputPath)
	st := store.New(opts.OutputPath, log)
	if err := st.Organize(ctx, frames); err != nil {
		utils.ShowError("Failed to organize frames", err)
		return err
	}

	counts := tallyStates(frames)
	printScanSummary(counts, len(frames), time.Since(start))
	log.Info("scan finished", "processed", pool.Processed(), "elapsed", time.Since(start).Round(time.Millisecond))

	if procErr != nil {
		utils.ShowError(fmt.Sprintf("%d frames could not be decoded", counts[types.Uncategorised]), procErr)
		return fmt.Errorf("%d frames left uncategorised", counts[types.Uncategorised])
	}
	return nil
}

// resolveScanOptions fills unset paths from the environment, then the defaults.
func resolveScanOptions(opts *Options) {
	if opts.InputPath == "" {
		opts.InputPath = utils.EnvOr("HITSCAN_TARGET_DIR", defaultTargetDir)
	}
	if opts.OutputPath == "" {
		opts.OutputPath = utils.EnvOr("HITSCAN_OUT_DIR", defaultOutDir)
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = os.Getenv("HITSCAN_CONFIG")
	}
}

// validateScanFlags ensures all CLI arguments are valid before starting heavy processes.
func validateScanFlags(opts *Options) error {
	info, err := os.Stat(opts.InputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("input directory does not exist: %w", err)
		}
		return fmt.Errorf("unable to access input directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path %s is not a directory", opts.InputPath)
	}
	if opts.OutputPath == "" {
		return fmt.Errorf("output directory must be set")
	}
	// Output inside input would be picked up by the next discovery pass
	inside, err := utils.IsWithin(opts.OutputPath, opts.InputPath)
	if err != nil {
		return err
	}
	if inside {
		return fmt.Errorf("output directory %s must not be inside input directory %s", opts.OutputPath, opts.InputPath)
	}
	if opts.NumWorkers < 1 {
		opts.NumWorkers = 1
	}
	return nil
}

func tallyStates(frames []types.Frame) map[types.StateKind]int {
	counts := make(map[types.StateKind]int)
	for _, f := range frames {
		counts[f.State.Kind]++
	}
	return counts
}

func printScanSummary(counts map[types.StateKind]int, total int, elapsed time.Duration) {
	fmt.Fprintf(os.Stderr, "\n---------------------------------------------------------\n")
	fmt.Fprintf(os.Stderr, "📊 SCAN SUMMARY\n")
	fmt.Fprintf(os.Stderr, "---------------------------------------------------------\n")
	for kind := types.Uncategorised; kind <= types.Unsure; kind++ {
		if counts[kind] == 0 {
			continue
		}
		fmt.Fprintf(os.Stderr, "   %-14s %d\n", kind.String(), counts[kind])
	}
	fmt.Fprintf(os.Stderr, "---------------------------------------------------------\n")
	fmt.Fprintf(os.Stderr, "🏁 Processed %d frames in %s\n", total, elapsed.Round(time.Millisecond))
}
