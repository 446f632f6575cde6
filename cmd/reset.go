package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JosiahBull/yolo-v8-explorations/internal/store"
	"github.com/JosiahBull/yolo-v8-explorations/internal/utils"
	"github.com/spf13/cobra"
)

var (
	resetOpts Options
	resetYes  bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the organized output directory so the next scan starts clean",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return shown(runReset(os.Stdin, os.Stdout, resetOpts, resetYes))
	},
}

func init() {
	resetCmd.Flags().StringVarP(&resetOpts.OutputPath, "output", "o", "", "Organized output directory (default: $HITSCAN_OUT_DIR or "+defaultOutDir+")")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(in io.Reader, out io.Writer, opts Options, yes bool) error {
	if opts.OutputPath == "" {
		opts.OutputPath = utils.EnvOr("HITSCAN_OUT_DIR", defaultOutDir)
	}

	if !yes && !confirm(bufio.NewReader(in), out, fmt.Sprintf("⚠️  Are you sure you want to delete %s?", opts.OutputPath)) {
		fmt.Fprintln(out, "Aborted.")
		return nil
	}

	fmt.Fprintf(out, "🗑️  Clearing %s...\n", opts.OutputPath)
	if err := store.New(opts.OutputPath, nil).Reset(); err != nil {
		utils.ShowError("Failed to remove output directory", err)
		return err
	}
	fmt.Fprintln(out, "✨ Reset Complete.")
	return nil
}

func confirm(r *bufio.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	res, _ := r.ReadString('\n')
	res = strings.TrimSpace(strings.ToLower(res))
	return res == "y" || res == "yes"
}
