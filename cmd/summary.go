package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/JosiahBull/yolo-v8-explorations/internal/store"
	"github.com/JosiahBull/yolo-v8-explorations/internal/types"
	"github.com/JosiahBull/yolo-v8-explorations/internal/utils"
	"github.com/spf13/cobra"
)

var summaryOpts Options

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Count organized frames per group and category",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return shown(runSummary(os.Stdout, summaryOpts))
	},
}

func init() {
	summaryCmd.Flags().StringVarP(&summaryOpts.OutputPath, "output", "o", "", "Organized output directory (default: $HITSCAN_OUT_DIR or "+defaultOutDir+")")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(out io.Writer, opts Options) error {
	if opts.OutputPath == "" {
		opts.OutputPath = utils.EnvOr("HITSCAN_OUT_DIR", defaultOutDir)
	}

	sum, err := store.Summarize(opts.OutputPath)
	if err != nil {
		utils.ShowError("Failed to read output directory", err)
		return err
	}

	if sum.Total() == 0 {
		fmt.Fprintf(out, "No organized frames found in %s.\n", opts.OutputPath)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprint(w, "GROUP")
	for _, l := range types.Labels {
		fmt.Fprintf(w, "\t%s", l)
	}
	fmt.Fprintln(w)

	for _, g := range sum.GroupNames() {
		fmt.Fprint(w, g)
		for _, l := range types.Labels {
			fmt.Fprintf(w, "\t%d", sum.Groups[g][l])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprint(w, "TOTAL")
	for _, l := range types.Labels {
		fmt.Fprintf(w, "\t%d", sum.Totals[l])
	}
	fmt.Fprintln(w)
	w.Flush()

	fmt.Fprintf(out, "\nFrames with targets: %d\n", sum.Totals[types.Targets.String()])
	fmt.Fprintf(out, "Frames without targets: %d\n", sum.Totals[types.NoTargets.String()])
	if sum.Unknown > 0 {
		fmt.Fprintf(out, "⚠️  %d files outside the <group>/<category>/<file> layout were ignored\n", sum.Unknown)
	}
	return nil
}
