package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ivlev/img2roi/internal/config"
	"github.com/ivlev/img2roi/internal/engine"
	"github.com/ivlev/img2roi/internal/report"
	"github.com/ivlev/img2roi/internal/source"
)

var (
	runBand       bandFlags
	runInputDir   string
	runOutputDir  string
	runWriteArray bool
	runShowStats  bool
)

var runCmd = &cobra.Command{
	Use:   "run [images...]",
	Short: "Write a region-of-interest CSV next to every image",
	Long: `Processes images one at a time. For photo.jpg the profile is written to photo.csv
(or into --out-dir). A file that cannot be read or written is reported and skipped;
the remaining images are still processed.`,
	RunE: runRun,
}

func init() {
	runBand.register(runCmd)
	runCmd.Flags().StringVar(&runInputDir, "input-dir", "", "also process every image in this directory")
	runCmd.Flags().StringVarP(&runOutputDir, "out-dir", "o", "", "write CSV files here instead of next to the images")
	runCmd.Flags().BoolVar(&runWriteArray, "array", false, "also write the full intensity array (<name>_array.csv)")
	runCmd.Flags().BoolVar(&runShowStats, "stats", false, "print a performance report")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := runBand.config(cmd)
	cfg.InputDir = runInputDir
	cfg.OutputDir = runOutputDir
	cfg.WriteArray = runWriteArray
	cfg.ShowStats = runShowStats

	for _, arg := range args {
		if !source.IsImage(arg) {
			fmt.Fprintf(cmd.ErrOrStderr(), "[!] Skipping %s: not an image file\n", arg)
			continue
		}
		cfg.Files = append(cfg.Files, arg)
	}

	return runBatch(cfg, cmd.OutOrStdout(), report.NewConsole(cmd.ErrOrStderr()))
}

// runBatch validates cfg, gathers its inputs and runs them through the engine.
func runBatch(cfg *config.Config, out io.Writer, sink report.Sink) error {
	policy, err := cfg.BandPolicy()
	if err != nil {
		return err
	}

	files, err := cfg.Inputs()
	if err != nil {
		return fmt.Errorf("failed to list input images: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no input images")
	}

	runner := engine.NewRunner(engine.NewReader(policy), sink)
	runner.Out = out
	runner.OutputDir = cfg.OutputDir
	runner.WriteArray = cfg.WriteArray
	runner.ShowStats = cfg.ShowStats

	sum := runner.Run(files)
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d images failed", sum.Failed, sum.Failed+sum.Processed)
	}
	fmt.Fprintf(out, "[+++] Done: %d images\n", sum.Processed)
	return nil
}
