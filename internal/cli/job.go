package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/img2roi/internal/config"
	"github.com/ivlev/img2roi/internal/report"
)

var jobCmd = &cobra.Command{
	Use:   "job <file>",
	Short: "Run a batch described by a job file",
	Long: `Runs the batch described by a job file.

YAML jobs (.yaml, .yml) set any of: policy (rows|percent), rows, top, bottom,
files, input_dir, output_dir, write_array, show_stats.

Any other file is read as whitespace-separated text: the first token is the row
count, and every following token ending in .jpg or .jpeg is an image to process.

In both layouts relative paths are taken from the job file's directory.`,
	Args: cobra.ExactArgs(1),
	RunE: runJob,
}

var jobInitCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Write a sample YAML job file",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobInit,
}

func init() {
	jobCmd.AddCommand(jobInitCmd)
	rootCmd.AddCommand(jobCmd)
}

func runJob(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadJob(args[0])
	if err != nil {
		return err
	}
	return runBatch(cfg, cmd.OutOrStdout(), report.NewConsole(cmd.ErrOrStderr()))
}

func runJobInit(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("job file already exists: %s", path)
	}

	cfg := config.DefaultConfig()
	cfg.InputDir = "."
	if err := config.Save(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[+++] Job file written: %s\n", path)
	return nil
}
