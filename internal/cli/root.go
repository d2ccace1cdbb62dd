// Package cli implements the img2roi command line.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "img2roi",
	Short: "Extract intensity arrays and region-of-interest profiles from images",
	Long: `img2roi converts images into per-pixel intensity arrays (R+G+B) and reduces
them to a region-of-interest profile: the sum of every column over a band of rows.
Both are written as headerless CSV.

The band is either a fixed number of rows centered on the image (--rows) or a
pair of height fractions (--top, --bottom; default 0.4..0.6).

Examples:
  img2roi run --rows 40 a.jpg b.jpg
  img2roi run --top 0.3 --bottom 0.7 --input-dir ./shots --out-dir ./csv
  img2roi job experiment.txt
  img2roi export photo.jpg --array-out grid.csv --roi-out roi.csv`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
