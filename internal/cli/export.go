package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/img2roi/internal/csvio"
	"github.com/ivlev/img2roi/internal/engine"
	"github.com/ivlev/img2roi/internal/system"
)

var (
	exportBand     bandFlags
	exportArrayOut string
	exportROIOut   string
	exportDir      string
)

var exportCmd = &cobra.Command{
	Use:   "export [image]",
	Short: "Write the intensity array and profile of a single image",
	Long: `Writes the full intensity array and the region-of-interest profile of one image.
Without an argument the most recently modified image in --input-dir is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportBand.register(exportCmd)
	exportCmd.Flags().StringVar(&exportArrayOut, "array-out", csvio.DefaultGridPath, "intensity array CSV path")
	exportCmd.Flags().StringVar(&exportROIOut, "roi-out", csvio.DefaultProfilePath, "region-of-interest CSV path")
	exportCmd.Flags().StringVar(&exportDir, "input-dir", ".", "directory searched when no image is given")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	policy, err := exportBand.config(cmd).BandPolicy()
	if err != nil {
		return err
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		path, err = system.FindLatestImage(exportDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[*] Selected image: %s\n", path)
	}

	res, err := engine.NewReader(policy).Process(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[*] Image: %dx%d | Band: %s (%d rows)\n",
		res.Grid.Width, res.Grid.Height, res.Band, res.Band.Rows())

	if err := res.WriteBoth(exportArrayOut, exportROIOut); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[+++] Written: %s, %s\n", exportArrayOut, exportROIOut)
	return nil
}
