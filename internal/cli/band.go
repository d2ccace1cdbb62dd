package cli

import (
	"github.com/spf13/cobra"

	"github.com/ivlev/img2roi/internal/config"
	"github.com/ivlev/img2roi/internal/roi"
)

// bandFlags are the band selection flags shared by run and export.
type bandFlags struct {
	rows   int
	top    float64
	bottom float64
}

func (b *bandFlags) register(cmd *cobra.Command) {
	def := roi.DefaultPercentBand()
	cmd.Flags().IntVar(&b.rows, "rows", 0, "number of rows centered on the image (overrides --top/--bottom)")
	cmd.Flags().Float64Var(&b.top, "top", def.Top, "top edge of the band as a fraction of image height")
	cmd.Flags().Float64Var(&b.bottom, "bottom", def.Bottom, "bottom edge of the band as a fraction of image height")
	cmd.MarkFlagsMutuallyExclusive("rows", "top")
	cmd.MarkFlagsMutuallyExclusive("rows", "bottom")
}

func (b *bandFlags) config(cmd *cobra.Command) *config.Config {
	cfg := config.DefaultConfig()
	if cmd.Flags().Changed("rows") {
		cfg.Policy = config.PolicyRows
		cfg.Rows = b.rows
		return cfg
	}
	cfg.Top = b.top
	cfg.Bottom = b.bottom
	return cfg
}
