// Package config holds run settings and loads job files.
package config

import (
	"github.com/ivlev/img2roi/internal/roi"
	"github.com/ivlev/img2roi/internal/source"
)

const (
	PolicyRows    = "rows"
	PolicyPercent = "percent"
)

// Config describes one batch run.
type Config struct {
	Policy     string   `yaml:"policy"`
	Rows       int      `yaml:"rows"`
	Top        float64  `yaml:"top"`
	Bottom     float64  `yaml:"bottom"`
	Files      []string `yaml:"files"`
	InputDir   string   `yaml:"input_dir,omitempty"`
	OutputDir  string   `yaml:"output_dir,omitempty"`
	WriteArray bool     `yaml:"write_array"`
	ShowStats  bool     `yaml:"show_stats"`
}

// DefaultConfig returns the 40%..60% percent band with no inputs.
func DefaultConfig() *Config {
	def := roi.DefaultPercentBand()
	return &Config{
		Policy: PolicyPercent,
		Top:    def.Top,
		Bottom: def.Bottom,
	}
}

// BandPolicy builds the band policy. Invalid values yield roi.ErrConfig.
func (c *Config) BandPolicy() (roi.Policy, error) {
	return roi.NewPolicy(c.Policy, c.Rows, c.Top, c.Bottom)
}

// Validate checks the band policy without building anything else.
func (c *Config) Validate() error {
	_, err := c.BandPolicy()
	return err
}

// Inputs returns Files followed by the images found in InputDir.
func (c *Config) Inputs() ([]string, error) {
	inputs := append([]string(nil), c.Files...)
	if c.InputDir == "" {
		return inputs, nil
	}
	found, err := source.ListImages(c.InputDir)
	if err != nil {
		return nil, err
	}
	return append(inputs, found...), nil
}
