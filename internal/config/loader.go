package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/img2roi/internal/source"
)

// ErrNoRowCount is returned when a text job file does not start with a row count.
var ErrNoRowCount = errors.New("job file does not start with a row count")

// LoadJob reads a job file. Files ending in .yaml or .yml are parsed as YAML;
// anything else uses the plain text layout understood by ParseTextJob. Either
// way, relative image paths are resolved against the job file's directory.
func LoadJob(path string) (*Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return LoadYAML(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	defer f.Close()

	cfg, err := ParseTextJob(f)
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(path)
	for i, img := range cfg.Files {
		cfg.Files[i] = resolve(base, img)
	}
	return cfg, nil
}

// LoadYAML reads a YAML job. Unset band fields keep their defaults; relative
// paths are resolved against the job file's directory.
func LoadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}

	base := filepath.Dir(path)
	for i, f := range cfg.Files {
		cfg.Files[i] = resolve(base, f)
	}
	if cfg.InputDir != "" {
		cfg.InputDir = resolve(base, cfg.InputDir)
	}
	if cfg.OutputDir != "" {
		cfg.OutputDir = resolve(base, cfg.OutputDir)
	}
	return cfg, nil
}

// ParseTextJob reads whitespace-separated tokens: a row count first, then
// image paths. Tokens that do not end in .jpg or .jpeg are skipped.
func ParseTextJob(r io.Reader) (*Config, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("failed to read job file: %w", err)
		}
		return nil, ErrNoRowCount
	}
	rows, err := strconv.Atoi(sc.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNoRowCount, sc.Text())
	}

	cfg := DefaultConfig()
	cfg.Policy = PolicyRows
	cfg.Rows = rows
	for sc.Scan() {
		if tok := sc.Text(); source.IsJPEG(tok) {
			cfg.Files = append(cfg.Files, tok)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	return cfg, nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Save writes cfg as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write job file: %w", err)
	}
	return nil
}
