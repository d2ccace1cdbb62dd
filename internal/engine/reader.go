package engine

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/img2roi/internal/csvio"
	"github.com/ivlev/img2roi/internal/roi"
	"github.com/ivlev/img2roi/internal/source"
)

// Reader turns image files into intensity results under a fixed band policy.
type Reader struct {
	policy roi.Policy
}

// NewReader binds the band policy for the reader's lifetime. A nil policy
// selects the default percent band.
func NewReader(p roi.Policy) *Reader {
	if p == nil {
		p = roi.DefaultPercentBand()
	}
	return &Reader{policy: p}
}

// Policy returns the band policy the reader was built with.
func (r *Reader) Policy() roi.Policy {
	return r.policy
}

// Result is the intensity grid of one image and the profile reduced from it.
type Result struct {
	Path    string
	Grid    *source.Grid
	Band    roi.Band
	Profile roi.Profile
}

// Process decodes path and reduces it. Errors wrap source.ErrDecode,
// roi.ErrState or roi.ErrConfig.
func (r *Reader) Process(path string) (*Result, error) {
	grid, err := source.ReadGrid(path)
	if err != nil {
		return nil, err
	}
	return r.Reduce(path, grid)
}

// Reduce computes the profile of an already decoded grid.
func (r *Reader) Reduce(path string, grid *source.Grid) (*Result, error) {
	profile, band, err := roi.Calculate(grid, r.policy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Result{Path: path, Grid: grid, Band: band, Profile: profile}, nil
}

// WriteArrayCSV writes the full grid; an empty path means csvio.DefaultGridPath.
func (res *Result) WriteArrayCSV(path string) error {
	return csvio.WriteGridFile(path, res.Grid)
}

// WriteProfileCSV writes the profile; an empty path means csvio.DefaultProfilePath.
func (res *Result) WriteProfileCSV(path string) error {
	return csvio.WriteProfileFile(path, res.Profile)
}

// WriteBoth writes the grid and the profile side by side. Both writes run
// even if one fails; the first error is returned. The two paths must name
// different files.
func (res *Result) WriteBoth(arrayPath, profilePath string) error {
	if samePath(orDefault(arrayPath, csvio.DefaultGridPath), orDefault(profilePath, csvio.DefaultProfilePath)) {
		return fmt.Errorf("%w: array and profile both target %s", csvio.ErrWrite, orDefault(arrayPath, csvio.DefaultGridPath))
	}

	var g errgroup.Group
	g.Go(func() error { return res.WriteArrayCSV(arrayPath) })
	g.Go(func() error { return res.WriteProfileCSV(profilePath) })
	return g.Wait()
}

func orDefault(path, def string) string {
	if path == "" {
		return def
	}
	return path
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
