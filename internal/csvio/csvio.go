// Package csvio writes intensity grids and ROI profiles as headerless CSV
// and reads them back.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/ivlev/img2roi/internal/roi"
	"github.com/ivlev/img2roi/internal/source"
)

const (
	DefaultGridPath    = "intensity_array.csv"
	DefaultProfilePath = "region_of_interest.csv"
)

// ErrWrite marks an output file that could not be created or written.
var ErrWrite = errors.New("csv write failed")

var (
	errNoGrid    = fmt.Errorf("%w: no intensity grid to write", roi.ErrState)
	errNoProfile = fmt.Errorf("%w: no region of interest to write, calculate it first", roi.ErrState)
)

// WriteGrid writes one line per grid row, values separated by commas.
func WriteGrid(w io.Writer, g *source.Grid) error {
	if g == nil {
		return errNoGrid
	}
	cw := csv.NewWriter(w)
	record := make([]string, g.Width)
	for i := 0; i < g.Height; i++ {
		for j, v := range g.Row(i) {
			record[j] = strconv.Itoa(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteProfile writes one profile value per line, in column order.
func WriteProfile(w io.Writer, p roi.Profile) error {
	if p == nil {
		return errNoProfile
	}
	cw := csv.NewWriter(w)
	record := make([]string, 1)
	for _, v := range p {
		record[0] = strconv.Itoa(v)
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGridFile writes g to path, or to DefaultGridPath when path is empty.
func WriteGridFile(path string, g *source.Grid) error {
	if g == nil {
		return errNoGrid
	}
	if path == "" {
		path = DefaultGridPath
	}
	return writeFile(path, func(w io.Writer) error { return WriteGrid(w, g) })
}

// WriteProfileFile writes p to path, or to DefaultProfilePath when path is empty.
func WriteProfileFile(path string, p roi.Profile) error {
	if p == nil {
		return errNoProfile
	}
	if path == "" {
		path = DefaultProfilePath
	}
	return writeFile(path, func(w io.Writer) error { return WriteProfile(w, p) })
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", ErrWrite, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
	}
	return nil
}

// ReadGrid parses a grid written by WriteGrid.
func ReadGrid(r io.Reader) (*source.Grid, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse grid csv: %w", err)
	}
	if len(records) == 0 {
		return source.NewGrid(0, 0, nil)
	}

	width := len(records[0])
	cells := make([]int, 0, len(records)*width)
	for i, rec := range records {
		for j, field := range rec {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i, j, err)
			}
			cells = append(cells, v)
		}
	}
	return source.NewGrid(len(records), width, cells)
}

// ReadProfile parses a profile written by WriteProfile.
func ReadProfile(r io.Reader) (roi.Profile, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile csv: %w", err)
	}
	p := make(roi.Profile, len(records))
	for i, rec := range records {
		v, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		p[i] = v
	}
	return p, nil
}
