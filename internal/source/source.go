// Package source decodes raster images into intensity grids.
package source

import (
	"errors"
	"fmt"
)

// ErrDecode marks an image that could not be opened or decoded.
var ErrDecode = errors.New("image decode failed")

// MaxIntensity is the intensity of a white pixel (255+255+255).
const MaxIntensity = 765

// Grid holds R+G+B per pixel, row-major, Height rows of Width cells.
type Grid struct {
	Height int
	Width  int
	cells  []int
}

// NewGrid wraps row-major cells. len(cells) must equal height*width.
func NewGrid(height, width int, cells []int) (*Grid, error) {
	if height < 0 || width < 0 || len(cells) != height*width {
		return nil, fmt.Errorf("grid %dx%d does not match %d cells", width, height, len(cells))
	}
	return &Grid{Height: height, Width: width, cells: cells}, nil
}

// Dims returns 0, 0 for a nil grid.
func (g *Grid) Dims() (int, int) {
	if g == nil {
		return 0, 0
	}
	return g.Height, g.Width
}

// At returns the intensity at row i, column j.
func (g *Grid) At(i, j int) int {
	return g.cells[i*g.Width+j]
}

// Row returns row i. The slice aliases the grid and must not be modified.
func (g *Grid) Row(i int) []int {
	return g.cells[i*g.Width : (i+1)*g.Width : (i+1)*g.Width]
}
