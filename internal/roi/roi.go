// Package roi reduces an intensity grid to a region-of-interest profile:
// the per-column sum over a band of rows.
package roi

import "fmt"

// Grid is the read-only view of intensity data the reduction needs.
type Grid interface {
	Dims() (height, width int)
	Row(i int) []int
}

// Profile holds one summed intensity per image column.
type Profile []int

// Calculate picks the band for the grid's height and sums every column over it.
func Calculate(g Grid, p Policy) (Profile, Band, error) {
	if g == nil {
		return nil, Band{}, fmt.Errorf("%w: no intensity grid, read an image first", ErrState)
	}
	h, w := g.Dims()
	if h == 0 || w == 0 {
		return nil, Band{}, fmt.Errorf("%w: no intensity grid, read an image first", ErrState)
	}
	if p == nil {
		p = DefaultPercentBand()
	}

	band, err := p.Band(h)
	if err != nil {
		return nil, Band{}, err
	}
	if band.Rows() > 0 && (band.Top < 0 || band.Bottom > h-1) {
		return nil, Band{}, fmt.Errorf("%w: band %v outside image height %d", ErrState, band, h)
	}

	profile := make(Profile, w)
	for i := band.Top; i <= band.Bottom; i++ {
		row := g.Row(i)
		for j, v := range row {
			profile[j] += v
		}
	}
	return profile, band, nil
}
