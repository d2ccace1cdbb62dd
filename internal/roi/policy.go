package roi

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrConfig marks an invalid band policy. A policy that fails with it must not be used.
	ErrConfig = errors.New("invalid roi configuration")
	// ErrState marks a reduction attempted against data it cannot apply to.
	ErrState = errors.New("invalid roi state")
)

// Band is an inclusive row range [Top, Bottom]. Bottom < Top means no rows.
type Band struct {
	Top    int
	Bottom int
}

// Rows returns the number of rows covered by the band.
func (b Band) Rows() int {
	if b.Bottom < b.Top {
		return 0
	}
	return b.Bottom - b.Top + 1
}

func (b Band) String() string {
	return fmt.Sprintf("[%d..%d]", b.Top, b.Bottom)
}

// Policy derives the row band for an image of the given height.
type Policy interface {
	Band(height int) (Band, error)
	Name() string
}

// RowCount selects N rows centered on the image.
type RowCount struct {
	N int
}

// NewRowCount validates n and returns a row-count policy.
func NewRowCount(n int) (*RowCount, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: row count must not be negative, got %d", ErrConfig, n)
	}
	return &RowCount{N: n}, nil
}

func (p *RowCount) Band(height int) (Band, error) {
	if p.N < 0 {
		return Band{}, fmt.Errorf("%w: row count must not be negative, got %d", ErrConfig, p.N)
	}
	if height <= 0 {
		return Band{}, fmt.Errorf("%w: image height %d", ErrState, height)
	}
	if p.N > height {
		return Band{}, fmt.Errorf("%w: row count %d exceeds image height %d", ErrState, p.N, height)
	}
	return RowBand(height, p.N), nil
}

func (p *RowCount) Name() string {
	return fmt.Sprintf("rows=%d", p.N)
}

// RowBand centers r rows in an image of height h. When the rows cannot split
// evenly around the middle the extra row goes to the top half.
func RowBand(h, r int) Band {
	top := h/2 - r/2
	bottom := h/2 + r/2
	if h%2 == 0 || r%2 == 0 {
		bottom--
	}
	if h%2 == 0 && r%2 == 1 {
		top--
	}
	return Band{Top: top, Bottom: bottom}
}

// PercentBand selects rows between two fractions of the image height.
type PercentBand struct {
	Top    float64
	Bottom float64
}

// NewPercentBand validates the fractions and returns a percent-band policy.
func NewPercentBand(top, bottom float64) (*PercentBand, error) {
	p := &PercentBand{Top: top, Bottom: bottom}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PercentBand) validate() error {
	if !inUnit(p.Top) || !inUnit(p.Bottom) {
		return fmt.Errorf("%w: band percentages must lie in [0,1], got %v and %v", ErrConfig, p.Top, p.Bottom)
	}
	if p.Bottom < p.Top {
		return fmt.Errorf("%w: bottom percentage %v is above top percentage %v", ErrConfig, p.Bottom, p.Top)
	}
	return nil
}

// DefaultPercentBand returns the 40%..60% band.
func DefaultPercentBand() *PercentBand {
	return &PercentBand{Top: 0.4, Bottom: 0.6}
}

func (p *PercentBand) Band(height int) (Band, error) {
	if err := p.validate(); err != nil {
		return Band{}, err
	}
	if height <= 0 {
		return Band{}, fmt.Errorf("%w: image height %d", ErrState, height)
	}
	return PercentRows(height, p.Top, p.Bottom), nil
}

func (p *PercentBand) Name() string {
	return fmt.Sprintf("percent=%.2f..%.2f", p.Top, p.Bottom)
}

// PercentRows converts fractions to row indices: floor for the top edge, ceil
// for the bottom edge, both clamped to the last row.
func PercentRows(h int, top, bottom float64) Band {
	b := Band{
		Top:    int(math.Floor(float64(h) * top)),
		Bottom: int(math.Ceil(float64(h) * bottom)),
	}
	if b.Top > h-1 {
		b.Top = h - 1
	}
	if b.Bottom > h-1 {
		b.Bottom = h - 1
	}
	return b
}

func inUnit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
