package roi

import "fmt"

// NewPolicy creates a band policy based on the specified kind
func NewPolicy(kind string, rows int, top, bottom float64) (Policy, error) {
	switch kind {
	case "rows", "count":
		return NewRowCount(rows)
	case "percent", "":
		return NewPercentBand(top, bottom)
	default:
		return nil, fmt.Errorf("%w: unknown policy kind: %s", ErrConfig, kind)
	}
}
