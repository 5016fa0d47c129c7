package sheet

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DisplayMode selects what DisplayValue shows for a cell.
type DisplayMode uint8

const (
	// DisplayValues shows evaluated numbers for formulas and raw text for literals.
	DisplayValues DisplayMode = iota
	// DisplayFormulas shows the raw content of every cell.
	DisplayFormulas
)

func (m DisplayMode) String() string {
	if m == DisplayFormulas {
		return "formulas"
	}
	return "values"
}

// ParseDisplayMode resolves "values" or "formulas".
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "values", "value":
		return DisplayValues, nil
	case "formulas", "formula":
		return DisplayFormulas, nil
	default:
		return 0, fmt.Errorf("unknown display mode %q (want values or formulas)", s)
	}
}

// FormatNumber renders a computed value. Integral values print without a
// fraction; very large or small magnitudes use exponent notation.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
