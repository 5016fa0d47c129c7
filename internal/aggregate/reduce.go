package aggregate

import (
	"fmt"
	"math"
	"slices"

	"github.com/specialistvlad/gridcalc/internal/calcerr"
)

// Reduce folds the numeric values of a range. SUM and COUNT of nothing are
// 0 and PRODUCT of nothing is 1; AVERAGE, MAX, MIN and MEDIAN need at least
// one value and fail with an EmptyRange error otherwise.
func Reduce(op Op, values []float64) (float64, error) {
	var result float64

	switch op {
	case OpCount:
		return float64(len(values)), nil
	case OpSum:
		for _, v := range values {
			result += v
		}
	case OpProduct:
		result = 1
		for _, v := range values {
			result *= v
		}
	case OpAverage, OpMax, OpMin, OpMedian:
		if len(values) == 0 {
			return 0, calcerr.New(calcerr.EmptyRange, "%s needs at least one numeric cell", op)
		}
		result = reduceNonEmpty(op, values)
	default:
		return 0, fmt.Errorf("%s is not a reducing operation", op)
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, calcerr.New(calcerr.DomainError, "%s result is out of range", op)
	}
	return result, nil
}

func reduceNonEmpty(op Op, values []float64) float64 {
	switch op {
	case OpAverage:
		var sum float64
		for _, v := range values {
			sum += v
		}
		return sum / float64(len(values))
	case OpMax:
		return slices.Max(values)
	case OpMin:
		return slices.Min(values)
	default:
		sorted := slices.Clone(values)
		slices.Sort(sorted)
		mid := len(sorted) / 2
		if len(sorted)%2 == 1 {
			return sorted[mid]
		}
		return (sorted[mid-1] + sorted[mid]) / 2
	}
}
