package aggregate

import (
	"errors"
	"fmt"
	"strings"
)

// Op is a range operation.
type Op uint8

const (
	OpSet Op = iota + 1
	OpClear
	OpSum
	OpAverage
	OpMax
	OpMin
	OpCount
	OpMedian
	OpProduct
)

// ErrUnknownOp is returned by ParseOp for unrecognised names.
var ErrUnknownOp = errors.New("unknown operation")

var opNames = map[Op]string{
	OpSet:     "SET",
	OpClear:   "CLEAR",
	OpSum:     "SUM",
	OpAverage: "AVERAGE",
	OpMax:     "MAX",
	OpMin:     "MIN",
	OpCount:   "COUNT",
	OpMedian:  "MEDIAN",
	OpProduct: "PRODUCT",
}

var opsByName = func() map[string]Op {
	m := make(map[string]Op, len(opNames))
	for op, name := range opNames {
		m[name] = op
	}
	return m
}()

// ParseOp resolves an operation name, ignoring case.
func ParseOp(name string) (Op, error) {
	if op, ok := opsByName[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOp, name)
}

func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// IsReducer reports whether op folds a range into a single number, as
// opposed to assigning to every cell of it.
func (op Op) IsReducer() bool {
	switch op {
	case OpSum, OpAverage, OpMax, OpMin, OpCount, OpMedian, OpProduct:
		return true
	default:
		return false
	}
}

// Reducers lists the reducer operations in a stable order.
func Reducers() []Op {
	return []Op{OpSum, OpAverage, OpMax, OpMin, OpCount, OpMedian, OpProduct}
}
