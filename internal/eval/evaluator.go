package eval

import (
	"errors"
	"math"

	"github.com/specialistvlad/gridcalc/internal/aggregate"
	"github.com/specialistvlad/gridcalc/internal/calcerr"
	"github.com/specialistvlad/gridcalc/internal/cellref"
	"github.com/specialistvlad/gridcalc/internal/formula"
	"github.com/specialistvlad/gridcalc/internal/grid"
)

// Evaluator resolves cell values against a grid.
type Evaluator struct {
	cells grid.Reader
}

// New creates an evaluator reading from cells.
func New(cells grid.Reader) *Evaluator {
	return &Evaluator{cells: cells}
}

// visitSet holds the addresses currently on the resolution path.
type visitSet map[cellref.Address]struct{}

// Cell evaluates the cell at addr. Empty cells are 0; literals must be
// numeric.
func (e *Evaluator) Cell(addr cellref.Address) (float64, error) {
	return e.resolve(addr, make(visitSet))
}

// Numeric reports the value of addr if it holds a numeric literal or a
// formula that evaluates successfully. Empty cells are not numeric.
func (e *Evaluator) Numeric(addr cellref.Address) (float64, bool) {
	content, ok := e.cells.Get(addr)
	if !ok {
		return 0, false
	}
	if !content.IsFormula() {
		return content.Number()
	}
	v, err := e.Cell(addr)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Node evaluates a parsed expression that does not belong to any cell.
func (e *Evaluator) Node(node formula.Node) (float64, error) {
	return e.eval(node, make(visitSet))
}

func (e *Evaluator) resolve(addr cellref.Address, visiting visitSet) (float64, error) {
	if _, ok := visiting[addr]; ok {
		return 0, calcerr.NewCircular(addr.String())
	}

	content, ok := e.cells.Get(addr)
	if !ok {
		return 0, nil
	}

	switch content.Kind() {
	case grid.KindLiteral:
		v, ok := content.Number()
		if !ok {
			return 0, calcerr.NewTypeMismatch(addr.String(), content.Text())
		}
		return v, nil
	case grid.KindFormula:
		visiting[addr] = struct{}{}
		defer delete(visiting, addr)

		node, err := formula.ParseFormula(content.Text())
		if err != nil {
			return 0, locate(err, addr)
		}
		v, err := e.eval(node, visiting)
		if err != nil {
			return 0, locate(err, addr)
		}
		return v, nil
	default:
		return 0, nil
	}
}

func (e *Evaluator) eval(node formula.Node, visiting visitSet) (float64, error) {
	switch n := node.(type) {
	case *formula.Number:
		return n.Value, nil

	case *formula.CellRef:
		return e.resolve(n.Address, visiting)

	case *formula.Unary:
		v, err := e.eval(n.Operand, visiting)
		if err != nil {
			return 0, err
		}
		if n.Op == formula.OpSub {
			return -v, nil
		}
		return v, nil

	case *formula.Binary:
		left, err := e.eval(n.Left, visiting)
		if err != nil {
			return 0, err
		}
		right, err := e.eval(n.Right, visiting)
		if err != nil {
			return 0, err
		}
		return apply(n.Op, left, right)

	case *formula.Aggregate:
		values, err := e.collect(n.Arg.Range, visiting)
		if err != nil {
			return 0, err
		}
		return aggregate.Reduce(n.Func, values)

	case *formula.RangeRef:
		return 0, calcerr.NewSyntax(n.Pos(), "range reference outside an aggregate function")

	default:
		return 0, calcerr.New(calcerr.SyntaxError, "unsupported expression %T", node)
	}
}

// collect gathers the numeric cells of r in row-major order. Cycles abort
// the collection; any other per-cell failure just excludes the cell.
func (e *Evaluator) collect(r cellref.Range, visiting visitSet) ([]float64, error) {
	var values []float64
	for addr, content := range e.cells.InRange(r) {
		if content.IsEmpty() {
			continue
		}
		v, err := e.resolve(addr, visiting)
		if err != nil {
			if errors.Is(err, calcerr.ErrCircularReference) {
				return nil, err
			}
			continue
		}
		values = append(values, v)
	}
	return values, nil
}

// locate attaches addr to a failure that does not name a cell yet.
func locate(err error, addr cellref.Address) error {
	var calcErr *calcerr.Error
	if !errors.As(err, &calcErr) || calcErr.Cell != "" {
		return err
	}
	located := *calcErr
	located.Cell = addr.String()
	return &located
}

func apply(op formula.Operator, a, b float64) (float64, error) {
	var result float64

	switch op {
	case formula.OpAdd:
		result = a + b
	case formula.OpSub:
		result = a - b
	case formula.OpMul:
		result = a * b
	case formula.OpDiv:
		if b == 0 {
			return 0, calcerr.New(calcerr.DivisionByZero, "divisor is zero")
		}
		result = a / b
	case formula.OpMod:
		if b == 0 {
			return 0, calcerr.New(calcerr.DivisionByZero, "modulo by zero")
		}
		result = floorMod(a, b)
	case formula.OpPow:
		var err error
		if result, err = power(a, b); err != nil {
			return 0, err
		}
	default:
		return 0, calcerr.New(calcerr.SyntaxError, "unknown operator %s", op)
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, calcerr.New(calcerr.DomainError, "result of %g %s %g is out of range", a, op, b)
	}
	return result, nil
}

// floorMod returns a remainder carrying the sign of the divisor.
func floorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

func power(base, exp float64) (float64, error) {
	switch {
	case base == 0 && exp == 0:
		return 1, nil
	case base == 0 && exp < 0:
		return 0, calcerr.New(calcerr.DivisionByZero, "zero raised to a negative power")
	case base < 0 && exp != math.Trunc(exp):
		return 0, calcerr.New(calcerr.DomainError, "negative base with fractional exponent")
	}
	return math.Pow(base, exp), nil
}
