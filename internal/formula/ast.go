package formula

import (
	"fmt"
	"strconv"

	"github.com/specialistvlad/gridcalc/internal/aggregate"
	"github.com/specialistvlad/gridcalc/internal/cellref"
)

// Node is an expression tree node.
type Node interface {
	// Pos is the offset of the node's first token in the source.
	Pos() int
	// String renders the node canonically, fully parenthesised.
	String() string
}

// Operator is an arithmetic operator.
type Operator uint8

const (
	OpAdd Operator = iota + 1
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
)

var operatorSymbols = map[Operator]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpPow: "**",
}

func (o Operator) String() string {
	if s, ok := operatorSymbols[o]; ok {
		return s
	}
	return fmt.Sprintf("Operator(%d)", uint8(o))
}

// Number is a numeric literal.
type Number struct {
	Value float64
	pos   int
}

func (n *Number) Pos() int { return n.pos }

func (n *Number) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// CellRef reads a single cell.
type CellRef struct {
	Address cellref.Address
	pos     int
}

func (n *CellRef) Pos() int       { return n.pos }
func (n *CellRef) String() string { return n.Address.String() }

// RangeRef is a rectangle of cells. It only appears as an aggregate argument.
type RangeRef struct {
	Range cellref.Range
	pos   int
}

func (n *RangeRef) Pos() int       { return n.pos }
func (n *RangeRef) String() string { return n.Range.String() }

// Unary is a prefix sign.
type Unary struct {
	Op      Operator
	Operand Node
	pos     int
}

func (n *Unary) Pos() int { return n.pos }

func (n *Unary) String() string {
	return "(" + n.Op.String() + n.Operand.String() + ")"
}

// Binary is an infix operation.
type Binary struct {
	Op    Operator
	Left  Node
	Right Node
	pos   int
}

func (n *Binary) Pos() int { return n.pos }

func (n *Binary) String() string {
	return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")"
}

// Aggregate applies a reducer to the numeric cells of a range.
type Aggregate struct {
	Func aggregate.Op
	Arg  *RangeRef
	pos  int
}

func (n *Aggregate) Pos() int { return n.pos }

func (n *Aggregate) String() string {
	return n.Func.String() + "(" + n.Arg.String() + ")"
}
