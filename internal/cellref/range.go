// internal/cellref/range.go
package cellref

import "iter"

// NewRange builds the rectangle spanned by two corners in any order.
func NewRange(a, b Address) Range {
	return Range{
		Start: Address{Col: min(a.Col, b.Col), Row: min(a.Row, b.Row)},
		End:   Address{Col: max(a.Col, b.Col), Row: max(a.Row, b.Row)},
	}
}

// Contains reports whether addr lies inside the rectangle.
func (r Range) Contains(addr Address) bool {
	return addr.Col >= r.Start.Col && addr.Col <= r.End.Col &&
		addr.Row >= r.Start.Row && addr.Row <= r.End.Row
}

// Len returns the number of cells in the rectangle.
func (r Range) Len() int {
	return (r.End.Col - r.Start.Col + 1) * (r.End.Row - r.Start.Row + 1)
}

// Cells yields every address in the rectangle, row by row.
func (r Range) Cells() iter.Seq[Address] {
	return func(yield func(Address) bool) {
		for row := r.Start.Row; row <= r.End.Row; row++ {
			for col := r.Start.Col; col <= r.End.Col; col++ {
				if !yield(Address{Col: col, Row: row}) {
					return
				}
			}
		}
	}
}

// String renders the range as "A1:C3", or a single address for one cell.
func (r Range) String() string {
	if r.Start == r.End {
		return r.Start.String()
	}
	return r.Start.String() + ":" + r.End.String()
}
