// internal/cellref/address.go
package cellref

import (
	"strconv"
	"strings"

	"github.com/specialistvlad/gridcalc/internal/calcerr"
)

// New creates an Address from one-based coordinates.
func New(col, row int) (Address, error) {
	if col < 1 || col > MaxCols {
		return Address{}, calcerr.NewInvalidAddress(ColumnLabel(col)+strconv.Itoa(row), "column out of range")
	}
	if row < 1 || row > MaxRows {
		return Address{}, calcerr.NewInvalidAddress(ColumnLabel(col)+strconv.Itoa(row), "row out of range")
	}
	return Address{Col: col, Row: row}, nil
}

// MustParse is like Parse but panics on invalid input. Intended for tests
// and static tables.
func MustParse(text string) Address {
	addr, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return addr
}

// ColumnLabel encodes a one-based column number as bijective base-26
// letters: 1 is "A", 26 is "Z", 27 is "AA". Non-positive input yields "".
func ColumnLabel(col int) string {
	var buf [8]byte
	i := len(buf)
	for col > 0 {
		col--
		i--
		buf[i] = byte('A' + col%26)
		col /= 26
	}
	return string(buf[i:])
}

// String serializes the Address into its canonical text, e.g. "AB12".
func (a Address) String() string {
	var sb strings.Builder
	sb.WriteString(ColumnLabel(a.Col))
	sb.WriteString(strconv.Itoa(a.Row))
	return sb.String()
}

// Less orders addresses row-major.
func (a Address) Less(other Address) bool {
	if a.Row != other.Row {
		return a.Row < other.Row
	}
	return a.Col < other.Col
}
