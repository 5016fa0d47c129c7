// internal/cellref/types.go
package cellref

const (
	// MaxCols is the number of columns in a sheet; column 500 is `SF`.
	MaxCols = 500
	// MaxRows is the number of rows in a sheet.
	MaxRows = 500
)

// Address is a validated cell coordinate. Col and Row are one-based.
type Address struct {
	Col int
	Row int
}

// Range is an inclusive rectangle of cells. Start is always the top-left
// corner and End the bottom-right one.
type Range struct {
	Start Address
	End   Address
}
