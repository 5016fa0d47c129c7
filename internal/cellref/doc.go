// internal/cellref/doc.go

/*
Package cellref converts between the textual cell addresses used at the
sheet boundary and the integer coordinates used internally.

An address is a run of column letters followed by a row number, e.g. `A1`,
`AB12` or `SF500`. Columns use bijective base-26: the letters A through Z
stand for 1 through 26 and there is no zero digit, so `Z` is 26 and `AA` is
27. Both coordinates are bounded to [1, 500]; out-of-range addresses are
rejected here and never constructed.

A range is the inclusive rectangle between two addresses, written `A1:C3`.
Ranges are always stored normalised so that the order of the corners does
not matter.
*/
package cellref
