// Package eval computes the numeric value of cells.
//
// Evaluation is pull-based and uncached: every request walks the formula
// tree and resolves referenced cells on demand. A visitation set scoped to
// one top-level request detects reference cycles. An address is added before
// its formula is evaluated and removed afterwards, so a cell referenced twice
// by siblings (=A1+A1) is fine while a cell reached again through its own
// formula is a CircularReference.
package eval
