// Package aggregate defines the range operations of the sheet and the
// reducers that turn the numeric cells of a range into one number.
//
// Collecting the numbers is left to the caller: the sheet decides which
// cells count as numeric (numeric literals and formulas that evaluate
// successfully) and hands the values over in row-major order.
package aggregate
