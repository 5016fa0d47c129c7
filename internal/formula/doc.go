// Package formula turns formula text into an expression tree.
//
// The grammar covers numbers, cell references, the binary operators
// + - * / % and **, a prefix sign, parentheses and aggregate calls such as
// SUM(A1:B3). Exponentiation is right-associative and binds tighter than a
// sign on its left, so -2**2 is -4 and 2**3**2 is 512.
//
// Failures are *calcerr.Error values of kind SyntaxError (or InvalidAddress
// for references outside the sheet) carrying the offset of the offending
// token.
package formula
