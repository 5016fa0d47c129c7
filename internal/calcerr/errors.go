// Package calcerr defines the typed failures produced by the calculation
// core. Every failure is a *Error carrying a Kind; callers match kinds with
// errors.Is against the Err* sentinels and read details with errors.As.
package calcerr

import (
	"errors"
	"fmt"
)

// Kind classifies a calculation failure.
type Kind uint8

const (
	InvalidAddress Kind = iota + 1
	SyntaxError
	CircularReference
	TypeMismatch
	DivisionByZero
	DomainError
	EmptyRange
	UndoUnavailable
)

var kindNames = map[Kind]string{
	InvalidAddress:    "invalid address",
	SyntaxError:       "syntax error",
	CircularReference: "circular reference",
	TypeMismatch:      "type mismatch",
	DivisionByZero:    "division by zero",
	DomainError:       "domain error",
	EmptyRange:        "empty range",
	UndoUnavailable:   "undo unavailable",
}

// indicators maps each kind to the short marker a cell shows instead of a number.
var indicators = map[Kind]string{
	InvalidAddress:    "#ADDR!",
	SyntaxError:       "#SYNTAX!",
	CircularReference: "#CYCLE!",
	TypeMismatch:      "#VALUE!",
	DivisionByZero:    "#DIV/0!",
	DomainError:       "#NUM!",
	EmptyRange:        "#EMPTY!",
	UndoUnavailable:   "#UNDO!",
}

// String returns the human readable name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Indicator returns the display marker for the kind.
func (k Kind) Indicator() string {
	if ind, ok := indicators[k]; ok {
		return ind
	}
	return "#ERROR!"
}

// Error is a calculation failure.
type Error struct {
	Kind Kind
	// Cell is the address text the failure is about, if any.
	Cell string
	// Pos is the zero-based offset into formula source for syntax failures,
	// -1 when not applicable.
	Pos    int
	Reason string
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Cell != "" {
		msg += " at " + e.Cell
	}
	if e.Pos >= 0 {
		msg += fmt.Sprintf(" (position %d)", e.Pos)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is reports whether target is a *Error of the same kind. It lets the
// sentinels below work with errors.Is regardless of the details carried.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidAddress    = &Error{Kind: InvalidAddress, Pos: -1}
	ErrSyntax            = &Error{Kind: SyntaxError, Pos: -1}
	ErrCircularReference = &Error{Kind: CircularReference, Pos: -1}
	ErrTypeMismatch      = &Error{Kind: TypeMismatch, Pos: -1}
	ErrDivisionByZero    = &Error{Kind: DivisionByZero, Pos: -1}
	ErrDomain            = &Error{Kind: DomainError, Pos: -1}
	ErrEmptyRange        = &Error{Kind: EmptyRange, Pos: -1}
	ErrUndoUnavailable   = &Error{Kind: UndoUnavailable, Pos: -1}
)

// NewInvalidAddress reports address text the codec rejected.
func NewInvalidAddress(text, reason string) *Error {
	return &Error{Kind: InvalidAddress, Cell: text, Pos: -1, Reason: reason}
}

// NewSyntax reports a malformed formula at the given offset.
func NewSyntax(pos int, format string, args ...any) *Error {
	return &Error{Kind: SyntaxError, Pos: pos, Reason: fmt.Sprintf(format, args...)}
}

// NewCircular reports a reference cycle entered at cell.
func NewCircular(cell string) *Error {
	return &Error{Kind: CircularReference, Cell: cell, Pos: -1, Reason: "cell is already being evaluated"}
}

// NewTypeMismatch reports a non-numeric value used in arithmetic.
func NewTypeMismatch(cell, value string) *Error {
	return &Error{Kind: TypeMismatch, Cell: cell, Pos: -1, Reason: fmt.Sprintf("%q is not a number", value)}
}

// New builds an error of any kind without cell or position details.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: -1, Reason: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from err, or 0 when err is not a calculation failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Indicator returns the display marker for err.
func Indicator(err error) string {
	return KindOf(err).Indicator()
}
