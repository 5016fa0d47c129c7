// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Content, the tagged variant stored in every occupied cell.
package grid

import (
	"strconv"
	"strings"
)

// Kind tags the variant held by a Content.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindLiteral
	KindFormula
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindFormula:
		return "formula"
	default:
		return "empty"
	}
}

// Content is an immutable cell value. The zero value is the empty cell.
type Content struct {
	kind Kind
	text string
}

// Literal creates literal content holding text verbatim.
func Literal(text string) Content {
	return Content{kind: KindLiteral, text: text}
}

// Formula creates formula content. source is the full formula text
// including the leading '='.
func Formula(source string) Content {
	return Content{kind: KindFormula, text: source}
}

// FromInput classifies raw user input: a leading '=' makes a formula,
// anything else a literal, and "" the empty cell.
func FromInput(input string) Content {
	switch {
	case input == "":
		return Content{}
	case strings.HasPrefix(input, "="):
		return Formula(input)
	default:
		return Literal(input)
	}
}

// Kind returns the variant tag.
func (c Content) Kind() Kind { return c.kind }

// IsEmpty reports whether the content is the empty cell.
func (c Content) IsEmpty() bool { return c.kind == KindEmpty }

// IsFormula reports whether the content is a formula.
func (c Content) IsFormula() bool { return c.kind == KindFormula }

// Text returns the raw content text: the literal as entered, or the
// formula source including '='.
func (c Content) Text() string { return c.text }

// Expression returns the formula text after '='. It is "" for literals.
func (c Content) Expression() string {
	if c.kind != KindFormula {
		return ""
	}
	return strings.TrimPrefix(c.text, "=")
}

// Number parses a literal as a number. Surrounding whitespace is ignored.
// Formulas and empty cells report false; they are resolved by the evaluator.
func (c Content) Number() (float64, bool) {
	if c.kind != KindLiteral {
		return 0, false
	}
	return ParseNumber(c.text)
}

// ParseNumber parses a literal numeric value. NaN and infinities are not
// accepted as numbers.
func ParseNumber(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, false
	}
	lower := strings.ToLower(strings.TrimLeft(s, "+-"))
	if strings.HasPrefix(lower, "inf") || strings.HasPrefix(lower, "nan") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
