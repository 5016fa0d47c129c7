// internal/cellref/parser.go
package cellref

import (
	"strings"

	"github.com/specialistvlad/gridcalc/internal/calcerr"
)

// Parse decodes address text such as "b7" or "SF500". Letters are
// case-insensitive.
func Parse(text string) (Address, error) {
	if text == "" {
		return Address{}, calcerr.NewInvalidAddress(text, "address cannot be empty")
	}

	i := 0
	col := 0
	for i < len(text) && isLetter(text[i]) {
		col = col*26 + int(upper(text[i])-'A'+1)
		if col > MaxCols {
			return Address{}, calcerr.NewInvalidAddress(text, "column out of range")
		}
		i++
	}
	if i == 0 {
		return Address{}, calcerr.NewInvalidAddress(text, "missing column letters")
	}

	digits := text[i:]
	if digits == "" {
		return Address{}, calcerr.NewInvalidAddress(text, "missing row number")
	}
	row := 0
	for j := 0; j < len(digits); j++ {
		if !isDigit(digits[j]) {
			return Address{}, calcerr.NewInvalidAddress(text, "row must be numeric")
		}
		row = row*10 + int(digits[j]-'0')
		if row > MaxRows {
			return Address{}, calcerr.NewInvalidAddress(text, "row out of range")
		}
	}
	if row < 1 {
		return Address{}, calcerr.NewInvalidAddress(text, "row out of range")
	}

	return Address{Col: col, Row: row}, nil
}

// ParseRange decodes "A1:C3". A single address is accepted as a one-cell range.
func ParseRange(text string) (Range, error) {
	startText, endText, found := strings.Cut(text, ":")
	start, err := Parse(startText)
	if err != nil {
		return Range{}, err
	}
	if !found {
		return Range{Start: start, End: start}, nil
	}
	end, err := Parse(endText)
	if err != nil {
		return Range{}, err
	}
	return NewRange(start, end), nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
