package formula

import (
	"fmt"

	"github.com/specialistvlad/gridcalc/internal/calcerr"
)

// TokenType classifies a lexeme.
type TokenType uint8

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenCell
	TokenName
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenPower
	TokenColon
	TokenLeftParen
	TokenRightParen
)

var tokenNames = [...]string{
	TokenEOF:        "end of formula",
	TokenNumber:     "number",
	TokenCell:       "cell reference",
	TokenName:       "name",
	TokenPlus:       "'+'",
	TokenMinus:      "'-'",
	TokenStar:       "'*'",
	TokenSlash:      "'/'",
	TokenPercent:    "'%'",
	TokenPower:      "'**'",
	TokenColon:      "':'",
	TokenLeftParen:  "'('",
	TokenRightParen: "')'",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", uint8(t))
}

// Token is a lexeme with its offset in the source.
type Token struct {
	Type TokenType
	Text string
	Pos  int
}

// Lexer splits formula text into tokens.
type Lexer struct {
	input  string
	pos    int
	offset int
}

// NewLexer creates a lexer whose reported positions start at offset.
func NewLexer(input string, offset int) *Lexer {
	return &Lexer{input: input, offset: offset}
}

// Tokenize scans the whole input. The returned slice always ends with a
// TokenEOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) next() (Token, error) {
	l.skipWhitespace()
	if l.pos >= len(l.input) {
		return l.emit(TokenEOF, l.pos), nil
	}

	start := l.pos
	ch := l.input[start]
	switch {
	case isDigit(ch) || (ch == '.' && isDigit(l.peek(1))):
		l.scanNumber()
		return l.emit(TokenNumber, start), nil
	case isLetter(ch):
		return l.scanWord(), nil
	}

	l.pos++
	switch ch {
	case '+':
		return l.emit(TokenPlus, start), nil
	case '-':
		return l.emit(TokenMinus, start), nil
	case '*':
		if l.current() == '*' {
			l.pos++
			return l.emit(TokenPower, start), nil
		}
		return l.emit(TokenStar, start), nil
	case '/':
		return l.emit(TokenSlash, start), nil
	case '%':
		return l.emit(TokenPercent, start), nil
	case ':':
		return l.emit(TokenColon, start), nil
	case '(':
		return l.emit(TokenLeftParen, start), nil
	case ')':
		return l.emit(TokenRightParen, start), nil
	}
	return Token{}, calcerr.NewSyntax(l.offset+start, "unrecognised character %q", ch)
}

func (l *Lexer) emit(t TokenType, start int) Token {
	return Token{Type: t, Text: l.input[start:l.pos], Pos: l.offset + start}
}

// scanNumber consumes digits, an optional fraction and an optional
// exponent. A '.' not followed by a digit is left for the caller.
func (l *Lexer) scanNumber() {
	for isDigit(l.current()) {
		l.pos++
	}
	if l.current() == '.' && isDigit(l.peek(1)) {
		l.pos++
		for isDigit(l.current()) {
			l.pos++
		}
	}
	if c := l.current(); c == 'e' || c == 'E' {
		exp := 1
		if s := l.peek(1); s == '+' || s == '-' {
			exp = 2
		}
		if isDigit(l.peek(exp)) {
			l.pos += exp
			for isDigit(l.current()) {
				l.pos++
			}
		}
	}
}

// scanWord reads a cell reference (letters then digits) or a bare name.
func (l *Lexer) scanWord() Token {
	start := l.pos
	for isLetter(l.current()) {
		l.pos++
	}
	if !isDigit(l.current()) {
		return l.emit(TokenName, start)
	}
	for isDigit(l.current()) {
		l.pos++
	}
	return l.emit(TokenCell, start)
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.current() {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func (l *Lexer) current() byte {
	return l.peek(0)
}

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
