package formula

import (
	"errors"
	"strconv"
	"strings"

	"github.com/specialistvlad/gridcalc/internal/aggregate"
	"github.com/specialistvlad/gridcalc/internal/calcerr"
	"github.com/specialistvlad/gridcalc/internal/cellref"
)

// Parser is a recursive descent parser over a token slice.
type Parser struct {
	tokens  []Token
	current int
}

// Parse parses expression text, the part of a formula after '='.
func Parse(expr string) (Node, error) {
	return parse(expr, 0)
}

// ParseFormula parses full formula source including the leading '='.
// Positions in errors refer to the full source.
func ParseFormula(source string) (Node, error) {
	rest, ok := strings.CutPrefix(source, "=")
	if !ok {
		return nil, calcerr.NewSyntax(0, "formula must start with '='")
	}
	return parse(rest, 1)
}

func parse(expr string, offset int) (Node, error) {
	tokens, err := NewLexer(expr, offset).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens}
	if p.peek().Type == TokenEOF {
		return nil, calcerr.NewSyntax(p.peek().Pos, "empty formula")
	}

	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	switch tok.Type {
	case TokenEOF:
		return node, nil
	case TokenRightParen:
		return nil, calcerr.NewSyntax(tok.Pos, "unmatched ')'")
	case TokenNumber, TokenCell, TokenName, TokenLeftParen:
		return nil, calcerr.NewSyntax(tok.Pos, "missing operator before %q", tok.Text)
	default:
		return nil, calcerr.NewSyntax(tok.Pos, "unexpected %s", tok.Type)
	}
}

// expr := term (("+"|"-") term)*
func (p *Parser) parseExpression() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		var op Operator
		switch p.peek().Type {
		case TokenPlus:
			op = OpAdd
		case TokenMinus:
			op = OpSub
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right, pos: left.Pos()}
	}
}

// term := unary (("*"|"/"|"%") unary)*
func (p *Parser) parseTerm() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op Operator
		switch p.peek().Type {
		case TokenStar:
			op = OpMul
		case TokenSlash:
			op = OpDiv
		case TokenPercent:
			op = OpMod
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right, pos: left.Pos()}
	}
}

// unary := ("+"|"-") unary | power
func (p *Parser) parseUnary() (Node, error) {
	tok := p.peek()
	var op Operator
	switch tok.Type {
	case TokenPlus:
		op = OpAdd
	case TokenMinus:
		op = OpSub
	default:
		return p.parsePower()
	}
	p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Unary{Op: op, Operand: operand, pos: tok.Pos}, nil
}

// power := atom ("**" unary)?
// Recursing into parseUnary for the exponent makes ** right-associative.
func (p *Parser) parsePower() (Node, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek().Type != TokenPower {
		return base, nil
	}
	p.advance()
	exponent, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: OpPow, Left: base, Right: exponent, pos: base.Pos()}, nil
}

func (p *Parser) parseAtom() (Node, error) {
	tok := p.advance()
	switch tok.Type {
	case TokenNumber:
		value, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, calcerr.NewSyntax(tok.Pos, "malformed number %q", tok.Text)
		}
		return &Number{Value: value, pos: tok.Pos}, nil

	case TokenCell:
		addr, err := parseAddress(tok)
		if err != nil {
			return nil, err
		}
		if p.peek().Type == TokenColon {
			return nil, calcerr.NewSyntax(p.peek().Pos, "range reference is only allowed inside an aggregate function")
		}
		return &CellRef{Address: addr, pos: tok.Pos}, nil

	case TokenName:
		return p.parseAggregate(tok)

	case TokenLeftParen:
		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.peek().Type != TokenRightParen {
			return nil, calcerr.NewSyntax(tok.Pos, "unmatched '('")
		}
		p.advance()
		return node, nil

	case TokenEOF:
		return nil, calcerr.NewSyntax(tok.Pos, "unexpected end of formula")

	default:
		return nil, calcerr.NewSyntax(tok.Pos, "unexpected %s", tok.Type)
	}
}

// aggregate := NAME "(" (rangeRef | cellRef) ")"
func (p *Parser) parseAggregate(name Token) (Node, error) {
	op, err := aggregate.ParseOp(name.Text)
	if err != nil || !op.IsReducer() {
		return nil, calcerr.NewSyntax(name.Pos, "unknown function %q", name.Text)
	}
	if p.peek().Type != TokenLeftParen {
		return nil, calcerr.NewSyntax(name.Pos, "expected '(' after %s", op)
	}
	p.advance()

	first := p.advance()
	if first.Type != TokenCell {
		return nil, calcerr.NewSyntax(first.Pos, "%s expects a cell or range argument", op)
	}
	start, err := parseAddress(first)
	if err != nil {
		return nil, err
	}
	end := start
	if p.peek().Type == TokenColon {
		p.advance()
		second := p.advance()
		if second.Type != TokenCell {
			return nil, calcerr.NewSyntax(second.Pos, "incomplete range in %s", op)
		}
		if end, err = parseAddress(second); err != nil {
			return nil, err
		}
	}

	if p.peek().Type != TokenRightParen {
		return nil, calcerr.NewSyntax(p.peek().Pos, "expected ')' to close %s", op)
	}
	p.advance()

	arg := &RangeRef{Range: cellref.NewRange(start, end), pos: first.Pos}
	return &Aggregate{Func: op, Arg: arg, pos: name.Pos}, nil
}

// parseAddress decodes a cell token, attaching the token offset to the
// InvalidAddress error.
func parseAddress(tok Token) (cellref.Address, error) {
	addr, err := cellref.Parse(tok.Text)
	if err == nil {
		return addr, nil
	}
	var calcErr *calcerr.Error
	if errors.As(err, &calcErr) {
		located := *calcErr
		located.Pos = tok.Pos
		return cellref.Address{}, &located
	}
	return cellref.Address{}, err
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

// advance returns the current token and moves past it. It never moves past
// the trailing EOF token.
func (p *Parser) advance() Token {
	tok := p.tokens[p.current]
	if tok.Type != TokenEOF {
		p.current++
	}
	return tok
}
