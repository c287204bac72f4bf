package lang

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Parse lexes and parses one line.
func Parse(line string) (*Program, error) {
	tokens, err := Lex(line)
	if err != nil {
		return nil, err
	}

	return ParseTokens(tokens)
}

// ParseTokens parses the tokens of one line into a [*Program].
//
// The accepted grammar, loosest binding first:
//
//	line    = expr [ "==" identifier ] [ comment ]
//	expr    = term { ("+" | "-") term }
//	term    = power { ("*" | "/") power }
//	power   = unary [ "^" power ]
//	unary   = ("-" | "+") unary | primary
//	primary = number | identifier | function "(" expr ")" | "(" expr ")"
//
// Unary minus binds tighter than "^", so "-2^2" is 4, and "^" groups to the
// right. Every failure is an [ErrParse] located at the offending token.
func ParseTokens(tokens []Token) (*Program, error) {
	body := tokens
	if n := len(body); n > 0 && body[n-1].Kind == TokenComment {
		body = body[:n-1]
	}

	if len(body) == 0 {
		return nil, ErrParse.WithDetail("empty expression")
	}

	body, target, err := splitAssignment(body)
	if err != nil {
		return nil, err
	}

	p := parser{tokens: body}

	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Kind != TokenEOF {
		return nil, p.unexpected(tok)
	}

	return &Program{Expr: e, Target: target, Names: referencedNames(e)}, nil
}

// splitAssignment separates a trailing "== name" from the expression
// tokens.
func splitAssignment(tokens []Token) ([]Token, string, error) {
	at := -1

	for i, tok := range tokens {
		if tok.Kind != TokenAssign {
			continue
		}

		if at >= 0 {
			return nil, "", ErrParse.WithPosition(tok.Pos).
				WithDetail("more than one assignment")
		}

		at = i
	}

	if at < 0 {
		return tokens, "", nil
	}

	assign := tokens[at]

	if at == 0 {
		return nil, "", ErrParse.WithPosition(assign.Pos).
			WithDetail("missing expression before ==")
	}

	if at == len(tokens)-1 {
		return nil, "", ErrParse.WithPosition(assign.Pos).
			WithDetail("missing variable name after ==")
	}

	name := tokens[at+1]

	if name.Kind != TokenIdentifier || strings.Contains(name.Text, ".") {
		return nil, "", ErrParse.WithPosition(name.Pos).
			WithDetail("cannot assign to " + name.String())
	}

	if at+2 < len(tokens) {
		extra := tokens[at+2]

		return nil, "", ErrParse.WithPosition(extra.Pos).
			WithDetail("unexpected " + extra.String() + " after assignment")
	}

	return tokens[:at], name.Text, nil
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}

	var end Position
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		end = Position{
			Offset: last.Pos.Offset + len(last.Source),
			Column: last.Pos.Column + len([]rune(last.Source)),
		}
	}

	return Token{Kind: TokenEOF, Pos: end}
}

func (p *parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}

	return tok
}

func (p *parser) unexpected(tok Token) error {
	return ErrParse.WithPosition(tok.Pos).WithDetail("unexpected " + tok.String())
}

func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for tok := p.peek(); tok.IsOperator("+") || tok.IsOperator("-"); tok = p.peek() {
		p.advance()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		left = &BinaryExpr{Op: tok.Text, Left: left, Right: right, At: tok.Pos}
	}

	return left, nil
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	for tok := p.peek(); tok.IsOperator("*") || tok.IsOperator("/"); tok = p.peek() {
		p.advance()

		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}

		left = &BinaryExpr{Op: tok.Text, Left: left, Right: right, At: tok.Pos}
	}

	return left, nil
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	if !tok.IsOperator("^") {
		return base, nil
	}

	p.advance()

	exp, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	return &BinaryExpr{Op: "^", Left: base, Right: exp, At: tok.Pos}, nil
}

func (p *parser) parseUnary() (Expr, error) {
	tok := p.peek()
	if !tok.IsOperator("-") && !tok.IsOperator("+") {
		return p.parsePrimary()
	}

	p.advance()

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &UnaryExpr{Op: tok.Text, Operand: operand, At: tok.Pos}, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.advance()

	switch tok.Kind {
	case TokenNumber:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, ErrParse.WithPosition(tok.Pos).
				WithDetail("malformed number " + strconv.Quote(tok.Text))
		}

		if math.IsInf(v, 0) {
			return nil, ErrParse.WithPosition(tok.Pos).
				WithDetail("number " + tok.Text + " is out of range")
		}

		return &NumberLit{Text: tok.Text, Value: v, At: tok.Pos}, nil

	case TokenIdentifier:
		return &VarRef{Name: tok.Text, At: tok.Pos}, nil

	case TokenFunctionName:
		if open := p.advance(); open.Kind != TokenLParen {
			return nil, p.unexpected(open)
		}

		if next := p.peek(); next.Kind == TokenRParen {
			return nil, ErrParse.WithPosition(next.Pos).
				WithDetail(tok.Text + "() needs an argument")
		}

		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if err := p.expectClose(tok); err != nil {
			return nil, err
		}

		return &CallExpr{Name: tok.Text, Arg: arg, At: tok.Pos}, nil

	case TokenLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if err := p.expectClose(tok); err != nil {
			return nil, err
		}

		return inner, nil

	case TokenEOF:
		return nil, ErrParse.WithPosition(tok.Pos).
			WithDetail("unexpected end of expression")

	default:
		return nil, p.unexpected(tok)
	}
}

func (p *parser) expectClose(open Token) error {
	tok := p.peek()
	if tok.Kind == TokenRParen {
		p.advance()

		return nil
	}

	if tok.Kind == TokenEOF {
		return ErrParse.WithPosition(open.Pos).WithDetail("unclosed parenthesis")
	}

	return p.unexpected(tok)
}
