package lang

import (
	"strconv"
)

// TokenKind identifies the lexical class of a [Token].
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenNumber
	TokenIdentifier
	TokenFunctionName
	TokenOperator
	TokenAssign
	TokenComment
	TokenLParen
	TokenRParen
)

var tokenKindNames = [...]string{
	TokenEOF:          "end of line",
	TokenNumber:       "number",
	TokenIdentifier:   "identifier",
	TokenFunctionName: "function name",
	TokenOperator:     "operator",
	TokenAssign:       "==",
	TokenComment:      "comment",
	TokenLParen:       "(",
	TokenRParen:       ")",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}

	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Position locates a token within its line.
type Position struct {
	Offset int // byte offset, 0-based
	Column int // rune column, 1-based; 0 if unknown
}

func (p Position) String() string {
	return "column " + strconv.Itoa(p.Column)
}

// Token is one lexeme of a line.
//
// Text holds the canonical spelling: the operator "**" is reported with Text
// "^". Source always holds the literal input.
type Token struct {
	Text   string
	Source string
	Pos    Position
	Kind   TokenKind
}

func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return t.Kind.String()
	case TokenNumber, TokenIdentifier, TokenFunctionName:
		return t.Kind.String() + " " + strconv.Quote(t.Source)
	default:
		return strconv.Quote(t.Source)
	}
}

// IsOperator reports whether t is the operator op.
func (t Token) IsOperator(op string) bool {
	return t.Kind == TokenOperator && t.Text == op
}
