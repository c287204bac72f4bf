package lang

import (
	"strconv"
	"unicode/utf8"
)

// Lex splits one line of text into tokens.
//
// A "#" or "//" starts a comment that runs to the end of the line; it is
// reported as a single [TokenComment] and nothing after it is lexed. The
// returned slice has no trailing [TokenEOF].
//
// The first character that cannot begin a token yields an [ErrLex] located
// at that character, along with the tokens lexed before it.
func Lex(line string) ([]Token, error) {
	lx := lexer{input: line, col: 1}

	for {
		lx.skipSpace()

		if lx.eof() {
			return lx.tokens, nil
		}

		if err := lx.next(); err != nil {
			return lx.tokens, err
		}

		if n := len(lx.tokens); n > 0 && lx.tokens[n-1].Kind == TokenComment {
			return lx.tokens, nil
		}
	}
}

// IsBlank reports whether tokens contain nothing but an optional comment.
func IsBlank(tokens []Token) bool {
	return len(tokens) == 0 ||
		(len(tokens) == 1 && tokens[0].Kind == TokenComment)
}

type lexer struct {
	input  string
	tokens []Token
	pos    int
	col    int
}

func (lx *lexer) next() error {
	start := lx.position()
	r := lx.peek()

	switch {
	case r == '#' || (r == '/' && lx.peekAt(1) == '/'):
		lx.emitRest(TokenComment, start)

	case isDigit(r) || (r == '.' && isDigit(lx.peekAt(1))):
		lx.lexNumber(start)

	case isIdentifierStart(r):
		lx.lexIdentifier(start)

	case r == '*' && lx.peekAt(1) == '*':
		lx.advance()
		lx.advance()
		lx.emitAs(TokenOperator, "^", start)

	case r == '+' || r == '-' || r == '*' || r == '/' || r == '^':
		lx.advance()
		lx.emit(TokenOperator, start)

	case r == '(':
		lx.advance()
		lx.emit(TokenLParen, start)

	case r == ')':
		lx.advance()
		lx.emit(TokenRParen, start)

	case r == '=' && lx.peekAt(1) == '=':
		lx.advance()
		lx.advance()
		lx.emit(TokenAssign, start)

	case r == '=':
		return ErrLex.WithPosition(start).
			WithDetail(`"=" (assign with "expr == name")`)

	default:
		return ErrLex.WithPosition(start).WithDetail(strconv.QuoteRune(r))
	}

	return nil
}

func (lx *lexer) lexNumber(start Position) {
	lx.skipDigits()

	if lx.peek() == '.' {
		lx.advance()
		lx.skipDigits()
	}

	// An exponent is only consumed when digits follow it.
	if r := lx.peek(); r == 'e' || r == 'E' {
		n := 1
		if s := lx.peekAt(1); s == '+' || s == '-' {
			n = 2
		}

		if isDigit(lx.peekAt(n)) {
			for range n {
				lx.advance()
			}

			lx.skipDigits()
		}
	}

	lx.emit(TokenNumber, start)
}

func (lx *lexer) lexIdentifier(start Position) {
	lx.skipIdentifier()

	for lx.peek() == '.' && isIdentifierStart(lx.peekAt(1)) {
		lx.advance()
		lx.skipIdentifier()
	}

	kind := TokenIdentifier

	for i := lx.pos; i < len(lx.input); {
		r, size := utf8.DecodeRuneInString(lx.input[i:])
		if r == '(' {
			kind = TokenFunctionName
		}

		if !isSpace(r) {
			break
		}

		i += size
	}

	lx.emit(kind, start)
}

func (lx *lexer) emit(kind TokenKind, start Position) {
	text := lx.input[start.Offset:lx.pos]
	lx.emitAs(kind, text, start)
}

func (lx *lexer) emitAs(kind TokenKind, text string, start Position) {
	lx.tokens = append(lx.tokens, Token{
		Kind:   kind,
		Text:   text,
		Source: lx.input[start.Offset:lx.pos],
		Pos:    start,
	})
}

func (lx *lexer) emitRest(kind TokenKind, start Position) {
	for !lx.eof() {
		lx.advance()
	}

	lx.emit(kind, start)
}

func (lx *lexer) skipSpace() {
	for !lx.eof() && isSpace(lx.peek()) {
		lx.advance()
	}
}

func (lx *lexer) skipDigits() {
	for isDigit(lx.peek()) {
		lx.advance()
	}
}

func (lx *lexer) skipIdentifier() {
	for isIdentifierContinue(lx.peek()) {
		lx.advance()
	}
}

func (lx *lexer) eof() bool { return lx.pos >= len(lx.input) }

func (lx *lexer) peek() rune { return lx.peekAt(0) }

// peekAt returns the rune n runes ahead of the cursor, or 0 past the end.
func (lx *lexer) peekAt(n int) rune {
	i := lx.pos

	for ; n > 0 && i < len(lx.input); n-- {
		_, size := utf8.DecodeRuneInString(lx.input[i:])
		i += size
	}

	if i >= len(lx.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(lx.input[i:])

	return r
}

func (lx *lexer) advance() {
	if lx.eof() {
		return
	}

	_, size := utf8.DecodeRuneInString(lx.input[lx.pos:])
	lx.pos += size
	lx.col++
}

func (lx *lexer) position() Position {
	return Position{Offset: lx.pos, Column: lx.col}
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\r' }

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isLetter(r rune) bool { return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') }

// Identifiers are ASCII only: [A-Za-z_][A-Za-z0-9_]*.
func isIdentifierStart(r rune) bool { return r == '_' || isLetter(r) }

func isIdentifierContinue(r rune) bool { return isIdentifierStart(r) || isDigit(r) }
