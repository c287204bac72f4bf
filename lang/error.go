package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Kind classifies an [Error].
type Kind int

const (
	KindNone Kind = iota
	KindLex
	KindParse
	KindDivideByZero
	KindDomain
	KindUndefinedVariable
	KindUnknownFunction
	KindOverflow
)

var kindNames = [...]string{
	KindNone:              "none",
	KindLex:               "LexError",
	KindParse:             "ParseError",
	KindDivideByZero:      "DivideByZero",
	KindDomain:            "DomainError",
	KindUndefinedVariable: "UndefinedVariable",
	KindUnknownFunction:   "UnknownFunction",
	KindOverflow:          "Overflow",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsEval reports whether k is raised while evaluating a parsed expression.
func (k Kind) IsEval() bool { return k >= KindDivideByZero }

// Sentinel errors, one per [Kind]. Errors derived from a sentinel with
// [Error.WithDetail], [Error.WithPosition], [Error.With] or [Error.Wrap]
// match it under [errors.Is].
var (
	ErrLex               = NewError(KindLex, "invalid character")
	ErrParse             = NewError(KindParse, "syntax error")
	ErrDivideByZero      = NewError(KindDivideByZero, "division by zero")
	ErrDomain            = NewError(KindDomain, "domain error")
	ErrUndefinedVariable = NewError(KindUndefinedVariable, "undefined variable")
	ErrUnknownFunction   = NewError(KindUnknownFunction, "unknown function")
	ErrOverflow          = NewError(KindOverflow, "numeric overflow")
)

// Error is a classified error with an optional source position, detail
// text, wrapped cause and structured logging attributes.
//
// Error values are immutable; every With method returns a new Error.
type Error struct {
	err    error
	msg    string
	detail string
	attrs  []slog.Attr
	pos    Position
	kind   Kind
}

// NewError returns an Error of the given kind.
func NewError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// WrapError returns err as an *Error, wrapping it if necessary.
func WrapError(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return &Error{err: err}
}

// Error returns the short display text, for example
// "undefined variable: salary" or "invalid character at column 3: '$'".
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(e.msg)

	// Evaluation errors name the failing operation instead of a column.
	if e.pos.Column > 0 && !e.kind.IsEval() {
		sb.WriteString(" at ")
		sb.WriteString(e.pos.String())
	}

	for _, s := range []string{e.detail, errorText(e.err)} {
		if s == "" {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(s)
	}

	return sb.String()
}

func errorText(err error) string {
	if err == nil {
		return ""
	}

	return err.Error()
}

// Kind returns the classification of e.
func (e *Error) Kind() Kind { return e.kind }

// Pos returns the source position of e. Its Column is zero when unknown.
func (e *Error) Pos() Position { return e.pos }

// Detail returns the detail text of e, such as the offending name.
func (e *Error) Detail() string { return e.detail }

func (e *Error) Unwrap() error { return e.err }

// Is reports whether e derives from the sentinel target: one of the same
// kind, or for an unclassified sentinel, the same message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	if t.kind == KindNone {
		return t.msg != "" && t.msg == e.msg && t.err == nil && t.detail == ""
	}

	return t.kind == e.kind
}

func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+5)

	attrs = append(attrs, slog.String("error", e.msg))

	if e.kind != KindNone {
		attrs = append(attrs, slog.String("kind", e.kind.String()))
	}

	if e.pos.Column > 0 {
		attrs = append(attrs, slog.Int("column", e.pos.Column))
	}

	if e.detail != "" {
		attrs = append(attrs, slog.String("detail", e.detail))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

func (e *Error) clone() *Error {
	c := *e
	c.attrs = append([]slog.Attr(nil), e.attrs...)

	return &c
}

// Wrap returns a copy of e wrapping err.
func (e *Error) Wrap(err error) *Error {
	c := e.clone()
	c.err = err

	return c
}

// With returns a copy of e with attrs appended.
func (e *Error) With(attrs ...slog.Attr) *Error {
	c := e.clone()
	c.attrs = append(c.attrs, attrs...)

	return c
}

// WithDetail returns a copy of e with the given detail text.
func (e *Error) WithDetail(detail string) *Error {
	c := e.clone()
	c.detail = detail

	return c
}

// WithPosition returns a copy of e located at pos.
func (e *Error) WithPosition(pos Position) *Error {
	c := e.clone()
	c.pos = pos

	return c
}

// KindOf returns the [Kind] of the first *Error in err's chain, or
// [KindNone].
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}

	return KindNone
}
