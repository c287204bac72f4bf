package repl

import "github.com/ardnew/solvee/lang"

// Sentinel errors.
var (
	ErrOutOfBounds    = lang.NewError(lang.KindNone, "history index out of range")
	ErrUnknownCommand = lang.NewError(lang.KindNone, "unknown command")
	ErrEditor         = lang.NewError(lang.KindNone, "editor failed")
)
