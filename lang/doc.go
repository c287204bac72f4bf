// Package lang lexes, parses and evaluates single-line arithmetic
// expressions.
//
// # Syntax
//
// A line is an expression, optionally followed by an assignment marker and a
// variable name, optionally followed by a comment:
//
//	1500 * 0.2 == tax      # binds tax to 300
//	sqrt(tax) / 2
//	// a comment line
//
// Operators, tightest first: parentheses and calls, unary "-" and "+", "^"
// (also spelled "**", right-associative), "*" and "/", "+" and "-". Unary
// minus binds tighter than "^": "-2^2" is 4.
//
// Numbers are decimal with an optional fraction and exponent ("12", ".5",
// "2.5e-3"). Identifiers are ASCII letters, digits and underscores not
// starting with a digit, optionally qualified with dots. Names are
// case-sensitive. Tokens are separated by spaces, tabs and carriage
// returns; any other character is an [ErrLex].
//
// # Names
//
// A variable reference resolves first in the caller's [Scope], then among
// the named constants pi, e and tau. Functions form a closed set (see
// [FuncNames]) taking exactly one argument. Functions and constants may be
// qualified with [NamespacePrefix] ("math.sqrt").
//
// # Errors
//
// Every failure is an [*Error] whose [Kind] tells lexical, syntactic and
// evaluation failures apart. Evaluation is total: it returns a finite value
// or an error, and never panics.
package lang
