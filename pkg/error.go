package pkg

import (
	"strings"
)

// Error collects independent errors, such as the failures of several lines
// of a document, into one error.
type Error []error

// MakeError returns the non-nil errs as an Error, or nil if there are none.
func MakeError(errs ...error) error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, err)
		}
	}

	if len(e) == 0 {
		return nil
	}

	return e
}

// Error returns each error on its own line.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Unwrap returns the collected errors, for [errors.Is] and [errors.As].
func (e Error) Unwrap() []error { return e }
