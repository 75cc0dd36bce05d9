package spec

import "errors"

// ErrEmptyInput is returned (wrapped in a *ParseError) when Merge gets no documents.
//
//nolint:staticcheck // ST1005: surfaced verbatim to the CLI user
var ErrEmptyInput = errors.New("No specs to merge")

// ParseError reports a failure to turn a path into usable OpenAPI documents.
// It is fatal at startup.
type ParseError struct {
	// Path is the file or directory involved, if any.
	Path string

	// Message is the human-readable reason.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *ParseError) Error() string {
	switch {
	case e.Message == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return e.Message + ": " + e.Err.Error()
	default:
		return e.Message
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
