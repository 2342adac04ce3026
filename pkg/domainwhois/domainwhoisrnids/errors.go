package domainwhoisrnids

import (
	"errors"
	"fmt"
)

// error kinds. match with errors.Is(), details are in *ParseError
var (
	ErrMalformedLine        = errors.New("malformed line")
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidTimestamp     = errors.New("invalid timestamp")
	ErrUnknownStatus        = errors.New("unknown status")
	ErrInvalidEnumValue     = errors.New("invalid enum value")
	ErrInconsistentDates    = errors.New("inconsistent dates")
	ErrRegistryError        = errors.New("registry returned an error")
)

type ParseError struct {
	Kind    error
	Field   string // label as written in the response, if the error concerns a field
	Reason  string
	Line    int // 1-based, 0 if not attributable to a single line
	Content string
}

func (e *ParseError) Error() string {
	msg := e.Kind.Error()

	if e.Field != "" {
		msg += ": " + e.Field
	}

	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d: %q)", e.Line, e.Content)
	}

	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

func lineError(kind error, l line, reason string) *ParseError {
	return &ParseError{
		Kind:    kind,
		Reason:  reason,
		Line:    l.number,
		Content: l.text,
	}
}

func fieldError(kind error, f field, reason string) *ParseError {
	return &ParseError{
		Kind:    kind,
		Field:   f.label,
		Reason:  reason,
		Line:    f.line.number,
		Content: f.line.text,
	}
}
