package ec5

import (
	"errors"
	"fmt"
)

// Error kinds reported by the calculation engine.
var (
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrUnknownGrade       = errors.New("unknown grade")
	ErrInvalidCombination = errors.New("invalid service class / load duration combination")
	ErrDivisionByZero     = errors.New("division by zero")
)

// Error carries the error kind together with the input field that caused it
type Error struct {
	Kind  error
	Field string
	Msg   string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	if e.Msg != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Msg)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Kind }

// Errorf builds an *Error of the given kind for field.
func Errorf(kind error, field, format string, args ...any) error {
	return &Error{Kind: kind, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// FieldOf returns the offending field of err, or "" when err carries none.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

// KindOf returns a short machine-readable name for the error kind.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, ErrUnknownGrade):
		return "unknown_grade"
	case errors.Is(err, ErrInvalidCombination):
		return "invalid_combination"
	case errors.Is(err, ErrDivisionByZero):
		return "division_by_zero"
	}
	return "internal"
}
