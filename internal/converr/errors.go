package converr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType defines the category of the error for better handling/display.
type ErrorType string

const (
	TypeParse  ErrorType = "PARSE_ERROR"
	TypeConfig ErrorType = "CONFIG_ERROR"
)

// Error is a conversion failure that aborts the whole call.
type Error struct {
	Type    ErrorType
	Message string
	Context map[string]string
	Cause   error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%q", k, e.Context[k]))
		}
		sb.WriteString(" | context: {")
		sb.WriteString(strings.Join(parts, ", "))
		sb.WriteString("}")
	}

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf(" | cause: %v", e.Cause))
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewParse returns an error for input that cannot be read as HTML at all.
func NewParse(message string, cause error) *Error {
	return &Error{
		Type:    TypeParse,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidEncoding reports the byte offset of the first malformed UTF-8 sequence.
func NewInvalidEncoding(offset int) *Error {
	return &Error{
		Type:    TypeParse,
		Message: "input is not valid UTF-8",
		Context: map[string]string{
			"offset": fmt.Sprintf("%d", offset),
		},
	}
}

// NewConfig returns an error for an invalid style option.
func NewConfig(option, value, reason string) *Error {
	return &Error{
		Type:    TypeConfig,
		Message: fmt.Sprintf("invalid %s: %s", option, reason),
		Context: map[string]string{
			"option": option,
			"value":  value,
		},
	}
}

// Is reports whether err carries a conversion error of type t.
func Is(err error, t ErrorType) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Type == t
	}
	return false
}

// TypeOf returns the conversion error type of err, or "" for other errors.
func TypeOf(err error) ErrorType {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Type
	}
	return ""
}
