package tools

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/json2struct/pkg/gostruct"
)

// Error codes for MCP tool responses.
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeUnsupportedValue  = "UNSUPPORTED_VALUE"
	ErrCodeEmptySequence     = "EMPTY_SEQUENCE"
	ErrCodeEmptyIdentifier   = "EMPTY_IDENTIFIER"
	ErrCodeInvalidIdentifier = "INVALID_IDENTIFIER"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapGenerateError converts an inference error to a coded error.
func WrapGenerateError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	switch {
	case errors.Is(err, gostruct.ErrEmptySequence):
		coded = &CodedError{Code: ErrCodeEmptySequence, Message: "cannot infer a type from an empty sequence", Cause: err}
	case errors.Is(err, gostruct.ErrUnsupportedValueKind):
		coded = &CodedError{Code: ErrCodeUnsupportedValue, Message: "value has no Go type mapping", Cause: err}
	case errors.Is(err, gostruct.ErrEmptyIdentifier):
		coded = &CodedError{Code: ErrCodeEmptyIdentifier, Message: "key converts to an empty identifier", Cause: err}
	case errors.Is(err, gostruct.ErrInvalidIdentifier), errors.Is(err, gostruct.ErrDuplicateIdentifier):
		coded = &CodedError{Code: ErrCodeInvalidIdentifier, Message: "key does not convert to a usable field name", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: err.Error(), Cause: err}
	}

	slog.Warn("declaration generation failed",
		slog.String("code", coded.Code),
		slog.String("error", err.Error()),
	)

	return coded
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
