package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Generation errors
	ErrEmptyCompletion       ErrorCode = "EMPTY_COMPLETION"
	ErrMalformedBatch        ErrorCode = "MALFORMED_BATCH"
	ErrGenerationUnavailable ErrorCode = "GENERATION_UNAVAILABLE"

	// Session errors
	ErrSessionNotFound      ErrorCode = "SESSION_NOT_FOUND"
	ErrInvalidQuestionIndex ErrorCode = "INVALID_QUESTION_INDEX"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the code of the first DomainError in err's chain, or ErrInternal.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ErrInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewEmptyCompletionError() *DomainError {
	return NewError(ErrEmptyCompletion, "Completion returned no content", nil)
}

func NewMalformedBatchError(reason string, err error) *DomainError {
	return NewError(ErrMalformedBatch, fmt.Sprintf("Malformed quiz batch: %s", reason), err)
}

func NewGenerationUnavailableError(err error) *DomainError {
	return NewError(ErrGenerationUnavailable, "Failed to generate quiz batch", err)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(ErrSessionNotFound, fmt.Sprintf("Quiz session not found or expired: %s", sessionID), nil)
}

func NewInvalidQuestionIndexError(index, size int) *DomainError {
	return NewError(ErrInvalidQuestionIndex, fmt.Sprintf("Question index %d out of range [0, %d)", index, size), nil)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in one request.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewInvalidFormatError(field string, value any) ValidationError {
	return ValidationError{Field: field, Message: "invalid format", Value: value}
}

func NewOutOfRangeError(field string, value any, lo, hi int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("must be between %d and %d", lo, hi), Value: value}
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}
