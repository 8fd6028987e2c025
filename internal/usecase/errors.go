package usecase

import (
	"errors"

	"hotel-booking/pkg/utils"
)

// Sentinels the HTTP layer maps to status codes.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidState       = errors.New("invalid state")
)

// Error carries a client-facing message next to its sentinel kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// ValidationError lists failures per request field.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func newValidationError(fields map[string]string) error {
	return &ValidationError{Message: "Validation failed", Fields: fields}
}

// fieldError reports a single rule that struct tags cannot express.
func fieldError(field, message string) error {
	return &ValidationError{Message: message, Fields: map[string]string{field: message}}
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return newValidationError(errs)
	}
	return nil
}

// isClientError reports whether err already carries a client-facing message.
func isClientError(err error) bool {
	var ue *Error
	var ve *ValidationError
	return errors.As(err, &ue) || errors.As(err, &ve)
}
