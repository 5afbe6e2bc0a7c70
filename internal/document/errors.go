package document

import "errors"

// ErrNotFound is returned when a document lookup matches no record.
var ErrNotFound = errors.New("document not found")

// ValidationError reports invalid request input. Maps to HTTP 422.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) error { return &ValidationError{Msg: msg} }

// TemplateError reports an unknown template kind or a render failure. Maps to HTTP 422.
type TemplateError struct {
	Msg string
}

func (e *TemplateError) Error() string { return e.Msg }

// NewTemplateError builds a TemplateError with the given message.
func NewTemplateError(msg string) error { return &TemplateError{Msg: msg} }

// PersistenceError wraps a store failure. Maps to HTTP 500.
type PersistenceError struct {
	Msg string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ServiceError wraps an unexpected failure in the generation pipeline. Maps to HTTP 500.
type ServiceError struct {
	Msg string
	Err error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ServiceError) Unwrap() error { return e.Err }
