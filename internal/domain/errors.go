package domain

import "fmt"

// ErrorKind classifies gateway failures so the HTTP layer can map them to a
// status code without inspecting message text.
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindModelNotSupported ErrorKind = "model_not_supported"
	KindSceneNotFound     ErrorKind = "scene_not_found"
	KindProvider          ErrorKind = "provider"
	KindMalformedOutput   ErrorKind = "malformed_output"
)

// Error is the single domain error type. It carries the HTTP status the
// failure should surface as; everything that is not an *Error becomes a
// generic 500 at the boundary.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewValidationError reports malformed or contradictory caller input.
func NewValidationError(format string, args ...any) *Error {
	return &Error{
		Kind:    KindValidation,
		Status:  400,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewModelNotSupportedError reports a model id outside the allow-list.
func NewModelNotSupportedError(model string) *Error {
	return &Error{
		Kind:    KindModelNotSupported,
		Status:  400,
		Message: fmt.Sprintf("Model '%s' is not supported", model),
	}
}

// NewSceneNotFoundError reports an unregistered prompt-template id.
func NewSceneNotFoundError(sceneID string) *Error {
	return &Error{
		Kind:    KindSceneNotFound,
		Status:  400,
		Message: fmt.Sprintf("Scene '%s' not found", sceneID),
	}
}

// NewProviderError reports a transport, quota, or payload failure talking to
// the external model endpoint.
func NewProviderError(provider string, err error) *Error {
	return &Error{
		Kind:    KindProvider,
		Status:  500,
		Message: fmt.Sprintf("Provider '%s' error: %v", provider, err),
		cause:   err,
	}
}

// NewMalformedOutputError reports a model reply that could not be recovered
// into the expected shape.
func NewMalformedOutputError(format string, args ...any) *Error {
	return &Error{
		Kind:    KindMalformedOutput,
		Status:  500,
		Message: fmt.Sprintf(format, args...),
	}
}
