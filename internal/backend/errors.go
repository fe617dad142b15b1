package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed backend call
type Kind string

const (
	// KindNetwork means the backend could not be reached or did not answer in time.
	KindNetwork Kind = "network"
	// KindValidation means the request was rejected because of its content.
	KindValidation Kind = "validation"
	// KindServer means the backend answered but refused or failed the call.
	KindServer Kind = "server"
)

// AppError is the single error type returned by Client methods. Callers
// decide how to present it; Message is safe to show to users.
type AppError struct {
	Kind    Kind
	Status  int // HTTP status from the backend, 0 when no response was received
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend %s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("backend %s error (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("backend %s error: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func networkError(err error) *AppError {
	return &AppError{Kind: KindNetwork, Message: "backend unavailable", Err: err}
}

func serverError(status int, msg string) *AppError {
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = "backend request failed"
	}
	return &AppError{Kind: KindServer, Status: status, Message: msg}
}

// ValidationError builds a KindValidation error. It is also used by callers
// that check input locally before it reaches the backend.
func ValidationError(msg string, fields map[string]string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg, Fields: fields}
}

// AsAppError unwraps err to an *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is an *AppError of kind k
func IsKind(err error, k Kind) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == k
}

// IsNotFound reports whether the backend answered 404
func IsNotFound(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Status == http.StatusNotFound
}
