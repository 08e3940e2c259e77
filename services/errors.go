package services

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindNotFound       ErrorKind = "NOT_FOUND"
	KindForbidden      ErrorKind = "FORBIDDEN"
	KindInvalidInput   ErrorKind = "INVALID_INPUT"
	KindStorageFailure ErrorKind = "STORAGE_FAILURE"
	KindInternal       ErrorKind = "INTERNAL"
)

var (
	ErrShareLinkRevoked = errors.New("revoked")
	ErrShareLinkExpired = errors.New("expired")
)

type AppError struct {
	Kind     ErrorKind
	HTTPCode int
	Message  string
	Data     interface{}
	Err      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// KindOf reports the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr != nil {
		return appErr.Kind
	}
	return KindInternal
}

func newAppError(kind ErrorKind, httpCode int, message string, err error) *AppError {
	return &AppError{Kind: kind, HTTPCode: httpCode, Message: message, Err: err}
}

func newNotFound(resource string, id interface{}) *AppError {
	return newAppError(KindNotFound, http.StatusNotFound, fmt.Sprintf("%s not found with id: %v", resource, id), nil)
}

func newNotFoundBy(resource string, field string, value interface{}) *AppError {
	return newAppError(KindNotFound, http.StatusNotFound, fmt.Sprintf("%s not found with %s: %v", resource, field, value), nil)
}

func newForbidden(reason string) *AppError {
	return newAppError(KindForbidden, http.StatusForbidden, reason, nil)
}

func newForbiddenCause(reason string, cause error) *AppError {
	return newAppError(KindForbidden, http.StatusForbidden, reason, cause)
}

func newInvalidInput(message string) *AppError {
	return newAppError(KindInvalidInput, http.StatusBadRequest, message, nil)
}

func newStorageFailure(message string, cause error) *AppError {
	return newAppError(KindStorageFailure, http.StatusInternalServerError, message, cause)
}

func newInternal(message string, cause error) *AppError {
	return newAppError(KindInternal, http.StatusInternalServerError, message, cause)
}
