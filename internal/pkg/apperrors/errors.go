package apperrors

import (
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrInvalidRequest ErrorType = "INVALID_REQUEST"
	ErrAuthFailed     ErrorType = "AUTH_FAILED"
	ErrSigning        ErrorType = "SIGNING_FAILED"
	ErrNoMatch        ErrorType = "NO_MATCH"
	ErrNotFound       ErrorType = "NOT_FOUND"
	ErrUpstream       ErrorType = "UPSTREAM_ERROR"
	ErrInternal       ErrorType = "INTERNAL_ERROR"
)

// AppError is the gateway's standard error envelope. It maps one-to-one
// onto an HTTP status and is safe to serialize to callers.
type AppError struct {
	Type       ErrorType `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errType ErrorType, msg string, cause error) *AppError {
	return &AppError{
		Type:       errType,
		Message:    msg,
		Cause:      cause,
		HTTPStatus: mapTypeToStatus(errType),
	}
}

func NewInvalidRequest(msg string) *AppError {
	return New(ErrInvalidRequest, msg, nil)
}

func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return New(ErrInternal, err.Error(), err)
}

func mapTypeToStatus(t ErrorType) int {
	switch t {
	case ErrInvalidRequest, ErrNoMatch:
		return http.StatusBadRequest
	case ErrAuthFailed:
		return http.StatusUnauthorized
	case ErrNotFound:
		return http.StatusNotFound
	case ErrUpstream:
		return http.StatusBadGateway
	case ErrSigning:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
