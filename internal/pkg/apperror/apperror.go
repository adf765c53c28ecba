// Package apperror defines the error kinds that cross the service boundary
// and the HTTP status each one maps to.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	InvalidInput
	DuplicateUsername
	NotFound
	InvalidCredentials
	Unauthenticated
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case DuplicateUsername:
		return "DuplicateUsername"
	case NotFound:
		return "NotFound"
	case InvalidCredentials:
		return "InvalidCredentials"
	case Unauthenticated:
		return "Unauthenticated"
	default:
		return "Internal"
	}
}

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode is the default HTTP status for the error kind. Handlers may
// collapse kinds further (login answers 400 for an unknown user).
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case InvalidInput, DuplicateUsername, InvalidCredentials:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NewInvalidInput(message string) *AppError {
	return New(InvalidInput, message, nil)
}

func NewDuplicateUsername(message string) *AppError {
	return New(DuplicateUsername, message, nil)
}

func NewNotFound(message string) *AppError {
	return New(NotFound, message, nil)
}

func NewInvalidCredentials(message string) *AppError {
	return New(InvalidCredentials, message, nil)
}

func NewUnauthenticated(message string, err error) *AppError {
	return New(Unauthenticated, message, err)
}

func NewInternal(err error) *AppError {
	return New(Internal, "Internal server error", err)
}

// From returns err as an *AppError. Anything that is not already one is
// wrapped as Internal.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternal(err)
}

func Is(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
