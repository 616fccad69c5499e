package apperrors

import (
	"fmt"
	"net/http"
)

// Factories for the error kinds the services raise. The four business kinds
// (not found, invalid state, conflict, validation) all map to 4xx and are
// recoverable at the caller; everything else is InternalError.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound or a
// sentinel) into a 404.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrConflict reports a uniqueness or state collision as a 409.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidState reports an operation attempted against an entity whose
// current state forbids it. The current state should be named in message.
func ErrInvalidState(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// NewNotFoundError builds a plain "X not found" 404 without a wrapped cause.
func NewNotFoundError(domain, entity string) *AppError {
	return New(CodeNotFound, domain, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)
