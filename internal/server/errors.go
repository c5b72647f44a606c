package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/career-guide/internal/db"
	"github.com/jonathan/career-guide/internal/server/middleware"
)

// ErrNotFound indicates the requested resource does not exist.
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ErrForbidden indicates the resource belongs to another user.
type ErrForbidden struct{}

func (e *ErrForbidden) Error() string {
	return "access denied"
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError converts validator output into an ErrValidation naming the
// first failing field.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: fmt.Sprintf("failed %q check", fe.Tag())}
	}
	return &ErrValidation{Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		notFound   *ErrNotFound
		forbidden  *ErrForbidden
		validation *ErrValidation
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &notFound), errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, middleware.ErrNoIdentity):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
