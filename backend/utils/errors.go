package utils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/op/go-logging"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrAuth         = errors.New("authentication failed")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrInvalidToken = errors.New("invalid token")
)

// AppError is an error the client is allowed to see. Kind is one of the
// sentinel errors above and decides the HTTP status.
type AppError struct {
	Kind    error
	Message string
	Details interface{}
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Kind
}

func NewValidationError(message string, details interface{}) error {
	return &AppError{Kind: ErrValidation, Message: message, Details: details}
}

func NewConflictError(message string) error {
	return &AppError{Kind: ErrConflict, Message: message}
}

func NewAuthError(message string) error {
	return &AppError{Kind: ErrAuth, Message: message}
}

func NewForbiddenError(message string) error {
	return &AppError{Kind: ErrForbidden, Message: message}
}

func NewNotFoundError(message string) error {
	return &AppError{Kind: ErrNotFound, Message: message}
}

func NewInvalidTokenError(message string) error {
	return &AppError{Kind: ErrInvalidToken, Message: message}
}

// StatusCode maps an error to the HTTP status it is reported with.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return http.StatusInternalServerError
}

// ErrorHandler renders every error returned by a handler. Unknown errors are
// logged and hidden behind a generic 500.
func ErrorHandler(logger *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := StatusCode(err)

		var appErr *AppError
		if errors.As(err, &appErr) {
			if status == http.StatusUnauthorized {
				c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
			}
			if appErr.Details != nil {
				return Error(c, status, appErr, appErr.Details)
			}
			return Error(c, status, appErr)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return Error(c, fe.Code, fe)
		}

		logger.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		return InternalServerError(c, "Internal server error")
	}
}
