package http

import (
	"errors"
	"net/http"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFromError maps core error kinds to HTTP statuses. Validation
// failures are the client's fault, conflicts are retryable, everything
// unrecognized is a server error.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, product.ErrInsufficientStock),
		errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx echo.Context, err error) error {
	code := statusFromError(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal error"
	}
	return ctx.JSON(code, errorResponse{Code: code, Message: message})
}

func writeBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
