package http

import (
	"errors"
	"net/http"

	"laundry/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps an application error to an HTTP response. Validation
// failures are client errors, missing objects are 404, and rule violations
// (illegal transition, blocked gate, wrong state, concurrent writer, empty
// split) are conflicts. Everything unclassified is a 500 with a generic
// message so internals do not leak.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrBatchTooLarge):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrForbidden):
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, errs.ErrGateBlocked),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrConcurrentModification),
		errors.Is(err, errs.ErrEmptySplit):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	}

	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	})
}
