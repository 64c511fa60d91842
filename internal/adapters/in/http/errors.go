package http

import (
	"errors"
	"net/http"

	"parcelhub/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// toError maps err onto a response. The second result reports whether err is an
// unexpected failure whose details must stay in the server log.
func toError(err error) (Error, bool) {
	var (
		forbidden  *errs.ForbiddenError
		invalid    *errs.ValueIsInvalidError
		required   *errs.ValueIsRequiredError
		outOfRange *errs.ValueIsOutOfRangeError
		notFound   *errs.ObjectNotFoundError
		conflict   *errs.ConflictError
		httpErr    *echo.HTTPError
	)

	switch {
	case errors.As(err, &forbidden):
		return Error{Code: http.StatusForbidden, Message: forbidden.Error()}, false
	case errors.As(err, &invalid):
		return Error{Code: http.StatusBadRequest, Message: invalid.Error(), Field: invalid.ParamName}, false
	case errors.As(err, &required):
		return Error{Code: http.StatusBadRequest, Message: required.Error(), Field: required.ParamName}, false
	case errors.As(err, &outOfRange):
		return Error{Code: http.StatusBadRequest, Message: outOfRange.Error(), Field: outOfRange.ParamName}, false
	case errors.As(err, &notFound):
		return Error{Code: http.StatusNotFound, Message: notFound.Error(), Field: notFound.ParamName}, false
	case errors.As(err, &conflict):
		return Error{Code: http.StatusConflict, Message: conflict.Error(), Field: conflict.ParamName}, false
	case errors.As(err, &httpErr):
		message := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
		return Error{Code: httpErr.Code, Message: message}, httpErr.Code >= http.StatusInternalServerError
	default:
		return Error{Code: http.StatusInternalServerError, Message: "internal server error"}, true
	}
}

// ErrorHandler renders handler errors as Error bodies. Unexpected failures are logged
// with their cause and answered with a generic message.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body, internal := toError(err)
		if internal {
			logger.Error("unhandled error",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(body.Code)
		} else {
			writeErr = c.JSON(body.Code, body)
		}
		if writeErr != nil {
			logger.Error("failed to write error response", zap.Error(writeErr))
		}
	}
}
