package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/miketud/realestateapp/internal/domain"
	"github.com/miketud/realestateapp/internal/platform/correlation"
	apperrors "github.com/miketud/realestateapp/internal/platform/errors"
)

func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := correlation.FromHeader(c.Request().Header.Get(correlation.Header))
		ctx := correlation.WithID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set(correlation.Header, id)
		return next(c)
	}
}

func ErrorHandlingMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return err
			}

			return HandleError(c, err)
		}
	}
}

var notFoundErrors = []error{
	domain.ErrPropertyNotFound,
	domain.ErrPurchaseNotFound,
	domain.ErrLoanNotFound,
	domain.ErrLoanPaymentNotFound,
	domain.ErrRentRollNotFound,
	domain.ErrPaymentLogNotFound,
	domain.ErrTransactionNotFound,
	domain.ErrContactNotFound,
	domain.ErrZipNotFound,
}

// toAPIError maps domain sentinels to structured errors. Anything unknown
// becomes an internal error.
func toAPIError(err error) *apperrors.Error {
	var structuredErr *apperrors.Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return withCause(apperrors.NotFoundError(target.Error()), err)
		}
	}

	switch {
	case errors.Is(err, domain.ErrConflict):
		return withCause(apperrors.ConflictError(domain.ErrConflict.Error()), err)
	case errors.Is(err, domain.ErrInvalidReference):
		return withCause(apperrors.ValidationError(domain.ErrInvalidReference.Error()), err)
	case errors.Is(err, domain.ErrInvalidValue):
		return withCause(apperrors.ValidationError(domain.ErrInvalidValue.Error()), err)
	case errors.Is(err, domain.ErrGeocoderUnavailable):
		return apperrors.ExternalError(domain.ErrGeocoderUnavailable.Error(), err)
	default:
		return apperrors.AsStructuredError(err)
	}
}

func withCause(e *apperrors.Error, cause error) *apperrors.Error {
	e.Cause = cause
	return e
}

func logError(c echo.Context, err *apperrors.Error) {
	ctx := c.Request().Context()
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}

	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	switch err.Type {
	case apperrors.TypeValidation:
		slog.InfoContext(ctx, "Validation error", attrs...)
	case apperrors.TypeNotFound:
		slog.InfoContext(ctx, "Not found", attrs...)
	case apperrors.TypeConflict:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.WarnContext(ctx, "Conflict", attrs...)
	case apperrors.TypeInternal:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.ErrorContext(ctx, "Internal error", attrs...)
	case apperrors.TypeExternal:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.ErrorContext(ctx, "External service error", attrs...)
	default:
		slog.ErrorContext(ctx, "Unknown error type", attrs...)
	}
}

func HandleError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	structuredErr := toAPIError(err)
	logError(c, structuredErr)
	if err := c.JSON(structuredErr.HTTPStatus(), structuredErr.ToResponse()); err != nil {
		return fmt.Errorf("failed to write error response: %w", err)
	}
	return nil
}

// httpErrorHandler renders errors that escape the middleware chain, such
// as unknown routes, oversized bodies and panics, in the API error shape.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) {
		if err := HandleError(c, err); err != nil {
			slog.ErrorContext(c.Request().Context(), "Failed to write error response", "error", err)
		}
		return
	}

	structuredErr := WrapHTTPError(httpErr)
	if httpErr.Code >= http.StatusInternalServerError {
		logError(c, structuredErr)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(httpErr.Code)
	} else {
		err = c.JSON(httpErr.Code, structuredErr.ToResponse())
	}
	if err != nil {
		slog.ErrorContext(c.Request().Context(), "Failed to write error response", "error", err)
	}
}

func WrapHTTPError(httpErr *echo.HTTPError) *apperrors.Error {
	message := "internal server error"
	if httpErr.Message != nil {
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	var errType apperrors.ErrorType
	switch httpErr.Code {
	case http.StatusBadRequest, http.StatusMethodNotAllowed, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		errType = apperrors.TypeValidation
	case http.StatusNotFound:
		errType = apperrors.TypeNotFound
	case http.StatusConflict:
		errType = apperrors.TypeConflict
	case http.StatusTooManyRequests:
		errType = apperrors.TypeRateLimited
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		errType = apperrors.TypeExternal
	default:
		errType = apperrors.TypeInternal
	}

	err := &apperrors.Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]any),
	}

	if httpErr.Internal != nil {
		err.Cause = httpErr.Internal
	}

	return err
}
