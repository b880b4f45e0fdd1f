package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/storerating/rating-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

const kindInternal = "internal"

// categories maps each domain error category to its status and kind.
var categories = []struct {
	err    error
	status int
	kind   string
}{
	{domain.ErrValidation, http.StatusBadRequest, "validation_error"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrConflict, http.StatusConflict, "conflict"},
	{domain.ErrRateLimited, http.StatusTooManyRequests, "rate_limited"},
	{domain.ErrStorageUnavailable, http.StatusServiceUnavailable, "storage_unavailable"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error categories to their HTTP status and kind.
//   - Logs storage and unexpected errors without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "kind": "<kind>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, resp := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (unknown route, method not allowed, body too large).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message), Kind: kindForStatus(he.Code)}
	}

	for _, cat := range categories {
		if !errors.Is(err, cat.err) {
			continue
		}
		if cat.err == domain.ErrStorageUnavailable {
			logUnhandled(log, c, err, "storage error")
			return cat.status, errorResponse{Error: "storage temporarily unavailable", Kind: cat.kind}
		}
		return cat.status, errorResponse{Error: message(err, cat.err), Kind: cat.kind}
	}

	logUnhandled(log, c, err, "unhandled error")
	return http.StatusInternalServerError, errorResponse{Error: "internal server error", Kind: kindInternal}
}

// message prefers the text of the specific KindError over the wrapped
// operation context, which is internal.
func message(err, category error) string {
	var ke *domain.KindError
	if errors.As(err, &ke) {
		return ke.Error()
	}
	return category.Error()
}

func kindForStatus(code int) string {
	for _, cat := range categories {
		if cat.status == code {
			return cat.kind
		}
	}
	if code == http.StatusMethodNotAllowed {
		return "method_not_allowed"
	}
	return kindInternal
}

func logUnhandled(log zerolog.Logger, c echo.Context, err error, msg string) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg(msg)
}
