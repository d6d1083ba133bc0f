package router

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/api/httperrors"
	"github/chapool/go-txsigner/internal/types"
	"github/chapool/go-txsigner/internal/util"
)

type HTTPErrorHandlerConfig struct {
	HideInternalServerErrorDetails bool
}

// HTTPErrorHandlerWithConfig renders every error as a types.HTTPError JSON body.
// Errors of the signing core are mapped to their status codes, unknown errors become 500.
func HTTPErrorHandlerWithConfig(config HTTPErrorHandlerConfig) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *httperrors.HTTPError
		var echoErr *echo.HTTPError

		switch {
		case errors.As(err, &he):
		case httperrors.FromSignerError(err) != nil:
			he = httperrors.FromSignerError(err)
		case errors.As(err, &echoErr) && echoErr.Code == http.StatusBadRequest && echoErr.Internal != nil:
			// body binding failed
			he = httperrors.ErrBadRequestInvalidJSON.WithDetail(fmt.Sprint(echoErr.Message))
			he.Internal = echoErr.Internal
		case errors.As(err, &echoErr):
			he = httperrors.NewFromEcho(echoErr, echoErr.Code, echoErr.Message)
		default:
			he = httperrors.NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusInternalServerError))
			he.Internal = err
			if !config.HideInternalServerErrorDetails {
				he.Detail = err.Error()
			}
		}

		if he.Code >= http.StatusInternalServerError {
			util.LogFromEchoContext(c).Error().Err(err).Int("status", he.Code).Msg("Request failed")
		} else {
			util.LogFromEchoContext(c).Debug().Err(err).Int("status", he.Code).Msg("Request failed")
		}

		if c.Response().Committed {
			return
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(he.Code)
		} else {
			writeErr = c.JSON(he.Code, he)
		}

		if writeErr != nil {
			util.LogFromEchoContext(c).Error().Err(writeErr).Msg("Failed to write error response")
		}
	}
}
