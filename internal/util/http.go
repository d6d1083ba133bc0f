package util

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validatable is implemented by request and response payloads
type Validatable interface {
	Validate() error
}

// BindAndValidateBody binds the request body to v and validates it.
// Binding errors are returned as they are, validation errors are logged at debug level.
func BindAndValidateBody(c echo.Context, v Validatable) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		LogFromEchoContext(c).Debug().Err(err).Msg("Failed to bind request body")
		return err
	}

	if err := v.Validate(); err != nil {
		LogFromEchoContext(c).Debug().Err(err).Msg("Request body validation failed")
		return err
	}

	return nil
}

// ValidateAndReturn validates the response payload before sending it as JSON
func ValidateAndReturn(c echo.Context, code int, v interface{}) error {
	if validatable, ok := v.(Validatable); ok {
		if err := validatable.Validate(); err != nil {
			LogFromEchoContext(c).Error().Err(err).Msg("Response payload validation failed")
			return errors.Wrap(err, "invalid response payload")
		}
	}

	return c.JSON(code, v)
}
