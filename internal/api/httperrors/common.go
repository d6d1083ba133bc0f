package httperrors

import (
	"fmt"
	"net/http"

	"github/chapool/go-txsigner/internal/types"
)

var (
	ErrBadRequestInvalidJSON = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeBadRequest, "Request body is not valid JSON.")
)

// HTTPError is an error that renders as a types.HTTPError response
type HTTPError struct {
	types.HTTPError
	Internal error `json:"-"`
}

func NewHTTPError(code int, errorType types.PublicHTTPErrorType, title string) *HTTPError {
	return &HTTPError{
		HTTPError: types.HTTPError{
			Code:  code,
			Type:  errorType,
			Title: title,
		},
	}
}

func NewFromEcho(e error, code int, message interface{}) *HTTPError {
	return &HTTPError{
		HTTPError: types.HTTPError{
			Code:  code,
			Type:  types.PublicHTTPErrorTypeGeneric,
			Title: fmt.Sprint(message),
		},
		Internal: e,
	}
}

func (e *HTTPError) Error() string {
	var errorString string
	if len(e.Detail) > 0 {
		errorString = fmt.Sprintf("HTTPError %d (%s): %s - %s", e.Code, e.Type, e.Title, e.Detail)
	} else {
		errorString = fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
	}

	if e.Internal != nil {
		errorString = fmt.Sprintf("%s, %v", errorString, e.Internal)
	}

	return errorString
}

func (e *HTTPError) Unwrap() error {
	return e.Internal
}

// WithDetail returns a copy of e carrying detail
func (e *HTTPError) WithDetail(detail string) *HTTPError {
	out := *e
	out.Detail = detail
	return &out
}
