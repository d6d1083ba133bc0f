package httperrors

import (
	"net/http"

	"github.com/pkg/errors"
	"github/chapool/go-txsigner/internal/types"
	"github/chapool/go-txsigner/internal/wallet/recovery"
	"github/chapool/go-txsigner/internal/wallet/signer"
	"github/chapool/go-txsigner/internal/wallet/transaction"
)

// FromSignerError maps errors of the signing core to HTTP errors.
// It returns nil for errors outside the signing taxonomy.
func FromSignerError(err error) *HTTPError {
	var (
		missing     *transaction.MissingFieldError
		invalid     *transaction.InvalidFieldError
		unsupported *transaction.UnsupportedTransactionTypeError
		failed      *signer.SigningFailedError
		stageErr    *signer.Error
	)

	var httpErr *HTTPError
	switch {
	case errors.As(err, &missing):
		httpErr = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeMISSINGFIELD, "A required field is missing.")
		httpErr.Field = missing.Field
	case errors.As(err, &invalid):
		httpErr = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeINVALIDFIELD, "A field is invalid.")
		httpErr.Field = invalid.Field
		httpErr.Detail = invalid.Reason
	case errors.As(err, &unsupported):
		httpErr = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeUNSUPPORTEDTRANSACTIONTYPE, "The transaction type is not supported.")
		httpErr.Field = "type"
	case errors.As(err, &failed):
		httpErr = NewHTTPError(http.StatusBadGateway, types.PublicHTTPErrorTypeSIGNINGFAILED, "The signer failed to sign the message.")
	case errors.Is(err, recovery.ErrInvalidSignature):
		httpErr = NewHTTPError(http.StatusUnprocessableEntity, types.PublicHTTPErrorTypeINVALIDSIGNATURE, "The signer returned an invalid signature.")
	case errors.Is(err, recovery.ErrRecoveryMismatch):
		httpErr = NewHTTPError(http.StatusUnprocessableEntity, types.PublicHTTPErrorTypeRECOVERYMISMATCH, "The signature does not recover to the sender.")
	default:
		return nil
	}

	if errors.As(err, &stageErr) {
		httpErr.MessageHash = stageErr.MessageHash.Hex()
	}
	httpErr.Internal = err

	return httpErr
}
