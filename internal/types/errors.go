package types

// PublicHTTPErrorType is the machine readable kind of an HTTP error response
type PublicHTTPErrorType string

const (
	PublicHTTPErrorTypeGeneric                    PublicHTTPErrorType = "generic"
	PublicHTTPErrorTypeBadRequest                 PublicHTTPErrorType = "BAD_REQUEST"
	PublicHTTPErrorTypeMISSINGFIELD               PublicHTTPErrorType = "MISSING_FIELD"
	PublicHTTPErrorTypeINVALIDFIELD               PublicHTTPErrorType = "INVALID_FIELD"
	PublicHTTPErrorTypeUNSUPPORTEDTRANSACTIONTYPE PublicHTTPErrorType = "UNSUPPORTED_TRANSACTION_TYPE"
	PublicHTTPErrorTypeSIGNINGFAILED              PublicHTTPErrorType = "SIGNING_FAILED"
	PublicHTTPErrorTypeINVALIDSIGNATURE           PublicHTTPErrorType = "INVALID_SIGNATURE"
	PublicHTTPErrorTypeRECOVERYMISMATCH           PublicHTTPErrorType = "RECOVERY_MISMATCH"
)

// HTTPError is the JSON body of every error response
type HTTPError struct {
	// HTTP status code
	Code int `json:"status"`

	// machine readable error kind
	Type PublicHTTPErrorType `json:"type"`

	// short human readable summary
	Title string `json:"title"`

	// details, hidden for internal errors unless debugging is enabled
	Detail string `json:"detail,omitempty"`

	// field the error refers to
	Field string `json:"field,omitempty"`

	// message hash of the failed sign operation, for correlation
	MessageHash string `json:"messageHash,omitempty"`
}
