package signer

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// SigningFailedError is returned when the RawSigner fails or returns an unusable signature.
// Reason is the signer's error verbatim.
type SigningFailedError struct {
	Reason error
}

func (e *SigningFailedError) Error() string {
	if e.Reason == nil {
		return "signing failed"
	}
	return fmt.Sprintf("signing failed: %v", e.Reason)
}

func (e *SigningFailedError) Unwrap() error {
	return e.Reason
}

// Error wraps every failure that happens after the message hash is known,
// so callers can correlate it with the hash they may have already recorded.
// Stage is the state that could not be completed.
type Error struct {
	Stage       Stage
	MessageHash common.Hash
	Err         error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (message %s): %v", e.Stage, e.MessageHash.Hex(), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Cause allows pkg/errors.Cause to reach the underlying error
func (e *Error) Cause() error {
	return e.Err
}
