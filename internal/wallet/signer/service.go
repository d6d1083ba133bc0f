package signer

import (
	"context"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github/chapool/go-txsigner/internal/metrics"
	"github/chapool/go-txsigner/internal/util"
	"github/chapool/go-txsigner/internal/wallet/recovery"
	"github/chapool/go-txsigner/internal/wallet/transaction"
)

const signatureLength = 64

// metric outcome labels
const (
	outcomeSigned           = "signed"
	outcomeCanceled         = "canceled"
	outcomeMissingField     = "missing_field"
	outcomeInvalidField     = "invalid_field"
	outcomeUnsupportedType  = "unsupported_type"
	outcomeSigningFailed    = "signing_failed"
	outcomeInvalidSignature = "invalid_signature"
	outcomeRecoveryMismatch = "recovery_mismatch"
	outcomeError            = "error"
)

type service struct {
	rawSigner RawSigner
	recoverer recovery.Recoverer
	metrics   *metrics.Service
	clock     time2.Clock
}

// NewService creates a new SignerService. metrics may be nil, a nil clock uses the wall clock.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(rawSigner RawSigner, recoverer recovery.Recoverer, metrics *metrics.Service, clock time2.Clock) (Service, error) {
	if rawSigner == nil {
		return nil, errors.New("raw signer is required")
	}

	if recoverer == nil {
		return nil, errors.New("recoverer is required")
	}

	if clock == nil {
		clock = time2.DefaultClock
	}

	return &service{
		rawSigner: rawSigner,
		recoverer: recoverer,
		metrics:   metrics,
		clock:     clock,
	}, nil
}

// signDigest asks the RawSigner for a signature and checks its shape.
// High-s signatures are returned in their low-s form.
func (s *service) signDigest(ctx context.Context, log *zerolog.Logger, label string, digest common.Hash, key KeySelector) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := s.clock.Now()
	sig, err := s.rawSigner.SignDigest(ctx, digest, key)
	s.metrics.ObserveExternalSigner(label, s.elapsed(start))

	if err != nil {
		return nil, &SigningFailedError{Reason: err}
	}

	if len(sig) != signatureLength {
		return nil, &SigningFailedError{
			Reason: errors.Errorf("signer returned %d bytes, expected %d", len(sig), signatureLength),
		}
	}

	normalized, changed := recovery.Normalize(sig)
	if changed {
		log.Debug().Msg("Normalized high-s signature")
	}

	return normalized, nil
}

// fail records a failed operation and attaches the stage and message hash
func (s *service) fail(log *zerolog.Logger, label string, stage Stage, messageHash common.Hash, err error) error {
	s.metrics.ObserveSignOperation(label, outcome(err))
	log.Debug().Err(err).Str("stage", stage.String()).Msg("Sign operation failed")

	return &Error{Stage: stage, MessageHash: messageHash, Err: err}
}

func (s *service) logger(ctx context.Context) zerolog.Logger {
	return util.LogFromContext(ctx).With().Str("component", "signer").Logger()
}

func (s *service) elapsed(start time.Time) time.Duration {
	return s.clock.Now().Sub(start)
}

func outcome(err error) string {
	var (
		missing     *transaction.MissingFieldError
		invalid     *transaction.InvalidFieldError
		unsupported *transaction.UnsupportedTransactionTypeError
		failed      *SigningFailedError
	)

	switch {
	case err == nil:
		return outcomeSigned
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	case errors.As(err, &missing):
		return outcomeMissingField
	case errors.As(err, &invalid):
		return outcomeInvalidField
	case errors.As(err, &unsupported):
		return outcomeUnsupportedType
	case errors.As(err, &failed):
		return outcomeSigningFailed
	case errors.Is(err, recovery.ErrInvalidSignature):
		return outcomeInvalidSignature
	case errors.Is(err, recovery.ErrRecoveryMismatch):
		return outcomeRecoveryMismatch
	default:
		return outcomeError
	}
}
