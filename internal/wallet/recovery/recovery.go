// Package recovery determines the ECDSA recovery id of a 64-byte signature by
// recovering the signer address for each parity and comparing it to the sender.
package recovery

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

const signatureLength = 64

var (
	// ErrInvalidSignature is returned when a signature or digest cannot be used for recovery
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrRecoveryMismatch is returned when neither parity recovers the expected sender
	ErrRecoveryMismatch = errors.New("recovered address does not match sender")
)

// Recoverer recovers the address that produced a signature over digest.
// sig is r||s (64 bytes), parity is the recovery id candidate (0 or 1).
type Recoverer interface {
	RecoverAddress(digest common.Hash, sig []byte, parity byte) (common.Address, error)
}

type recoverer struct{}

// NewRecoverer returns the secp256k1 Recoverer
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewRecoverer() Recoverer {
	return recoverer{}
}

func (recoverer) RecoverAddress(digest common.Hash, sig []byte, parity byte) (common.Address, error) {
	if digest == (common.Hash{}) {
		return common.Address{}, errors.Wrap(ErrInvalidSignature, "empty digest")
	}

	if len(sig) != signatureLength {
		return common.Address{}, errors.Wrapf(ErrInvalidSignature, "expected %d bytes, got %d", signatureLength, len(sig))
	}

	if parity > 1 {
		return common.Address{}, errors.Wrapf(ErrInvalidSignature, "parity %d out of range", parity)
	}

	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:])
	if !crypto.ValidateSignatureValues(parity, r, s, false) {
		return common.Address{}, errors.Wrap(ErrInvalidSignature, "r or s out of range")
	}

	full := make([]byte, signatureLength+1)
	copy(full, sig)
	full[signatureLength] = parity

	publicKey, err := crypto.SigToPub(digest.Bytes(), full)
	if err != nil {
		return common.Address{}, errors.Wrapf(ErrInvalidSignature, "recover public key: %v", err)
	}

	return crypto.PubkeyToAddress(*publicKey), nil
}

// Resolve returns the recovery id (0 or 1) for which sig over digest recovers
// to from. Parity 0 is tried first. A failed recovery counts as a non-match;
// if both attempts fail the last error is returned, otherwise ErrRecoveryMismatch.
func Resolve(recoverer Recoverer, digest common.Hash, sig []byte, from common.Address) (byte, error) {
	var lastErr error
	recovered := false

	for _, parity := range []byte{0, 1} {
		addr, err := recoverer.RecoverAddress(digest, sig, parity)
		if err != nil {
			lastErr = err
			continue
		}

		recovered = true
		if addr == from {
			return parity, nil
		}
	}

	if !recovered && lastErr != nil {
		return 0, lastErr
	}

	return 0, ErrRecoveryMismatch
}
