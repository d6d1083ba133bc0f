package signer

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github/chapool/go-txsigner/internal/wallet/transaction"
)

// Service provides transaction and message signing functionality
type Service interface {
	// SignTransaction builds, hashes and signs a transaction for chainID.
	// The recovery id is resolved against from, no partial result is returned on error.
	SignTransaction(ctx context.Context, params transaction.Params, from common.Address, key KeySelector, chainID uint64) (*transaction.SignedTransaction, error)

	// HashTransaction returns the message hash SignTransaction would ask the signer to sign
	HashTransaction(params transaction.Params, chainID uint64) (common.Hash, error)

	// SignMessage signs an EIP-191 personal message
	SignMessage(ctx context.Context, message []byte, from common.Address, key KeySelector) (*SignedMessage, error)
}

// RawSigner is the external key holder. SignDigest must return the 64-byte r||s
// signature of digest; the recovery id is not part of the result.
type RawSigner interface {
	SignDigest(ctx context.Context, digest common.Hash, key KeySelector) ([]byte, error)
}

// KeySelector identifies the signing key and is handed to the RawSigner unchanged
type KeySelector struct {
	KeyName        string `json:"keyName,omitempty"`
	DerivationPath string `json:"derivationPath,omitempty"` // BIP32 path, e.g. "m/44'/60'/0'/0/0"
}

// SignedMessage is the result of a successful SignMessage
type SignedMessage struct {
	MessageHash common.Hash   `json:"messageHash"`
	V           uint64        `json:"v"` // 27 + recovery id
	R           common.Hash   `json:"r"`
	S           common.Hash   `json:"s"`
	Signature   hexutil.Bytes `json:"signature"` // r || s || v
}

// Stage is a state of a sign operation
type Stage uint8

const (
	StageBuilt Stage = iota
	StageHashed
	StageAwaitingSignature
	StageRecoveryResolved
	StageFinalized
)

func (s Stage) String() string {
	switch s {
	case StageBuilt:
		return "built"
	case StageHashed:
		return "hashed"
	case StageAwaitingSignature:
		return "awaiting_signature"
	case StageRecoveryResolved:
		return "recovery_resolved"
	case StageFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}
