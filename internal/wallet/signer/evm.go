package signer

import (
	"context"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github/chapool/go-txsigner/internal/wallet/encoding"
	"github/chapool/go-txsigner/internal/wallet/recovery"
	"github/chapool/go-txsigner/internal/wallet/transaction"
)

// EIP-155: v = chainId * 2 + 35 + recid
const (
	legacyVOffset    = 35
	maxLegacyChainID = (math.MaxUint64 - legacyVOffset - 1) / 2
)

func (s *service) SignTransaction(
	ctx context.Context,
	params transaction.Params,
	from common.Address,
	key KeySelector,
	chainID uint64,
) (*transaction.SignedTransaction, error) {
	log := s.logger(ctx)
	log = log.With().Str("from", from.Hex()).Uint64("chain_id", chainID).Logger()

	// Built
	tx, err := s.build(params, chainID)
	if err != nil {
		s.metrics.ObserveSignOperation(typeLabel(params), outcome(err))
		log.Debug().Err(err).Str("stage", StageBuilt.String()).Msg("Sign operation failed")
		return nil, err
	}

	label := tx.Type.String()
	log = log.With().Str("type", label).Logger()

	// Hashed
	unsigned, err := encoding.Encode(tx, chainID, nil)
	if err != nil {
		s.metrics.ObserveSignOperation(label, outcome(err))
		return nil, err
	}
	messageHash := encoding.Digest(unsigned)

	log = log.With().Str("message_hash", messageHash.Hex()).Logger()
	log.Debug().Str("stage", StageHashed.String()).Msg("Transaction hashed, awaiting signature")

	// AwaitingSignature
	sig, err := s.signDigest(ctx, &log, label, messageHash, key)
	if err != nil {
		return nil, s.fail(&log, label, StageAwaitingSignature, messageHash, err)
	}

	// RecoveryResolved
	recid, err := recovery.Resolve(s.recoverer, messageHash, sig, from)
	if err != nil {
		return nil, s.fail(&log, label, StageRecoveryResolved, messageHash, err)
	}

	signature := transaction.Signature{
		V: signatureV(tx.Type, chainID, recid),
		R: common.BytesToHash(sig[:32]),
		S: common.BytesToHash(sig[32:]),
	}

	// Finalized
	if err := ctx.Err(); err != nil {
		return nil, s.fail(&log, label, StageFinalized, messageHash, err)
	}

	raw, err := encoding.Encode(tx, chainID, &signature)
	if err != nil {
		return nil, s.fail(&log, label, StageFinalized, messageHash, err)
	}

	signed := &transaction.SignedTransaction{
		MessageHash:     messageHash,
		V:               signature.V,
		R:               signature.R,
		S:               signature.S,
		RawTransaction:  raw,
		TransactionHash: encoding.Digest(raw),
	}

	s.metrics.ObserveSignOperation(label, outcomeSigned)
	log.Debug().
		Uint64("v", signed.V).
		Str("transaction_hash", signed.TransactionHash.Hex()).
		Msg("Transaction signed")

	return signed, nil
}

func (s *service) HashTransaction(params transaction.Params, chainID uint64) (common.Hash, error) {
	tx, err := s.build(params, chainID)
	if err != nil {
		return common.Hash{}, err
	}

	unsigned, err := encoding.Encode(tx, chainID, nil)
	if err != nil {
		return common.Hash{}, err
	}

	return encoding.Digest(unsigned), nil
}

func (s *service) build(params transaction.Params, chainID uint64) (transaction.UnsignedTransaction, error) {
	tx, err := params.Build()
	if err != nil {
		return transaction.UnsignedTransaction{}, err
	}

	if tx.Type == transaction.TypeLegacy && chainID > maxLegacyChainID {
		return transaction.UnsignedTransaction{}, &transaction.InvalidFieldError{
			Field:  "chain_id",
			Reason: "too large for an EIP-155 v value",
		}
	}

	return tx, nil
}

// signatureV folds the recovery id into the type specific v value
func signatureV(txType transaction.Type, chainID uint64, recid byte) uint64 {
	if txType == transaction.TypeLegacy {
		return chainID*2 + legacyVOffset + uint64(recid)
	}
	return uint64(recid)
}

func typeLabel(params transaction.Params) string {
	txType, err := transaction.ParseType((*uint64)(params.Type))
	if err != nil {
		return "unknown"
	}
	return txType.String()
}
