package signer

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github/chapool/go-txsigner/internal/wallet/recovery"
)

const (
	messageLabel   = "message"
	messageVOffset = 27
)

// HashMessage returns the EIP-191 personal message digest:
// keccak256("\x19Ethereum Signed Message:\n" + len(message) + message)
func HashMessage(message []byte) common.Hash {
	return common.BytesToHash(accounts.TextHash(message))
}

func (s *service) SignMessage(ctx context.Context, message []byte, from common.Address, key KeySelector) (*SignedMessage, error) {
	log := s.logger(ctx)
	messageHash := HashMessage(message)
	log = log.With().
		Str("from", from.Hex()).
		Str("type", messageLabel).
		Str("message_hash", messageHash.Hex()).
		Logger()

	sig, err := s.signDigest(ctx, &log, messageLabel, messageHash, key)
	if err != nil {
		return nil, s.fail(&log, messageLabel, StageAwaitingSignature, messageHash, err)
	}

	recid, err := recovery.Resolve(s.recoverer, messageHash, sig, from)
	if err != nil {
		return nil, s.fail(&log, messageLabel, StageRecoveryResolved, messageHash, err)
	}

	v := messageVOffset + uint64(recid)
	full := make([]byte, signatureLength+1)
	copy(full, sig)
	full[signatureLength] = byte(v)

	s.metrics.ObserveSignOperation(messageLabel, outcomeSigned)
	log.Debug().Uint64("v", v).Msg("Message signed")

	return &SignedMessage{
		MessageHash: messageHash,
		V:           v,
		R:           common.BytesToHash(sig[:32]),
		S:           common.BytesToHash(sig[32:]),
		Signature:   full,
	}, nil
}
