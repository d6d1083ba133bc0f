// Package encoding produces the canonical byte encodings of legacy (EIP-155),
// access list (EIP-2930) and fee market (EIP-1559) transactions.
package encoding

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github/chapool/go-txsigner/internal/wallet/transaction"
)

// Encode returns the canonical encoding of tx for chainID. With a nil signature
// the result is the signing pre-image, otherwise it is the broadcast-ready payload.
// Typed envelopes are prefixed with their type byte outside the RLP list.
func Encode(tx transaction.UnsignedTransaction, chainID uint64, sig *transaction.Signature) ([]byte, error) {
	switch tx.Type {
	case transaction.TypeLegacy:
		return encodeLegacy(tx, chainID, sig), nil
	case transaction.TypeAccessList:
		return encodeTyped(tx, chainID, sig, appendAccessListPayload), nil
	case transaction.TypeFeeMarket:
		return encodeTyped(tx, chainID, sig, appendFeeMarketPayload), nil
	default:
		return nil, &transaction.UnsupportedTransactionTypeError{Type: uint64(tx.Type)}
	}
}

// Digest is the keccak256 hash of an encoding
func Digest(encoded []byte) common.Hash {
	return crypto.Keccak256Hash(encoded)
}

// encodeLegacy writes [nonce, gasPrice, gas, to, value, data, chainId, 0, 0]
// unsigned or [nonce, gasPrice, gas, to, value, data, v, r, s] signed.
func encodeLegacy(tx transaction.UnsignedTransaction, chainID uint64, sig *transaction.Signature) []byte {
	w := rlp.NewEncoderBuffer(nil)
	list := w.List()

	appendLegacyFields(w, tx)

	if sig != nil {
		appendSignature(w, sig)
	} else {
		w.WriteUint64(chainID)
		w.WriteUint64(0)
		w.WriteUint64(0)
	}

	w.ListEnd(list)
	return finish(w, nil)
}

type payloadWriter func(w rlp.EncoderBuffer, tx transaction.UnsignedTransaction, chainID uint64)

func encodeTyped(tx transaction.UnsignedTransaction, chainID uint64, sig *transaction.Signature, payload payloadWriter) []byte {
	w := rlp.NewEncoderBuffer(nil)
	list := w.List()

	payload(w, tx, chainID)

	if sig != nil {
		appendSignature(w, sig)
	}

	w.ListEnd(list)
	return finish(w, []byte{byte(tx.Type)})
}

// appendAccessListPayload writes [chainId, nonce, gasPrice, gas, to, value, data, accessList]
func appendAccessListPayload(w rlp.EncoderBuffer, tx transaction.UnsignedTransaction, chainID uint64) {
	w.WriteUint64(chainID)
	appendLegacyFields(w, tx)
	appendAccessList(w, tx.AccessList)
}

// appendFeeMarketPayload writes
// [chainId, nonce, maxPriorityFeePerGas, maxFeePerGas, gas, to, value, data, accessList]
func appendFeeMarketPayload(w rlp.EncoderBuffer, tx transaction.UnsignedTransaction, chainID uint64) {
	w.WriteUint64(chainID)
	writeUint(w, tx.Nonce)
	writeUint(w, tx.MaxPriorityFeePerGas)
	writeUint(w, tx.EffectiveGasPrice)
	writeUint(w, tx.Gas)
	appendTo(w, tx.To)
	writeUint(w, tx.Value)
	w.WriteBytes(tx.Data)
	appendAccessList(w, tx.AccessList)
}

func appendLegacyFields(w rlp.EncoderBuffer, tx transaction.UnsignedTransaction) {
	writeUint(w, tx.Nonce)
	writeUint(w, tx.EffectiveGasPrice)
	writeUint(w, tx.Gas)
	appendTo(w, tx.To)
	writeUint(w, tx.Value)
	w.WriteBytes(tx.Data)
}

// appendTo writes the recipient, or the empty string for contract creation
func appendTo(w rlp.EncoderBuffer, to *common.Address) {
	if to == nil {
		w.WriteBytes(nil)
		return
	}
	w.WriteBytes(to.Bytes())
}

// appendSignature writes v and r, s as minimal big-endian integers
func appendSignature(w rlp.EncoderBuffer, sig *transaction.Signature) {
	w.WriteUint64(sig.V)
	w.WriteUint256(new(uint256.Int).SetBytes32(sig.R[:]))
	w.WriteUint256(new(uint256.Int).SetBytes32(sig.S[:]))
}

// writeUint writes a 256-bit quantity, treating nil as zero
func writeUint(w rlp.EncoderBuffer, v *uint256.Int) {
	if v == nil {
		w.WriteUint64(0)
		return
	}
	w.WriteUint256(v)
}

func finish(w rlp.EncoderBuffer, prefix []byte) []byte {
	out := w.AppendToBytes(prefix)
	// Flush releases the pooled buffer, there is no writer to fail
	_ = w.Flush()
	return out
}
