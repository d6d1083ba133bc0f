package transaction

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Type is the transaction envelope type
type Type uint8

const (
	// TypeLegacy is the pre-EIP-2718 envelope (EIP-155 replay protection)
	TypeLegacy Type = 0
	// TypeAccessList is the EIP-2930 envelope
	TypeAccessList Type = 1
	// TypeFeeMarket is the EIP-1559 envelope
	TypeFeeMarket Type = 2
)

// String returns a short name used in logs and metric labels
func (t Type) String() string {
	switch t {
	case TypeLegacy:
		return "legacy"
	case TypeAccessList:
		return "access_list"
	case TypeFeeMarket:
		return "fee_market"
	default:
		return "unknown"
	}
}

// Typed reports whether the type uses an EIP-2718 typed envelope
func (t Type) Typed() bool {
	return t == TypeAccessList || t == TypeFeeMarket
}

// ParseType maps an optional numeric type id to a Type. A nil id is Legacy.
func ParseType(id *uint64) (Type, error) {
	if id == nil {
		return TypeLegacy, nil
	}

	switch *id {
	case uint64(TypeLegacy):
		return TypeLegacy, nil
	case uint64(TypeAccessList):
		return TypeAccessList, nil
	case uint64(TypeFeeMarket):
		return TypeFeeMarket, nil
	default:
		return 0, &UnsupportedTransactionTypeError{Type: *id}
	}
}

// AccessTuple is a single access list entry
type AccessTuple struct {
	Address     common.Address `json:"address"`
	StorageKeys []common.Hash  `json:"storageKeys"`
}

// AccessList is an EIP-2930 access list
type AccessList []AccessTuple

// StorageKeys returns the total number of storage keys in the list
func (al AccessList) StorageKeys() int {
	total := 0
	for _, tuple := range al {
		total += len(tuple.StorageKeys)
	}
	return total
}

func (al AccessList) clone() AccessList {
	if al == nil {
		return AccessList{}
	}

	out := make(AccessList, len(al))
	for i, tuple := range al {
		keys := make([]common.Hash, len(tuple.StorageKeys))
		copy(keys, tuple.StorageKeys)
		out[i] = AccessTuple{Address: tuple.Address, StorageKeys: keys}
	}
	return out
}

// UnsignedTransaction holds resolved transaction fields ready for encoding.
// It is built by Params.Build and never mutated afterwards.
//
// For the FeeMarket type EffectiveGasPrice is serialized as maxFeePerGas.
// MaxPriorityFeePerGas is carried for the other types but not serialized.
type UnsignedTransaction struct {
	To                   *common.Address // nil means contract creation
	Nonce                *uint256.Int
	Value                *uint256.Int
	Gas                  *uint256.Int
	EffectiveGasPrice    *uint256.Int
	MaxPriorityFeePerGas *uint256.Int
	Data                 []byte
	Type                 Type
	AccessList           AccessList
}

// Signature holds the signature values attached to an encoded transaction.
// V depends on the transaction type: 2*chainID+35+recid for Legacy, recid otherwise.
type Signature struct {
	V uint64
	R common.Hash
	S common.Hash
}

// SignedTransaction is the result of a successful sign operation
type SignedTransaction struct {
	MessageHash     common.Hash   `json:"messageHash"`
	V               uint64        `json:"v"`
	R               common.Hash   `json:"r"`
	S               common.Hash   `json:"s"`
	RawTransaction  hexutil.Bytes `json:"rawTransaction"`
	TransactionHash common.Hash   `json:"transactionHash"`
}

// Signature returns the signature values of the signed transaction
func (st *SignedTransaction) Signature() Signature {
	return Signature{V: st.V, R: st.R, S: st.S}
}
