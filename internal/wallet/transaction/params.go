package transaction

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// DefaultGas is the gas limit used when the caller leaves gas unset
const DefaultGas = 100_000

// Params are the caller-supplied transaction parameters.
// Quantities accept decimal or 0x-prefixed hex strings in JSON.
type Params struct {
	To                   *common.Address `json:"to,omitempty"` // nil means contract creation
	Nonce                *uint256.Int    `json:"nonce,omitempty"`
	Gas                  *uint256.Int    `json:"gas,omitempty"`
	GasPrice             *uint256.Int    `json:"gasPrice,omitempty"`
	MaxFeePerGas         *uint256.Int    `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *uint256.Int    `json:"maxPriorityFeePerGas,omitempty"`
	Value                *uint256.Int    `json:"value,omitempty"`
	Data                 hexutil.Bytes   `json:"data,omitempty"`
	Type                 *hexutil.Uint64 `json:"type,omitempty"` // nil means Legacy
	AccessList           AccessList      `json:"accessList,omitempty"`
}

// Build validates the parameters and resolves the gas price fields for the
// transaction type. The returned transaction shares no memory with p.
func (p Params) Build() (UnsignedTransaction, error) {
	txType, err := ParseType((*uint64)(p.Type))
	if err != nil {
		return UnsignedTransaction{}, err
	}

	if p.Nonce == nil {
		return UnsignedTransaction{}, &MissingFieldError{Field: "nonce"}
	}

	// Resolve the authoritative gas price representation
	var effectiveGasPrice, maxPriorityFeePerGas *uint256.Int
	switch txType {
	case TypeFeeMarket:
		effectiveGasPrice = p.MaxFeePerGas
		if effectiveGasPrice == nil {
			effectiveGasPrice = p.GasPrice
		}
		if effectiveGasPrice == nil {
			return UnsignedTransaction{}, &MissingFieldError{Field: "max_fee_per_gas"}
		}

		maxPriorityFeePerGas = p.MaxPriorityFeePerGas
		if maxPriorityFeePerGas == nil {
			maxPriorityFeePerGas = effectiveGasPrice
		}
	case TypeLegacy, TypeAccessList:
		effectiveGasPrice = p.GasPrice
		if effectiveGasPrice == nil {
			return UnsignedTransaction{}, &MissingFieldError{Field: "gas_price"}
		}
		maxPriorityFeePerGas = effectiveGasPrice
	}

	if txType == TypeLegacy && len(p.AccessList) > 0 {
		return UnsignedTransaction{}, &InvalidFieldError{
			Field:  "access_list",
			Reason: "legacy transactions cannot carry an access list",
		}
	}

	gas := p.Gas
	if gas == nil {
		gas = uint256.NewInt(DefaultGas)
	}

	value := p.Value
	if value == nil {
		value = new(uint256.Int)
	}

	var to *common.Address
	if p.To != nil {
		addr := *p.To
		to = &addr
	}

	return UnsignedTransaction{
		To:                   to,
		Nonce:                p.Nonce.Clone(),
		Value:                value.Clone(),
		Gas:                  gas.Clone(),
		EffectiveGasPrice:    effectiveGasPrice.Clone(),
		MaxPriorityFeePerGas: maxPriorityFeePerGas.Clone(),
		Data:                 common.CopyBytes(p.Data),
		Type:                 txType,
		AccessList:           p.AccessList.clone(),
	}, nil
}
